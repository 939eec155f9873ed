package camera

import (
	"log"

	"github.com/go-gl/mathgl/mgl32"
)

// FreeFlyControllerOption is a functional option for configuring a FreeFlyController.
type FreeFlyControllerOption func(*freeFlyControllerImpl)

// WithMouseSensitivity sets the multiplier applied to pointer deltas.
//
// Parameters:
//   - sensitivity: multiplier for pointer movement
//
// Returns:
//   - FreeFlyControllerOption: functional option to set mouse sensitivity
func WithMouseSensitivity(sensitivity float32) FreeFlyControllerOption {
	return func(c *freeFlyControllerImpl) {
		c.mouseSensitivity = sensitivity
	}
}

// WithControlConfig sets the initial control preferences.
//
// Parameters:
//   - cfg: the preferences to store
//
// Returns:
//   - FreeFlyControllerOption: functional option to set the control config
func WithControlConfig(cfg ControlConfig) FreeFlyControllerOption {
	return func(c *freeFlyControllerImpl) {
		c.controlConfig = cfg
	}
}

// WithActive sets whether the controller starts out applying updates.
//
// Parameters:
//   - active: initial active state
//
// Returns:
//   - FreeFlyControllerOption: functional option to set the active flag
func WithActive(active bool) FreeFlyControllerOption {
	return func(c *freeFlyControllerImpl) {
		c.active = active
	}
}

// WithPosition sets the initial world-space position.
//
// Parameters:
//   - pos: the starting position
//
// Returns:
//   - FreeFlyControllerOption: functional option to set the position
func WithPosition(pos mgl32.Vec3) FreeFlyControllerOption {
	return func(c *freeFlyControllerImpl) {
		c.SetPosition(pos)
	}
}

// WithLookAt turns the controller toward target after every other option has been applied,
// so it sees the final position regardless of option order.
// A target equal to that position is logged and ignored.
//
// Parameters:
//   - target: world-space point to face
//
// Returns:
//   - FreeFlyControllerOption: functional option to set the initial orientation
func WithLookAt(target mgl32.Vec3) FreeFlyControllerOption {
	return func(c *freeFlyControllerImpl) {
		c.initialTarget = &target
	}
}

// WithLogger sets the logger receiving button edge notifications. Pass nil to disable logging.
//
// Parameters:
//   - logger: destination logger, or nil
//
// Returns:
//   - FreeFlyControllerOption: functional option to set the logger
func WithLogger(logger *log.Logger) FreeFlyControllerOption {
	return func(c *freeFlyControllerImpl) {
		c.logger = logger
	}
}

// WithButtonCallback registers a function called for every button press/release edge.
//
// Parameters:
//   - callback: function receiving the edge
//
// Returns:
//   - FreeFlyControllerOption: functional option to set the button callback
func WithButtonCallback(callback func(ButtonEvent)) FreeFlyControllerOption {
	return func(c *freeFlyControllerImpl) {
		c.onButton = callback
	}
}
