package input

import "github.com/Carmen-Shannon/oxy-freefly/engine/camera"

// TrackerBuilderOption is a functional option for configuring a Tracker.
type TrackerBuilderOption func(*trackerImpl)

// WithBindings replaces the default key bindings.
//
// Parameters:
//   - b: the key bindings
//
// Returns:
//   - TrackerBuilderOption: option function to apply
func WithBindings(b Bindings) TrackerBuilderOption {
	return func(t *trackerImpl) {
		t.bindings = b
	}
}

// WithMoveSpeed sets the translation speed in world units per second.
//
// Parameters:
//   - speed: the move speed
//
// Returns:
//   - TrackerBuilderOption: option function to apply
func WithMoveSpeed(speed float32) TrackerBuilderOption {
	return func(t *trackerImpl) {
		t.moveSpeed = speed
	}
}

// WithBoostFactor sets the move speed multiplier applied while the boost binding is held.
//
// Parameters:
//   - factor: the speed multiplier
//
// Returns:
//   - TrackerBuilderOption: option function to apply
func WithBoostFactor(factor float32) TrackerBuilderOption {
	return func(t *trackerImpl) {
		t.boostFactor = factor
	}
}

// WithPointerMode sets the pointer mode written into snapshots.
//
// Parameters:
//   - mode: the pointer mode
//
// Returns:
//   - TrackerBuilderOption: option function to apply
func WithPointerMode(mode camera.PointerMode) TrackerBuilderOption {
	return func(t *trackerImpl) {
		t.pointerMode = mode
	}
}
