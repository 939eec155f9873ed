package camera

import (
	"errors"

	"github.com/Carmen-Shannon/oxy-freefly/common"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrNonFiniteInput is returned when a pointer sample, time delta or translation contains NaN or an infinity.
	ErrNonFiniteInput = errors.New("non-finite controller input")

	// ErrInvalidViewport is returned by pixel-mode updates when a viewport extent is not positive.
	ErrInvalidViewport = errors.New("viewport extent must be positive")

	// ErrSingularViewMatrix is returned when an adopted view matrix cannot be inverted.
	ErrSingularViewMatrix = errors.New("view matrix is singular")

	// ErrDegenerateLookAt is returned when the look-at target coincides with the camera position.
	ErrDegenerateLookAt = errors.New("look-at target coincides with camera position")
)

// PointerMode selects how pointer samples are converted into rotation angles.
type PointerMode int

const (
	// PointerModePixel treats pointer samples as viewport pixel coordinates.
	// A delta is converted to an angle as π·delta/extent, so dragging across
	// the full viewport width turns the camera by half a revolution.
	PointerModePixel PointerMode = iota

	// PointerModeRelative treats pointer samples as pre-normalized coordinates.
	// A delta is converted to an angle as π·delta with no viewport division.
	PointerModeRelative
)

func (m PointerMode) String() string {
	switch m {
	case PointerModePixel:
		return "pixel"
	case PointerModeRelative:
		return "relative"
	default:
		return "unknown"
	}
}

// Button identifies one of the two buttons the controller reacts to.
type Button int

const (
	// ButtonPrimary drives yaw followed by pitch.
	ButtonPrimary Button = iota
	// ButtonSecondary drives roll about the back axis.
	ButtonSecondary
)

func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonSecondary:
		return "secondary"
	default:
		return "unknown"
	}
}

// ButtonEvent describes a single press or release edge detected during an update.
type ButtonEvent struct {
	Button  Button
	Pressed bool
}

// ControlConfig holds user-facing control preferences.
type ControlConfig struct {
	// InvertY is stored and reported but not applied to the rotation math.
	InvertY bool
}

// FrameInput carries everything one controller step consumes.
type FrameInput struct {
	// TimeDelta is the elapsed time in seconds. It is validated but does not scale the step.
	TimeDelta float32

	// Mode selects pixel or relative pointer interpretation.
	Mode PointerMode

	// Pointer is the current pointer sample.
	Pointer mgl32.Vec2

	// ViewportWidth and ViewportHeight are required in PointerModePixel and ignored otherwise.
	ViewportWidth, ViewportHeight int32

	// PrimaryDown and SecondaryDown are the current button states.
	PrimaryDown, SecondaryDown bool

	// Translation is the movement for this step in the camera's local right/up/back axes.
	Translation mgl32.Vec3
}

// FreeFlyController maintains a free-roaming camera frame driven by pointer motion and button state.
//
// The frame is stored as a row-major 3x4 view transform whose rows are the camera's right, up and
// back axes in world space and whose fourth column is -dot(axis, position). The translation column
// is always derived from the position and is never set independently.
//
// Implementations are not safe for concurrent use; callers driving a controller from more than one
// goroutine must serialize access (Camera does this for the controller it owns).
type FreeFlyController interface {
	// Update advances the frame by one step using viewport pixel coordinates.
	//
	// Parameters:
	//   - timeDelta: elapsed time in seconds (validated, otherwise unused)
	//   - pointer: current pointer position in pixels
	//   - viewportW, viewportH: viewport extents in pixels (must be positive)
	//   - primaryDown: whether the primary button is held
	//   - secondaryDown: whether the secondary button is held
	//   - translation: movement along the camera's local right/up/back axes
	//
	// Returns:
	//   - error: ErrNonFiniteInput or ErrInvalidViewport; state is unchanged on error
	Update(timeDelta float32, pointer mgl32.Vec2, viewportW, viewportH int32, primaryDown, secondaryDown bool, translation mgl32.Vec3) error

	// UpdateRelative advances the frame by one step using pre-normalized pointer coordinates.
	//
	// Parameters:
	//   - timeDelta: elapsed time in seconds (validated, otherwise unused)
	//   - pointer: current normalized pointer position
	//   - primaryDown: whether the primary button is held
	//   - secondaryDown: whether the secondary button is held
	//   - translation: movement along the camera's local right/up/back axes
	//
	// Returns:
	//   - error: ErrNonFiniteInput; state is unchanged on error
	UpdateRelative(timeDelta float32, pointer mgl32.Vec2, primaryDown, secondaryDown bool, translation mgl32.Vec3) error

	// Step dispatches to Update or UpdateRelative according to in.Mode.
	//
	// Parameters:
	//   - in: the input for this step
	//
	// Returns:
	//   - error: any error returned by the selected update
	Step(in FrameInput) error

	// ViewMatrix returns a snapshot of the current 3x4 view transform.
	//
	// Returns:
	//   - common.Mat3x4: the view transform
	ViewMatrix() common.Mat3x4

	// SetViewMatrix resets the controller, then adopts m as its orientation and recovers the
	// position by inverting the homogeneous extension of m.
	//
	// Parameters:
	//   - m: the view transform to adopt
	//
	// Returns:
	//   - error: ErrSingularViewMatrix if m cannot be inverted; state is unchanged on error
	SetViewMatrix(m common.Mat3x4) error

	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// SetPosition moves the camera without changing its orientation.
	//
	// Parameters:
	//   - pos: the new world-space position
	SetPosition(pos mgl32.Vec3)

	// Basis returns the camera's right, up and back axes in world space.
	//
	// Returns:
	//   - x, y, z: the three basis rows of the view transform
	Basis() (x, y, z mgl32.Vec3)

	// LookAt turns the camera so that it faces target. The back axis ends up pointing away from
	// target, i.e. normalize(target - position) == -z.
	//
	// Parameters:
	//   - target: world-space point to face
	//
	// Returns:
	//   - error: ErrDegenerateLookAt if target equals the position; state is unchanged on error
	LookAt(target mgl32.Vec3) error

	// ResetTransforms restores the identity orientation at the origin and clears the pointer history.
	// Sensitivity, control config and the active flag are kept.
	ResetTransforms()

	// ControlConfig returns the stored control preferences.
	//
	// Returns:
	//   - ControlConfig: the current preferences
	ControlConfig() ControlConfig

	// SetControlConfig stores new control preferences.
	//
	// Parameters:
	//   - cfg: the preferences to store
	SetControlConfig(cfg ControlConfig)

	// MouseSensitivity returns the multiplier applied to pointer deltas.
	//
	// Returns:
	//   - float32: the sensitivity
	MouseSensitivity() float32

	// SetMouseSensitivity sets the multiplier applied to pointer deltas.
	//
	// Parameters:
	//   - sensitivity: the new multiplier
	SetMouseSensitivity(sensitivity float32)

	// Active reports whether updates are applied.
	//
	// Returns:
	//   - bool: false if updates are currently ignored
	Active() bool

	// SetActive enables or disables updates. An inactive controller ignores every update call.
	//
	// Parameters:
	//   - active: the new state
	SetActive(active bool)

	// PrimaryDown reports the latched primary button state.
	PrimaryDown() bool

	// SecondaryDown reports the latched secondary button state.
	SecondaryDown() bool
}
