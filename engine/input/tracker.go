package input

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-freefly/common"
	"github.com/Carmen-Shannon/oxy-freefly/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
)

// Bindings maps camera actions to key codes. A zero code disables the action.
type Bindings struct {
	Forward  uint32
	Backward uint32
	Left     uint32
	Right    uint32
	Up       uint32
	Down     uint32
	Boost    uint32
	Reset    uint32
}

// DefaultBindings returns WASD movement with E/Q for up/down, Left Shift to boost and R to reset.
//
// Returns:
//   - Bindings: the default key bindings
func DefaultBindings() Bindings {
	return Bindings{
		Forward:  common.KeyW,
		Backward: common.KeyS,
		Left:     common.KeyA,
		Right:    common.KeyD,
		Up:       common.KeyE,
		Down:     common.KeyQ,
		Boost:    common.KeyLeftShift,
		Reset:    common.KeyR,
	}
}

// Frame is one step's worth of camera input.
type Frame struct {
	camera.FrameInput

	// Reset is set when the reset binding was tapped since the previous snapshot.
	Reset bool
}

// Tracker accumulates window input events and turns them into per-step camera input.
// Event methods may be called from any goroutine; Snapshot is usually called once per frame.
type Tracker interface {
	// KeyDown records a key press. Repeated presses of a held key are ignored.
	//
	// Parameters:
	//   - keyCode: the key code (GLFW values, see common/key_codes.go)
	KeyDown(keyCode uint32)

	// KeyUp records a key release.
	//
	// Parameters:
	//   - keyCode: the key code
	KeyUp(keyCode uint32)

	// MouseDown records a mouse button press.
	//
	// Parameters:
	//   - button: the mouse button code (common.MouseButtonLeft etc.)
	MouseDown(button uint32)

	// MouseUp records a mouse button release.
	//
	// Parameters:
	//   - button: the mouse button code
	MouseUp(button uint32)

	// MouseMove records the cursor position in window pixels.
	//
	// Parameters:
	//   - x: cursor x position
	//   - y: cursor y position
	MouseMove(x, y float32)

	// IsKeyDown reports whether a key is currently held.
	//
	// Parameters:
	//   - keyCode: the key code
	//
	// Returns:
	//   - bool: true if the key is held
	IsKeyDown(keyCode uint32) bool

	// IsMouseDown reports whether a mouse button is currently held.
	//
	// Parameters:
	//   - button: the mouse button code
	//
	// Returns:
	//   - bool: true if the button is held
	IsMouseDown(button uint32) bool

	// Snapshot builds the input for one camera step and clears the tap state.
	// In pixel mode the pointer is the cursor position; in relative mode it is the cursor
	// position divided by the viewport size, or the last such sample while the viewport is
	// empty. Translation is the bound movement axes
	// scaled by move speed and timeDelta.
	//
	// Parameters:
	//   - timeDelta: seconds since the previous snapshot
	//   - viewportW: viewport width in pixels
	//   - viewportH: viewport height in pixels
	//
	// Returns:
	//   - Frame: the camera input for this step
	Snapshot(timeDelta float32, viewportW, viewportH int32) Frame

	// PointerMode returns the pointer mode written into snapshots.
	//
	// Returns:
	//   - camera.PointerMode: the current pointer mode
	PointerMode() camera.PointerMode

	// SetPointerMode changes the pointer mode written into snapshots.
	//
	// Parameters:
	//   - mode: the new pointer mode
	SetPointerMode(mode camera.PointerMode)

	// MoveSpeed returns the translation speed in world units per second.
	//
	// Returns:
	//   - float32: the move speed
	MoveSpeed() float32

	// SetMoveSpeed sets the translation speed in world units per second.
	//
	// Parameters:
	//   - speed: the move speed
	SetMoveSpeed(speed float32)

	// Bindings returns the active key bindings.
	//
	// Returns:
	//   - Bindings: the key bindings
	Bindings() Bindings
}

type trackerImpl struct {
	mu *sync.Mutex

	bindings    Bindings
	moveSpeed   float32
	boostFactor float32
	pointerMode camera.PointerMode

	keys    map[uint32]bool
	tapped  map[uint32]bool
	buttons map[uint32]bool
	cursor  mgl32.Vec2

	// last relative sample taken over a non-empty viewport
	lastRelative mgl32.Vec2
}

var _ Tracker = &trackerImpl{}

// NewTracker creates a Tracker with default bindings, a move speed of 5 units per second
// and pixel pointer mode.
//
// Parameters:
//   - options: functional options to configure the tracker
//
// Returns:
//   - Tracker: the newly created tracker
func NewTracker(options ...TrackerBuilderOption) Tracker {
	t := &trackerImpl{
		mu:          &sync.Mutex{},
		bindings:    DefaultBindings(),
		moveSpeed:   5,
		boostFactor: 4,
		pointerMode: camera.PointerModePixel,
		keys:        make(map[uint32]bool),
		tapped:      make(map[uint32]bool),
		buttons:     make(map[uint32]bool),
	}
	for _, option := range options {
		option(t)
	}
	return t
}

func (t *trackerImpl) KeyDown(keyCode uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.keys[keyCode] {
		t.tapped[keyCode] = true
	}
	t.keys[keyCode] = true
}

func (t *trackerImpl) KeyUp(keyCode uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.keys, keyCode)
}

func (t *trackerImpl) MouseDown(button uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buttons[button] = true
}

func (t *trackerImpl) MouseUp(button uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.buttons, button)
}

func (t *trackerImpl) MouseMove(x, y float32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cursor = mgl32.Vec2{x, y}
}

func (t *trackerImpl) IsKeyDown(keyCode uint32) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.keys[keyCode]
}

func (t *trackerImpl) IsMouseDown(button uint32) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buttons[button]
}

func (t *trackerImpl) Snapshot(timeDelta float32, viewportW, viewportH int32) Frame {
	t.mu.Lock()
	defer t.mu.Unlock()

	pointer := t.cursor
	if t.pointerMode == camera.PointerModeRelative {
		if rel, ok := relativePointer(t.cursor, viewportW, viewportH); ok {
			t.lastRelative = rel
		}
		pointer = t.lastRelative
	}

	speed := t.moveSpeed
	if t.isBound(t.bindings.Boost) {
		speed *= t.boostFactor
	}

	f := Frame{
		FrameInput: camera.FrameInput{
			TimeDelta:      timeDelta,
			Mode:           t.pointerMode,
			Pointer:        pointer,
			ViewportWidth:  viewportW,
			ViewportHeight: viewportH,
			PrimaryDown:    t.buttons[common.MouseButtonLeft],
			SecondaryDown:  t.buttons[common.MouseButtonRight],
			Translation:    t.movement().Mul(speed * timeDelta),
		},
		Reset: t.bindings.Reset != 0 && t.tapped[t.bindings.Reset],
	}

	clear(t.tapped)
	return f
}

func (t *trackerImpl) PointerMode() camera.PointerMode {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pointerMode
}

func (t *trackerImpl) SetPointerMode(mode camera.PointerMode) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pointerMode = mode
}

func (t *trackerImpl) MoveSpeed() float32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.moveSpeed
}

func (t *trackerImpl) SetMoveSpeed(speed float32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.moveSpeed = speed
}

func (t *trackerImpl) Bindings() Bindings {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.bindings
}

// movement returns the unscaled local axis directions of the held movement keys.
// Forward is -Z, matching the camera's back axis convention. Caller must hold the mutex.
func (t *trackerImpl) movement() mgl32.Vec3 {
	var x, y, z float32
	if t.isBound(t.bindings.Forward) {
		z -= 1
	}
	if t.isBound(t.bindings.Backward) {
		z += 1
	}
	if t.isBound(t.bindings.Left) {
		x -= 1
	}
	if t.isBound(t.bindings.Right) {
		x += 1
	}
	if t.isBound(t.bindings.Up) {
		y += 1
	}
	if t.isBound(t.bindings.Down) {
		y -= 1
	}
	return mgl32.Vec3{x, y, z}
}

// isBound reports whether a non-zero binding is held. Caller must hold the mutex.
func (t *trackerImpl) isBound(keyCode uint32) bool {
	return keyCode != 0 && t.keys[keyCode]
}

// relativePointer maps a pixel cursor position into [0,1] viewport coordinates.
// It reports false for a degenerate viewport.
func relativePointer(cursor mgl32.Vec2, viewportW, viewportH int32) (mgl32.Vec2, bool) {
	if viewportW <= 0 || viewportH <= 0 {
		return mgl32.Vec2{}, false
	}
	return mgl32.Vec2{cursor[0] / float32(viewportW), cursor[1] / float32(viewportH)}, true
}
