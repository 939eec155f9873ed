package camera

import (
	"fmt"
	"log"

	"github.com/Carmen-Shannon/oxy-freefly/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	defaultMouseSensitivity = 0.23
	logTag                  = "[FreeFlyCam]"
)

// rotationBranch names which rotation a step applies.
type rotationBranch int

const (
	branchNone rotationBranch = iota
	// branchYawPitch rotates (X,Z) by the horizontal delta, then (Y,Z) by the vertical delta.
	branchYawPitch
	// branchRoll rotates (X,Y) by the negated horizontal delta.
	branchRoll
)

// freeFlyControllerImpl is the single implementation of FreeFlyController.
type freeFlyControllerImpl struct {
	view       common.Mat3x4
	positionWS mgl32.Vec3

	controlConfig ControlConfig

	currPointer      mgl32.Vec2
	prevPointer      mgl32.Vec2
	mouseSensitivity float32

	primaryDown   bool
	secondaryDown bool

	active bool

	logger   *log.Logger
	onButton func(ButtonEvent)

	// set by WithLookAt, consumed by NewFreeFlyController
	initialTarget *mgl32.Vec3
}

// Compile-time interface compliance check
var _ FreeFlyController = &freeFlyControllerImpl{}

// NewFreeFlyController creates a controller at the origin with identity orientation.
// Defaults: sensitivity 0.23, InvertY set, active, logging to log.Default().
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - FreeFlyController: the newly created controller
func NewFreeFlyController(options ...FreeFlyControllerOption) FreeFlyController {
	c := &freeFlyControllerImpl{
		controlConfig:    ControlConfig{InvertY: true},
		mouseSensitivity: defaultMouseSensitivity,
		active:           true,
		logger:           log.Default(),
	}
	c.ResetTransforms()

	for _, option := range options {
		option(c)
	}
	if c.initialTarget != nil {
		if err := c.LookAt(*c.initialTarget); err != nil && c.logger != nil {
			c.logger.Printf("%s initial look-at ignored: %v", logTag, err)
		}
		c.initialTarget = nil
	}
	return c
}

func (c *freeFlyControllerImpl) Update(timeDelta float32, pointer mgl32.Vec2, viewportW, viewportH int32, primaryDown, secondaryDown bool, translation mgl32.Vec3) error {
	if !c.active {
		return nil
	}
	if err := validateStep(timeDelta, pointer, translation); err != nil {
		return err
	}
	if viewportW <= 0 || viewportH <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidViewport, viewportW, viewportH)
	}
	extent := mgl32.Vec2{float32(viewportW), float32(viewportH)}
	c.step(pointer, extent, primaryDown, secondaryDown, translation)
	return nil
}

func (c *freeFlyControllerImpl) UpdateRelative(timeDelta float32, pointer mgl32.Vec2, primaryDown, secondaryDown bool, translation mgl32.Vec3) error {
	if !c.active {
		return nil
	}
	if err := validateStep(timeDelta, pointer, translation); err != nil {
		return err
	}
	c.step(pointer, mgl32.Vec2{1, 1}, primaryDown, secondaryDown, translation)
	return nil
}

func (c *freeFlyControllerImpl) Step(in FrameInput) error {
	switch in.Mode {
	case PointerModePixel:
		return c.Update(in.TimeDelta, in.Pointer, in.ViewportWidth, in.ViewportHeight, in.PrimaryDown, in.SecondaryDown, in.Translation)
	case PointerModeRelative:
		return c.UpdateRelative(in.TimeDelta, in.Pointer, in.PrimaryDown, in.SecondaryDown, in.Translation)
	default:
		return fmt.Errorf("unknown pointer mode %d", in.Mode)
	}
}

func (c *freeFlyControllerImpl) ViewMatrix() common.Mat3x4 {
	return c.view
}

func (c *freeFlyControllerImpl) SetViewMatrix(m common.Mat3x4) error {
	pos, err := common.PositionFromView(m)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSingularViewMatrix, err)
	}

	c.ResetTransforms()
	c.view = m
	c.positionWS = pos
	c.updateTranslationColumn()
	return nil
}

func (c *freeFlyControllerImpl) Position() mgl32.Vec3 {
	return c.positionWS
}

func (c *freeFlyControllerImpl) SetPosition(pos mgl32.Vec3) {
	c.positionWS = pos
	c.updateTranslationColumn()
}

func (c *freeFlyControllerImpl) Basis() (x, y, z mgl32.Vec3) {
	return c.view.Row(0), c.view.Row(1), c.view.Row(2)
}

func (c *freeFlyControllerImpl) LookAt(target mgl32.Vec3) error {
	toTarget := target.Sub(c.positionWS)
	length := toTarget.Len()
	if length == 0 || !common.IsFinite(length) {
		return ErrDegenerateLookAt
	}

	xOld, yOld, _ := c.Basis()
	z := toTarget.Mul(-1 / length)

	// The old axis least aligned with the new back axis gives the better-conditioned cross product.
	var x, y mgl32.Vec3
	if math32.Abs(z.Dot(xOld)) <= math32.Abs(z.Dot(yOld)) {
		y = z.Cross(xOld).Normalize()
		x = y.Cross(z).Normalize()
	} else {
		x = yOld.Cross(z).Normalize()
		y = z.Cross(x).Normalize()
	}
	if !common.IsFiniteVec3(x) || !common.IsFiniteVec3(y) {
		return ErrDegenerateLookAt
	}

	c.view.SetRow(0, x)
	c.view.SetRow(1, y)
	c.view.SetRow(2, z)
	c.updateTranslationColumn()
	return nil
}

func (c *freeFlyControllerImpl) ResetTransforms() {
	c.view = common.IdentityMat3x4()
	c.positionWS = mgl32.Vec3{}
	c.currPointer = mgl32.Vec2{}
	c.prevPointer = mgl32.Vec2{}
}

func (c *freeFlyControllerImpl) ControlConfig() ControlConfig {
	return c.controlConfig
}

func (c *freeFlyControllerImpl) SetControlConfig(cfg ControlConfig) {
	c.controlConfig = cfg
}

func (c *freeFlyControllerImpl) MouseSensitivity() float32 {
	return c.mouseSensitivity
}

func (c *freeFlyControllerImpl) SetMouseSensitivity(sensitivity float32) {
	c.mouseSensitivity = sensitivity
}

func (c *freeFlyControllerImpl) Active() bool {
	return c.active
}

func (c *freeFlyControllerImpl) SetActive(active bool) {
	c.active = active
}

func (c *freeFlyControllerImpl) PrimaryDown() bool {
	return c.primaryDown
}

func (c *freeFlyControllerImpl) SecondaryDown() bool {
	return c.secondaryDown
}

// --- internal helpers ---

// validateStep rejects input that would poison the frame with NaN or infinities.
func validateStep(timeDelta float32, pointer mgl32.Vec2, translation mgl32.Vec3) error {
	switch {
	case !common.IsFinite(timeDelta):
		return fmt.Errorf("%w: time delta %v", ErrNonFiniteInput, timeDelta)
	case !common.IsFiniteVec2(pointer):
		return fmt.Errorf("%w: pointer %v", ErrNonFiniteInput, pointer)
	case !common.IsFiniteVec3(translation):
		return fmt.Errorf("%w: translation %v", ErrNonFiniteInput, translation)
	}
	return nil
}

// step applies one validated update. extent divides pointer deltas before they become
// angles: the viewport size in pixel mode, (1, 1) in relative mode.
func (c *freeFlyControllerImpl) step(pointer, extent mgl32.Vec2, primaryDown, secondaryDown bool, translation mgl32.Vec3) {
	c.currPointer = pointer
	dx := (c.currPointer[0] - c.prevPointer[0]) * c.mouseSensitivity
	dy := (c.currPointer[1] - c.prevPointer[1]) * c.mouseSensitivity

	c.latchButtons(primaryDown, secondaryDown)

	x, y, z := c.Basis()
	switch c.rotationBranch() {
	case branchYawPitch:
		x, z = common.RotatePlane(x, z, math32.Pi*dx/extent[0])
		y, z = common.RotatePlane(y, z, math32.Pi*dy/extent[1])
	case branchRoll:
		x, y = common.RotatePlane(x, y, math32.Pi*-dx/extent[0])
	}
	c.view.SetRow(0, x)
	c.view.SetRow(1, y)
	c.view.SetRow(2, z)

	c.positionWS = c.positionWS.
		Add(x.Mul(translation[0])).
		Add(y.Mul(translation[1])).
		Add(z.Mul(translation[2]))
	c.updateTranslationColumn()

	c.prevPointer = c.currPointer
}

// rotationBranch picks the rotation for the latched buttons.
// The primary button has priority: while it is held the secondary button is ignored.
func (c *freeFlyControllerImpl) rotationBranch() rotationBranch {
	switch {
	case c.primaryDown:
		return branchYawPitch
	case c.secondaryDown:
		return branchRoll
	default:
		return branchNone
	}
}

// latchButtons updates the button latches and reports every press/release edge.
func (c *freeFlyControllerImpl) latchButtons(primaryDown, secondaryDown bool) {
	if primaryDown != c.primaryDown {
		c.primaryDown = primaryDown
		c.notify(ButtonEvent{Button: ButtonPrimary, Pressed: primaryDown})
	}
	if secondaryDown != c.secondaryDown {
		c.secondaryDown = secondaryDown
		c.notify(ButtonEvent{Button: ButtonSecondary, Pressed: secondaryDown})
	}
}

func (c *freeFlyControllerImpl) notify(ev ButtonEvent) {
	if c.logger != nil {
		state := "released"
		if ev.Pressed {
			state = "pressed"
		}
		c.logger.Printf("%s %s button %s", logTag, ev.Button, state)
	}
	if c.onButton != nil {
		c.onButton(ev)
	}
}

// updateTranslationColumn rewrites the fourth column as -dot(axis, position) for each row.
func (c *freeFlyControllerImpl) updateTranslationColumn() {
	for i := 0; i < 3; i++ {
		c.view.SetTranslation(i, -c.view.Row(i).Dot(c.positionWS))
	}
}
