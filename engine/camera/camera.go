package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-freefly/common"
	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	mu *sync.Mutex

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix              mgl32.Mat4
	projectionMatrix        mgl32.Mat4
	viewProjectionMatrix    mgl32.Mat4
	inverseProjectionMatrix mgl32.Mat4
	frustum                 common.Frustum

	controller FreeFlyController
}

// Camera defines the interface for the camera system.
// The camera holds perspective settings and derives view/projection matrices
// from its FreeFlyController. All methods are safe for concurrent use; the camera
// serializes every call that reaches the controller.
type Camera interface {
	// Fov returns the field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// ViewMatrix returns the homogeneous extension of the controller's 3x4 view transform.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix (column-major)
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current projection matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix (column-major)
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns the combined projection * view matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the view-projection matrix (column-major)
	ViewProjectionMatrix() mgl32.Mat4

	// InverseProjectionMatrix returns the inverse of the projection matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the inverse projection matrix (column-major)
	InverseProjectionMatrix() mgl32.Mat4

	// Frustum returns the culling frustum of the current view-projection matrix.
	//
	// Returns:
	//   - common.Frustum: the frustum planes in world space
	Frustum() common.Frustum

	// Position returns the controller's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: the camera position
	Position() mgl32.Vec3

	// Forward returns the direction the camera is looking (the negated back axis).
	//
	// Returns:
	//   - mgl32.Vec3: unit view direction in world space
	Forward() mgl32.Vec3

	// Uniform packs the view-projection matrix and position for GPU upload.
	//
	// Returns:
	//   - GPUCameraUniform: the uniform block
	Uniform() GPUCameraUniform

	// Controller returns the attached controller. Callers mutating it directly must call Update afterwards
	// and must not race with other camera methods.
	//
	// Returns:
	//   - FreeFlyController: the controller
	Controller() FreeFlyController

	// Step advances the controller by one input step and recomputes matrices.
	//
	// Parameters:
	//   - in: the input for this step
	//
	// Returns:
	//   - error: the controller's error; matrices are left as they were on error
	Step(in FrameInput) error

	// ResetTransforms resets the controller to the origin with identity orientation.
	ResetTransforms()

	// SetPosition moves the controller and recomputes matrices.
	//
	// Parameters:
	//   - pos: world-space position
	SetPosition(pos mgl32.Vec3)

	// LookAt turns the controller toward target and recomputes matrices.
	//
	// Parameters:
	//   - target: world-space point to face
	//
	// Returns:
	//   - error: the controller's error
	LookAt(target mgl32.Vec3) error

	// Update recomputes matrices from the controller's current state.
	Update()

	// SetFov sets the field of view in radians and recomputes matrices.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// SetAspect sets the aspect ratio (width / height) and recomputes matrices.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetNear sets the near clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - near: near plane distance
	SetNear(near float32)

	// SetFar sets the far clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - far: far plane distance
	SetFar(far float32)

	// SetController attaches a different controller and recomputes matrices.
	//
	// Parameters:
	//   - ctrl: the controller to attach
	SetController(ctrl FreeFlyController)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with default perspective settings.
// A default FreeFlyController is attached unless WithController supplies one.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:     &sync.Mutex{},
		fov:    45.0 * (math.Pi / 180.0), // radians
		aspect: 1.0,
		near:   0.1,
		far:    100.0,
	}
	for _, option := range options {
		option(c)
	}
	if c.controller == nil {
		c.controller = NewFreeFlyController()
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) InverseProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inverseProjectionMatrix
}

func (c *cameraImpl) Frustum() common.Frustum {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frustum
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller.Position()
}

func (c *cameraImpl) Forward() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _, z := c.controller.Basis()
	return z.Mul(-1)
}

func (c *cameraImpl) Uniform() GPUCameraUniform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return NewGPUCameraUniform(c.viewProjectionMatrix, c.controller.Position())
}

func (c *cameraImpl) Controller() FreeFlyController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) Step(in FrameInput) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.controller.Step(in); err != nil {
		return err
	}
	c.updateMatrices()
	return nil
}

func (c *cameraImpl) ResetTransforms() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller.ResetTransforms()
	c.updateMatrices()
}

func (c *cameraImpl) SetPosition(pos mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller.SetPosition(pos)
	c.updateMatrices()
}

func (c *cameraImpl) LookAt(target mgl32.Vec3) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.controller.LookAt(target); err != nil {
		return err
	}
	c.updateMatrices()
	return nil
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateMatrices()
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateMatrices()
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.updateMatrices()
}

func (c *cameraImpl) SetController(ctrl FreeFlyController) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
	c.updateMatrices()
}

// updateMatrices recalculates the view, projection, view-projection, and inverse projection
// matrices and the frustum. This is a no-op when the controller is nil.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	if c.controller == nil {
		return
	}

	view := c.controller.ViewMatrix()
	c.viewMatrix = view.Mat4()
	c.projectionMatrix = common.Perspective(c.fov, c.aspect, c.near, c.far)
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
	c.inverseProjectionMatrix = c.projectionMatrix.Inv()
	c.frustum = common.ExtractFrustum(c.viewProjectionMatrix)
}
