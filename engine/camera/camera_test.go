package camera_test

import (
	"encoding/binary"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-freefly/common"
	"github.com/Carmen-Shannon/oxy-freefly/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
)

func newQuietCamera(options ...camera.CameraBuilderOption) camera.Camera {
	return camera.NewCamera(append([]camera.CameraBuilderOption{camera.WithController(quietController())}, options...)...)
}

func TestNewCameraDefaults(t *testing.T) {
	c := camera.NewCamera()

	if fov := c.Fov(); math.Abs(float64(fov)-math.Pi/4) > tolerance {
		t.Errorf("default fov should be π/4 but is %f", fov)
	}
	if c.Aspect() != 1 || c.Near() != 0.1 || c.Far() != 100 {
		t.Errorf("unexpected default perspective: aspect %f near %f far %f", c.Aspect(), c.Near(), c.Far())
	}
	if c.Controller() == nil {
		t.Fatal("camera should attach a default controller")
	}
	if c.ViewMatrix() != mgl32.Ident4() {
		t.Errorf("default view should be identity but is %v", c.ViewMatrix())
	}
	assertVec(t, "forward", c.Forward(), mgl32.Vec3{0, 0, -1})
}

func TestCameraStepUpdatesMatrices(t *testing.T) {
	ctrl := quietController(camera.WithMouseSensitivity(1))
	c := camera.NewCamera(camera.WithController(ctrl), camera.WithAspect(16.0/9.0))

	err := c.Step(camera.FrameInput{
		TimeDelta:      0.016,
		Mode:           camera.PointerModePixel,
		Pointer:        mgl32.Vec2{400, 0},
		ViewportWidth:  800,
		ViewportHeight: 600,
		PrimaryDown:    true,
		Translation:    mgl32.Vec3{0, 0, -1},
	})
	if err != nil {
		t.Fatal(err)
	}

	// After a quarter yaw the back axis is -X, so moving along -Z goes toward +X.
	assertVec(t, "position", c.Position(), mgl32.Vec3{1, 0, 0})
	assertVec(t, "forward", c.Forward(), mgl32.Vec3{1, 0, 0})

	view := ctrl.ViewMatrix()
	if c.ViewMatrix() != view.Mat4() {
		t.Error("camera view matrix should mirror the controller")
	}

	wantVP := c.ProjectionMatrix().Mul4(c.ViewMatrix())
	if !common.NearlyEqualMat4(c.ViewProjectionMatrix(), wantVP, tolerance) {
		t.Errorf("view-projection should be projection * view")
	}
	if !common.NearlyEqualMat4(c.InverseProjectionMatrix().Mul4(c.ProjectionMatrix()), mgl32.Ident4(), tolerance) {
		t.Error("inverse projection should invert the projection")
	}
}

func TestCameraStepErrorKeepsMatrices(t *testing.T) {
	c := newQuietCamera()
	c.SetPosition(mgl32.Vec3{1, 2, 3})
	before := c.ViewProjectionMatrix()

	err := c.Step(camera.FrameInput{Mode: camera.PointerModePixel, ViewportWidth: 0, ViewportHeight: 600})
	if !errors.Is(err, camera.ErrInvalidViewport) {
		t.Fatalf("expected ErrInvalidViewport, got %v", err)
	}
	if c.ViewProjectionMatrix() != before {
		t.Error("failed step should leave the matrices unchanged")
	}
}

func TestCameraLookAtAndReset(t *testing.T) {
	c := newQuietCamera()
	c.SetPosition(mgl32.Vec3{0, 2, 8})

	if err := c.LookAt(mgl32.Vec3{}); err != nil {
		t.Fatal(err)
	}
	assertVec(t, "forward", c.Forward(), mgl32.Vec3{0, -2, -8}.Normalize())

	// The target sits in the middle of the view.
	clip := c.ViewProjectionMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if math.Abs(float64(clip[0]/clip[3])) > tolerance || math.Abs(float64(clip[1]/clip[3])) > tolerance {
		t.Errorf("look-at target should project to the view center, got %v", clip)
	}

	if err := c.LookAt(mgl32.Vec3{0, 2, 8}); !errors.Is(err, camera.ErrDegenerateLookAt) {
		t.Errorf("expected ErrDegenerateLookAt, got %v", err)
	}

	c.ResetTransforms()
	assertVec(t, "position", c.Position(), mgl32.Vec3{})
	if c.ViewMatrix() != mgl32.Ident4() {
		t.Error("reset should restore the identity view")
	}
}

func TestCameraFrustum(t *testing.T) {
	c := newQuietCamera()
	c.SetPosition(mgl32.Vec3{0, 0, 10})

	f := c.Frustum()
	if !f.ContainsSphere(mgl32.Vec3{}, 1) {
		t.Error("sphere in front of the camera should be visible")
	}
	if f.ContainsSphere(mgl32.Vec3{0, 0, 20}, 1) {
		t.Error("sphere behind the camera should be culled")
	}
	if f.ContainsSphere(mgl32.Vec3{0, 0, -200}, 1) {
		t.Error("sphere past the far plane should be culled")
	}

	c.SetFar(500)
	f = c.Frustum()
	if !f.ContainsSphere(mgl32.Vec3{0, 0, -200}, 1) {
		t.Error("sphere should be visible once the far plane moves out")
	}
}

func TestCameraPerspectiveSetters(t *testing.T) {
	c := newQuietCamera()
	before := c.ProjectionMatrix()

	c.SetFov(1.2)
	c.SetAspect(2)
	c.SetNear(0.5)
	c.SetFar(50)

	if c.Fov() != 1.2 || c.Aspect() != 2 || c.Near() != 0.5 || c.Far() != 50 {
		t.Error("setters should store their values")
	}
	if c.ProjectionMatrix() == before {
		t.Error("projection should be recomputed")
	}
}

func TestCameraSetController(t *testing.T) {
	c := newQuietCamera()
	other := quietController(camera.WithPosition(mgl32.Vec3{5, 0, 0}))

	c.SetController(other)

	if c.Controller() != other {
		t.Error("SetController should attach the new controller")
	}
	assertVec(t, "position", c.Position(), mgl32.Vec3{5, 0, 0})
}

func TestCameraUniform(t *testing.T) {
	c := newQuietCamera()
	c.SetPosition(mgl32.Vec3{1, 2, 3})

	u := c.Uniform()
	if u.Size() != 80 {
		t.Fatalf("uniform should be 80 bytes but is %d", u.Size())
	}

	buf := u.Marshal()
	if len(buf) != 80 {
		t.Fatalf("marshaled uniform should be 80 bytes but is %d", len(buf))
	}

	vp := c.ViewProjectionMatrix()
	for i := 0; i < 16; i++ {
		if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:])); got != vp[i] {
			t.Errorf("view-projection element %d should be %f but is %f", i, vp[i], got)
		}
	}
	for i, want := range []float32{1, 2, 3, 0} {
		if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[64+i*4:])); got != want {
			t.Errorf("position word %d should be %f but is %f", i, want, got)
		}
	}
}

func TestCameraConcurrentAccess(t *testing.T) {
	c := newQuietCamera()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = c.Step(camera.FrameInput{
					Mode:        camera.PointerModeRelative,
					Pointer:     mgl32.Vec2{float32(j) * 0.01, float32(i) * 0.01},
					PrimaryDown: j%2 == 0,
				})
				_ = c.Uniform()
				_ = c.Frustum()
			}
		}(i)
	}
	wg.Wait()

	x, y, z := c.Controller().Basis()
	if math.Abs(float64(x.Dot(y))) > tolerance || math.Abs(float64(y.Dot(z))) > tolerance {
		t.Error("basis should stay orthogonal under concurrent steps")
	}
}
