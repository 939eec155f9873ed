package input_test

import (
	"math"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-freefly/common"
	"github.com/Carmen-Shannon/oxy-freefly/engine/camera"
	"github.com/Carmen-Shannon/oxy-freefly/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

const tolerance = 1e-5

func TestSnapshotMovement(t *testing.T) {
	tests := []struct {
		name   string
		keys   []uint32
		should mgl32.Vec3
	}{
		{name: "idle", should: mgl32.Vec3{}},
		{name: "forward", keys: []uint32{common.KeyW}, should: mgl32.Vec3{0, 0, -1}},
		{name: "backward", keys: []uint32{common.KeyS}, should: mgl32.Vec3{0, 0, 1}},
		{name: "strafe left", keys: []uint32{common.KeyA}, should: mgl32.Vec3{-1, 0, 0}},
		{name: "strafe right", keys: []uint32{common.KeyD}, should: mgl32.Vec3{1, 0, 0}},
		{name: "up", keys: []uint32{common.KeyE}, should: mgl32.Vec3{0, 1, 0}},
		{name: "down", keys: []uint32{common.KeyQ}, should: mgl32.Vec3{0, -1, 0}},
		{name: "opposites cancel", keys: []uint32{common.KeyW, common.KeyS}, should: mgl32.Vec3{}},
		{name: "diagonal", keys: []uint32{common.KeyW, common.KeyD, common.KeyE}, should: mgl32.Vec3{1, 1, -1}},
		{name: "boost", keys: []uint32{common.KeyW, common.KeyLeftShift}, should: mgl32.Vec3{0, 0, -4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := input.NewTracker(input.WithMoveSpeed(2))
			for _, k := range tt.keys {
				tr.KeyDown(k)
			}

			// speed 2 * dt 0.5 = 1 unit per axis
			f := tr.Snapshot(0.5, 800, 600)
			if !common.NearlyEqualVec3(f.Translation, tt.should, tolerance) {
				t.Errorf("translation should be %v but is %v", tt.should, f.Translation)
			}
		})
	}
}

func TestSnapshotReleasedKeyStops(t *testing.T) {
	tr := input.NewTracker(input.WithMoveSpeed(1))
	tr.KeyDown(common.KeyD)
	tr.KeyUp(common.KeyD)

	if f := tr.Snapshot(1, 800, 600); f.Translation != (mgl32.Vec3{}) {
		t.Errorf("released key should not move, got %v", f.Translation)
	}
	if tr.IsKeyDown(common.KeyD) {
		t.Error("key should be released")
	}
}

func TestSnapshotButtons(t *testing.T) {
	tr := input.NewTracker()

	tr.MouseDown(common.MouseButtonLeft)
	f := tr.Snapshot(0.016, 800, 600)
	if !f.PrimaryDown || f.SecondaryDown {
		t.Errorf("left button should map to primary only, got primary=%v secondary=%v", f.PrimaryDown, f.SecondaryDown)
	}

	tr.MouseDown(common.MouseButtonRight)
	tr.MouseUp(common.MouseButtonLeft)
	f = tr.Snapshot(0.016, 800, 600)
	if f.PrimaryDown || !f.SecondaryDown {
		t.Errorf("right button should map to secondary only, got primary=%v secondary=%v", f.PrimaryDown, f.SecondaryDown)
	}

	tr.MouseDown(common.MouseButtonMiddle)
	if !tr.IsMouseDown(common.MouseButtonMiddle) {
		t.Error("middle button should be tracked")
	}
}

func TestSnapshotPointerModes(t *testing.T) {
	tr := input.NewTracker()
	tr.MouseMove(200, 150)

	f := tr.Snapshot(0.016, 800, 600)
	if f.Mode != camera.PointerModePixel {
		t.Errorf("default mode should be pixel, got %v", f.Mode)
	}
	if f.Pointer != (mgl32.Vec2{200, 150}) {
		t.Errorf("pixel pointer should be the cursor, got %v", f.Pointer)
	}
	if f.ViewportWidth != 800 || f.ViewportHeight != 600 {
		t.Errorf("viewport should pass through, got %dx%d", f.ViewportWidth, f.ViewportHeight)
	}

	tr.SetPointerMode(camera.PointerModeRelative)
	f = tr.Snapshot(0.016, 800, 600)
	if f.Mode != camera.PointerModeRelative {
		t.Errorf("mode should be relative, got %v", f.Mode)
	}
	if !common.NearlyEqualVec2(f.Pointer, mgl32.Vec2{0.25, 0.25}, tolerance) {
		t.Errorf("relative pointer should be normalized, got %v", f.Pointer)
	}

	f = tr.Snapshot(0.016, 0, 0)
	if !common.NearlyEqualVec2(f.Pointer, mgl32.Vec2{0.25, 0.25}, tolerance) {
		t.Errorf("relative pointer with an empty viewport should keep the last sample, got %v", f.Pointer)
	}
}

func TestRelativePointerAcrossEmptyViewport(t *testing.T) {
	tr := input.NewTracker(input.WithPointerMode(camera.PointerModeRelative))
	ctrl := camera.NewFreeFlyController(camera.WithLogger(nil))

	tr.MouseMove(600, 450)
	if err := ctrl.Step(tr.Snapshot(0.016, 800, 600).FrameInput); err != nil {
		t.Fatal(err)
	}

	// Minimize and restore with the button held and the cursor still.
	tr.MouseDown(common.MouseButtonLeft)
	for _, size := range [][2]int32{{0, 0}, {800, 600}} {
		if err := ctrl.Step(tr.Snapshot(0.016, size[0], size[1]).FrameInput); err != nil {
			t.Fatal(err)
		}
	}

	x, y, z := ctrl.Basis()
	for name, pair := range map[string][2]mgl32.Vec3{
		"x": {x, {1, 0, 0}},
		"y": {y, {0, 1, 0}},
		"z": {z, {0, 0, 1}},
	} {
		if !common.NearlyEqualVec3(pair[0], pair[1], tolerance) {
			t.Errorf("basis %s should not rotate without pointer motion, got %v", name, pair[0])
		}
	}
}

func TestSnapshotResetTap(t *testing.T) {
	tr := input.NewTracker()

	tr.KeyDown(common.KeyR)
	if f := tr.Snapshot(0.016, 800, 600); !f.Reset {
		t.Error("first snapshot after pressing R should request a reset")
	}

	// Holding and key repeat do not re-trigger.
	tr.KeyDown(common.KeyR)
	if f := tr.Snapshot(0.016, 800, 600); f.Reset {
		t.Error("held reset key should not request another reset")
	}

	// A full tap between snapshots still counts.
	tr.KeyUp(common.KeyR)
	tr.KeyDown(common.KeyR)
	tr.KeyUp(common.KeyR)
	if f := tr.Snapshot(0.016, 800, 600); !f.Reset {
		t.Error("tap between snapshots should request a reset")
	}
}

func TestCustomBindings(t *testing.T) {
	tr := input.NewTracker(
		input.WithBindings(input.Bindings{Forward: common.KeySpace}),
		input.WithMoveSpeed(1),
	)

	tr.KeyDown(common.KeyW)
	tr.KeyDown(common.KeyR)
	tr.KeyDown(common.KeySpace)
	f := tr.Snapshot(1, 800, 600)

	if f.Translation != (mgl32.Vec3{0, 0, -1}) {
		t.Errorf("only the space binding should move, got %v", f.Translation)
	}
	if f.Reset {
		t.Error("unbound reset should never trigger")
	}
	if tr.Bindings().Forward != common.KeySpace {
		t.Error("custom bindings should be kept")
	}
}

func TestSnapshotDrivesController(t *testing.T) {
	tr := input.NewTracker(input.WithMoveSpeed(1))
	ctrl := camera.NewFreeFlyController(camera.WithLogger(nil), camera.WithMouseSensitivity(1))

	tr.MouseMove(0, 0)
	if err := ctrl.Step(tr.Snapshot(0.016, 800, 600).FrameInput); err != nil {
		t.Fatal(err)
	}

	tr.MouseDown(common.MouseButtonLeft)
	tr.MouseMove(400, 0)
	tr.KeyDown(common.KeyD)
	if err := ctrl.Step(tr.Snapshot(1, 800, 600).FrameInput); err != nil {
		t.Fatal(err)
	}

	// A quarter yaw turns the right axis onto +Z, and D moves along it.
	pos := ctrl.Position()
	if math.Abs(float64(pos[2]-1)) > 1e-4 || math.Abs(float64(pos[0])) > 1e-4 {
		t.Errorf("position should be (0, 0, 1) but is %v", pos)
	}
}

func TestTrackerSettersAndConcurrency(t *testing.T) {
	tr := input.NewTracker(input.WithPointerMode(camera.PointerModeRelative), input.WithBoostFactor(10))
	if tr.PointerMode() != camera.PointerModeRelative {
		t.Error("WithPointerMode should set the mode")
	}
	tr.SetMoveSpeed(3)
	if tr.MoveSpeed() != 3 {
		t.Errorf("move speed should be 3 but is %f", tr.MoveSpeed())
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				tr.KeyDown(common.KeyW)
				tr.MouseMove(float32(i), float32(j))
				tr.KeyUp(common.KeyW)
			}
		}(i)
	}
	for j := 0; j < 200; j++ {
		_ = tr.Snapshot(0.016, 800, 600)
	}
	wg.Wait()
}
