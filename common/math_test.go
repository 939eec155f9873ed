package common_test

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-freefly/common"
	"github.com/go-gl/mathgl/mgl32"
)

const tolerance = 1e-4

func vecNear(a, b mgl32.Vec3) bool {
	return common.NearlyEqualVec3(a, b, tolerance)
}

func TestRotatePlane(t *testing.T) {
	x := mgl32.Vec3{1, 0, 0}
	z := mgl32.Vec3{0, 0, 1}

	tests := []struct {
		name  string
		angle float32
		wantU mgl32.Vec3
		wantV mgl32.Vec3
	}{
		{name: "zero", angle: 0, wantU: x, wantV: z},
		{name: "quarter turn", angle: math.Pi / 2, wantU: z, wantV: x.Mul(-1)},
		{name: "half turn", angle: math.Pi, wantU: x.Mul(-1), wantV: z.Mul(-1)},
		{name: "negative quarter", angle: -math.Pi / 2, wantU: z.Mul(-1), wantV: x},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, v := common.RotatePlane(x, z, tt.angle)
			if !vecNear(u, tt.wantU) {
				t.Errorf("u should be %v but is %v", tt.wantU, u)
			}
			if !vecNear(v, tt.wantV) {
				t.Errorf("v should be %v but is %v", tt.wantV, v)
			}
		})
	}
}

func TestRotatePlaneKeepsOrthonormality(t *testing.T) {
	u := mgl32.Vec3{0.6, 0.8, 0}
	v := mgl32.Vec3{0, 0, 1}
	for i := 0; i < 1000; i++ {
		u, v = common.RotatePlane(u, v, 0.0137)
	}
	if math.Abs(float64(u.Len()-1)) > tolerance || math.Abs(float64(v.Len()-1)) > tolerance {
		t.Errorf("lengths drifted: |u|=%f |v|=%f", u.Len(), v.Len())
	}
	if d := u.Dot(v); math.Abs(float64(d)) > tolerance {
		t.Errorf("u and v are no longer orthogonal: dot=%f", d)
	}
}

func TestIsFinite(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	if !common.IsFinite(1.5) {
		t.Error("1.5 should be finite")
	}
	if common.IsFinite(nan) || common.IsFinite(inf) || common.IsFinite(-inf) {
		t.Error("NaN and infinities should not be finite")
	}
	if common.IsFiniteVec3(mgl32.Vec3{0, nan, 0}) {
		t.Error("vector with a NaN component should not be finite")
	}
	if !common.IsFiniteVec2(mgl32.Vec2{3, -4}) {
		t.Error("plain vector should be finite")
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	near, far := float32(0.1), float32(100)
	p := common.Perspective(float32(math.Pi/2), 1, near, far)

	depth := func(z float32) float32 {
		clip := p.Mul4x1(mgl32.Vec4{0, 0, z, 1})
		return clip[2] / clip[3]
	}

	if d := depth(-near); math.Abs(float64(d)) > tolerance {
		t.Errorf("near plane should map to depth 0 but maps to %f", d)
	}
	if d := depth(-far); math.Abs(float64(d-1)) > tolerance {
		t.Errorf("far plane should map to depth 1 but maps to %f", d)
	}
}

func TestNearlyEqualIsAbsolute(t *testing.T) {
	x := mgl32.Vec3{1, 0, 0}
	z := mgl32.Vec3{0, 0, 1}
	u, _ := common.RotatePlane(x, z, math.Pi/2)

	// float32 cos(π/2) is about -4.4e-8, not 0.
	if !common.NearlyEqualVec3(u, z, tolerance) {
		t.Errorf("%v should be within %g of %v", u, tolerance, z)
	}
	if !common.NearlyEqual(1e-6, 0, tolerance) {
		t.Error("1e-6 should be near 0")
	}
	if common.NearlyEqual(2e-4, 0, tolerance) {
		t.Error("2e-4 should not be near 0 at 1e-4")
	}
	if !common.NearlyEqualVec2(mgl32.Vec2{0, 5e-5}, mgl32.Vec2{}, tolerance) {
		t.Error("vec2 components within tolerance should compare equal")
	}

	a := mgl32.Ident4()
	b := mgl32.Ident4()
	b[12] = 5e-5
	if !common.NearlyEqualMat4(a, b, tolerance) {
		t.Error("matrices within tolerance should compare equal")
	}
	b[5] = 0.5
	if common.NearlyEqualMat4(a, b, tolerance) {
		t.Error("matrices differing by 0.5 should not compare equal")
	}
}
