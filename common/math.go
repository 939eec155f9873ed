package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// RotatePlane rotates the pair (u, v) within the plane they span by angle radians.
// Both vectors are treated as the two components of a 2D rotation:
//
//	u' = u·cos(angle) + v·sin(angle)
//	v' = -u·sin(angle) + v·cos(angle)
//
// When u and v are orthonormal the results stay orthonormal and span the same plane.
//
// Parameters:
//   - u: first vector of the pair
//   - v: second vector of the pair
//   - angle: rotation angle in radians
//
// Returns:
//   - mgl32.Vec3: the rotated u
//   - mgl32.Vec3: the rotated v
func RotatePlane(u, v mgl32.Vec3, angle float32) (mgl32.Vec3, mgl32.Vec3) {
	c := math32.Cos(angle)
	s := math32.Sin(angle)
	return u.Mul(c).Add(v.Mul(s)), u.Mul(-s).Add(v.Mul(c))
}

// IsFinite reports whether f is neither NaN nor an infinity.
func IsFinite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

// IsFiniteVec3 reports whether every component of v is finite.
func IsFiniteVec3(v mgl32.Vec3) bool {
	return IsFinite(v[0]) && IsFinite(v[1]) && IsFinite(v[2])
}

// IsFiniteVec2 reports whether every component of v is finite.
func IsFiniteVec2(v mgl32.Vec2) bool {
	return IsFinite(v[0]) && IsFinite(v[1])
}

// NearlyEqual reports whether a and b differ by at most eps.
// The comparison is absolute, so it stays meaningful when either value is zero.
func NearlyEqual(a, b, eps float32) bool {
	return math32.Abs(a-b) <= eps
}

// NearlyEqualVec2 applies NearlyEqual to every component.
func NearlyEqualVec2(a, b mgl32.Vec2, eps float32) bool {
	return NearlyEqual(a[0], b[0], eps) && NearlyEqual(a[1], b[1], eps)
}

// NearlyEqualVec3 applies NearlyEqual to every component.
func NearlyEqualVec3(a, b mgl32.Vec3, eps float32) bool {
	return NearlyEqual(a[0], b[0], eps) && NearlyEqual(a[1], b[1], eps) && NearlyEqual(a[2], b[2], eps)
}

// NearlyEqualMat4 applies NearlyEqual to every element.
func NearlyEqualMat4(a, b mgl32.Mat4, eps float32) bool {
	for i := range a {
		if !NearlyEqual(a[i], b[i], eps) {
			return false
		}
	}
	return true
}

// Perspective creates a perspective projection matrix.
// Uses the WebGPU clip-space depth range [0, 1] and a right-handed view space looking down -Z.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the projection matrix (column-major)
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1.0 / math32.Tan(fovY/2.0)

	var out mgl32.Mat4
	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	return out
}
