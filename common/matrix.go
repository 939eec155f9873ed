package common

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrSingularMatrix is returned when a matrix that must be inverted has a zero determinant.
var ErrSingularMatrix = errors.New("matrix is singular")

// Mat3x4 is a row-major 3x4 affine transform.
// Rows 0-2 hold the right, up and back axes in their first three components;
// the fourth component of each row is that row's translation term.
// The implicit fourth row is (0, 0, 0, 1).
type Mat3x4 [3][4]float32

// IdentityMat3x4 returns the identity transform with a zero translation column.
func IdentityMat3x4() Mat3x4 {
	return Mat3x4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
	}
}

// Row returns the first three components of row i as a vector.
func (m *Mat3x4) Row(i int) mgl32.Vec3 {
	return mgl32.Vec3{m[i][0], m[i][1], m[i][2]}
}

// SetRow overwrites the first three components of row i, leaving its translation term intact.
func (m *Mat3x4) SetRow(i int, v mgl32.Vec3) {
	m[i][0], m[i][1], m[i][2] = v[0], v[1], v[2]
}

// Translation returns the translation term of row i.
func (m *Mat3x4) Translation(i int) float32 {
	return m[i][3]
}

// SetTranslation overwrites the translation term of row i.
func (m *Mat3x4) SetTranslation(i int, t float32) {
	m[i][3] = t
}

// Mat4 extends the transform to a 4x4 homogeneous matrix by appending the row (0, 0, 0, 1).
//
// Returns:
//   - mgl32.Mat4: the homogeneous matrix (column-major, as mgl32 stores it)
func (m *Mat3x4) Mat4() mgl32.Mat4 {
	out := mgl32.Ident4()
	for row := 0; row < 3; row++ {
		for col := 0; col < 4; col++ {
			out.Set(row, col, m[row][col])
		}
	}
	return out
}

// ApproxEqual reports whether every element of m is within eps of the matching element of other.
func (m *Mat3x4) ApproxEqual(other Mat3x4, eps float32) bool {
	for row := 0; row < 3; row++ {
		for col := 0; col < 4; col++ {
			if !NearlyEqual(m[row][col], other[row][col], eps) {
				return false
			}
		}
	}
	return true
}

// Mat3x4FromMat4 drops the bottom row of a homogeneous matrix.
//
// Parameters:
//   - m: a 4x4 matrix (column-major)
//
// Returns:
//   - Mat3x4: the upper three rows of m
func Mat3x4FromMat4(m mgl32.Mat4) Mat3x4 {
	var out Mat3x4
	for row := 0; row < 3; row++ {
		for col := 0; col < 4; col++ {
			out[row][col] = m.At(row, col)
		}
	}
	return out
}

// PositionFromView recovers the world-space position encoded by a view transform.
// The view stores -R·p rather than p, so the transform is extended to 4x4, fully
// inverted, and the position is read off the translation column of the inverse.
//
// Parameters:
//   - m: the view transform
//
// Returns:
//   - mgl32.Vec3: the world-space position
//   - error: ErrSingularMatrix if m cannot be inverted
func PositionFromView(m Mat3x4) (mgl32.Vec3, error) {
	h := m.Mat4()
	if h.Det() == 0 {
		return mgl32.Vec3{}, ErrSingularMatrix
	}
	inv := h.Inv()
	return mgl32.Vec3{inv.At(0, 3), inv.At(1, 3), inv.At(2, 3)}, nil
}
