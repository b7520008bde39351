package geometry

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Matrix33 is a 3x3 matrix in row-major element naming (M12 is row 1, column 2)
type Matrix33 struct {
	M11, M12, M13 float64
	M21, M22, M23 float64
	M31, M32, M33 float64
}

// Identity33 is the identity matrix
var Identity33 = Matrix33{M11: 1, M22: 1, M33: 1}

// MatrixFromColumns builds a matrix whose columns are u, v and w
func MatrixFromColumns(u, v, w r3.Vec) Matrix33 {
	return Matrix33{
		M11: u.X, M12: v.X, M13: w.X,
		M21: u.Y, M22: v.Y, M23: w.Y,
		M31: u.Z, M32: v.Z, M33: w.Z,
	}
}

// Apply returns m·v
func (m Matrix33) Apply(v r3.Vec) r3.Vec {
	return r3.Vec{
		X: m.M11*v.X + m.M12*v.Y + m.M13*v.Z,
		Y: m.M21*v.X + m.M22*v.Y + m.M23*v.Z,
		Z: m.M31*v.X + m.M32*v.Y + m.M33*v.Z,
	}
}

// Transpose returns the transposed matrix. For an orthonormal basis matrix
// this is its inverse.
func (m Matrix33) Transpose() Matrix33 {
	return Matrix33{
		M11: m.M11, M12: m.M21, M13: m.M31,
		M21: m.M12, M22: m.M22, M23: m.M32,
		M31: m.M13, M32: m.M23, M33: m.M33,
	}
}

// Frame is an orthonormal frame: an origin and three unit basis vectors
type Frame struct {
	Origin  r3.Vec
	U, V, W r3.Vec
}

// FrameFromPointAndVector builds a right-handed frame at origin whose first
// basis vector is the direction of vector. The second basis vector is the
// deterministic unit normal of the first, so equal inputs always produce
// equal frames. A zero vector yields the world frame translated to origin.
func FrameFromPointAndVector(origin, vector r3.Vec) Frame {
	u, ok := Normalize(vector)
	if !ok {
		return Frame{Origin: origin, U: XAxis, V: YAxis, W: ZAxis}
	}
	v := DeterministicUnitNormal(u)
	return Frame{Origin: origin, U: u, V: v, W: r3.Cross(u, v)}
}

// TransferMatrix returns the matrix whose columns are the frame basis
// vectors expressed in world coordinates.
func (f Frame) TransferMatrix() Matrix33 {
	return MatrixFromColumns(f.U, f.V, f.W)
}

// ToWorld maps local frame coordinates to world coordinates
func (f Frame) ToWorld(local r3.Vec) r3.Vec {
	return r3.Add(f.Origin, f.TransferMatrix().Apply(local))
}

// ToLocal maps world coordinates to local frame coordinates
func (f Frame) ToLocal(world r3.Vec) r3.Vec {
	return f.TransferMatrix().Transpose().Apply(r3.Sub(world, f.Origin))
}

// FormatTransform renders a matrix and translation as a 12 value transform string.
// The format is: m11 m12 m13 m21 m22 m23 m31 m32 m33 tx ty tz
func FormatTransform(m Matrix33, t r3.Vec) string {
	// Use %.8f for precision to avoid rounding errors
	return fmt.Sprintf("%.8f %.8f %.8f %.8f %.8f %.8f %.8f %.8f %.8f %.6f %.6f %.6f",
		m.M11, m.M12, m.M13,
		m.M21, m.M22, m.M23,
		m.M31, m.M32, m.M33,
		t.X, t.Y, t.Z)
}

// String formats the frame with FormatTransform
func (f Frame) String() string {
	return FormatTransform(f.TransferMatrix(), f.Origin)
}
