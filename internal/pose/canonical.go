// Package pose turns an ordered pair of cylinders into a fixed size feature
// vector that describes the second cylinder relative to the first.
//
// The first cylinder (A) is moved to the canonical pose, base center at the
// origin with its axis along +X. The same rigid motion is applied to the
// second cylinder (B), which is then turned about X so that its position lies
// in the half plane {y >= 0, z = 0}. The frame of the moved B is encoded as
// six transfer matrix entries plus its origin. The encoding is asymmetric: A
// defines the frame and B is described within it.
package pose

import (
	"fmt"
	"math"

	"github.com/philipparndt/cylinter/internal/geometry"
	"gonum.org/v1/gonum/spatial/r3"
)

// Canonical placement of the reference cylinder
var (
	CanonicalOrigin = geometry.Origin
	ReferenceAxis   = geometry.XAxis
)

const (
	// parallelTolerance bounds |a - x| and |a × x| when deciding that two
	// unit axes are equal or opposite.
	parallelTolerance = 1e-12

	// twistTolerance is the perpendicular offset below which a vector is
	// considered to lie on the reference axis.
	twistTolerance = 1e-9
)

// Size is the number of features in a RelativePose
const Size = 9

// Feature indices of a RelativePose
const (
	M11 = iota
	M12
	M13
	M22
	M23
	M33
	OriginX
	OriginY
	OriginZ
)

// FeatureNames are the column names of a RelativePose in order
var FeatureNames = [Size]string{"M11", "M12", "M13", "M22", "M23", "M33", "X", "Y", "Z"}

// RelativePose describes cylinder B in the canonical frame of cylinder A
type RelativePose [Size]float64

// Slice returns a copy of the features as a slice
func (p RelativePose) Slice() []float64 {
	s := make([]float64, Size)
	copy(s, p[:])
	return s
}

// Origin returns B's position in the canonical frame
func (p RelativePose) Origin() r3.Vec {
	return r3.Vec{X: p[OriginX], Y: p[OriginY], Z: p[OriginZ]}
}

// FromSlice builds a RelativePose from exactly Size values
func FromSlice(values []float64) (RelativePose, error) {
	var p RelativePose
	if len(values) != Size {
		return p, fmt.Errorf("relative pose needs %d values, got %d", Size, len(values))
	}
	copy(p[:], values)
	return p, nil
}

// Movement is the rigid motion that brings a cylinder onto a target pose:
// a translation followed, when Rotate is set, by a rotation of Angle around
// the line through Center with direction Axis.
type Movement struct {
	Translation r3.Vec
	Center      r3.Vec
	Axis        r3.Vec
	Angle       float64
	Rotate      bool
}

// MovementToAxis computes the motion that brings c's position to point and
// c's axis onto axis. axis must be a unit vector.
//
// When the axes already agree no rotation is performed. When they are
// opposite the cross product carries no direction, so the rotation is a half
// turn around the deterministic unit normal of axis.
func MovementToAxis(c geometry.Cylinder, point, axis r3.Vec) Movement {
	m := Movement{
		Translation: r3.Sub(point, c.Position()),
		Center:      point,
	}

	a := c.Axis()
	if geometry.EqualWithin(a, axis, parallelTolerance) {
		return m
	}

	dot := r3.Dot(a, axis) / (r3.Norm(a) * r3.Norm(axis))
	k, ok := geometry.Normalize(r3.Cross(a, r3.Sub(axis, a)))
	if !ok {
		if dot > 0 {
			return m
		}
		m.Rotate = true
		m.Axis = geometry.DeterministicUnitNormal(axis)
		m.Angle = math.Pi
		return m
	}

	m.Rotate = true
	m.Axis = k
	m.Angle = math.Acos(clamp(dot, -1, 1))
	return m
}

// Apply moves c by m
func (m Movement) Apply(c geometry.Cylinder) geometry.Cylinder {
	c = c.Translation(m.Translation)
	if m.Rotate {
		c = c.Rotation(m.Center, m.Axis, m.Angle)
	}
	return c
}

// Place returns A moved to the canonical pose and B moved by the same rigid
// motion, followed by the twist around the reference axis that fixes B's
// remaining rotational freedom.
func Place(a, b geometry.Cylinder) (geometry.Cylinder, geometry.Cylinder) {
	m := MovementToAxis(a, CanonicalOrigin, ReferenceAxis)
	a = m.Apply(a)
	b = m.Apply(b)

	if angle, ok := twist(b); ok {
		a = a.Rotation(CanonicalOrigin, ReferenceAxis, angle)
		b = b.Rotation(CanonicalOrigin, ReferenceAxis, angle)
	}
	return a, b
}

// twist returns the rotation around the reference axis that puts the
// perpendicular part of b's position on +Y. When b's position lies on the
// axis its axis direction is used instead. A cylinder coaxial with the
// reference needs no twist.
func twist(b geometry.Cylinder) (float64, bool) {
	for _, v := range []r3.Vec{b.Position(), b.Axis()} {
		if math.Hypot(v.Y, v.Z) > twistTolerance {
			return -math.Atan2(v.Z, v.Y), true
		}
	}
	return 0, false
}

// Canonicalize computes the relative pose of b with respect to a
func Canonicalize(a, b geometry.Cylinder) RelativePose {
	_, placed := Place(a, b)
	frame := placed.Frame()
	m := frame.TransferMatrix()

	return RelativePose{
		m.M11, m.M12, m.M13,
		m.M22, m.M23,
		m.M33,
		frame.Origin.X, frame.Origin.Y, frame.Origin.Z,
	}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
