package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// World frame origin and unit directions
var (
	Origin = r3.Vec{}
	XAxis  = r3.Vec{X: 1}
	YAxis  = r3.Vec{Y: 1}
	ZAxis  = r3.Vec{Z: 1}
)

// epsilon is the length below which a vector is treated as having no direction
const epsilon = 1e-12

// Normalize returns the unit vector of v. The second result is false when v
// is too short to carry a direction.
func Normalize(v r3.Vec) (r3.Vec, bool) {
	n := r3.Norm(v)
	if n <= epsilon || math.IsNaN(n) || math.IsInf(n, 0) {
		return r3.Vec{}, false
	}
	return r3.Scale(1/n, v), true
}

// EqualWithin reports whether a and b differ by at most tol on every component
func EqualWithin(a, b r3.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol &&
		math.Abs(a.Y-b.Y) <= tol &&
		math.Abs(a.Z-b.Z) <= tol
}

// DeterministicUnitNormal returns a unit vector orthogonal to v that depends
// on v alone. v must be a unit vector.
func DeterministicUnitNormal(v r3.Vec) r3.Vec {
	ref := XAxis
	if math.Abs(v.Y) <= 1e-7 && math.Abs(v.Z) <= 1e-7 {
		ref = YAxis
	}
	n, _ := Normalize(r3.Cross(v, ref))
	return n
}

// RotateAbout rotates p by angle radians around the line through center
// with direction axis. A zero axis leaves p unchanged.
func RotateAbout(p, center, axis r3.Vec, angle float64) r3.Vec {
	u, ok := Normalize(axis)
	if !ok || angle == 0 {
		return p
	}
	rot := r3.NewRotation(angle, u)
	return r3.Add(center, rot.Rotate(r3.Sub(p, center)))
}
