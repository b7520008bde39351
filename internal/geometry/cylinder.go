package geometry

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrInvalidGeometry is returned when a shape is constructed with
// non-positive dimensions or a degenerate axis.
var ErrInvalidGeometry = errors.New("invalid geometry")

// Cylinder is a finite right circular cylinder.
//
// The solid spans [0, Length] along Axis from Position, so Position is the
// center of the base end face. Values are immutable: Translation and Rotation
// return new cylinders.
type Cylinder struct {
	position r3.Vec
	axis     r3.Vec
	radius   float64
	length   float64
}

// NewCylinder creates a cylinder. The axis is normalized.
func NewCylinder(position, axis r3.Vec, radius, length float64) (Cylinder, error) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return Cylinder{}, fmt.Errorf("%w: radius must be positive, got %g", ErrInvalidGeometry, radius)
	}
	if !(length > 0) || math.IsInf(length, 0) {
		return Cylinder{}, fmt.Errorf("%w: length must be positive, got %g", ErrInvalidGeometry, length)
	}
	u, ok := Normalize(axis)
	if !ok {
		return Cylinder{}, fmt.Errorf("%w: axis has no direction", ErrInvalidGeometry)
	}
	return Cylinder{position: position, axis: u, radius: radius, length: length}, nil
}

// Position returns the center of the base end face
func (c Cylinder) Position() r3.Vec { return c.position }

// Axis returns the unit centerline direction
func (c Cylinder) Axis() r3.Vec { return c.axis }

// Radius returns the radius
func (c Cylinder) Radius() float64 { return c.radius }

// Length returns the length along the axis
func (c Cylinder) Length() float64 { return c.length }

// End returns the center of the top end face
func (c Cylinder) End() r3.Vec {
	return r3.Add(c.position, r3.Scale(c.length, c.axis))
}

// Volume returns π r² l
func (c Cylinder) Volume() float64 {
	return math.Pi * c.radius * c.radius * c.length
}

// Frame returns the local frame of the cylinder: origin at Position, first
// basis vector along Axis.
func (c Cylinder) Frame() Frame {
	return FrameFromPointAndVector(c.position, c.axis)
}

// BoundingBox returns the tight axis-aligned box of the cylinder for any axis
// orientation. Each end disc extends r·sqrt(1-a_i²) along world axis i.
func (c Cylinder) BoundingBox() BoundingBox {
	ext := r3.Vec{
		X: c.radius * math.Sqrt(math.Max(0, 1-c.axis.X*c.axis.X)),
		Y: c.radius * math.Sqrt(math.Max(0, 1-c.axis.Y*c.axis.Y)),
		Z: c.radius * math.Sqrt(math.Max(0, 1-c.axis.Z*c.axis.Z)),
	}
	bbox, _ := NewBoundingBox(
		r3.Sub(c.position, ext), r3.Add(c.position, ext),
		r3.Sub(c.End(), ext), r3.Add(c.End(), ext),
	)
	return bbox
}

// PointBelongs reports whether p lies in the solid cylinder, surface included.
// The point is projected on the axis, the projection must fall within
// [0, Length] and the distance to the axis must not exceed Radius.
func (c Cylinder) PointBelongs(p r3.Vec) bool {
	tol := epsilon * (1 + r3.Norm(p))
	d := r3.Sub(p, c.position)
	t := r3.Dot(d, c.axis)
	if t < -tol || t > c.length+tol {
		return false
	}
	radial := r3.Sub(d, r3.Scale(t, c.axis))
	limit := c.radius + tol
	return r3.Norm2(radial) <= limit*limit
}

// SamplePoint returns one point drawn uniformly by volume inside the cylinder
func (c Cylinder) SamplePoint(rng *rand.Rand) r3.Vec {
	return c.sample(c.Frame(), rng)
}

// PointsInside returns n points distributed uniformly by volume inside the
// cylinder. Every point is generated inside, there is no rejection step.
func (c Cylinder) PointsInside(n int, rng *rand.Rand) []r3.Vec {
	if n <= 0 {
		return []r3.Vec{}
	}
	frame := c.Frame()
	points := make([]r3.Vec, n)
	for i := range points {
		points[i] = c.sample(frame, rng)
	}
	return points
}

// sample draws the angle uniformly, the radial coordinate with density
// proportional to r and the axial coordinate uniformly, then maps the local
// point through frame.
func (c Cylinder) sample(frame Frame, rng *rand.Rand) r3.Vec {
	theta := 2 * math.Pi * rng.Float64()
	r := c.radius * math.Sqrt(rng.Float64())
	h := c.length * rng.Float64()
	sin, cos := math.Sincos(theta)
	return frame.ToWorld(r3.Vec{X: h, Y: r * cos, Z: r * sin})
}

// Translation returns a copy of the cylinder moved by v
func (c Cylinder) Translation(v r3.Vec) Cylinder {
	c.position = r3.Add(c.position, v)
	return c
}

// Rotation returns a copy of the cylinder rotated by angle radians around the
// line through center with direction axis. A zero axis returns the cylinder
// unchanged.
func (c Cylinder) Rotation(center, axis r3.Vec, angle float64) Cylinder {
	c.position = RotateAbout(c.position, center, axis, angle)
	if u, ok := Normalize(RotateAbout(c.axis, Origin, axis, angle)); ok {
		c.axis = u
	}
	return c
}

// String returns a short human readable description
func (c Cylinder) String() string {
	return fmt.Sprintf("cylinder(pos=[%.4f %.4f %.4f] axis=[%.4f %.4f %.4f] r=%g l=%g)",
		c.position.X, c.position.Y, c.position.Z,
		c.axis.X, c.axis.Y, c.axis.Z,
		c.radius, c.length)
}
