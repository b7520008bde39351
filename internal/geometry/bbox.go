package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// BoundingBox represents an axis-aligned 3D bounding box
type BoundingBox struct {
	MinX, MinY, MinZ float64
	MaxX, MaxY, MaxZ float64
}

// NewBoundingBox returns the smallest box containing all points
func NewBoundingBox(points ...r3.Vec) (BoundingBox, error) {
	if len(points) == 0 {
		return BoundingBox{}, fmt.Errorf("no points provided")
	}

	first := points[0]
	bbox := BoundingBox{
		MinX: first.X, MinY: first.Y, MinZ: first.Z,
		MaxX: first.X, MaxY: first.Y, MaxZ: first.Z,
	}
	for _, p := range points[1:] {
		bbox = bbox.Include(p)
	}
	return bbox, nil
}

// Width returns the width (X dimension) of the bounding box
func (b BoundingBox) Width() float64 {
	return b.MaxX - b.MinX
}

// Height returns the height (Y dimension) of the bounding box
func (b BoundingBox) Height() float64 {
	return b.MaxY - b.MinY
}

// Depth returns the depth (Z dimension) of the bounding box
func (b BoundingBox) Depth() float64 {
	return b.MaxZ - b.MinZ
}

// MaxExtent returns the largest of width, height and depth
func (b BoundingBox) MaxExtent() float64 {
	return math.Max(b.Width(), math.Max(b.Height(), b.Depth()))
}

// Min returns the minimum corner
func (b BoundingBox) Min() r3.Vec {
	return r3.Vec{X: b.MinX, Y: b.MinY, Z: b.MinZ}
}

// Max returns the maximum corner
func (b BoundingBox) Max() r3.Vec {
	return r3.Vec{X: b.MaxX, Y: b.MaxY, Z: b.MaxZ}
}

// Center returns the center of the box
func (b BoundingBox) Center() r3.Vec {
	return r3.Scale(0.5, r3.Add(b.Min(), b.Max()))
}

// Include returns the box enlarged to contain p
func (b BoundingBox) Include(p r3.Vec) BoundingBox {
	return BoundingBox{
		MinX: math.Min(b.MinX, p.X),
		MinY: math.Min(b.MinY, p.Y),
		MinZ: math.Min(b.MinZ, p.Z),
		MaxX: math.Max(b.MaxX, p.X),
		MaxY: math.Max(b.MaxY, p.Y),
		MaxZ: math.Max(b.MaxZ, p.Z),
	}
}

// Union returns the box enclosing both b and o
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	return BoundingBox{
		MinX: math.Min(b.MinX, o.MinX),
		MinY: math.Min(b.MinY, o.MinY),
		MinZ: math.Min(b.MinZ, o.MinZ),
		MaxX: math.Max(b.MaxX, o.MaxX),
		MaxY: math.Max(b.MaxY, o.MaxY),
		MaxZ: math.Max(b.MaxZ, o.MaxZ),
	}
}

// Contains reports whether p lies inside the box, bounds included
func (b BoundingBox) Contains(p r3.Vec) bool {
	return b.MinX <= p.X && p.X <= b.MaxX &&
		b.MinY <= p.Y && p.Y <= b.MaxY &&
		b.MinZ <= p.Z && p.Z <= b.MaxZ
}

// Overlaps reports whether the two boxes share at least one point.
// Touching faces count as overlapping.
func (b BoundingBox) Overlaps(o BoundingBox) bool {
	return b.MinX <= o.MaxX && o.MinX <= b.MaxX &&
		b.MinY <= o.MaxY && o.MinY <= b.MaxY &&
		b.MinZ <= o.MaxZ && o.MinZ <= b.MaxZ
}

// Vertices returns the 8 corners of the box
func (b BoundingBox) Vertices() []r3.Vec {
	return []r3.Vec{
		{X: b.MinX, Y: b.MinY, Z: b.MinZ},
		{X: b.MinX, Y: b.MinY, Z: b.MaxZ},
		{X: b.MinX, Y: b.MaxY, Z: b.MinZ},
		{X: b.MinX, Y: b.MaxY, Z: b.MaxZ},
		{X: b.MaxX, Y: b.MinY, Z: b.MinZ},
		{X: b.MaxX, Y: b.MinY, Z: b.MaxZ},
		{X: b.MaxX, Y: b.MaxY, Z: b.MinZ},
		{X: b.MaxX, Y: b.MaxY, Z: b.MaxZ},
	}
}

// String formats the box as "[min] - [max]"
func (b BoundingBox) String() string {
	return fmt.Sprintf("[%.4f %.4f %.4f] - [%.4f %.4f %.4f]",
		b.MinX, b.MinY, b.MinZ, b.MaxX, b.MaxY, b.MaxZ)
}
