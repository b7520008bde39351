package geometry

import (
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestFormatTransform_Identity(t *testing.T) {
	result := FormatTransform(Identity33, r3.Vec{X: 10, Y: 20.5, Z: -3})
	expected := "1.00000000 0.00000000 0.00000000 0.00000000 1.00000000 0.00000000 0.00000000 0.00000000 1.00000000 10.000000 20.500000 -3.000000"

	if result != expected {
		t.Errorf("FormatTransform() = %v, want %v", result, expected)
	}
}

func TestFormatTransform_Fields(t *testing.T) {
	frame := FrameFromPointAndVector(r3.Vec{X: 1, Y: 2, Z: 3}, r3.Vec{X: 1, Y: 1, Z: 1})
	parts := strings.Fields(frame.String())

	if len(parts) != 12 {
		t.Fatalf("Expected 12 values, got %d", len(parts))
	}
	if parts[9] != "1.000000" || parts[10] != "2.000000" || parts[11] != "3.000000" {
		t.Errorf("Translation part is incorrect: %v", parts[9:])
	}
}

func TestFrameFromPointAndVector_Orthonormal(t *testing.T) {
	vectors := []r3.Vec{
		XAxis,
		{X: -1},
		YAxis,
		ZAxis,
		{X: 1, Y: 1, Z: 1},
		{X: 0.3, Y: -2, Z: 0.01},
		{X: 1, Y: 1e-9},
	}

	for _, v := range vectors {
		f := FrameFromPointAndVector(Origin, v)
		for name, b := range map[string]r3.Vec{"U": f.U, "V": f.V, "W": f.W} {
			if math.Abs(r3.Norm(b)-1) > 1e-12 {
				t.Errorf("frame of %v: |%s| = %v, want 1", v, name, r3.Norm(b))
			}
		}
		if d := r3.Dot(f.U, f.V); math.Abs(d) > 1e-12 {
			t.Errorf("frame of %v: U·V = %v", v, d)
		}
		if d := r3.Dot(f.U, f.W); math.Abs(d) > 1e-12 {
			t.Errorf("frame of %v: U·W = %v", v, d)
		}
		if !EqualWithin(r3.Cross(f.U, f.V), f.W, 1e-12) {
			t.Errorf("frame of %v is not right-handed", v)
		}
		u, _ := Normalize(v)
		if !EqualWithin(f.U, u, 1e-12) {
			t.Errorf("frame of %v: U = %v", v, f.U)
		}
	}
}

func TestFrame_LocalWorldRoundTrip(t *testing.T) {
	f := FrameFromPointAndVector(r3.Vec{X: 1, Y: -2, Z: 0.5}, r3.Vec{X: 0.2, Y: 0.4, Z: -1})
	p := r3.Vec{X: 3, Y: 0.25, Z: -7}

	if got := f.ToWorld(f.ToLocal(p)); !EqualWithin(got, p, 1e-12) {
		t.Errorf("ToWorld(ToLocal(p)) = %v, want %v", got, p)
	}
	if got := f.ToLocal(f.Origin); !EqualWithin(got, Origin, 1e-12) {
		t.Errorf("ToLocal(origin) = %v, want zero", got)
	}
}

func TestFrameFromPointAndVector_ZeroVector(t *testing.T) {
	f := FrameFromPointAndVector(r3.Vec{X: 4}, r3.Vec{})
	if f.TransferMatrix() != Identity33 {
		t.Errorf("TransferMatrix() = %v, want identity", f.TransferMatrix())
	}
}

func TestRotateAbout(t *testing.T) {
	got := RotateAbout(r3.Vec{X: 1}, Origin, ZAxis, math.Pi/2)
	if !EqualWithin(got, YAxis, 1e-12) {
		t.Errorf("RotateAbout() = %v, want %v", got, YAxis)
	}

	got = RotateAbout(r3.Vec{X: 2, Y: 1, Z: 5}, r3.Vec{X: 1, Y: 1}, r3.Vec{Z: 4}, math.Pi)
	if !EqualWithin(got, r3.Vec{X: 0, Y: 1, Z: 5}, 1e-12) {
		t.Errorf("RotateAbout() = %v, want [0 1 5]", got)
	}
}
