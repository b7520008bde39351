package plot

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func assertFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected %s to exist: %v", path, err)
	}
	if info.Size() == 0 {
		t.Errorf("%s is empty", path)
	}
}

func TestHistogram(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "hist.png")
	values := []float64{0, 0, 0, 0.1, 0.2, 0.25, 0.5, 0.9}

	if err := Histogram(values, 20, "ratios", path); err != nil {
		t.Fatalf("Histogram() error = %v", err)
	}
	assertFile(t, path)
}

func TestHistogram_Invalid(t *testing.T) {
	dir := t.TempDir()
	if err := Histogram(nil, 10, "", filepath.Join(dir, "a.png")); err == nil {
		t.Error("Histogram() with no values should fail")
	}
	if err := Histogram([]float64{1}, 0, "", filepath.Join(dir, "b.png")); err == nil {
		t.Error("Histogram() with zero bins should fail")
	}
}

func TestPointCloud(t *testing.T) {
	tests := []struct {
		name  string
		plane Plane
		file  string
	}{
		{"xy png", PlaneXY, "xy.png"},
		{"xz svg", PlaneXZ, "xz.svg"},
		{"yz png", PlaneYZ, "yz.png"},
	}

	groups := []PointGroup{
		{Name: "inside", Points: []r3.Vec{{X: 0, Y: 0, Z: 0}, {X: 0.1, Y: 0.02, Z: 0.01}}, Color: color.RGBA{G: 180, A: 255}},
		{Name: "outside", Points: []r3.Vec{{X: 0.3, Y: -0.1, Z: 0.2}}, Color: color.RGBA{R: 200, A: 255}},
		{Name: "empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := PointCloud(groups, tt.plane, "points", path); err != nil {
				t.Fatalf("PointCloud() error = %v", err)
			}
			assertFile(t, path)
		})
	}
}

func TestPointCloud_NoPoints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.png")
	if err := PointCloud([]PointGroup{{Name: "none"}}, PlaneXY, "", path); err == nil {
		t.Error("PointCloud() without points should fail")
	}
}

func TestParity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parity.png")
	if err := Parity([]float64{0, 0.5, 1}, []float64{0.1, 0.45, 0.9}, "test split", path); err != nil {
		t.Fatalf("Parity() error = %v", err)
	}
	assertFile(t, path)

	if err := Parity([]float64{0}, nil, "", path); err == nil {
		t.Error("Parity() with mismatched lengths should fail")
	}
}

func TestPlane_String(t *testing.T) {
	if PlaneXY.String() != "XY" || PlaneXZ.String() != "XZ" || PlaneYZ.String() != "YZ" {
		t.Error("unexpected plane names")
	}
}
