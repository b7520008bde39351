// Package plot writes dataset and geometry figures to image files. The format
// follows the file extension (png, svg, pdf, ...).
package plot

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Size of every figure
const (
	Width  = 6 * vg.Inch
	Height = 4 * vg.Inch
)

// Plane selects the two world axes a point cloud is projected on
type Plane int

const (
	PlaneXY Plane = iota
	PlaneXZ
	PlaneYZ
)

func (p Plane) String() string {
	switch p {
	case PlaneXZ:
		return "XZ"
	case PlaneYZ:
		return "YZ"
	default:
		return "XY"
	}
}

func (p Plane) project(v r3.Vec) (float64, float64) {
	switch p {
	case PlaneXZ:
		return v.X, v.Z
	case PlaneYZ:
		return v.Y, v.Z
	default:
		return v.X, v.Y
	}
}

func (p Plane) labels() (string, string) {
	switch p {
	case PlaneXZ:
		return "x", "z"
	case PlaneYZ:
		return "y", "z"
	default:
		return "x", "y"
	}
}

// PointGroup is a named set of points drawn in one color
type PointGroup struct {
	Name   string
	Points []r3.Vec
	Color  color.Color
}

// Histogram plots the distribution of values
func Histogram(values []float64, bins int, title, path string) error {
	if len(values) == 0 {
		return fmt.Errorf("no values to plot")
	}
	if bins < 1 {
		return fmt.Errorf("bins must be at least 1, got %d", bins)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "ratio"
	p.Y.Label.Text = "count"

	h, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return fmt.Errorf("failed to build histogram: %w", err)
	}
	p.Add(h)

	return save(p, path)
}

// PointCloud plots every group projected on the given plane
func PointCloud(groups []PointGroup, plane Plane, title, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text, p.Y.Label.Text = plane.labels()
	p.Add(plotter.NewGrid())

	drawn := 0
	for _, g := range groups {
		if len(g.Points) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(g.Points))
		for i, v := range g.Points {
			xys[i].X, xys[i].Y = plane.project(v)
		}

		s, err := plotter.NewScatter(xys)
		if err != nil {
			return fmt.Errorf("failed to plot %s: %w", g.Name, err)
		}
		s.GlyphStyle.Color = g.Color
		s.GlyphStyle.Radius = vg.Points(1)
		p.Add(s)
		if g.Name != "" {
			p.Legend.Add(g.Name, s)
		}
		drawn++
	}
	if drawn == 0 {
		return fmt.Errorf("no points to plot")
	}

	return save(p, path)
}

// Parity plots predictions against ground truth together with the identity line
func Parity(truth, predicted []float64, title, path string) error {
	if len(truth) != len(predicted) {
		return fmt.Errorf("got %d true values but %d predictions", len(truth), len(predicted))
	}
	if len(truth) == 0 {
		return fmt.Errorf("no values to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Monte-Carlo ratio"
	p.Y.Label.Text = "surrogate ratio"
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, len(truth))
	for i := range truth {
		xys[i].X = truth[i]
		xys[i].Y = predicted[i]
	}
	s, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("failed to plot predictions: %w", err)
	}
	s.GlyphStyle.Radius = vg.Points(1.5)

	identity := plotter.NewFunction(func(x float64) float64 { return x })
	identity.Color = color.RGBA{R: 200, A: 255}
	identity.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(s, identity)
	return save(p, path)
}

func save(p *plot.Plot, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := p.Save(Width, Height, path); err != nil {
		return fmt.Errorf("failed to save plot %s: %w", path, err)
	}
	return nil
}
