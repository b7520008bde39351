package cmd

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"strings"

	"github.com/philipparndt/cylinter/internal/geometry"
	"github.com/philipparndt/cylinter/internal/interference"
	"github.com/philipparndt/cylinter/internal/plot"
	"github.com/philipparndt/cylinter/internal/pose"
	"github.com/philipparndt/cylinter/internal/stl"
	"github.com/philipparndt/cylinter/internal/surrogate"
	"github.com/philipparndt/cylinter/internal/ui"
	"gonum.org/v1/gonum/spatial/r3"
)

// CylinderFlags describes one cylinder on the command line
type CylinderFlags struct {
	Position []float64 `help:"Base center as x,y,z" default:"0,0,0" sep:","`
	Axis     []float64 `help:"Axis direction as x,y,z" default:"1,0,0" sep:","`
	Radius   float64   `help:"Radius" default:"0.05"`
	Length   float64   `help:"Length" default:"0.1"`
}

// Cylinder validates the flags and builds the cylinder
func (f CylinderFlags) Cylinder() (geometry.Cylinder, error) {
	position, err := vecFlag("position", f.Position)
	if err != nil {
		return geometry.Cylinder{}, err
	}
	axis, err := vecFlag("axis", f.Axis)
	if err != nil {
		return geometry.Cylinder{}, err
	}
	return geometry.NewCylinder(position, axis, f.Radius, f.Length)
}

func vecFlag(name string, v []float64) (r3.Vec, error) {
	if len(v) != 3 {
		return r3.Vec{}, fmt.Errorf("%s needs 3 comma separated values, got %d", name, len(v))
	}
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}, nil
}

func pairFromFlags(a, b CylinderFlags) (geometry.Cylinder, geometry.Cylinder, error) {
	ca, err := a.Cylinder()
	if err != nil {
		return ca, ca, fmt.Errorf("cylinder A: %w", err)
	}
	cb, err := b.Cylinder()
	if err != nil {
		return ca, cb, fmt.Errorf("cylinder B: %w", err)
	}
	return ca, cb, nil
}

type EstimateCmd struct {
	A         CylinderFlags `embed:"" prefix:"a-"`
	B         CylinderFlags `embed:"" prefix:"b-"`
	Points    int           `help:"Monte-Carlo points" default:"10000" short:"p"`
	Seed      uint64        `help:"Random seed"`
	Data      string        `help:"Dataset CSV; when set the surrogate prediction is printed too"`
	Neighbors int           `help:"Neighbours of the surrogate" default:"5" short:"k"`
}

func (c *EstimateCmd) Run() error {
	a, b, err := pairFromFlags(c.A, c.B)
	if err != nil {
		return err
	}

	estimator, err := interference.NewEstimator(c.Points, c.Seed)
	if err != nil {
		return err
	}
	ratio, err := estimator.Ratio(a, b)
	if err != nil {
		return err
	}

	ui.PrintHeader("Cylinders")
	ui.PrintKeyValue("A", a.String())
	ui.PrintKeyValue("B", b.String())

	ui.PrintHeader("Interference")
	ui.PrintKeyValue("Ratio", ui.FormatPercent(ratio))
	ui.PrintKeyValue("Volume", fmt.Sprintf("%.6g of %.6g", ratio*a.Volume(), a.Volume()))

	p := pose.Canonicalize(a, b)
	ui.PrintHeader("Relative pose")
	_, placed := pose.Place(a, b)
	frame := placed.Frame()
	ui.PrintKeyValue("Transform", geometry.FormatTransform(frame.TransferMatrix(), frame.Origin))
	features := make([]string, pose.Size)
	for i, name := range pose.FeatureNames {
		features[i] = fmt.Sprintf("%s=%.5f", name, p[i])
	}
	ui.PrintInfo(strings.Join(features, " "))

	if c.Data != "" {
		model, err := trainFromFile(c.Data, c.Neighbors)
		if err != nil {
			return err
		}
		predicted := surrogate.Predict(model.Scaler, model.Regressor, p)
		ui.PrintKeyValue("Surrogate", ui.FormatPercent(predicted))
	}
	return nil
}

type DemoCmd struct {
	A      CylinderFlags `embed:"" prefix:"a-"`
	B      CylinderFlags `embed:"" prefix:"b-"`
	Points int           `help:"Points sampled in each cylinder" default:"5000" short:"p"`
	Seed   uint64        `help:"Random seed"`
	Plot   string        `help:"Write a scatter plot of the classified points to this image file"`
	Plane  string        `help:"Projection plane of the plot" enum:"xy,xz,yz" default:"xy"`
	STL    string        `help:"Write both cylinders to this STL file" name:"stl"`
}

// Help adds additional help text with examples
func (c *DemoCmd) Help() string {
	return renderDemoHelp()
}

func (c *DemoCmd) Run() error {
	a, b, err := pairFromFlags(c.A, c.B)
	if err != nil {
		return err
	}
	if c.Points < 1 {
		return fmt.Errorf("points must be at least 1, got %d", c.Points)
	}

	rng := rand.New(rand.NewPCG(c.Seed, 0))
	pointsA := a.PointsInside(c.Points, rng)
	pointsB := b.PointsInside(c.Points, rng)

	var inside, outsideA, outsideB []r3.Vec
	for _, p := range pointsA {
		if b.PointBelongs(p) {
			inside = append(inside, p)
		} else {
			outsideA = append(outsideA, p)
		}
	}
	for _, p := range pointsB {
		if !a.PointBelongs(p) {
			outsideB = append(outsideB, p)
		}
	}

	ratio := float64(len(inside)) / float64(len(pointsA))
	ui.PrintKeyValue("Points in A", ui.FormatCount(len(pointsA)))
	ui.PrintKeyValue("Points of A inside B", ui.FormatCount(len(inside)))
	ui.PrintHighlight(fmt.Sprintf("Intersection: %s of A", ui.FormatPercent(ratio)))

	if c.STL != "" {
		if err := stl.WriteFile(c.STL, []string{"A", "B"}, []geometry.Cylinder{a, b}); err != nil {
			return err
		}
		ui.PrintSuccess("Cylinders written to " + c.STL)
	}

	if c.Plot == "" {
		return nil
	}

	groups := []plot.PointGroup{
		{Name: "A", Points: outsideA, Color: color.RGBA{R: 220, G: 50, B: 50, A: 255}},
		{Name: "B", Points: outsideB, Color: color.RGBA{R: 50, G: 90, B: 220, A: 255}},
		{Name: "A ∩ B", Points: inside, Color: color.RGBA{R: 40, G: 170, B: 60, A: 255}},
	}
	title := fmt.Sprintf("Intersection %s", ui.FormatPercent(ratio))
	if err := plot.PointCloud(groups, parsePlane(c.Plane), title, c.Plot); err != nil {
		return err
	}
	ui.PrintSuccess("Plot written to " + c.Plot)
	return nil
}

func parsePlane(s string) plot.Plane {
	switch strings.ToLower(s) {
	case "xz":
		return plot.PlaneXZ
	case "yz":
		return plot.PlaneYZ
	default:
		return plot.PlaneXY
	}
}
