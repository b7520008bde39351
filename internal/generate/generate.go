// Package generate builds training datasets: random poses of a second
// cylinder around a fixed reference cylinder, labelled with Monte-Carlo
// interference ratios.
package generate

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/philipparndt/cylinter/internal/dataset"
	"github.com/philipparndt/cylinter/internal/geometry"
	"github.com/philipparndt/cylinter/internal/interference"
	"github.com/philipparndt/cylinter/internal/pose"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/samplemv"
)

// drawDims is the dimension of one Latin Hypercube draw (two angles and a radius)
const drawDims = 3

// Options controls dataset generation
type Options struct {
	Samples  int     // number of poses to draw
	Points   int     // Monte-Carlo points per pose
	GenCoeff float64 // scales the radius of the generation ball
	Radius   float64 // radius of both cylinders
	Length   float64 // length of both cylinders
	Seed     uint64
	Workers  int // 0 uses every CPU
}

// DefaultOptions mirrors the reference setup: 10000 poses, 5000 points each,
// cylinders of radius 0.05 and length 0.1.
func DefaultOptions() Options {
	return Options{
		Samples:  10000,
		Points:   5000,
		GenCoeff: 0.65,
		Radius:   0.05,
		Length:   0.1,
	}
}

// Generator draws poses and labels them
type Generator struct {
	opts   Options
	base   geometry.Cylinder
	radius float64
	center r3.Vec
}

// New validates opts and creates a generator around a reference cylinder
// whose base sits at the origin along +X.
func New(opts Options) (*Generator, error) {
	if opts.Samples < 1 {
		return nil, fmt.Errorf("samples must be at least 1, got %d", opts.Samples)
	}
	if opts.Points < 1 {
		return nil, fmt.Errorf("points must be at least 1, got %d", opts.Points)
	}
	if !(opts.GenCoeff > 0) {
		return nil, fmt.Errorf("generation coefficient must be positive, got %g", opts.GenCoeff)
	}

	base, err := geometry.NewCylinder(geometry.Origin, geometry.XAxis, opts.Radius, opts.Length)
	if err != nil {
		return nil, fmt.Errorf("invalid cylinder: %w", err)
	}

	bbox := base.BoundingBox()
	return &Generator{
		opts:   opts,
		base:   base,
		radius: opts.GenCoeff * math.Sqrt(3) * bbox.MaxExtent(),
		center: bbox.Center(),
	}, nil
}

// Base returns the reference cylinder
func (g *Generator) Base() geometry.Cylinder {
	return g.base
}

// GenerationRadius returns the radius of the ball the other cylinder's
// midpoint is drawn from.
func (g *Generator) GenerationRadius() float64 {
	return g.radius
}

// Draws returns a Samples x 3 Latin Hypercube design on the unit cube
func (g *Generator) Draws() *mat.Dense {
	src := rand.NewPCG(g.opts.Seed, 0)
	lhs := samplemv.LatinHypercube{
		Q:   distmv.NewUnitUniform(drawDims, src),
		Src: src,
	}
	batch := mat.NewDense(g.opts.Samples, drawDims, nil)
	lhs.Sample(batch)
	return batch
}

// DrawToPoint maps a draw in the unit cube to a point uniformly distributed
// in the ball of the given radius centered at the origin.
func DrawToPoint(draw []float64, radius float64) r3.Vec {
	theta := 2 * math.Pi * draw[0]
	phi := math.Acos(2*draw[1] - 1)
	r := math.Cbrt(draw[2]) * radius

	sinPhi, cosPhi := math.Sincos(phi)
	sinTheta, cosTheta := math.Sincos(theta)
	return r3.Vec{
		X: r * sinPhi * cosTheta,
		Y: r * sinPhi * sinTheta,
		Z: r * cosPhi,
	}
}

// RandomUnitVector returns a direction uniformly distributed on the sphere
func RandomUnitVector(rng *rand.Rand) r3.Vec {
	for {
		v := r3.Vec{X: rng.NormFloat64(), Y: rng.NormFloat64(), Z: rng.NormFloat64()}
		if u, ok := geometry.Normalize(v); ok {
			return u
		}
	}
}

// Pairs draws Samples random cylinders around the reference. Each cylinder's
// midpoint comes from the Latin Hypercube design mapped into the generation
// ball and its axis is a random direction.
func (g *Generator) Pairs() ([]interference.Pair, error) {
	draws := g.Draws()
	rng := rand.New(rand.NewPCG(g.opts.Seed, 1))

	pairs := make([]interference.Pair, g.opts.Samples)
	for i := range pairs {
		mid := r3.Add(g.center, DrawToPoint(draws.RawRowView(i), g.radius))
		axis := RandomUnitVector(rng)
		position := r3.Sub(mid, r3.Scale(g.opts.Length/2, axis))

		other, err := geometry.NewCylinder(position, axis, g.opts.Radius, g.opts.Length)
		if err != nil {
			return nil, fmt.Errorf("draw %d: %w", i, err)
		}
		pairs[i] = interference.Pair{A: g.base, B: other}
	}
	return pairs, nil
}

// Label estimates every pair in parallel and returns samples in completion
// order.
func (g *Generator) Label(ctx context.Context, pairs []interference.Pair, progress func(done, total int)) ([]dataset.Sample, error) {
	results, err := interference.EstimateAll(ctx, pairs, interference.BatchOptions{
		Points:     g.opts.Points,
		Workers:    g.opts.Workers,
		Seed:       g.opts.Seed,
		OnProgress: progress,
	})
	if err != nil {
		return nil, err
	}

	samples := make([]dataset.Sample, len(results))
	for i, r := range results {
		pair := pairs[r.Index]
		samples[i] = dataset.Sample{
			Pose:  pose.Canonicalize(pair.A, pair.B),
			Ratio: r.Ratio,
		}
	}
	return samples, nil
}

// Run draws and labels a complete dataset
func (g *Generator) Run(ctx context.Context, progress func(done, total int)) ([]dataset.Sample, error) {
	pairs, err := g.Pairs()
	if err != nil {
		return nil, err
	}
	return g.Label(ctx, pairs, progress)
}

// ZeroShare returns the fraction of samples whose ratio is exactly zero
func ZeroShare(samples []dataset.Sample) float64 {
	if len(samples) == 0 {
		return 0
	}
	zero := 0
	for _, s := range samples {
		if s.Ratio == 0 {
			zero++
		}
	}
	return float64(zero) / float64(len(samples))
}
