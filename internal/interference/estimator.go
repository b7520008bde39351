// Package interference estimates the intersection volume of two cylinders
// by Monte-Carlo sampling.
package interference

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/philipparndt/cylinter/internal/geometry"
)

// ErrInvalidArgument is returned for a sample count below one
var ErrInvalidArgument = errors.New("invalid argument")

// Estimate returns the share of a's volume that lies inside b.
//
// nPoints points are drawn uniformly inside a and tested for membership in b.
// The result is one-sided, (a ∩ b) / vol(a), with a statistical error of
// order 1/sqrt(nPoints). Cylinders whose bounding boxes do not overlap give
// exactly 0 without sampling. A nil rng uses a randomly seeded generator.
func Estimate(a, b geometry.Cylinder, nPoints int, rng *rand.Rand) (float64, error) {
	if nPoints < 1 {
		return 0, fmt.Errorf("%w: n_points must be at least 1, got %d", ErrInvalidArgument, nPoints)
	}
	if !a.BoundingBox().Overlaps(b.BoundingBox()) {
		return 0, nil
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	inside := 0
	for _, p := range a.PointsInside(nPoints, rng) {
		if b.PointBelongs(p) {
			inside++
		}
	}
	return float64(inside) / float64(nPoints), nil
}

// Volume returns the estimated absolute intersection volume of a and b
func Volume(a, b geometry.Cylinder, nPoints int, rng *rand.Rand) (float64, error) {
	ratio, err := Estimate(a, b, nPoints, rng)
	if err != nil {
		return 0, err
	}
	return ratio * a.Volume(), nil
}

// Estimator runs estimates with a fixed sample count and seed so repeated
// calls on the same pair give the same result.
type Estimator struct {
	points int
	seed   uint64
}

// NewEstimator creates an estimator drawing points samples per call
func NewEstimator(points int, seed uint64) (*Estimator, error) {
	if points < 1 {
		return nil, fmt.Errorf("%w: n_points must be at least 1, got %d", ErrInvalidArgument, points)
	}
	return &Estimator{points: points, seed: seed}, nil
}

// Points returns the sample count per estimate
func (e *Estimator) Points() int {
	return e.points
}

// Ratio estimates (a ∩ b) / vol(a)
func (e *Estimator) Ratio(a, b geometry.Cylinder) (float64, error) {
	return Estimate(a, b, e.points, e.rng())
}

// Volume estimates the absolute intersection volume
func (e *Estimator) Volume(a, b geometry.Cylinder) (float64, error) {
	return Volume(a, b, e.points, e.rng())
}

func (e *Estimator) rng() *rand.Rand {
	return rand.New(rand.NewPCG(e.seed, e.seed^0x9e3779b97f4a7c15))
}
