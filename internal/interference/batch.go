package interference

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"
	"sync"

	"github.com/philipparndt/cylinter/internal/geometry"
	"golang.org/x/sync/errgroup"
)

// Pair is one estimation job: the share of A inside B
type Pair struct {
	A, B geometry.Cylinder
}

// Result is the estimate for the pair at Index in the input slice
type Result struct {
	Index int
	Ratio float64
}

// BatchOptions configures EstimateAll
type BatchOptions struct {
	// Points is the sample count per pair
	Points int
	// Workers bounds the number of concurrent estimates. Zero or less uses runtime.NumCPU().
	Workers int
	// Seed derives the per-pair random generators
	Seed uint64
	// OnProgress, if set, is called after each finished pair. Calls are serialized.
	OnProgress func(done, total int)
}

// EstimateAll estimates every pair on a bounded pool of goroutines.
//
// Results come back in completion order, not input order; use Result.Index
// to pair them with their input. Each pair gets its own generator seeded from
// Seed and its index, so the set of results does not depend on scheduling.
// The first error stops the remaining work and is returned.
func EstimateAll(ctx context.Context, pairs []Pair, opts BatchOptions) ([]Result, error) {
	if opts.Points < 1 {
		return nil, fmt.Errorf("%w: n_points must be at least 1, got %d", ErrInvalidArgument, opts.Points)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var mu sync.Mutex
	results := make([]Result, 0, len(pairs))

	for i, pair := range pairs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewPCG(opts.Seed, uint64(i)))
			ratio, err := Estimate(pair.A, pair.B, opts.Points, rng)
			if err != nil {
				return fmt.Errorf("pair %d: %w", i, err)
			}

			mu.Lock()
			defer mu.Unlock()
			results = append(results, Result{Index: i, Ratio: ratio})
			if opts.OnProgress != nil {
				opts.OnProgress(len(results), len(pairs))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
