package inspect

import (
	"fmt"
	"os"
	"sort"

	"github.com/philipparndt/cylinter/internal/dataset"
	"github.com/philipparndt/cylinter/internal/pose"
	"github.com/philipparndt/cylinter/internal/ui"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Bins is the number of equal-width ratio buckets in a Summary
const Bins = 10

// ColumnStats summarizes one column of a dataset
type ColumnStats struct {
	Name   string
	Mean   float64
	Std    float64
	Min    float64
	Max    float64
	Median float64
}

// Summary describes a dataset
type Summary struct {
	Rows      int
	Zero      int
	ZeroShare float64
	Ratio     ColumnStats
	Features  [pose.Size]ColumnStats
	// Buckets counts the non-zero ratios per tenth of (0, 1]
	Buckets [Bins]int
}

// Inspector provides functionality to inspect generated datasets
type Inspector struct{}

// NewInspector creates a new Inspector
func NewInspector() *Inspector {
	return &Inspector{}
}

// Inspect reads and displays a summary of a dataset file
func (i *Inspector) Inspect(filename string) error {
	if _, err := os.Stat(filename); err != nil {
		return fmt.Errorf("file not found: %s", filename)
	}

	ui.PrintHeader(fmt.Sprintf("Inspecting: %s", filename))

	samples, err := dataset.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("error reading dataset: %w", err)
	}

	summary, err := Summarize(samples)
	if err != nil {
		return err
	}

	NewSummaryPrinter().Print(summary)
	return nil
}

// Summarize computes the statistics of samples
func Summarize(samples []dataset.Sample) (Summary, error) {
	var s Summary
	if len(samples) == 0 {
		return s, fmt.Errorf("dataset is empty")
	}

	x, y := dataset.Split(samples)
	s.Rows = len(samples)
	s.Ratio = columnStats("ratio", y)

	for _, r := range y {
		if r == 0 {
			s.Zero++
			continue
		}
		bin := int(r * Bins)
		if bin >= Bins {
			bin = Bins - 1
		}
		// Ratios on a bucket edge belong to the lower bucket
		if bin > 0 && float64(bin) == r*Bins {
			bin--
		}
		s.Buckets[bin]++
	}
	s.ZeroShare = float64(s.Zero) / float64(s.Rows)

	col := make([]float64, len(x))
	for j := 0; j < pose.Size; j++ {
		for i, row := range x {
			col[i] = row[j]
		}
		s.Features[j] = columnStats(pose.FeatureNames[j], col)
	}
	return s, nil
}

func columnStats(name string, values []float64) ColumnStats {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	mean, std := stat.PopMeanStdDev(sorted, nil)
	return ColumnStats{
		Name:   name,
		Mean:   mean,
		Std:    std,
		Min:    floats.Min(sorted),
		Max:    floats.Max(sorted),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
	}
}
