// Package surrogate provides a fast approximation of the Monte-Carlo
// interference ratio: a feature scaler and a nearest-neighbour regressor fitted
// on generated samples, plus the helpers to evaluate them.
package surrogate

import (
	"errors"
	"fmt"

	"github.com/philipparndt/cylinter/internal/pose"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrNotFitted is returned when a model is used before Fit
	ErrNotFitted = errors.New("model is not fitted")
	// ErrDimension is returned for inputs of inconsistent width
	ErrDimension = errors.New("dimension mismatch")
)

// Scaler maps a raw feature vector to the space a regressor was fitted in
type Scaler interface {
	Scale(x []float64) []float64
}

// Regressor predicts an interference ratio from a scaled feature vector
type Regressor interface {
	Predict(x []float64) float64
}

// Predict runs the serving path: scale the relative pose, then regress
func Predict(s Scaler, r Regressor, p pose.RelativePose) float64 {
	return r.Predict(s.Scale(p.Slice()))
}

// StandardScaler removes the mean and divides by the population standard
// deviation of each column. Constant columns are only centered.
type StandardScaler struct {
	Mean []float64
	Std  []float64
}

// FitStandardScaler computes column statistics of x
func FitStandardScaler(x [][]float64) (*StandardScaler, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("cannot fit scaler on empty data")
	}
	dims := len(x[0])

	s := &StandardScaler{
		Mean: make([]float64, dims),
		Std:  make([]float64, dims),
	}
	col := make([]float64, len(x))
	for j := 0; j < dims; j++ {
		for i, row := range x {
			if len(row) != dims {
				return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrDimension, i, len(row), dims)
			}
			col[i] = row[j]
		}
		mean, std := stat.PopMeanStdDev(col, nil)
		if std == 0 {
			std = 1
		}
		s.Mean[j] = mean
		s.Std[j] = std
	}
	return s, nil
}

// Scale returns the standardized copy of x
func (s *StandardScaler) Scale(x []float64) []float64 {
	out := make([]float64, len(x))
	for j, v := range x {
		if j >= len(s.Mean) {
			out[j] = v
			continue
		}
		out[j] = (v - s.Mean[j]) / s.Std[j]
	}
	return out
}

// ScaleAll standardizes every row of x
func (s *StandardScaler) ScaleAll(x [][]float64) [][]float64 {
	out := make([][]float64, len(x))
	for i, row := range x {
		out[i] = s.Scale(row)
	}
	return out
}
