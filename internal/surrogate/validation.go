package surrogate

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat"
)

// Fitter is a regressor that can be trained
type Fitter interface {
	Regressor
	Fit(x [][]float64, y []float64) error
}

// Model bundles a fitted scaler and regressor
type Model struct {
	Scaler    *StandardScaler
	Regressor Fitter
}

// Train fits a scaler on x and then the regressor on the scaled rows
func Train(x [][]float64, y []float64, reg Fitter) (*Model, error) {
	scaler, err := FitStandardScaler(x)
	if err != nil {
		return nil, err
	}
	if err := reg.Fit(scaler.ScaleAll(x), y); err != nil {
		return nil, err
	}
	return &Model{Scaler: scaler, Regressor: reg}, nil
}

// Predict scales x and regresses it
func (m *Model) Predict(x []float64) float64 {
	return m.Regressor.Predict(m.Scaler.Scale(x))
}

// Split shuffles the indices 0..n-1 and cuts them into a train part and a
// test part holding testFraction of the rows (at least one when n > 1).
func Split(n int, testFraction float64, rng *rand.Rand) (train, test []int, err error) {
	if n < 2 {
		return nil, nil, fmt.Errorf("need at least 2 rows to split, got %d", n)
	}
	if testFraction <= 0 || testFraction >= 1 {
		return nil, nil, fmt.Errorf("test fraction must be in (0, 1), got %g", testFraction)
	}

	perm := rng.Perm(n)
	nTest := int(float64(n) * testFraction)
	if nTest < 1 {
		nTest = 1
	}
	if nTest >= n {
		nTest = n - 1
	}
	return perm[nTest:], perm[:nTest], nil
}

// KFold shuffles the indices 0..n-1 into k folds whose sizes differ by at
// most one. Every index appears in exactly one fold.
func KFold(n, k int, rng *rand.Rand) ([][]int, error) {
	if k < 2 {
		return nil, fmt.Errorf("need at least 2 folds, got %d", k)
	}
	if n < k {
		return nil, fmt.Errorf("cannot split %d rows into %d folds", n, k)
	}

	perm := rng.Perm(n)
	folds := make([][]int, k)
	start := 0
	for i := range folds {
		size := n / k
		if i < n%k {
			size++
		}
		folds[i] = perm[start : start+size]
		start += size
	}
	return folds, nil
}

// Score returns the coefficient of determination of reg on (x, y)
func Score(reg Regressor, x [][]float64, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, fmt.Errorf("%w: %d feature rows but %d targets", ErrDimension, len(x), len(y))
	}
	if len(x) == 0 {
		return 0, fmt.Errorf("cannot score on empty data")
	}
	estimates := make([]float64, len(x))
	for i, row := range x {
		estimates[i] = reg.Predict(row)
	}
	return stat.RSquaredFrom(estimates, y, nil), nil
}

// Subset picks the given rows of x and y
func Subset(x [][]float64, y []float64, idx []int) ([][]float64, []float64) {
	sx := make([][]float64, len(idx))
	sy := make([]float64, len(idx))
	for i, j := range idx {
		sx[i] = x[j]
		sy[i] = y[j]
	}
	return sx, sy
}

// CrossValidate trains a fresh model per fold on the remaining folds and
// returns the R² of each held-out fold.
func CrossValidate(x [][]float64, y []float64, k int, rng *rand.Rand, newRegressor func() Fitter) ([]float64, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d feature rows but %d targets", ErrDimension, len(x), len(y))
	}
	folds, err := KFold(len(x), k, rng)
	if err != nil {
		return nil, err
	}

	scores := make([]float64, k)
	for i, testIdx := range folds {
		var trainIdx []int
		for j, fold := range folds {
			if j != i {
				trainIdx = append(trainIdx, fold...)
			}
		}

		trainX, trainY := Subset(x, y, trainIdx)
		model, err := Train(trainX, trainY, newRegressor())
		if err != nil {
			return nil, fmt.Errorf("fold %d: %w", i+1, err)
		}

		testX, testY := Subset(x, y, testIdx)
		score, err := Score(model, testX, testY)
		if err != nil {
			return nil, fmt.Errorf("fold %d: %w", i+1, err)
		}
		scores[i] = score
	}
	return scores, nil
}
