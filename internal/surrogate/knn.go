package surrogate

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// DefaultNeighbors is the neighbour count used when none is given
const DefaultNeighbors = 5

// featurePoint is a scaled feature vector with its target.
// It implements kdtree.Comparable.
type featurePoint struct {
	x []float64
	y float64
}

// Compare implements the kdtree.Comparable interface
func (p featurePoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(featurePoint)
	return p.x[d] - q.x[d]
}

// Dims returns the number of dimensions for the KD-tree
func (p featurePoint) Dims() int { return len(p.x) }

// Distance returns the squared Euclidean distance between two points
func (p featurePoint) Distance(c kdtree.Comparable) float64 {
	q := c.(featurePoint)
	var sum float64
	for i, v := range p.x {
		d := v - q.x[i]
		sum += d * d
	}
	return sum
}

// featurePoints is a collection of featurePoint that satisfies kdtree.Interface
type featurePoints []featurePoint

func (p featurePoints) Index(i int) kdtree.Comparable         { return p[i] }
func (p featurePoints) Len() int                              { return len(p) }
func (p featurePoints) Slice(start, end int) kdtree.Interface { return p[start:end] }

// Pivot implements the kdtree.Interface method
func (p featurePoints) Pivot(d kdtree.Dim) int {
	plane := featurePlane{featurePoints: p, Dim: d}
	return kdtree.Partition(plane, kdtree.MedianOfMedians(plane))
}

// featurePlane implements sort.Interface and kdtree.SortSlicer for featurePoints
type featurePlane struct {
	featurePoints
	kdtree.Dim
}

func (p featurePlane) Less(i, j int) bool {
	return p.featurePoints[i].x[p.Dim] < p.featurePoints[j].x[p.Dim]
}

func (p featurePlane) Slice(start, end int) kdtree.SortSlicer {
	return featurePlane{featurePoints: p.featurePoints[start:end], Dim: p.Dim}
}

func (p featurePlane) Swap(i, j int) {
	p.featurePoints[i], p.featurePoints[j] = p.featurePoints[j], p.featurePoints[i]
}

// KNN is a k-nearest-neighbour regressor: the prediction is the mean target
// of the k training points closest to the query.
type KNN struct {
	K    int
	tree *kdtree.Tree
	dims int
	size int
}

// NewKNN creates a regressor using k neighbours. k <= 0 uses DefaultNeighbors.
func NewKNN(k int) *KNN {
	if k <= 0 {
		k = DefaultNeighbors
	}
	return &KNN{K: k}
}

// Fit indexes the training data
func (m *KNN) Fit(x [][]float64, y []float64) error {
	if len(x) == 0 {
		return fmt.Errorf("cannot fit on empty data")
	}
	if len(x) != len(y) {
		return fmt.Errorf("%w: %d feature rows but %d targets", ErrDimension, len(x), len(y))
	}

	dims := len(x[0])
	points := make(featurePoints, len(x))
	for i, row := range x {
		if len(row) != dims {
			return fmt.Errorf("%w: row %d has %d values, want %d", ErrDimension, i, len(row), dims)
		}
		points[i] = featurePoint{x: append([]float64(nil), row...), y: y[i]}
	}

	m.tree = kdtree.New(points, false)
	m.dims = dims
	m.size = len(points)
	return nil
}

// Predict returns the mean target of the nearest neighbours of x.
// It returns NaN before Fit or when x has the wrong width.
func (m *KNN) Predict(x []float64) float64 {
	y, err := m.PredictChecked(x)
	if err != nil {
		return math.NaN()
	}
	return y
}

// PredictChecked is Predict with explicit errors
func (m *KNN) PredictChecked(x []float64) (float64, error) {
	if m.tree == nil {
		return 0, ErrNotFitted
	}
	if len(x) != m.dims {
		return 0, fmt.Errorf("%w: got %d values, want %d", ErrDimension, len(x), m.dims)
	}

	k := m.K
	if k > m.size {
		k = m.size
	}
	keeper := kdtree.NewNKeeper(k)
	m.tree.NearestSet(keeper, featurePoint{x: x})

	var sum float64
	n := 0
	for _, item := range keeper.Heap {
		// The keeper is seeded with an empty sentinel entry
		p, ok := item.Comparable.(featurePoint)
		if !ok {
			continue
		}
		sum += p.y
		n++
	}
	if n == 0 {
		return 0, ErrNotFitted
	}
	return sum / float64(n), nil
}
