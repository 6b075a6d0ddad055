package dataset

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/mat"
)

// SimilarityMatrix holds the pairwise similarities of a relative dataset.
type SimilarityMatrix struct {
	index
	data     *mat.Dense
	min, max float64
}

// NewSimilarityMatrix returns a new similarity matrix. The rows must form a
// square matrix with one row per id.
func NewSimilarityMatrix(ids []string, rows [][]float64) (*SimilarityMatrix, error) {
	idx, err := newIndex(ids)

	if err != nil {
		return nil, err
	}

	n := len(ids)

	if len(rows) != n {
		return nil, fmt.Errorf("dataset: %w, %d rows for %d ids", ErrShape, len(rows), n)
	}

	if n == 0 {
		return &SimilarityMatrix{index: idx}, nil
	}

	data := mat.NewDense(n, n, nil)

	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("dataset: %w, row %d has %d columns", ErrShape, i, len(row))
		}

		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("dataset: %w at %d,%d", ErrNotFinite, i, j)
			}
		}

		data.SetRow(i, row)
	}

	return newSimilarityMatrix(idx, data), nil
}

func newSimilarityMatrix(idx index, data *mat.Dense) *SimilarityMatrix {
	result := &SimilarityMatrix{index: idx, data: data}

	if data == nil {
		return result
	}

	values := data.RawMatrix().Data
	result.min, _ = stats.Min(values)
	result.max, _ = stats.Max(values)

	return result
}

// Format returns Relative.
func (m *SimilarityMatrix) Format() Format {
	return Relative
}

// At returns the similarity of the items at the given rows.
func (m *SimilarityMatrix) At(i, j int) float64 {
	return m.data.At(i, j)
}

// Similarity returns the similarity of two items.
func (m *SimilarityMatrix) Similarity(id1, id2 string) (float64, error) {
	i, ok := m.Index(id1)

	if !ok {
		return 0, fmt.Errorf("dataset: %w %s", ErrUnknownID, id1)
	}

	j, ok := m.Index(id2)

	if !ok {
		return 0, fmt.Errorf("dataset: %w %s", ErrUnknownID, id2)
	}

	return m.data.At(i, j), nil
}

// MaxValue returns the largest similarity.
func (m *SimilarityMatrix) MaxValue() float64 {
	return m.max
}

// MinValue returns the smallest similarity.
func (m *SimilarityMatrix) MinValue() float64 {
	return m.min
}

// Mean returns the mean similarity.
func (m *SimilarityMatrix) Mean() float64 {
	if m.data == nil {
		return 0
	}

	mean, _ := stats.Mean(m.data.RawMatrix().Data)

	return mean
}

// ToArray returns the similarities as dense rows.
func (m *SimilarityMatrix) ToArray() [][]float64 {
	n := m.Len()
	result := make([][]float64, n)

	for i := range result {
		result[i] = mat.Row(nil, i, m.data)
	}

	return result
}

// Dense returns a copy of the underlying matrix, nil if empty.
func (m *SimilarityMatrix) Dense() *mat.Dense {
	if m.data == nil {
		return nil
	}

	return mat.DenseCopyOf(m.data)
}

// Dissimilarities returns the matrix of dissimilarities, i.e. the maximum
// similarity minus every similarity.
func (m *SimilarityMatrix) Dissimilarities() *mat.Dense {
	if m.data == nil {
		return nil
	}

	n := m.Len()
	result := mat.NewDense(n, n, nil)
	result.Apply(func(i, j int, v float64) float64 {
		return m.max - v
	}, m.data)

	return result
}

// Sub returns the matrix restricted to the given ids. Rows keep the
// order of this matrix, so the result does not depend on the order of ids.
func (m *SimilarityMatrix) Sub(ids []string) (*SimilarityMatrix, error) {
	keep := make(map[string]bool, len(ids))

	for _, id := range ids {
		if _, ok := m.Index(id); !ok {
			return nil, fmt.Errorf("dataset: %w %s", ErrUnknownID, id)
		}

		keep[id] = true
	}

	var order []string
	var rows []int

	for i, id := range m.order {
		if keep[id] {
			order = append(order, id)
			rows = append(rows, i)
		}
	}

	idx, err := newIndex(order)

	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return &SimilarityMatrix{index: idx}, nil
	}

	data := mat.NewDense(len(rows), len(rows), nil)

	for a, i := range rows {
		for b, j := range rows {
			data.Set(a, b, m.data.At(i, j))
		}
	}

	result := newSimilarityMatrix(idx, data)

	// Dissimilarities of a sub matrix are relative to the original maximum.
	result.max = m.max

	return result, nil
}
