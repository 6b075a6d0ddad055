package dataset

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/mat"

	"github.com/photoprism/clusteval/pkg/clusters"
)

// DataMatrix holds the coordinates of an absolute dataset, one row per item.
type DataMatrix struct {
	index
	data *mat.Dense
}

// NewDataMatrix returns a new coordinate matrix. All rows must have the
// same, non-zero number of dimensions.
func NewDataMatrix(ids []string, rows [][]float64) (*DataMatrix, error) {
	idx, err := newIndex(ids)

	if err != nil {
		return nil, err
	}

	if len(rows) != len(ids) {
		return nil, fmt.Errorf("dataset: %w, %d rows for %d ids", ErrShape, len(rows), len(ids))
	}

	if len(rows) == 0 {
		return &DataMatrix{index: idx}, nil
	}

	dim := len(rows[0])

	if dim == 0 {
		return nil, fmt.Errorf("dataset: %w, rows have no dimensions", ErrShape)
	}

	data := mat.NewDense(len(rows), dim, nil)

	for i, row := range rows {
		if len(row) != dim {
			return nil, fmt.Errorf("dataset: %w, row %d has %d dimensions, expected %d", ErrShape, i, len(row), dim)
		}

		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("dataset: %w at %d,%d", ErrNotFinite, i, j)
			}
		}

		data.SetRow(i, row)
	}

	return &DataMatrix{index: idx, data: data}, nil
}

// Format returns Absolute.
func (m *DataMatrix) Format() Format {
	return Absolute
}

// Dimensions returns the number of coordinates per item.
func (m *DataMatrix) Dimensions() int {
	if m.data == nil {
		return 0
	}

	_, c := m.data.Dims()

	return c
}

// Row returns a copy of the coordinates of an item.
func (m *DataMatrix) Row(id string) ([]float64, error) {
	i, ok := m.Index(id)

	if !ok {
		return nil, fmt.Errorf("dataset: %w %s", ErrUnknownID, id)
	}

	return mat.Row(nil, i, m.data), nil
}

// ToArray returns the coordinates as dense rows.
func (m *DataMatrix) ToArray() [][]float64 {
	result := make([][]float64, m.Len())

	for i := range result {
		result[i] = mat.Row(nil, i, m.data)
	}

	return result
}

// ToSimilarityMatrix converts the coordinates into a relative dataset.
// Similarities are the largest pairwise distance minus the distance, so the
// dissimilarities of the result equal the distances. A nil distance function
// selects the Euclidean distance.
func (m *DataMatrix) ToSimilarityMatrix(dist clusters.DistanceFunc) (*SimilarityMatrix, error) {
	if m.Len() == 0 {
		return NewSimilarityMatrix(nil, nil)
	}

	batch := clusters.BatchEuclideanDistance

	if dist != nil {
		batch = clusters.Batch(dist)
	}

	distances := clusters.Distances(m.ToArray(), batch)

	var all []float64

	for _, row := range distances {
		all = append(all, row...)
	}

	maxDist, err := stats.Max(all)

	if err != nil {
		return nil, fmt.Errorf("dataset: %s", err)
	}

	for _, row := range distances {
		for j := range row {
			row[j] = maxDist - row[j]
		}
	}

	return NewSimilarityMatrix(m.order, distances)
}
