package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/photoprism/clusteval/pkg/clusters"
)

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("relative")
	require.NoError(t, err)
	assert.Equal(t, Relative, f)
	assert.Equal(t, "relative", f.String())

	f, err = ParseFormat("absolute")
	require.NoError(t, err)
	assert.Equal(t, Absolute, f)

	_, err = ParseFormat("blast")
	assert.Error(t, err)
}

func TestNewSimilarityMatrix(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		m, err := NewSimilarityMatrix([]string{"a", "b", "c"}, [][]float64{
			{10, 8, 1},
			{8, 10, 2},
			{1, 2, 10},
		})

		require.NoError(t, err)
		assert.Equal(t, Relative, m.Format())
		assert.Equal(t, 3, m.Len())
		assert.Equal(t, 10.0, m.MaxValue())
		assert.Equal(t, 1.0, m.MinValue())
		assert.Equal(t, map[string]int{"a": 0, "b": 1, "c": 2}, m.IDs())
		assert.Equal(t, []string{"a", "b", "c"}, m.IDList())

		s, err := m.Similarity("a", "c")
		require.NoError(t, err)
		assert.Equal(t, 1.0, s)

		_, err = m.Similarity("a", "x")
		assert.ErrorIs(t, err, ErrUnknownID)
	})
	t.Run("DuplicateID", func(t *testing.T) {
		_, err := NewSimilarityMatrix([]string{"a", "a"}, [][]float64{{1, 0}, {0, 1}})
		assert.ErrorIs(t, err, ErrDuplicateID)
	})
	t.Run("NotSquare", func(t *testing.T) {
		_, err := NewSimilarityMatrix([]string{"a", "b"}, [][]float64{{1, 0}, {0}})
		assert.ErrorIs(t, err, ErrShape)

		_, err = NewSimilarityMatrix([]string{"a", "b"}, [][]float64{{1, 0}})
		assert.ErrorIs(t, err, ErrShape)
	})
	t.Run("Empty", func(t *testing.T) {
		m, err := NewSimilarityMatrix(nil, nil)

		require.NoError(t, err)
		assert.Equal(t, 0, m.Len())
		assert.Nil(t, m.Dissimilarities())
		assert.Equal(t, 0.0, m.Mean())
	})
}

func TestSimilarityMatrix_Dissimilarities(t *testing.T) {
	m, err := NewSimilarityMatrix([]string{"a", "b"}, [][]float64{
		{4, 1},
		{1, 4},
	})

	require.NoError(t, err)

	d := m.Dissimilarities()

	assert.Equal(t, 0.0, d.At(0, 0))
	assert.Equal(t, 3.0, d.At(0, 1))
	assert.Equal(t, 3.0, d.At(1, 0))
	assert.Equal(t, 2.5, m.Mean())
	assert.Equal(t, [][]float64{{4, 1}, {1, 4}}, m.ToArray())
}

func TestSimilarityMatrix_Sub(t *testing.T) {
	m, err := NewSimilarityMatrix([]string{"a", "b", "c"}, [][]float64{
		{10, 8, 1},
		{8, 10, 2},
		{1, 2, 9},
	})

	require.NoError(t, err)

	sub, err := m.Sub([]string{"c", "a"})

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, sub.IDList())
	assert.Equal(t, [][]float64{{10, 1}, {1, 9}}, sub.ToArray())
	assert.Equal(t, 10.0, sub.MaxValue())

	_, err = m.Sub([]string{"x"})
	assert.ErrorIs(t, err, ErrUnknownID)
}

func TestDataMatrix(t *testing.T) {
	m, err := NewDataMatrix([]string{"a", "b", "c"}, [][]float64{
		{0, 0},
		{3, 4},
		{6, 8},
	})

	require.NoError(t, err)
	assert.Equal(t, Absolute, m.Format())
	assert.Equal(t, 2, m.Dimensions())

	row, err := m.Row("b")
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4}, row)

	_, err = m.Row("x")
	assert.ErrorIs(t, err, ErrUnknownID)

	t.Run("ToSimilarityMatrix", func(t *testing.T) {
		sim, err := m.ToSimilarityMatrix(nil)

		require.NoError(t, err)
		assert.Equal(t, 10.0, sim.MaxValue())

		d := sim.Dissimilarities()

		assert.InDelta(t, 5.0, d.At(0, 1), 1e-12)
		assert.InDelta(t, 10.0, d.At(0, 2), 1e-12)
		assert.InDelta(t, 5.0, d.At(1, 2), 1e-12)
		assert.InDelta(t, 0.0, d.At(2, 2), 1e-12)
	})
	t.Run("Manhattan", func(t *testing.T) {
		sim, err := m.ToSimilarityMatrix(clusters.ManhattanDistance)

		require.NoError(t, err)
		assert.InDelta(t, 7.0, sim.Dissimilarities().At(0, 1), 1e-12)
	})
	t.Run("InvalidShape", func(t *testing.T) {
		_, err := NewDataMatrix([]string{"a", "b"}, [][]float64{{1, 2}, {1}})
		assert.ErrorIs(t, err, ErrShape)
	})
}
