package coproc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSilhouette(t *testing.T) {
	s := lineSession(t)

	r, err := s.Eval(context.Background(), "sil <- silhouette(x=clusterIds, dmatrix=sim)")
	require.NoError(t, err)

	m, err := r.Matrix()
	require.NoError(t, err)

	assert.Equal(t, 1.0, m.At(0, 0))
	assert.Equal(t, 2.0, m.At(0, 1))
	assert.InDelta(t, 9.5/10.5, m.At(0, 2), 1e-12)
	assert.InDelta(t, 8.5/9.5, m.At(1, 2), 1e-12)
	assert.Equal(t, 2.0, m.At(3, 0))
	assert.Equal(t, 1.0, m.At(3, 1))

	assert.InDelta(t, (9.5/10.5+8.5/9.5)/2, evalFloat(t, s, "avg.width(sil)"), 1e-12)

	t.Run("Singleton", func(t *testing.T) {
		require.NoError(t, s.Assign("ids", []int{1, 1, 1, 2}))

		r, err := s.Eval(context.Background(), "silhouette(ids, sim)")
		require.NoError(t, err)

		m, err := r.Matrix()
		require.NoError(t, err)
		assert.Equal(t, 0.0, m.At(3, 2))
	})
	t.Run("SingleCluster", func(t *testing.T) {
		require.NoError(t, s.Assign("one", []int{1, 1, 1, 1}))

		_, err := s.Eval(context.Background(), "silhouette(one, sim)")
		assert.ErrorIs(t, err, ErrNoResult)
	})
}

func TestSilhouetteGlobal(t *testing.T) {
	s := lineSession(t)

	assert.InDelta(t, (10.0/10.5+9.0/9.5)/2, evalFloat(t, s, "silhouette.global(sim, clusterIds)"), 1e-12)

	require.NoError(t, s.Assign("one", []int{1, 1, 1, 1}))
	assert.Equal(t, -1.0, evalFloat(t, s, "silhouette.global(sim, one)"))

	require.NoError(t, s.Assign("each", []int{1, 2, 3, 4}))
	assert.Equal(t, 0.0, evalFloat(t, s, "silhouette.global(sim, each)"))
}

func TestFuzzyWidth(t *testing.T) {
	s := lineSession(t)

	require.NoError(t, s.Assign("crisp", [][]float64{{1, 0}, {1, 0}, {1, 0}, {1, 0}}))
	require.NoError(t, s.Assign("fuzzy", [][]float64{{1, 0}, {0.5, 0.5}, {0.5, 0.5}, {1, 0}}))
	require.NoError(t, s.Assign("tied", [][]float64{{0.5, 0.5}, {0.5, 0.5}, {0.5, 0.5}, {0.5, 0.5}}))

	_, err := s.Eval(context.Background(), "sil <- silhouette(x=clusterIds, dmatrix=sim)")
	require.NoError(t, err)

	assert.InDelta(t, evalFloat(t, s, "avg.width(sil)"), evalFloat(t, s, "fuzzy.width(sil, crisp)"), 1e-12)
	assert.InDelta(t, 9.5/10.5, evalFloat(t, s, "fuzzy.width(sil, fuzzy, alpha=2)"), 1e-12)

	w := evalFloat(t, s, "alpha <- 1; sum((col(fuzzy,1)-col(fuzzy,2))^alpha * col(sil,3))/sum((col(fuzzy,1)-col(fuzzy,2))^alpha)")
	assert.InDelta(t, 9.5/10.5, w, 1e-12)

	_, err = s.Eval(context.Background(), "fuzzy.width(sil, tied)")
	assert.ErrorIs(t, err, ErrNoResult)
}
