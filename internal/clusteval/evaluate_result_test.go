package clusteval

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/photoprism/clusteval/internal/quality"
)

func TestEvaluateResult_Add(t *testing.T) {
	var r EvaluateResult

	fallback := quality.NewValue(math.Inf(-1))
	fallback.Fallback = true

	r.Add(MeasureResult{Measure: "RandIndex", Value: quality.NewValue(0.5)})
	r.Add(MeasureResult{Measure: "DunnIndexR", Value: fallback})
	r.Add(MeasureResult{Measure: "Silhouette", Value: quality.NotTerminated(), Err: errors.New("failed")})

	assert.Len(t, r.Values, 3)
	assert.Equal(t, 2, r.Evaluated)
	assert.Equal(t, 1, r.Fallbacks)
	assert.Equal(t, 1, r.Failed)

	_, ok := r.Value("Silhouette")
	assert.False(t, ok)

	v, ok := r.Value("rand index")
	assert.True(t, ok)
	assert.Equal(t, 0.5, v.Value)
}

func TestBest(t *testing.T) {
	result := func(measure string, v quality.Value) EvaluateResult {
		var r EvaluateResult
		r.Add(MeasureResult{Measure: measure, Value: v})
		return r
	}

	results := []EvaluateResult{
		result("RandIndex", quality.NewValue(0.5)),
		result("RandIndex", quality.NewValue(0.9)),
		result("RandIndex", quality.NotTerminated()),
		result("FPR", quality.NewValue(0.4)),
		result("FPR", quality.NewValue(0.1)),
	}

	i, err := Best("RandIndex", results)
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	i, err = Best("False Positive Rate", results)
	require.NoError(t, err)
	assert.Equal(t, 4, i)

	_, err = Best("VMeasure", results)
	assert.Error(t, err)

	_, err = Best("Modularity", results)
	assert.ErrorIs(t, err, quality.ErrUnknownMeasure)
}
