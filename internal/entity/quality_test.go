package entity

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/photoprism/clusteval/internal/quality"
)

func TestNewRunUID(t *testing.T) {
	a := NewRunUID()
	b := NewRunUID()

	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

func TestNewQuality(t *testing.T) {
	t.Run("Value", func(t *testing.T) {
		m := NewQuality("run", "job", quality.F1, quality.NewValue(0.8))

		assert.Equal(t, "F1", m.MeasureName)
		assert.Equal(t, "0.8", m.QualityValue)
		assert.Equal(t, quality.NewValue(0.8), m.Value())
	})
	t.Run("NotTerminated", func(t *testing.T) {
		m := NewQuality("run", "job", quality.F1, quality.NotTerminated())

		assert.Equal(t, "NT", m.QualityValue)
		assert.False(t, m.Value().Terminated)
	})
	t.Run("Fallback", func(t *testing.T) {
		v := quality.NewValue(math.Inf(-1))
		v.Fallback = true

		m := NewQuality("run", "job", quality.DunnIndexR, v)

		assert.True(t, m.Fallback)
		assert.True(t, m.Value().Fallback)
		assert.True(t, math.IsInf(m.Value().Value, -1))
	})
	t.Run("Params", func(t *testing.T) {
		m := NewQuality("run", "job", quality.FBeta, quality.NewValue(0.9))
		m.SetParams(quality.Parameters{"beta": "2"})

		assert.Equal(t, `{"beta":"2"}`, m.ParamsJSON)
		assert.Equal(t, quality.Parameters{"beta": "2"}, m.Params())

		m.SetParams(nil)
		assert.Equal(t, "", m.ParamsJSON)
		assert.Empty(t, m.Params())
	})
}

func TestQuality_Create(t *testing.T) {
	runUID := NewRunUID()

	for _, q := range []*Quality{
		NewQuality(runUID, "create", quality.RandIndex, quality.NewValue(0.5)),
		NewQuality(runUID, "create", quality.FPR, quality.NewValue(math.NaN())),
		NewQuality(runUID, "create", quality.F1, quality.NotTerminated()),
	} {
		require.NoError(t, q.Create())
		assert.NotZero(t, q.ID)
	}

	result, err := FindQualities(runUID)

	require.NoError(t, err)
	require.Len(t, result, 3)

	assert.Equal(t, "F1", result[0].MeasureName)
	assert.Equal(t, "FPR", result[1].MeasureName)
	assert.True(t, result[1].Value().IsNaN())
	assert.True(t, result[1].Value().Terminated)
	assert.Equal(t, "RandIndex", result[2].MeasureName)
	assert.Equal(t, 0.5, result[2].Value().Value)

	m, err := result[2].Measure()
	require.NoError(t, err)
	assert.Equal(t, quality.RandIndex.Name(), m.Name())

	result[2].QualityValue = "0.75"
	require.NoError(t, result[2].Save())

	result, err = FindQualities(runUID)
	require.NoError(t, err)
	assert.Equal(t, 0.75, result[2].Value().Value)

	none, err := FindQualities("missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestBestQuality(t *testing.T) {
	save := func(measure quality.Measure, v quality.Value) string {
		runUID := NewRunUID()
		require.NoError(t, NewQuality(runUID, "best", measure, v).Create())
		return runUID
	}

	t.Run("HigherIsBetter", func(t *testing.T) {
		save(quality.VMeasure, quality.NewValue(0.3))
		best := save(quality.VMeasure, quality.NewValue(0.9))
		save(quality.VMeasure, quality.NewValue(math.NaN()))
		save(quality.VMeasure, quality.NotTerminated())

		q, err := BestQuality("V-Measure")

		require.NoError(t, err)
		assert.Equal(t, best, q.RunUID)
		assert.Equal(t, 0.9, q.Value().Value)
	})
	t.Run("LowerIsBetter", func(t *testing.T) {
		save(quality.DaviesBouldinIndexR, quality.NewValue(1.5))
		best := save(quality.DaviesBouldinIndexR, quality.NewValue(0.2))
		save(quality.DaviesBouldinIndexR, quality.NewValue(3))

		q, err := BestQuality("DaviesBouldinIndexR")

		require.NoError(t, err)
		assert.Equal(t, best, q.RunUID)
	})
	t.Run("FallbackTie", func(t *testing.T) {
		fallback := quality.NewValue(math.Inf(-1))
		fallback.Fallback = true

		save(quality.DunnIndexR, fallback)
		best := save(quality.DunnIndexR, quality.NewValue(math.Inf(-1)))
		save(quality.DunnIndexR, fallback)

		q, err := BestQuality("DunnIndexR")

		require.NoError(t, err)
		assert.Equal(t, best, q.RunUID)
		assert.False(t, q.Fallback)
	})
	t.Run("NotFound", func(t *testing.T) {
		_, err := BestQuality("Specificity")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
	t.Run("UnknownMeasure", func(t *testing.T) {
		_, err := BestQuality("Modularity")
		assert.ErrorIs(t, err, quality.ErrUnknownMeasure)
	})
	t.Run("BestQualities", func(t *testing.T) {
		result, err := BestQualities()

		require.NoError(t, err)

		names := make(map[string]string)

		for _, q := range result {
			names[q.MeasureName] = q.QualityValue
		}

		assert.Equal(t, "0.9", names["VMeasure"])
		assert.Equal(t, "0.2", names["DaviesBouldinIndexR"])
	})
}

func TestRuns(t *testing.T) {
	runUID := NewRunUID()

	require.NoError(t, NewQuality(runUID, "runs", quality.RandIndex, quality.NewValue(1)).Create())
	require.NoError(t, NewQuality(runUID, "runs", quality.F1, quality.NewValue(1)).Create())

	runs, err := Runs(1)

	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, Run{RunUID: runUID, JobName: "runs", Measures: 2}, runs[0])

	deleted, err := DeleteRun(runUID)

	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	result, err := FindQualities(runUID)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestQuality_MarshalJSON(t *testing.T) {
	m := NewQuality("run", "job", quality.FBeta, quality.NewValue(0.5))
	m.SetParams(quality.Parameters{"beta": "0.5"})

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &result))

	assert.Equal(t, "FBeta", result["Measure"])
	assert.Equal(t, "0.5", result["Value"])
	assert.Equal(t, "job", result["Job"])
	assert.Equal(t, map[string]interface{}{"beta": "0.5"}, result["Params"])
	assert.NotContains(t, result, "JobHash")
}
