package quality

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/photoprism/clusteval/internal/clustering"
	"github.com/photoprism/clusteval/internal/event"
)

func TestFind(t *testing.T) {
	tests := map[string]string{
		"RandIndex":                           "RandIndex",
		"rand index":                          "RandIndex",
		"RandIndexClusteringQualityMeasure":   "RandIndex",
		"TransClustFClusteringQualityMeasure": "F1",
		"TransClust F2":                       "F2",
		"f-beta":                              "FBeta",
		"V-Measure":                           "VMeasure",
		"Silhouette Value":                    "Silhouette",
		"Silhouette Value (R)":                "SilhouetteValueR",
		"False Positive Rate":                 "FPR",
		"Fowlkes-Mallows Index (R)":           "FowlkesMallowsIndexR",
		"DunnIndexRClusteringQualityMeasure":  "DunnIndexR",
	}

	for name, expected := range tests {
		t.Run(name, func(t *testing.T) {
			m, err := Find(name)

			require.NoError(t, err)
			assert.Equal(t, expected, m.Name())
		})
	}

	t.Run("Unknown", func(t *testing.T) {
		_, err := Find("Modularity")
		assert.ErrorIs(t, err, ErrUnknownMeasure)
	})
}

func TestMeasures(t *testing.T) {
	all := Measures()

	assert.Len(t, all, 18)
	assert.Len(t, Names(), 18)

	seen := make(map[string]bool)

	for _, m := range all {
		assert.False(t, seen[m.Name()], m.Name())
		seen[m.Name()] = true

		assert.Less(t, m.Minimum(), m.Maximum(), m.Name())
		assert.NotEmpty(t, m.Alias(), m.Name())

		if m.SupportsFuzzy() {
			assert.Equal(t, "SilhouetteValueFuzzyR", m.Name())
		}
	}

	all[0] = nil
	assert.NotNil(t, Measures()[0])
}

func TestFallback(t *testing.T) {
	s := event.Subscribe("quality.fallback")
	defer event.Unsubscribe(s)

	in := Input{Clustering: clustering.MustParse("a,b,c,d"), Data: lineMatrix(t)}

	v, err := Evaluate(context.Background(), DunnIndexR, in)

	require.NoError(t, err)
	assert.True(t, v.Fallback)
	assert.True(t, v.Terminated)
	assert.True(t, math.IsInf(v.Value, -1))

	select {
	case msg := <-s.Receiver:
		assert.Equal(t, "quality.fallback", msg.Name)
		assert.Equal(t, "DunnIndexR", msg.Fields["measure"])
	case <-time.After(time.Second):
		t.Fatal("expected fallback event")
	}

	v, err = Evaluate(context.Background(), DaviesBouldinIndexR, in)

	require.NoError(t, err)
	assert.True(t, v.Fallback)
	assert.True(t, math.IsInf(v.Value, 1))

	t.Run("NaN", func(t *testing.T) {
		// No pair is together in both, so Fowlkes-Mallows is 0/0.
		v, err := Evaluate(context.Background(), FowlkesMallowsIndexR, Input{
			Clustering:   clustering.MustParse("a,b;c"),
			GoldStandard: clustering.MustParse("a;b;c"),
		})

		require.NoError(t, err)
		assert.True(t, v.Fallback)
		assert.Equal(t, 0.0, v.Value)
	})
}
