package quality

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_String(t *testing.T) {
	assert.Equal(t, "0.5", NewValue(0.5).String())
	assert.Equal(t, "-1", NewValue(-1).String())
	assert.Equal(t, "+Inf", NewValue(math.Inf(1)).String())
	assert.Equal(t, "NT", NotTerminated().String())
}

func TestParseValue(t *testing.T) {
	v, err := ParseValue(" 0.75 ")
	require.NoError(t, err)
	assert.Equal(t, NewValue(0.75), v)

	v, err = ParseValue("NT")
	require.NoError(t, err)
	assert.False(t, v.Terminated)

	v, err = ParseValue("-Inf")
	require.NoError(t, err)
	assert.True(t, math.IsInf(v.Value, -1))

	_, err = ParseValue("high")
	assert.Error(t, err)
}

func TestParameters(t *testing.T) {
	t.Run("Float", func(t *testing.T) {
		p := Parameters{"alpha": "2.5", "beta": "x", "gamma": ""}

		assert.Equal(t, 2.5, p.Float("alpha", 1))
		assert.Equal(t, 1.0, p.Float("beta", 1))
		assert.Equal(t, 3.0, p.Float("gamma", 3))
		assert.Equal(t, 4.0, p.Float("delta", 4))
		assert.Equal(t, 4.0, Parameters(nil).Float("delta", 4))
	})
	t.Run("ParseParameters", func(t *testing.T) {
		p, err := ParseParameters(`{"alpha": 2, "beta": "0.5"}`)

		require.NoError(t, err)
		assert.Equal(t, Parameters{"alpha": "2", "beta": "0.5"}, p)
		assert.Equal(t, 0.5, p.Float("beta", 1))

		p, err = ParseParameters("")
		require.NoError(t, err)
		assert.Empty(t, p)

		_, err = ParseParameters(`{"alpha": `)
		assert.Error(t, err)

		_, err = ParseParameters(`[1, 2]`)
		assert.Error(t, err)
	})
	t.Run("Clone", func(t *testing.T) {
		p := Parameters{"alpha": "1"}
		c := p.Clone()
		c["alpha"] = "2"

		assert.Equal(t, "1", p["alpha"])
	})
}
