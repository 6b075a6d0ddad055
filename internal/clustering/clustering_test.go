package clustering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClustering_Add(t *testing.T) {
	t.Run("Hard", func(t *testing.T) {
		c := New()

		require.NoError(t, c.Add("1", "a", 1))
		require.NoError(t, c.Add("1", "b", 1))
		require.NoError(t, c.Add("2", "c", 1))

		assert.Equal(t, 3, c.Size())
		assert.Equal(t, 3.0, c.FuzzySize())
		assert.Equal(t, 2, c.NumClusters())
		assert.Equal(t, []string{"a", "b", "c"}, c.ItemIDs())
		assert.Equal(t, 2, c.Cluster("1").Size())
		assert.Equal(t, 2.0, c.Cluster("1").FuzzySize())
		assert.False(t, c.IsFuzzy())
	})
	t.Run("Fuzzy", func(t *testing.T) {
		c := New()

		require.NoError(t, c.Add("1", "a", 0.7))
		require.NoError(t, c.Add("2", "a", 0.3))
		require.NoError(t, c.Add("2", "b", 1))

		assert.Equal(t, 2, c.Size())
		assert.InDelta(t, 2.0, c.FuzzySize(), 1e-12)
		assert.InDelta(t, 1.3, c.Cluster("2").FuzzySize(), 1e-12)
		assert.Equal(t, Memberships{"1": 0.7, "2": 0.3}, c.ClusterForItem("a"))
		assert.True(t, c.IsFuzzy())
	})
	t.Run("Replace", func(t *testing.T) {
		c := New()

		require.NoError(t, c.Add("1", "a", 0.5))
		require.NoError(t, c.Add("1", "a", 1))

		assert.Equal(t, 1.0, c.FuzzySize())
		assert.Equal(t, 1.0, c.Cluster("1").FuzzySize())
	})
	t.Run("ZeroIgnored", func(t *testing.T) {
		c := New()

		require.NoError(t, c.Add("1", "a", 0))

		assert.Equal(t, 0, c.Size())
		assert.Nil(t, c.Cluster("1"))
	})
	t.Run("Invalid", func(t *testing.T) {
		c := New()

		assert.ErrorIs(t, c.Add("", "a", 1), ErrEmptyClusterName)
		assert.ErrorIs(t, c.Add("1", "", 1), ErrEmptyItemID)
		assert.ErrorIs(t, c.Add("1", "a", -1), ErrInvalidCoef)
	})
}

func TestClustering_ClusterForItem(t *testing.T) {
	c := MustParse("a:0.6,b:1;a:0.4,c:1")

	for _, id := range c.ItemIDs() {
		m := c.ClusterForItem(id)

		for name, coef := range m {
			assert.Equal(t, coef, c.Cluster(name).Coefficient(id))
		}
	}

	assert.Nil(t, c.ClusterForItem("x"))

	m := c.ClusterForItem("a")
	m["1"] = 0
	assert.Equal(t, 0.6, c.Cluster("1").Coefficient("a"))
}

func TestClustering_RemoveItem(t *testing.T) {
	c := MustParse("a:0.5,b:1;a:0.5;c:1")

	assert.True(t, c.RemoveItem("a"))
	assert.False(t, c.RemoveItem("a"))
	assert.Equal(t, []string{"b", "c"}, c.ItemIDs())
	assert.Equal(t, 2.0, c.FuzzySize())
	assert.Nil(t, c.Cluster("2"))
	assert.Equal(t, []string{"1", "3"}, c.ClusterNames())
}

func TestClustering_RemoveItemFrom(t *testing.T) {
	c := MustParse("a:0.5,b:1;a:0.5")

	assert.True(t, c.RemoveItemFrom("a", "2"))
	assert.True(t, c.Contains("a"))
	assert.Equal(t, Memberships{"1": 0.5}, c.ClusterForItem("a"))
	assert.False(t, c.RemoveItemFrom("a", "2"))

	assert.True(t, c.RemoveItemFrom("a", "1"))
	assert.False(t, c.Contains("a"))
	assert.Equal(t, 1.0, c.FuzzySize())
}

func TestClustering_Clone(t *testing.T) {
	c := MustParse("a,b;c")
	clone := c.Clone()

	require.True(t, clone.RemoveItem("a"))

	assert.Equal(t, 3, c.Size())
	assert.Equal(t, 2, c.Cluster("1").Size())
	assert.Equal(t, 2, clone.Size())
}

func TestRestrict(t *testing.T) {
	candidate := MustParse("a,b,x;c")
	gold := MustParse("a,b;c,y")

	c, g := Restrict(candidate, gold)

	assert.Equal(t, []string{"a", "b", "c"}, c.ItemIDs())
	assert.Equal(t, []string{"a", "b", "c"}, g.ItemIDs())
	assert.Equal(t, 1, g.Cluster("2").Size())

	// Inputs are not modified.
	assert.Equal(t, 4, candidate.Size())
	assert.Equal(t, 4, gold.Size())

	t.Run("Idempotent", func(t *testing.T) {
		c2, g2 := Restrict(c, g)

		assert.Equal(t, c.String(), c2.String())
		assert.Equal(t, g.String(), g2.String())
	})
	t.Run("Disjoint", func(t *testing.T) {
		c, g := Restrict(MustParse("a,b"), MustParse("x,y"))

		assert.Equal(t, 0, c.Size())
		assert.Equal(t, 0, g.Size())
		assert.Equal(t, 0, c.NumClusters())
	})
}

func TestClustering_ToHard(t *testing.T) {
	c := MustParse("a:0.7,b:1;a:0.3,c:0.5;c:0.5")

	hard := c.ToHard()

	assert.False(t, hard.IsFuzzy())
	assert.Equal(t, "1", hard.Primary("a"))
	assert.Equal(t, "2", hard.Primary("c"))
	assert.Equal(t, 3.0, hard.FuzzySize())
}

func TestClustering_Threshold(t *testing.T) {
	t.Run("Redistribute", func(t *testing.T) {
		c := MustParse("a:0.6,b:1;a:0.3;a:0.1")

		result := c.Threshold(0.2)

		m := result.ClusterForItem("a")
		require.Len(t, m, 2)
		assert.InDelta(t, 0.65, m["1"], 1e-12)
		assert.InDelta(t, 0.35, m["2"], 1e-12)
		assert.Nil(t, result.Cluster("3"))
		assert.InDelta(t, 2.0, result.FuzzySize(), 1e-12)

		// Input is not modified.
		assert.Equal(t, 0.6, c.Cluster("1").Coefficient("a"))
	})
	t.Run("DropItem", func(t *testing.T) {
		c := MustParse("a:0.1,b:1;a:0.1")

		result := c.Threshold(0.5)

		assert.False(t, result.Contains("a"))
		assert.Equal(t, []string{"b"}, result.ItemIDs())
	})
	t.Run("Zero", func(t *testing.T) {
		c := MustParse("a:0.6;a:0.4")

		assert.Equal(t, c.String(), c.Threshold(0).String())
	})
}
