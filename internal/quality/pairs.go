package quality

import (
	"context"
	"math"

	"github.com/photoprism/clusteval/internal/clustering"
)

// PairCounts holds the number of item pairs per agreement class between a
// candidate clustering and a gold standard.
type PairCounts struct {
	TP int64 // same cluster in both
	FN int64 // same cluster in the gold standard only
	TN int64 // different clusters in both
	FP int64 // same cluster in the candidate only
}

// Total returns the number of pairs.
func (c PairCounts) Total() int64 {
	return c.TP + c.FN + c.TN + c.FP
}

// ratio returns a/b, NaN if b is zero.
func ratio(a, b int64) float64 {
	if b == 0 {
		return math.NaN()
	}

	return float64(a) / float64(b)
}

// CountPairs classifies all unordered pairs of items that both clusterings
// have in common, comparing the primary memberships.
func CountPairs(ctx context.Context, candidate, gold *clustering.Clustering) (result PairCounts, err error) {
	c, g := clustering.Restrict(candidate, gold)

	ids := c.ItemIDs()
	n := len(ids)

	if n < 2 {
		return result, nil
	}

	inCandidate := make([]string, n)
	inGold := make([]string, n)

	for i, id := range ids {
		inCandidate[i] = c.Primary(id)
		inGold[i] = g.Primary(id)
	}

	for i := 0; i < n; i++ {
		if err = ctx.Err(); err != nil {
			return PairCounts{}, err
		}

		for j := i + 1; j < n; j++ {
			sameGold := inGold[i] == inGold[j]
			sameCandidate := inCandidate[i] == inCandidate[j]

			switch {
			case sameGold && sameCandidate:
				result.TP++
			case sameGold:
				result.FN++
			case sameCandidate:
				result.FP++
			default:
				result.TN++
			}
		}
	}

	return result, nil
}

// ContingencyTable holds the fuzzy weighted overlap of gold standard classes
// (rows) and candidate clusters (columns).
type ContingencyTable struct {
	Classes     []string
	Clusters    []string
	Counts      [][]float64
	ClassSums   []float64
	ClusterSums []float64
	Items       int
}

// Contingency returns the contingency table of two clusterings restricted to
// the items they have in common. An entry sums min(gold, candidate)
// coefficients over the shared items.
func Contingency(candidate, gold *clustering.Clustering) *ContingencyTable {
	c, g := clustering.Restrict(candidate, gold)

	t := &ContingencyTable{
		Classes:  g.ClusterNames(),
		Clusters: c.ClusterNames(),
		Items:    g.Size(),
	}

	classIndex := indexOf(t.Classes)
	clusterIndex := indexOf(t.Clusters)

	t.Counts = make([][]float64, len(t.Classes))

	for i := range t.Counts {
		t.Counts[i] = make([]float64, len(t.Clusters))
	}

	for _, id := range g.ItemIDs() {
		classes := g.ClusterForItem(id)
		clusters := c.ClusterForItem(id)

		for _, cl := range clusters.Names() {
			for _, cls := range classes.Names() {
				t.Counts[classIndex[cls]][clusterIndex[cl]] += math.Min(clusters[cl], classes[cls])
			}
		}
	}

	t.ClassSums = make([]float64, len(t.Classes))
	t.ClusterSums = make([]float64, len(t.Clusters))

	for i, row := range t.Counts {
		for j, v := range row {
			t.ClassSums[i] += v
			t.ClusterSums[j] += v
		}
	}

	return t
}

func indexOf(names []string) map[string]int {
	result := make(map[string]int, len(names))

	for i, name := range names {
		result[name] = i
	}

	return result
}
