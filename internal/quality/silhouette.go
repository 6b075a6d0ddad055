package quality

import (
	"context"
	"math"

	"github.com/montanaflynn/stats"

	"github.com/photoprism/clusteval/internal/clustering"
	"github.com/photoprism/clusteval/internal/dataset"
)

type silhouette struct {
	info
}

// Quality returns the mean silhouette width of all clustered items.
func (m silhouette) Quality(ctx context.Context, in Input) (Value, error) {
	sim, err := similarities(m, in)

	if err != nil {
		return NotTerminated(), err
	}

	c := in.Clustering

	if c.NumClusters() < 2 {
		return NewValue(-1), nil
	}

	clusters := c.Clusters()
	ids := c.ItemIDs()
	widths := make([]float64, 0, len(ids))

	for _, id := range ids {
		if err = ctx.Err(); err != nil {
			return NotTerminated(), err
		}

		w, err := silhouetteWidth(c, clusters, sim, id)

		if err != nil {
			return NotTerminated(), err
		}

		widths = append(widths, w)
	}

	mean, err := stats.Mean(widths)

	if err != nil {
		return NewValue(math.NaN()), nil
	}

	return NewValue(mean), nil
}

// silhouetteWidth returns (b - a) / max(a, b), where a is the dissimilarity
// of the item to its own clusters and b the smallest average dissimilarity
// to any other cluster.
func silhouetteWidth(c *clustering.Clustering, clusters []*clustering.Cluster, sim *dataset.SimilarityMatrix, id string) (float64, error) {
	own := c.ClusterForItem(id)

	if primary, _ := own.Primary(); c.Cluster(primary).Size() <= 1 {
		return 0, nil
	}

	var a float64
	b := math.Inf(1)

	for _, cl := range clusters {
		d, err := avgDissimilarity(sim, id, cl)

		if err != nil {
			return 0, err
		}

		if _, ok := own[cl.Name()]; ok {
			a += d
		} else if d < b {
			b = d
		}
	}

	if math.IsInf(b, 1) {
		return 0, nil
	}

	if a == 0 && b == 0 {
		return 0, nil
	}

	return (b - a) / math.Max(a, b), nil
}

// avgDissimilarity returns the membership weighted average dissimilarity of
// an item to the other items of a cluster.
func avgDissimilarity(sim *dataset.SimilarityMatrix, id string, cl *clustering.Cluster) (float64, error) {
	var sum float64

	for _, other := range cl.ItemIDs() {
		if other == id {
			continue
		}

		s, err := sim.Similarity(id, other)

		if err != nil {
			return 0, err
		}

		sum += (sim.MaxValue() - s) * cl.Coefficient(other)
	}

	size := cl.FuzzySize()

	if cl.Contains(id) {
		size--
	}

	if size <= 0 {
		return 0, nil
	}

	return sum / size, nil
}

// similarities returns the similarity matrix of the input.
func similarities(m Measure, in Input) (*dataset.SimilarityMatrix, error) {
	if in.Data == nil {
		return nil, newError(m, ErrDataRequired)
	}

	sim, ok := in.Data.(*dataset.SimilarityMatrix)

	if !ok {
		return nil, newError(m, ErrIncompatibleFormat)
	}

	return sim, nil
}

var Silhouette Measure = silhouette{
	info: info{
		name:  "Silhouette",
		alias: "Silhouette Value",
		class: "SilhouetteValueClusteringQualityMeasure",
		min:   -1,
		max:   1,
		data:  true,
	},
}
