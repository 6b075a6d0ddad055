package quality

import (
	"context"
	"math"

	"github.com/photoprism/clusteval/internal/clustering"
)

// fBeta matches every gold standard cluster with its best candidate cluster.
// With a fixed beta, the "beta" parameter is ignored.
type fBeta struct {
	info
	beta float64
}

func (m fBeta) Quality(ctx context.Context, in Input) (Value, error) {
	beta := m.beta

	if beta == 0 {
		beta = in.Params.Float("beta", 1)
	}

	if beta <= 0 || math.IsNaN(beta) || math.IsInf(beta, 0) {
		log.Warnf("quality: invalid beta %g, using 1", beta)
		beta = 1
	}

	c, g := clustering.Restrict(in.Clustering, in.GoldStandard)

	total := c.FuzzySize()

	if total == 0 {
		return NewValue(math.NaN()), nil
	}

	var sum float64

	for _, gc := range g.Clusters() {
		if err := ctx.Err(); err != nil {
			return NotTerminated(), err
		}

		sum += bestF(c, gc, beta) * gc.FuzzySize()
	}

	return NewValue(sum / total), nil
}

// bestF returns the highest F score of a gold standard cluster against any
// candidate cluster. A singleton without overlap scores 1.
func bestF(c *clustering.Clustering, gc *clustering.Cluster, beta float64) float64 {
	var best, bestCommon float64

	b2 := beta * beta

	for _, cl := range c.Clusters() {
		tp := overlap(gc, cl)

		if tp == 0 {
			continue
		}

		precision := tp / cl.FuzzySize()
		recall := tp / gc.FuzzySize()

		if f := (1 + b2) * precision * recall / (b2*precision + recall); f > best {
			best = f
			bestCommon = tp
		}
	}

	if bestCommon == 0 && gc.Size() == 1 {
		return 1
	}

	return best
}

// overlap returns the sum of min coefficients over the items of both clusters.
func overlap(a, b *clustering.Cluster) (result float64) {
	if a.Size() > b.Size() {
		a, b = b, a
	}

	for _, id := range a.ItemIDs() {
		if b.Contains(id) {
			result += math.Min(a.Coefficient(id), b.Coefficient(id))
		}
	}

	return result
}

var F1 Measure = fBeta{
	info: info{
		name:  "F1",
		alias: "TransClust F1",
		class: "TransClustFClusteringQualityMeasure",
		min:   0,
		max:   1,
		gold:  true,
	},
	beta: 1,
}

var F2 Measure = fBeta{
	info: info{
		name:  "F2",
		alias: "TransClust F2",
		class: "TransClustF2ClusteringQualityMeasure",
		min:   0,
		max:   1,
		gold:  true,
	},
	beta: 2,
}

var FBeta Measure = fBeta{
	info: info{
		name:  "FBeta",
		alias: "F-beta",
		min:   0,
		max:   1,
		gold:  true,
	},
}
