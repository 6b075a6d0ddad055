package quality

import (
	"context"
	"errors"
	"math"

	"github.com/photoprism/clusteval/internal/clustering"
	"github.com/photoprism/clusteval/internal/coproc"
	"github.com/photoprism/clusteval/internal/event"
)

// rMeasure delegates the computation to the co-processor. The assign
// function stores the input variables, the statements compute the value.
type rMeasure struct {
	info
	assign     func(e coproc.Engine, in Input) error
	statements string
	// minimal is set if less than two clusters yield the minimum.
	minimal bool
}

func (m rMeasure) Quality(ctx context.Context, in Input) (Value, error) {
	if m.minimal && in.Clustering.NumClusters() < 2 {
		return NewValue(m.min), nil
	}

	if in.Clustering.Size() == 0 {
		return m.fallback(coproc.ErrNoResult), nil
	}

	e := in.Engine

	if e == nil {
		e = coproc.NewSession()
	}

	if err := m.assign(e, in); err != nil {
		return NotTerminated(), err
	}

	r, err := e.Eval(ctx, m.statements)

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return NotTerminated(), err
	}

	v := math.NaN()

	if err == nil {
		v, err = r.Float()
	}

	if err == nil && math.IsNaN(v) {
		err = coproc.ErrNoResult
	}

	if err != nil {
		return m.fallback(err), nil
	}

	return NewValue(v), nil
}

// withMinimal returns a copy that yields the minimum for less than two
// clusters.
func (m rMeasure) withMinimal() rMeasure {
	m.minimal = true
	return m
}

// fallback returns the worst bound of the measure, flagged so that it can be
// told apart from a computed value.
func (m rMeasure) fallback(err error) Value {
	v := NewValue(m.worst())
	v.Fallback = true

	log.Warnf("quality: %s returned no result (%s), using %s", m.name, err, v)

	event.Publish("quality.fallback", event.Data{
		"measure": m.name,
		"error":   err.Error(),
		"value":   v.String(),
	})

	return v
}

// labels numbers the clusters from 1 in name order.
func labels(c *clustering.Clustering) map[string]int {
	result := make(map[string]int, c.NumClusters())

	for i, name := range c.ClusterNames() {
		result[name] = i + 1
	}

	return result
}

// assignDissimilarities stores the dissimilarities of the clustered items
// as "sim" and their primary clusters as "clusterIds", in matrix order.
func assignDissimilarities(m Measure) func(e coproc.Engine, in Input) error {
	return func(e coproc.Engine, in Input) error {
		sim, err := similarities(m, in)

		if err != nil {
			return err
		}

		sub, err := sim.Sub(in.Clustering.ItemIDs())

		if err != nil {
			return newError(m, ErrUnknownItem)
		}

		ids := sub.IDList()
		clusterIds := make([]int, len(ids))
		l := labels(in.Clustering)

		for i, id := range ids {
			clusterIds[i] = l[in.Clustering.Primary(id)]
		}

		if err = e.Assign("clusterIds", clusterIds); err != nil {
			return err
		}

		return e.Assign("sim", sub.Dissimilarities())
	}
}

// assignPartitions stores the primary clusters of the common items as
// "clusterIds" and "goldstandardIds".
func assignPartitions(e coproc.Engine, in Input) error {
	c, g := clustering.Restrict(in.Clustering, in.GoldStandard)

	ids := c.ItemIDs()
	clusterIds := make([]int, len(ids))
	goldIds := make([]int, len(ids))
	cl, gl := labels(c), labels(g)

	for i, id := range ids {
		clusterIds[i] = cl[c.Primary(id)]
		goldIds[i] = gl[g.Primary(id)]
	}

	if err := e.Assign("clusterIds", clusterIds); err != nil {
		return err
	}

	return e.Assign("goldstandardIds", goldIds)
}

// assignFuzzy additionally stores the two largest membership coefficients
// of every item as "fuzzyCoeffs" and the "alpha" parameter.
func assignFuzzy(m Measure) func(e coproc.Engine, in Input) error {
	return func(e coproc.Engine, in Input) error {
		sim, err := similarities(m, in)

		if err != nil {
			return err
		}

		sub, err := sim.Sub(in.Clustering.ItemIDs())

		if err != nil {
			return newError(m, ErrUnknownItem)
		}

		ids := sub.IDList()
		clusterIds := make([]int, len(ids))
		coeffs := make([][]float64, len(ids))
		l := labels(in.Clustering)

		for i, id := range ids {
			name, first, second := in.Clustering.ClusterForItem(id).TopTwo()
			clusterIds[i] = l[name]
			coeffs[i] = []float64{first, second}
		}

		if len(ids) > 0 {
			if err = e.Assign("fuzzyCoeffs", coeffs); err != nil {
				return err
			}
		}

		if err = e.Assign("alpha", in.Params.Float("alpha", 1)); err != nil {
			return err
		}

		if err = e.Assign("clusterIds", clusterIds); err != nil {
			return err
		}

		return e.Assign("sim", sub.Dissimilarities())
	}
}

const (
	scatterStatement = "library(clv)\ndiss <- cls.scatt.diss.mx(sim, clusterIds)\n"
	stdExtStatement  = "library(clv)\nstdext <- std.ext(clusterIds, goldstandardIds)\n"
)

var DunnIndexR Measure = newRMeasure(info{
	name:  "DunnIndexR",
	alias: "Dunn Index (R)",
	class: "DunnIndexRClusteringQualityMeasure",
	min:   math.Inf(-1),
	max:   math.Inf(1),
	data:  true,
}, nil, scatterStatement+"clv.Dunn(diss, 'average', 'average')")

var DaviesBouldinIndexR Measure = newRMeasure(info{
	name:          "DaviesBouldinIndexR",
	alias:         "Davies-Bouldin Index (R)",
	class:         "DaviesBouldinIndexRClusteringQualityMeasure",
	min:           math.Inf(-1),
	max:           math.Inf(1),
	data:          true,
	lowerIsBetter: true,
}, nil, scatterStatement+"clv.Davies.Bouldin(diss, 'average', 'average')")

var RandIndexR Measure = newRMeasure(info{
	name:  "RandIndexR",
	alias: "Rand Index (R)",
	class: "RandIndexRClusteringQualityMeasure",
	min:   0,
	max:   1,
	gold:  true,
}, assignPartitions, stdExtStatement+"clv.Rand(stdext)")

var JaccardIndexR Measure = newRMeasure(info{
	name:  "JaccardIndexR",
	alias: "Jaccard Index (R)",
	class: "JaccardIndexRClusteringQualityMeasure",
	min:   0,
	max:   1,
	gold:  true,
}, assignPartitions, stdExtStatement+"clv.Jaccard(stdext)")

var FowlkesMallowsIndexR Measure = newRMeasure(info{
	name:  "FowlkesMallowsIndexR",
	alias: "Fowlkes-Mallows Index (R)",
	class: "FowlkesMallowsIndexRClusteringQualityMeasure",
	min:   0,
	max:   1,
	gold:  true,
}, assignPartitions, stdExtStatement+"clv.Folkes.Mallows(stdext)")

var SilhouetteValueR Measure = newRMeasure(info{
	name:  "SilhouetteValueR",
	alias: "Silhouette Value (R)",
	class: "SilhouetteValueRClusteringQualityMeasure",
	min:   -1,
	max:   1,
	data:  true,
}, nil, "library(cluster)\nsil <- silhouette(x=clusterIds, dmatrix=sim)\navg.width(sil)").withMinimal()

var SilhouetteValueGlobalR Measure = newRMeasure(info{
	name:  "SilhouetteValueGlobalR",
	alias: "Silhouette Value Global (R)",
	class: "SilhouetteValueGlobalRClusteringQualityMeasure",
	min:   -1,
	max:   1,
	data:  true,
}, nil, "silhouette.global(sim, clusterIds)").withMinimal()

var SilhouetteValueFuzzyR Measure = newRMeasure(info{
	name:  "SilhouetteValueFuzzyR",
	alias: "Silhouette Value Fuzzy (R)",
	class: "SilhouetteValueFuzzyRClusteringQualityMeasure",
	min:   -1,
	max:   1,
	fuzzy: true,
	data:  true,
}, nil, "library(cluster)\nsil <- silhouette(x=clusterIds, dmatrix=sim)\nfuzzy.width(sil, fuzzyCoeffs, alpha)").withMinimal()

// newRMeasure returns a co-processor measure. A nil assign function selects
// the dissimilarity input, or the fuzzy input for fuzzy measures.
func newRMeasure(i info, assign func(e coproc.Engine, in Input) error, statements string) rMeasure {
	m := rMeasure{info: i, statements: statements}

	switch {
	case assign != nil:
		m.assign = assign
	case i.fuzzy:
		m.assign = assignFuzzy(m)
	default:
		m.assign = assignDissimilarities(m)
	}

	return m
}
