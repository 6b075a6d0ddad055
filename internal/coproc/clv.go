package coproc

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// partition groups item rows by cluster label.
type partition struct {
	labels  []float64
	members [][]int
	of      []int
}

func newPartition(ids []float64) partition {
	index := make(map[float64]int)

	for _, id := range ids {
		index[id] = 0
	}

	p := partition{of: make([]int, len(ids))}

	for id := range index {
		p.labels = append(p.labels, id)
	}

	sort.Float64s(p.labels)

	for i, id := range p.labels {
		index[id] = i
	}

	p.members = make([][]int, len(p.labels))

	for i, id := range ids {
		c := index[id]
		p.of[i] = c
		p.members[c] = append(p.members[c], i)
	}

	return p
}

func (p partition) k() int {
	return len(p.labels)
}

func checkDissimilarities(d *mat.Dense, ids []float64) error {
	rows, cols := d.Dims()

	if rows != cols {
		return fmt.Errorf("coproc: dissimilarity matrix must be square, got %dx%d", rows, cols)
	}

	if rows != len(ids) {
		return fmt.Errorf("coproc: %d cluster ids for %d matrix rows", len(ids), rows)
	}

	return nil
}

// scatterDissMatrix computes intra and inter cluster distances from a
// dissimilarity matrix and a cluster id vector.
func scatterDissMatrix(ctx context.Context, in args) (interface{}, error) {
	d, err := in.matrix(0, "diss.mx")

	if err != nil {
		return nil, err
	}

	ids, err := in.vector(1, "clust.labels")

	if err != nil {
		return nil, err
	}

	if err = checkDissimilarities(d, ids); err != nil {
		return nil, err
	}

	p := newPartition(ids)
	k := p.k()

	intraSum := make([]float64, k)
	intraMax := make([]float64, k)
	interSum := mat.NewDense(max(k, 1), max(k, 1), nil)
	interMin := mat.NewDense(max(k, 1), max(k, 1), nil)
	interMax := mat.NewDense(max(k, 1), max(k, 1), nil)
	seen := mat.NewDense(max(k, 1), max(k, 1), nil)

	for i := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for j := i + 1; j < len(ids); j++ {
			v := d.At(i, j)
			a, b := p.of[i], p.of[j]

			if a == b {
				intraSum[a] += v
				intraMax[a] = math.Max(intraMax[a], v)
				continue
			}

			interSum.Set(a, b, interSum.At(a, b)+v)
			interSum.Set(b, a, interSum.At(a, b))

			if seen.At(a, b) == 0 || v < interMin.At(a, b) {
				interMin.Set(a, b, v)
				interMin.Set(b, a, v)
			}

			if seen.At(a, b) == 0 || v > interMax.At(a, b) {
				interMax.Set(a, b, v)
				interMax.Set(b, a, v)
			}

			seen.Set(a, b, 1)
			seen.Set(b, a, 1)
		}
	}

	sizes := make([]float64, k)
	intraAvg := make([]float64, k)

	for c, m := range p.members {
		n := float64(len(m))
		sizes[c] = n

		if pairs := n * (n - 1) / 2; pairs > 0 {
			intraAvg[c] = intraSum[c] / pairs
		}
	}

	interAvg := mat.NewDense(max(k, 1), max(k, 1), nil)
	interAvg.Apply(func(a, b int, v float64) float64 {
		if a == b || a >= k || b >= k {
			return 0
		}

		return v / (sizes[a] * sizes[b])
	}, interSum)

	return list{
		"intracls.complete": intraMax,
		"intracls.average":  intraAvg,
		"intercls.single":   interMin,
		"intercls.complete": interMax,
		"intercls.average":  interAvg,
		"cluster.size":      sizes,
		"cluster.labels":    p.labels,
	}, nil
}

// scatter returns the intra and inter cluster distances selected by name.
func scatter(in args, defIntra, defInter string) (intra []float64, inter *mat.Dense, err error) {
	l, err := in.list(0, "index.list")

	if err != nil {
		return nil, nil, err
	}

	intraName, err := in.stringOr(1, "intracls", defIntra)

	if err != nil {
		return nil, nil, err
	}

	interName, err := in.stringOr(2, "intercls", defInter)

	if err != nil {
		return nil, nil, err
	}

	v, ok := l["intracls."+intraName]

	if !ok {
		return nil, nil, fmt.Errorf("coproc: unsupported intracls %q in %s()", intraName, in.fn)
	}

	if intra, err = toVector(v); err != nil {
		return nil, nil, err
	}

	if v, ok = l["intercls."+interName]; !ok {
		return nil, nil, fmt.Errorf("coproc: unsupported intercls %q in %s()", interName, in.fn)
	}

	if inter, err = toMatrix(v); err != nil {
		return nil, nil, err
	}

	return intra, inter, nil
}

// dunn returns the smallest inter cluster distance divided by the largest
// intra cluster distance.
func dunn(ctx context.Context, in args) (interface{}, error) {
	intra, inter, err := scatter(in, "complete", "single")

	if err != nil {
		return nil, err
	}

	k := len(intra)

	if k < 2 {
		return nil, ErrNoResult
	}

	minInter := math.Inf(1)

	for a := 0; a < k; a++ {
		for b := a + 1; b < k; b++ {
			minInter = math.Min(minInter, inter.At(a, b))
		}
	}

	return minInter / floats.Max(intra), nil
}

// daviesBouldin returns the mean over all clusters of the largest scatter
// ratio to any other cluster.
func daviesBouldin(ctx context.Context, in args) (interface{}, error) {
	intra, inter, err := scatter(in, "complete", "single")

	if err != nil {
		return nil, err
	}

	k := len(intra)

	if k < 2 {
		return nil, ErrNoResult
	}

	ratios := make([]float64, k)

	for a := 0; a < k; a++ {
		ratios[a] = math.Inf(-1)

		for b := 0; b < k; b++ {
			if a == b {
				continue
			}

			ratios[a] = math.Max(ratios[a], (intra[a]+intra[b])/inter.At(a, b))
		}
	}

	return stats.Mean(ratios)
}

// stdExt counts the item pairs by agreement of two cluster id vectors:
// SS (same in both), SD (same in the first only), DS and DD.
func stdExt(ctx context.Context, in args) (interface{}, error) {
	a, err := in.vector(0, "cls1")

	if err != nil {
		return nil, err
	}

	b, err := in.vector(1, "cls2")

	if err != nil {
		return nil, err
	}

	if len(a) != len(b) {
		return nil, fmt.Errorf("coproc: cluster id vectors differ in length, %d and %d", len(a), len(b))
	}

	var ss, sd, ds, dd float64

	for i := range a {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for j := i + 1; j < len(a); j++ {
			switch same1, same2 := a[i] == a[j], b[i] == b[j]; {
			case same1 && same2:
				ss++
			case same1:
				sd++
			case same2:
				ds++
			default:
				dd++
			}
		}
	}

	return list{"SS": ss, "SD": sd, "DS": ds, "DD": dd}, nil
}

func extCounts(in args) (ss, sd, ds, dd float64, err error) {
	l, err := in.list(0, "external.ind")

	if err != nil {
		return 0, 0, 0, 0, err
	}

	values := make([]float64, 4)

	for i, name := range []string{"SS", "SD", "DS", "DD"} {
		v, ok := l[name]

		if !ok {
			return 0, 0, 0, 0, fmt.Errorf("coproc: %w %s in %s()", ErrUnknownName, name, in.fn)
		}

		if values[i], err = (Result{value: v}).Float(); err != nil {
			return 0, 0, 0, 0, err
		}
	}

	return values[0], values[1], values[2], values[3], nil
}

func clvRand(ctx context.Context, in args) (interface{}, error) {
	ss, sd, ds, dd, err := extCounts(in)

	if err != nil {
		return nil, err
	}

	return (ss + dd) / (ss + sd + ds + dd), nil
}

func clvJaccard(ctx context.Context, in args) (interface{}, error) {
	ss, sd, ds, _, err := extCounts(in)

	if err != nil {
		return nil, err
	}

	return ss / (ss + sd + ds), nil
}

func clvFolkesMallows(ctx context.Context, in args) (interface{}, error) {
	ss, sd, ds, _, err := extCounts(in)

	if err != nil {
		return nil, err
	}

	return ss / math.Sqrt((ss+sd)*(ss+ds)), nil
}
