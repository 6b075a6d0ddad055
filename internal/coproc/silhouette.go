package coproc

import (
	"context"
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// silhouette returns a matrix with one row per item holding its cluster,
// its neighbor cluster and its silhouette width.
func silhouette(ctx context.Context, in args) (interface{}, error) {
	ids, err := in.vector(0, "x")

	if err != nil {
		return nil, err
	}

	d, err := in.matrix(1, "dmatrix")

	if err != nil {
		return nil, err
	}

	if err = checkDissimilarities(d, ids); err != nil {
		return nil, err
	}

	p := newPartition(ids)
	k := p.k()

	if k < 2 {
		return nil, ErrNoResult
	}

	result := mat.NewDense(len(ids), 3, nil)
	sums := make([]float64, k)

	for i := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for c := range sums {
			sums[c] = 0
		}

		for j := range ids {
			if j != i {
				sums[p.of[j]] += d.At(i, j)
			}
		}

		own := p.of[i]
		neighbor := -1
		b := math.Inf(1)

		for c, m := range p.members {
			if c == own {
				continue
			}

			if avg := sums[c] / float64(len(m)); avg < b {
				b = avg
				neighbor = c
			}
		}

		var width float64

		if size := len(p.members[own]); size > 1 {
			a := sums[own] / float64(size-1)

			if m := math.Max(a, b); m > 0 {
				width = (b - a) / m
			}
		}

		result.Set(i, 0, p.labels[own])
		result.Set(i, 1, p.labels[neighbor])
		result.Set(i, 2, width)
	}

	return result, nil
}

// avgWidth returns the mean silhouette width.
func avgWidth(ctx context.Context, in args) (interface{}, error) {
	sil, err := in.matrix(0, "sil")

	if err != nil {
		return nil, err
	}

	if _, cols := sil.Dims(); cols < 3 {
		return nil, fmt.Errorf("coproc: %s() expects a silhouette matrix", in.fn)
	}

	return stats.Mean(mat.Col(nil, 2, sil))
}

// silhouetteGlobal returns the mean silhouette width where the separation of
// an item is its average dissimilarity to all items outside its cluster.
func silhouetteGlobal(ctx context.Context, in args) (interface{}, error) {
	d, err := in.matrix(0, "dissims")

	if err != nil {
		return nil, err
	}

	ids, err := in.vector(1, "clustering")

	if err != nil {
		return nil, err
	}

	if err = checkDissimilarities(d, ids); err != nil {
		return nil, err
	}

	p := newPartition(ids)

	if p.k() == 1 {
		return -1.0, nil
	}

	n := len(ids)
	widths := make([]float64, n)

	for i := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		own := p.members[p.of[i]]

		if len(own) == 1 {
			continue
		}

		row := mat.Row(nil, i, d)

		var ownSum float64

		for _, j := range own {
			ownSum += row[j]
		}

		ownSum -= row[i]

		a := ownSum / float64(len(own))
		b := (floats.Sum(row) - ownSum) / float64(n-len(own))

		if m := math.Max(a, b); m != 0 {
			widths[i] = (b - a) / m
		}
	}

	return stats.Mean(widths)
}

// fuzzyWidth returns the silhouette widths averaged with the weights
// (c1 - c2)^alpha, where c1 and c2 are the two largest membership
// coefficients of an item.
func fuzzyWidth(ctx context.Context, in args) (interface{}, error) {
	sil, err := in.matrix(0, "sil")

	if err != nil {
		return nil, err
	}

	coeffs, err := in.matrix(1, "coeffs")

	if err != nil {
		return nil, err
	}

	alpha, err := in.floatOr(2, "alpha", 1)

	if err != nil {
		return nil, err
	}

	rows, _ := sil.Dims()

	if r, c := coeffs.Dims(); r != rows || c < 2 {
		return nil, fmt.Errorf("coproc: %s() expects a %dx2 coefficient matrix", in.fn, rows)
	}

	var num, den float64

	for i := 0; i < rows; i++ {
		w := math.Pow(coeffs.At(i, 0)-coeffs.At(i, 1), alpha)
		num += w * sil.At(i, 2)
		den += w
	}

	if den == 0 {
		return nil, ErrNoResult
	}

	return num / den, nil
}
