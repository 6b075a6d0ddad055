package quality

import (
	"context"
	"math"
)

type vMeasure struct {
	info
}

// Quality returns the harmonic mean of homogeneity and completeness.
func (m vMeasure) Quality(ctx context.Context, in Input) (Value, error) {
	t := Contingency(in.Clustering, in.GoldStandard)

	if err := ctx.Err(); err != nil {
		return NotTerminated(), err
	}

	if t.Items == 0 {
		return NewValue(math.NaN()), nil
	}

	n := float64(t.Items)

	// Conditional entropies H(C|K) and H(K|C).
	var hck, hkc float64

	for i, row := range t.Counts {
		for j, a := range row {
			if a == 0 {
				continue
			}

			hck -= a / n * math.Log(a/t.ClusterSums[j])
			hkc -= a / n * math.Log(a/t.ClassSums[i])
		}
	}

	hc := entropy(t.ClassSums, n)
	hk := entropy(t.ClusterSums, n)

	homogeneity, completeness := 1.0, 1.0

	if hc != 0 {
		homogeneity = 1 - hck/hc
	}

	if hk != 0 {
		completeness = 1 - hkc/hk
	}

	log.Tracef("quality: homogeneity %g, completeness %g", homogeneity, completeness)

	if homogeneity+completeness == 0 {
		return NewValue(0), nil
	}

	return NewValue(2 * homogeneity * completeness / (homogeneity + completeness)), nil
}

func entropy(sums []float64, n float64) (h float64) {
	for _, s := range sums {
		if s > 0 {
			h -= s / n * math.Log(s/n)
		}
	}

	return h
}

var VMeasure Measure = vMeasure{
	info: info{
		name:  "VMeasure",
		alias: "V-Measure",
		class: "VMeasureClusteringQualityMeasure",
		min:   0,
		max:   1,
		gold:  true,
	},
}
