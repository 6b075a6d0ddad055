package quality

import (
	"context"
)

// pairMeasure computes a ratio of pair counts. Undefined ratios, e.g. for
// less than two common items, are NaN.
type pairMeasure struct {
	info
	ratio func(c PairCounts) float64
}

func (m pairMeasure) Quality(ctx context.Context, in Input) (Value, error) {
	counts, err := CountPairs(ctx, in.Clustering, in.GoldStandard)

	if err != nil {
		return NotTerminated(), err
	}

	log.Tracef("quality: %s pairs tp=%d fn=%d tn=%d fp=%d", m.name, counts.TP, counts.FN, counts.TN, counts.FP)

	return NewValue(m.ratio(counts)), nil
}

var RandIndex Measure = pairMeasure{
	info: info{
		name:  "RandIndex",
		alias: "Rand Index",
		class: "RandIndexClusteringQualityMeasure",
		min:   0,
		max:   1,
		gold:  true,
	},
	ratio: func(c PairCounts) float64 {
		return ratio(c.TP+c.TN, c.Total())
	},
}

var JaccardIndex Measure = pairMeasure{
	info: info{
		name:  "JaccardIndex",
		alias: "Jaccard Index",
		min:   0,
		max:   1,
		gold:  true,
	},
	ratio: func(c PairCounts) float64 {
		return ratio(c.TP, c.TP+c.FP+c.FN)
	},
}

var Sensitivity Measure = pairMeasure{
	info: info{
		name:  "Sensitivity",
		alias: "Sensitivity",
		class: "SensitivityClusteringQualityMeasure",
		min:   0,
		max:   1,
		gold:  true,
	},
	ratio: func(c PairCounts) float64 {
		return ratio(c.TP, c.TP+c.FN)
	},
}

var Specificity Measure = pairMeasure{
	info: info{
		name:  "Specificity",
		alias: "Specificity",
		class: "SpecificityClusteringQualityMeasure",
		min:   0,
		max:   1,
		gold:  true,
	},
	ratio: func(c PairCounts) float64 {
		return ratio(c.TN, c.TN+c.FP)
	},
}

var FPR Measure = pairMeasure{
	info: info{
		name:          "FPR",
		alias:         "False Positive Rate",
		class:         "FPRClusteringQualityMeasure",
		min:           0,
		max:           1,
		gold:          true,
		lowerIsBetter: true,
	},
	ratio: func(c PairCounts) float64 {
		return ratio(c.FP, c.FP+c.TN)
	},
}
