package clusteval

import (
	"fmt"
	"time"

	"github.com/photoprism/clusteval/internal/quality"
)

// MeasureResult represents the outcome of evaluating one measure.
type MeasureResult struct {
	Measure  string
	Params   quality.Parameters
	Value    quality.Value
	Err      error
	Duration time.Duration
}

// EvaluateResult represents the outcome of Evaluator.Start().
type EvaluateResult struct {
	RunUID    string
	Job       string
	Clusters  int
	Items     int
	Values    []MeasureResult
	Evaluated int
	Fallbacks int
	Failed    int
	Saved     int
}

// Add adds a measure result and updates the counts.
func (r *EvaluateResult) Add(m MeasureResult) {
	r.Values = append(r.Values, m)

	switch {
	case m.Err != nil:
		r.Failed++
	case m.Value.Fallback:
		r.Evaluated++
		r.Fallbacks++
	default:
		r.Evaluated++
	}
}

// Value returns the first value computed for a measure.
func (r *EvaluateResult) Value(name string) (quality.Value, bool) {
	m, err := quality.Find(name)

	if err != nil {
		return quality.NotTerminated(), false
	}

	for _, v := range r.Values {
		if v.Measure == m.Name() && v.Err == nil {
			return v.Value, true
		}
	}

	return quality.NotTerminated(), false
}

// Best returns the index of the result with the best value of a measure,
// or -1 if no result has a value for it.
func Best(name string, results []EvaluateResult) (int, error) {
	m, err := quality.Find(name)

	if err != nil {
		return -1, err
	}

	best := -1
	var bestValue quality.Value

	for i := range results {
		v, ok := results[i].Value(m.Name())

		if !ok {
			continue
		}

		if best < 0 || m.IsBetterThan(v, bestValue) {
			best = i
			bestValue = v
		}
	}

	if best < 0 {
		return -1, fmt.Errorf("evaluate: no values for %s", m.Name())
	}

	return best, nil
}
