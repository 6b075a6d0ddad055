package clusteval

import (
	"github.com/photoprism/clusteval/internal/quality"
)

// EvaluateOptions controls post-processing of the candidate clustering and
// what happens with the computed values.
type EvaluateOptions struct {
	// Threshold removes fuzzy memberships below the coefficient, 0 disables it.
	Threshold float64
	// Hard reduces every item to its primary membership.
	Hard bool
	// Save stores the values in the results database.
	Save bool
	// Params are passed to every measure, job parameters take precedence.
	Params quality.Parameters
	// Measures replaces the measures listed in the job.
	Measures []string
}

// PostProcess tests if the candidate clustering is modified before evaluation.
func (o *EvaluateOptions) PostProcess() bool {
	return o.Threshold > 0 || o.Hard
}

// EvaluateOptionsDefault returns options that evaluate the job as is.
func EvaluateOptionsDefault() EvaluateOptions {
	return EvaluateOptions{}
}

// EvaluateOptionsSave returns options that also store the values.
func EvaluateOptionsSave() EvaluateOptions {
	return EvaluateOptions{Save: true}
}

// EvaluateOptionsHard returns options for evaluating the hard version of a
// fuzzy clustering.
func EvaluateOptionsHard() EvaluateOptions {
	return EvaluateOptions{Hard: true}
}
