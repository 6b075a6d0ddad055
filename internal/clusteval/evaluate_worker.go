package clusteval

import (
	"context"
	"time"

	"github.com/photoprism/clusteval/internal/coproc"
	"github.com/photoprism/clusteval/internal/quality"
)

// EvaluateJob is a single measure to evaluate.
type EvaluateJob struct {
	index   int
	measure quality.Measure
	input   quality.Input
}

type evaluated struct {
	index  int
	result MeasureResult
}

// EvaluateWorker evaluates measures until the jobs channel is closed. Every
// worker owns a co-processor session, which is cleared between measures.
func EvaluateWorker(ctx context.Context, jobs <-chan EvaluateJob, results chan<- evaluated) {
	session := coproc.NewSession()

	for job := range jobs {
		start := time.Now()

		session.Clear()

		in := job.input
		in.Engine = session

		v, err := quality.Evaluate(ctx, job.measure, in)

		if err != nil {
			log.Warnf("evaluate: %s", err)
		} else if v.Fallback {
			log.Debugf("evaluate: %s returned no result, using %s", job.measure.Name(), v)
		}

		results <- evaluated{
			index: job.index,
			result: MeasureResult{
				Measure:  job.measure.Name(),
				Params:   in.Params,
				Value:    v,
				Err:      err,
				Duration: time.Since(start),
			},
		}
	}
}
