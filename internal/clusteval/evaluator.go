package clusteval

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dustin/go-humanize/english"
	gc "github.com/patrickmn/go-cache"

	"github.com/photoprism/clusteval/internal/config"
	"github.com/photoprism/clusteval/internal/dataset"
	"github.com/photoprism/clusteval/internal/entity"
	"github.com/photoprism/clusteval/internal/event"
	"github.com/photoprism/clusteval/internal/quality"
)

// Evaluator computes the quality measures of evaluation jobs.
type Evaluator struct {
	conf  *config.Config
	cache *gc.Cache
}

// NewEvaluator returns a new evaluator.
func NewEvaluator(conf *config.Config) *Evaluator {
	return &Evaluator{
		conf:  conf,
		cache: gc.New(conf.CacheTTL(), 2*conf.CacheTTL()),
	}
}

// Start evaluates the measures of a job. Errors of single measures are
// reported in the result, an error is only returned if the job itself is
// invalid, the context was canceled, or saving failed.
func (w *Evaluator) Start(ctx context.Context, job *Job, opt EvaluateOptions) (result EvaluateResult, err error) {
	start := time.Now()

	result.RunUID = entity.NewRunUID()
	result.Job = job.Name

	if opt.Save && entity.Db() == nil {
		return result, entity.ErrNoDb
	}

	in, err := w.input(job, opt)

	if err != nil {
		return result, err
	}

	result.Clusters = in.Clustering.NumClusters()
	result.Items = in.Clustering.Size()

	measures, err := w.measures(job, opt, in)

	if err != nil {
		return result, err
	}

	event.Publish("evaluate.started", event.Data{
		"run":      result.RunUID,
		"job":      job.Name,
		"measures": len(measures),
	})

	values := w.evaluate(ctx, measures, in)

	for _, v := range values {
		result.Add(v)
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	if opt.Save {
		if result.Saved, err = w.save(job, result); err != nil {
			return result, err
		}
	}

	event.Publish("evaluate.completed", event.Data{
		"run":       result.RunUID,
		"job":       job.Name,
		"evaluated": result.Evaluated,
		"fallbacks": result.Fallbacks,
		"failed":    result.Failed,
	})

	log.Infof("evaluate: %s evaluated with %s [%s]", job.Name, english.Plural(result.Evaluated, "measure", "measures"), time.Since(start))

	if result.Failed > 0 {
		log.Warnf("evaluate: %s failed in %s", english.Plural(result.Failed, "measure", "measures"), job.Name)
	}

	return result, nil
}

// evaluate runs the measures on up to Workers goroutines and returns the
// results in the order of the measures.
func (w *Evaluator) evaluate(ctx context.Context, measures []MeasureJob, in quality.Input) []MeasureResult {
	numWorkers := w.conf.Workers()

	if numWorkers > len(measures) {
		numWorkers = len(measures)
	}

	jobs := make(chan EvaluateJob)
	results := make(chan evaluated, len(measures))

	var wg sync.WaitGroup

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			EvaluateWorker(ctx, jobs, results)
			wg.Done()
		}()
	}

	for i, mj := range measures {
		m, err := quality.Find(mj.Name)

		if err != nil {
			results <- evaluated{index: i, result: MeasureResult{Measure: mj.Name, Params: mj.Params, Value: quality.NotTerminated(), Err: err}}
			continue
		}

		jobIn := in
		jobIn.Params = mj.Params

		jobs <- EvaluateJob{index: i, measure: m, input: jobIn}
	}

	close(jobs)
	wg.Wait()
	close(results)

	values := make([]MeasureResult, len(measures))

	for r := range results {
		values[r.index] = r.result
	}

	return values
}

// input builds the measure input of a job.
func (w *Evaluator) input(job *Job, opt EvaluateOptions) (in quality.Input, err error) {
	if err := job.Validate(); err != nil {
		return in, err
	}

	if in.Clustering, err = job.Candidate(); err != nil {
		return in, err
	}

	if in.GoldStandard, err = job.Gold(); err != nil {
		return in, err
	}

	if opt.Threshold > 0 {
		in.Clustering = in.Clustering.Threshold(opt.Threshold)
	}

	if opt.Hard {
		in.Clustering = in.Clustering.ToHard()
	}

	if opt.PostProcess() {
		log.Debugf("evaluate: post-processed clustering has %s", english.Plural(in.Clustering.Size(), "item", "items"))
	}

	if job.Dataset == nil {
		return in, nil
	}

	if in.Data, err = w.content(job.Dataset); err != nil {
		return in, err
	}

	return in, nil
}

// content returns the dataset content, converted to similarities if the
// dataset is absolute and conversion is enabled.
func (w *Evaluator) content(d *DatasetJob) (dataset.Content, error) {
	content, err := d.Content()

	if err != nil {
		return nil, err
	}

	data, ok := content.(*dataset.DataMatrix)

	if !ok || !w.conf.ConvertAbsolute() {
		return content, nil
	}

	key := d.Key()

	if cached, found := w.cache.Get(key); key != "" && found {
		log.Debugf("evaluate: using cached similarities of %s", w.datasetName(d))
		return cached.(*dataset.SimilarityMatrix), nil
	}

	dist := w.conf.DistanceFunc()

	if d.Distance != "" {
		if dist, err = config.ParseDistance(d.Distance); err != nil {
			return nil, err
		}
	}

	start := time.Now()

	sim, err := data.ToSimilarityMatrix(dist)

	if err != nil {
		return nil, err
	}

	if key != "" {
		w.cache.SetDefault(key, sim)
	}

	log.Debugf("evaluate: converted %s with %s to similarities [%s]", w.datasetName(d), english.Plural(data.Len(), "item", "items"), time.Since(start))

	return sim, nil
}

func (w *Evaluator) datasetName(d *DatasetJob) string {
	if d.Name == "" {
		return "dataset"
	}

	return d.Name
}

// measures returns the measures to evaluate. Options take precedence over
// the job. If neither lists any, all measures the input qualifies for
// are selected.
func (w *Evaluator) measures(job *Job, opt EvaluateOptions, in quality.Input) (result []MeasureJob, err error) {
	merge := func(p quality.Parameters) quality.Parameters {
		params := opt.Params.Clone()

		for k, v := range p {
			params[k] = v
		}

		return params
	}

	switch {
	case len(opt.Measures) > 0:
		for _, name := range opt.Measures {
			m, err := quality.Find(name)

			if err != nil {
				return nil, err
			}

			result = append(result, MeasureJob{Name: m.Name(), Params: merge(nil)})
		}
	case len(job.Measures) > 0:
		for _, mj := range job.Measures {
			result = append(result, MeasureJob{Name: mj.Name, Params: merge(mj.Params)})
		}
	default:
		for _, m := range quality.Measures() {
			if quality.Validate(m, in) == nil {
				result = append(result, MeasureJob{Name: m.Name(), Params: merge(nil)})
			}
		}
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("evaluate: no applicable measures for %s", job.Name)
	}

	return result, nil
}

// save stores the values of terminated measures.
func (w *Evaluator) save(job *Job, result EvaluateResult) (saved int, err error) {
	for _, v := range result.Values {
		if v.Err != nil {
			continue
		}

		m, err := quality.Find(v.Measure)

		if err != nil {
			return saved, err
		}

		q := entity.NewQuality(result.RunUID, job.Name, m, v.Value)
		q.JobHash = job.Checksum
		q.Clusters = result.Clusters
		q.Items = result.Items
		q.SetParams(v.Params)

		if err := q.Create(); err != nil {
			return saved, fmt.Errorf("evaluate: %s (save %s)", err, v.Measure)
		}

		saved++
	}

	log.Debugf("evaluate: saved %s of run %s", english.Plural(saved, "value", "values"), result.RunUID)

	return saved, nil
}
