/*
Package clusteval evaluates clusterings described by job files.

A job names a candidate clustering, an optional gold standard, an optional
dataset and the measures to compute:

	name: kmeans-k2
	dataset:
	  format: relative
	  ids: [a, b, c]
	  rows: [[1, 0.9, 0.1], [0.9, 1, 0.2], [0.1, 0.2, 1]]
	clustering: "a,b;c"
	goldstandard: "a,b;c"
	measures:
	  - name: F1
	  - name: FBeta
	    params: {beta: 2}

The Evaluator computes all measures of a job in parallel and can store the
values in the results database.
*/
package clusteval

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/photoprism/clusteval/internal/clustering"
	"github.com/photoprism/clusteval/internal/dataset"
	"github.com/photoprism/clusteval/internal/quality"
	"github.com/photoprism/clusteval/pkg/fs"
)

var ErrNoClustering = errors.New("job has no clustering")

// DatasetJob holds inline dataset content.
type DatasetJob struct {
	Name   string      `yaml:"name,omitempty"`
	Format string      `yaml:"format"`
	IDs    []string    `yaml:"ids"`
	Rows   [][]float64 `yaml:"rows"`
	// Distance overrides the configured metric for absolute datasets.
	Distance string `yaml:"distance,omitempty"`
}

// Content returns the numeric dataset content.
func (d *DatasetJob) Content() (dataset.Content, error) {
	format, err := dataset.ParseFormat(strings.ToLower(d.Format))

	if err != nil {
		return nil, err
	}

	if format == dataset.Absolute {
		return dataset.NewDataMatrix(d.IDs, d.Rows)
	}

	return dataset.NewSimilarityMatrix(d.IDs, d.Rows)
}

// Key returns a checksum of the dataset, used as cache key.
func (d *DatasetJob) Key() string {
	data, err := yaml.Marshal(d)

	if err != nil {
		return ""
	}

	return fs.ChecksumBytes(data)
}

// MeasureJob names a measure and its parameters.
type MeasureJob struct {
	Name   string             `yaml:"name"`
	Params quality.Parameters `yaml:"params,omitempty"`
}

// Job describes the evaluation of one clustering.
type Job struct {
	Name         string       `yaml:"name"`
	Dataset      *DatasetJob  `yaml:"dataset,omitempty"`
	Clustering   string       `yaml:"clustering"`
	GoldStandard string       `yaml:"goldstandard,omitempty"`
	Measures     []MeasureJob `yaml:"measures,omitempty"`
	FileName     string       `yaml:"-"`
	Checksum     string       `yaml:"-"`
}

// LoadJob reads a job from a YAML file. Jobs without name are named after
// the file.
func LoadJob(fileName string) (*Job, error) {
	if !fs.FileExists(fileName) {
		return nil, fmt.Errorf("job: %s not found", fileName)
	}

	data, err := os.ReadFile(fileName)

	if err != nil {
		return nil, err
	}

	job, err := ParseJob(data)

	if err != nil {
		return nil, fmt.Errorf("%s in %s", err, fileName)
	}

	job.FileName = fileName

	if job.Name == "" {
		job.Name = fs.BasePrefix(fileName)
	}

	return job, nil
}

// ParseJob reads a job from YAML.
func ParseJob(data []byte) (job *Job, err error) {
	defer func() {
		if e := recover(); e != nil {
			job = nil
			err = fmt.Errorf("job: %s (yaml panic)\nstack: %s", e, debug.Stack())
		}
	}()

	job = &Job{}

	if err = yaml.Unmarshal(data, job); err != nil {
		return nil, fmt.Errorf("job: %s", err)
	}

	if err = job.Validate(); err != nil {
		return nil, err
	}

	job.Checksum = fs.ChecksumBytes(data)

	return job, nil
}

// Validate checks that the clusterings and dataset can be parsed.
func (j *Job) Validate() error {
	if strings.TrimSpace(j.Clustering) == "" {
		return fmt.Errorf("job: %w", ErrNoClustering)
	}

	if _, err := j.Candidate(); err != nil {
		return fmt.Errorf("job: %s", err)
	}

	if _, err := j.Gold(); err != nil {
		return fmt.Errorf("job: gold standard %s", err)
	}

	if j.Dataset != nil {
		if _, err := j.Dataset.Content(); err != nil {
			return fmt.Errorf("job: %w", err)
		}
	}

	for i, m := range j.Measures {
		if _, err := quality.Find(m.Name); err != nil {
			return fmt.Errorf("job: %w (measure %d)", err, i+1)
		}
	}

	return nil
}

// Candidate returns the clustering to evaluate.
func (j *Job) Candidate() (*clustering.Clustering, error) {
	return clustering.Parse(j.Clustering)
}

// Gold returns the gold standard, or nil if the job has none.
func (j *Job) Gold() (*clustering.Clustering, error) {
	if strings.TrimSpace(j.GoldStandard) == "" {
		return nil, nil
	}

	return clustering.Parse(j.GoldStandard)
}

// Content returns the dataset content, or nil if the job has none.
func (j *Job) Content() (dataset.Content, error) {
	if j.Dataset == nil {
		return nil, nil
	}

	return j.Dataset.Content()
}
