/*
Package quality provides clustering quality measures.

A measure compares a candidate clustering with a gold standard, or rates it
based on the similarities of the clustered items. Every measure declares its
range, its requirements and how two of its values compare:

	m, err := quality.Find("RandIndex")
	v, err := quality.Evaluate(ctx, m, quality.Input{Clustering: c, GoldStandard: gs})

Callers must use Measure.IsBetterThan to rank values, since lower is better
for some measures.

Measures that do not support fuzzy clusterings use the primary membership of
every item, i.e. the cluster with the highest coefficient and, for ties, the
smallest cluster name.
*/
package quality

import (
	"context"
	"fmt"

	"github.com/photoprism/clusteval/internal/clustering"
	"github.com/photoprism/clusteval/internal/coproc"
	"github.com/photoprism/clusteval/internal/dataset"
	"github.com/photoprism/clusteval/internal/event"
)

// Measure represents a clustering quality measure.
type Measure interface {
	Name() string
	Alias() string
	Minimum() float64
	Maximum() float64
	RequiresGoldStandard() bool
	SupportsFuzzy() bool
	RequiresData() bool
	IsBetterThan(a, b Value) bool
	Quality(ctx context.Context, in Input) (Value, error)
}

// Input holds everything a measure may consume.
type Input struct {
	Clustering   *clustering.Clustering
	GoldStandard *clustering.Clustering
	Data         dataset.Content
	Params       Parameters
	Engine       coproc.Engine
}

// info implements the descriptive part of Measure.
type info struct {
	name          string
	alias         string
	class         string
	min, max      float64
	gold          bool
	fuzzy         bool
	data          bool
	lowerIsBetter bool
}

func (m info) Name() string               { return m.name }
func (m info) Alias() string              { return m.alias }
func (m info) Minimum() float64           { return m.min }
func (m info) Maximum() float64           { return m.max }
func (m info) RequiresGoldStandard() bool { return m.gold }
func (m info) SupportsFuzzy() bool        { return m.fuzzy }
func (m info) RequiresData() bool         { return m.data }

// IsBetterThan tests if a is better than b. Values that did not terminate
// are never better, and any value is better than NaN. At equal values a
// computed value is better than a fallback.
func (m info) IsBetterThan(a, b Value) bool {
	switch {
	case !a.Terminated:
		return false
	case !b.Terminated:
		return true
	case a.IsNaN():
		return false
	case b.IsNaN():
		return true
	case a.Value == b.Value:
		return !a.Fallback && b.Fallback
	case m.lowerIsBetter:
		return a.Value < b.Value
	default:
		return a.Value > b.Value
	}
}

// worst returns the bound used when no result could be computed.
func (m info) worst() float64 {
	if m.lowerIsBetter {
		return m.max
	}

	return m.min
}

// Evaluate validates the input and computes the quality of a clustering.
// The clusterings of the input are not modified.
func Evaluate(ctx context.Context, m Measure, in Input) (Value, error) {
	if err := Validate(m, in); err != nil {
		return NotTerminated(), err
	}

	if err := ctx.Err(); err != nil {
		return NotTerminated(), err
	}

	in.Clustering = in.Clustering.Clone()

	if in.GoldStandard != nil {
		in.GoldStandard = in.GoldStandard.Clone()
	}

	if in.Engine == nil {
		in.Engine = coproc.NewSession()
	}

	if !m.SupportsFuzzy() && in.Clustering.IsFuzzy() {
		log.Debugf("quality: %s does not support fuzzy clusterings, using primary memberships", m.Name())
		in.Clustering = in.Clustering.ToHard()
	}

	v, err := m.Quality(ctx, in)

	if err != nil {
		return NotTerminated(), err
	}

	event.Publish("quality.evaluated", event.Data{
		"measure":  m.Name(),
		"value":    v.String(),
		"fallback": v.Fallback,
	})

	return v, nil
}

// Validate returns an error if the input does not meet the requirements
// of the measure.
func Validate(m Measure, in Input) error {
	if in.Clustering == nil {
		return newError(m, ErrNoClustering)
	}

	if m.RequiresGoldStandard() && in.GoldStandard == nil {
		return newError(m, ErrGoldStandardRequired)
	}

	if !m.RequiresData() {
		return nil
	}

	if in.Data == nil {
		return newError(m, ErrDataRequired)
	}

	if f := in.Data.Format(); f != dataset.Relative {
		return newError(m, fmt.Errorf("%w %s", ErrIncompatibleFormat, f))
	}

	for _, id := range in.Clustering.ItemIDs() {
		if _, ok := in.Data.Index(id); !ok {
			return newError(m, fmt.Errorf("%w %s", ErrUnknownItem, id))
		}
	}

	return nil
}
