package quality

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"
)

var measures = []Measure{
	RandIndex,
	JaccardIndex,
	Sensitivity,
	Specificity,
	FPR,
	F1,
	F2,
	FBeta,
	VMeasure,
	Silhouette,
	RandIndexR,
	JaccardIndexR,
	FowlkesMallowsIndexR,
	DunnIndexR,
	DaviesBouldinIndexR,
	SilhouetteValueR,
	SilhouetteValueGlobalR,
	SilhouetteValueFuzzyR,
}

var lookup = make(map[string]Measure)

func init() {
	for _, m := range measures {
		keys := []string{m.Name(), m.Alias()}

		if i, ok := m.(interface{ className() string }); ok {
			keys = append(keys, i.className())
		}

		for _, k := range keys {
			if k = normalize(k); k == "" {
				continue
			}

			if other, ok := lookup[k]; ok && other.Name() != m.Name() {
				panic(fmt.Sprintf("quality: %s and %s share the key %s", other.Name(), m.Name(), k))
			}

			lookup[k] = m
		}
	}
}

func (m info) className() string {
	return m.class
}

// normalize returns the lookup key of a measure name.
func normalize(name string) string {
	return strings.ReplaceAll(slug.Make(name), "-", "")
}

// Measures returns all measures in registry order.
func Measures() []Measure {
	result := make([]Measure, len(measures))
	copy(result, measures)
	return result
}

// Names returns the names of all measures in registry order.
func Names() []string {
	result := make([]string, len(measures))

	for i, m := range measures {
		result[i] = m.Name()
	}

	return result
}

// Find returns the measure with the given name, alias or class name.
// Case, spaces and punctuation are ignored.
func Find(name string) (Measure, error) {
	if m, ok := lookup[normalize(name)]; ok {
		return m, nil
	}

	return nil, fmt.Errorf("quality: %w %q", ErrUnknownMeasure, name)
}
