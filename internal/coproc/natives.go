package coproc

import (
	"context"
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// native is a function callable from statements.
type native func(ctx context.Context, in args) (interface{}, error)

var natives map[string]native

// quoting lists the functions that take bare names as strings.
var quoting = map[string]bool{"library": true}

func init() {
	natives = map[string]native{
		"library":            library,
		"length":             length,
		"sum":                sum,
		"mean":               mean,
		"col":                column,
		"cls.scatt.diss.mx":  scatterDissMatrix,
		"clv.Dunn":           dunn,
		"clv.Davies.Bouldin": daviesBouldin,
		"std.ext":            stdExt,
		"clv.Rand":           clvRand,
		"clv.Jaccard":        clvJaccard,
		"clv.Folkes.Mallows": clvFolkesMallows,
		"silhouette":         silhouette,
		"avg.width":          avgWidth,
		"silhouette.global":  silhouetteGlobal,
		"fuzzy.width":        fuzzyWidth,
	}
}

// Functions returns the names of all native functions.
func Functions() []string {
	result := make([]string, 0, len(natives))

	for name := range natives {
		result = append(result, name)
	}

	sort.Strings(result)

	return result
}

// args holds the evaluated arguments of a call.
type args struct {
	fn         string
	positional []interface{}
	named      map[string]interface{}
}

func (a args) get(pos int, name string) (interface{}, bool) {
	if v, ok := a.named[name]; ok {
		return v, true
	}

	if pos < len(a.positional) {
		return a.positional[pos], true
	}

	return nil, false
}

func (a args) require(pos int, name string) (interface{}, error) {
	if v, ok := a.get(pos, name); ok {
		return v, nil
	}

	return nil, fmt.Errorf("coproc: argument %q is missing in %s()", name, a.fn)
}

func (a args) vector(pos int, name string) ([]float64, error) {
	v, err := a.require(pos, name)

	if err != nil {
		return nil, err
	}

	return toVector(v)
}

func (a args) matrix(pos int, name string) (*mat.Dense, error) {
	v, err := a.require(pos, name)

	if err != nil {
		return nil, err
	}

	return toMatrix(v)
}

func (a args) list(pos int, name string) (list, error) {
	v, err := a.require(pos, name)

	if err != nil {
		return nil, err
	}

	return toList(v)
}

func (a args) stringOr(pos int, name, def string) (string, error) {
	v, ok := a.get(pos, name)

	if !ok {
		return def, nil
	}

	return toString(v)
}

func (a args) floatOr(pos int, name string, def float64) (float64, error) {
	v, ok := a.get(pos, name)

	if !ok {
		return def, nil
	}

	return Result{value: v}.Float()
}

// library accepts package loading statements, all functions are built in.
func library(ctx context.Context, in args) (interface{}, error) {
	return nil, nil
}

func length(ctx context.Context, in args) (interface{}, error) {
	v, err := in.require(0, "x")

	if err != nil {
		return nil, err
	}

	switch x := v.(type) {
	case *mat.Dense:
		r, c := x.Dims()
		return float64(r * c), nil
	case list:
		return float64(len(x)), nil
	default:
		vec, err := toVector(x)
		return float64(len(vec)), err
	}
}

func sum(ctx context.Context, in args) (interface{}, error) {
	v, err := in.vector(0, "x")

	if err != nil {
		return nil, err
	}

	return floats.Sum(v), nil
}

func mean(ctx context.Context, in args) (interface{}, error) {
	v, err := in.vector(0, "x")

	if err != nil {
		return nil, err
	}

	m, err := stats.Mean(v)

	if err != nil {
		return nil, ErrNoResult
	}

	return m, nil
}

// column returns a column of a matrix, counting from 1.
func column(ctx context.Context, in args) (interface{}, error) {
	m, err := in.matrix(0, "x")

	if err != nil {
		return nil, err
	}

	j, err := in.floatOr(1, "j", 1)

	if err != nil {
		return nil, err
	}

	_, cols := m.Dims()

	if k := int(j); k < 1 || k > cols || float64(k) != j {
		return nil, fmt.Errorf("coproc: column %v out of bounds", j)
	}

	return mat.Col(nil, int(j)-1, m), nil
}
