/*
Package coproc provides the numeric co-processor used by matrix-based quality
measures.

Measures talk to an Engine only: they assign arrays to named variables and
evaluate statements that call cluster validity functions, e.g.

	diss <- cls.scatt.diss.mx(sim, clusterIds)
	clv.Dunn(diss, 'average', 'average')

Session is the native implementation. A session is stateful, so concurrent
evaluations must use one session each.
*/
package coproc

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrNoResult    = errors.New("expression returned no result")
	ErrNotScalar   = errors.New("result is not a scalar")
	ErrUnknownName = errors.New("object not found")
)

// Engine represents a stateful numeric co-processor.
type Engine interface {
	Assign(name string, value interface{}) error
	Eval(ctx context.Context, expr string) (Result, error)
	Clear()
}

// Result represents the value of an evaluated statement.
type Result struct {
	value interface{}
}

// list holds named values, e.g. the cluster scatter measures.
type list map[string]interface{}

// IsNull tests if the result is empty.
func (r Result) IsNull() bool {
	return r.value == nil
}

// Float returns the result as scalar.
func (r Result) Float() (float64, error) {
	switch v := r.value.(type) {
	case nil:
		return math.NaN(), ErrNoResult
	case float64:
		return v, nil
	case []float64:
		if len(v) == 1 {
			return v[0], nil
		}
	case *mat.Dense:
		if rows, cols := v.Dims(); rows == 1 && cols == 1 {
			return v.At(0, 0), nil
		}
	}

	return math.NaN(), fmt.Errorf("coproc: %w (%s)", ErrNotScalar, typeName(r.value))
}

// Vector returns the result as vector.
func (r Result) Vector() ([]float64, error) {
	return toVector(r.value)
}

// Matrix returns the result as matrix.
func (r Result) Matrix() (*mat.Dense, error) {
	return toMatrix(r.value)
}

// Field returns a named element of a list result.
func (r Result) Field(name string) (Result, error) {
	l, ok := r.value.(list)

	if !ok {
		return Result{}, fmt.Errorf("coproc: %s is not a list", typeName(r.value))
	}

	v, ok := l[name]

	if !ok {
		return Result{}, fmt.Errorf("coproc: %w %s", ErrUnknownName, name)
	}

	return Result{value: v}, nil
}

// String returns the result as text, for logging.
func (r Result) String() string {
	switch v := r.value.(type) {
	case nil:
		return "NULL"
	case *mat.Dense:
		rows, cols := v.Dims()
		return fmt.Sprintf("matrix %dx%d", rows, cols)
	case list:
		return fmt.Sprintf("list of %d", len(v))
	default:
		return fmt.Sprintf("%v", v)
	}
}

func typeName(v interface{}) string {
	switch v.(type) {
	case nil:
		return "NULL"
	case float64:
		return "numeric"
	case []float64:
		return "vector"
	case *mat.Dense:
		return "matrix"
	case string:
		return "character"
	case list:
		return "list"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// normalize converts assignable Go values into session values.
func normalize(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case float64, string, list:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case []float64:
		return append([]float64(nil), v...), nil
	case []int:
		result := make([]float64, len(v))
		for i := range v {
			result[i] = float64(v[i])
		}
		return result, nil
	case [][]float64:
		if len(v) == 0 {
			return nil, fmt.Errorf("coproc: cannot assign empty matrix")
		}

		cols := len(v[0])
		m := mat.NewDense(len(v), cols, nil)

		for i, row := range v {
			if len(row) != cols {
				return nil, fmt.Errorf("coproc: row %d has %d columns, expected %d", i, len(row), cols)
			}

			m.SetRow(i, row)
		}

		return m, nil
	case *mat.Dense:
		return mat.DenseCopyOf(v), nil
	default:
		return nil, fmt.Errorf("coproc: cannot assign %T", value)
	}
}

func toVector(v interface{}) ([]float64, error) {
	switch x := v.(type) {
	case float64:
		return []float64{x}, nil
	case []float64:
		return x, nil
	case *mat.Dense:
		rows, cols := x.Dims()

		if cols == 1 {
			return mat.Col(nil, 0, x), nil
		} else if rows == 1 {
			return mat.Row(nil, 0, x), nil
		}
	}

	return nil, fmt.Errorf("coproc: expected vector, got %s", typeName(v))
}

func toMatrix(v interface{}) (*mat.Dense, error) {
	if m, ok := v.(*mat.Dense); ok {
		return m, nil
	}

	return nil, fmt.Errorf("coproc: expected matrix, got %s", typeName(v))
}

func toList(v interface{}) (list, error) {
	if l, ok := v.(list); ok {
		return l, nil
	}

	return nil, fmt.Errorf("coproc: expected list, got %s", typeName(v))
}

func toString(v interface{}) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}

	return "", fmt.Errorf("coproc: expected character, got %s", typeName(v))
}
