package quality

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value represents the result of evaluating one measure.
type Value struct {
	Value      float64
	Terminated bool
	// Fallback is set when the co-processor produced no result and the
	// worst bound of the measure was substituted.
	Fallback bool
}

// NewValue returns a terminated value.
func NewValue(v float64) Value {
	return Value{Value: v, Terminated: true}
}

// NotTerminated returns the value of an evaluation that did not finish.
func NotTerminated() Value {
	return Value{Value: math.NaN()}
}

// IsNaN tests if the value is undefined.
func (v Value) IsNaN() bool {
	return math.IsNaN(v.Value)
}

// String returns the value as text, "NT" if not terminated.
func (v Value) String() string {
	if !v.Terminated {
		return "NT"
	}

	return strconv.FormatFloat(v.Value, 'g', -1, 64)
}

// ParseValue parses the text form returned by Value.String.
func ParseValue(s string) (Value, error) {
	s = strings.TrimSpace(s)

	if s == "NT" {
		return NotTerminated(), nil
	}

	f, err := strconv.ParseFloat(s, 64)

	if err != nil {
		return NotTerminated(), fmt.Errorf("quality: invalid value %q", s)
	}

	return NewValue(f), nil
}
