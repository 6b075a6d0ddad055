package quality

import (
	"errors"
	"fmt"
)

var (
	ErrGoldStandardRequired = errors.New("requires a gold standard")
	ErrDataRequired         = errors.New("requires a similarity matrix")
	ErrIncompatibleFormat   = errors.New("does not support the dataset format")
	ErrNoClustering         = errors.New("has no clustering to evaluate")
	ErrUnknownItem          = errors.New("found item missing in dataset")
	ErrUnknownMeasure       = errors.New("unknown quality measure")
)

// Error represents a caller error detected before a measure is computed.
type Error struct {
	Measure string
	Err     error
}

// Error returns the error message.
func (e *Error) Error() string {
	return fmt.Sprintf("quality: %s %s", e.Measure, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(m Measure, err error) *Error {
	return &Error{Measure: m.Name(), Err: err}
}
