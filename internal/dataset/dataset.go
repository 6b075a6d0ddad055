/*
Package dataset provides the numeric content of datasets: similarity
matrices for relative datasets and coordinate matrices for absolute
datasets, both with a mapping from item id to row index.

The mapping between external identifiers and matrix rows is expected to be
resolved by the caller; item ids must match the ids used in clusterings.
*/
package dataset

import (
	"errors"
	"fmt"
)

// Format describes how dataset content is represented.
type Format int

const (
	// Relative datasets contain pairwise similarities.
	Relative Format = iota + 1
	// Absolute datasets contain coordinates.
	Absolute
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case Relative:
		return "relative"
	case Absolute:
		return "absolute"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// ParseFormat returns the format with the given name.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "relative", "sim", "similarity":
		return Relative, nil
	case "absolute", "matrix", "coordinates":
		return Absolute, nil
	default:
		return 0, fmt.Errorf("dataset: unknown format %q", s)
	}
}

var (
	ErrUnknownID   = errors.New("unknown item id")
	ErrDuplicateID = errors.New("duplicate item id")
	ErrShape       = errors.New("invalid matrix shape")
	ErrNotFinite   = errors.New("value is not finite")
)

// Content represents the numeric content of a dataset.
type Content interface {
	// Format returns whether the content is relative or absolute.
	Format() Format
	// Len returns the number of items.
	Len() int
	// IDs returns a copy of the mapping from item id to row index.
	IDs() map[string]int
	// IDList returns the item ids in row order.
	IDList() []string
	// Index returns the row index of an item.
	Index(id string) (int, bool)
}

type index struct {
	ids   map[string]int
	order []string
}

func newIndex(ids []string) (index, error) {
	result := index{
		ids:   make(map[string]int, len(ids)),
		order: make([]string, len(ids)),
	}

	for i, id := range ids {
		if _, ok := result.ids[id]; ok {
			return result, fmt.Errorf("dataset: %w %s", ErrDuplicateID, id)
		}

		result.ids[id] = i
		result.order[i] = id
	}

	return result, nil
}

// Len returns the number of items.
func (x index) Len() int {
	return len(x.order)
}

// IDs returns a copy of the mapping from item id to row index.
func (x index) IDs() map[string]int {
	result := make(map[string]int, len(x.ids))

	for id, i := range x.ids {
		result[id] = i
	}

	return result
}

// IDList returns the item ids in row order.
func (x index) IDList() []string {
	result := make([]string, len(x.order))
	copy(result, x.order)
	return result
}

// Index returns the row index of an item.
func (x index) Index(id string) (int, bool) {
	i, ok := x.ids[id]
	return i, ok
}
