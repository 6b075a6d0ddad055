// Package clusters provides distance functions for n-dimensional
// observations, used to turn absolute (coordinate) datasets into
// pairwise distances.
package clusters

import (
	"math"
)

// DistanceFunc represents a function for measuring distance
// between n-dimensional vectors.
type DistanceFunc func([]float64, []float64) float64

// BatchDistanceFunc returns the distances between observation ai and the
// observations bi up to (excluding) end.
type BatchDistanceFunc func(d [][]float64, ai, bi, end int) []float64

var (
	// EuclideanDistance is one of the common distance measurement
	EuclideanDistance = func(a, b []float64) float64 {
		return math.Sqrt(EuclideanDistanceSquared(a, b))
	}

	// EuclideanDistanceSquared is one of the common distance measurement
	EuclideanDistanceSquared = func(a, b []float64) float64 {
		var (
			s, t float64
		)

		for i := range a {
			t = a[i] - b[i]
			s += t * t
		}

		return s
	}

	// ManhattanDistance sums the absolute coordinate differences.
	ManhattanDistance = func(a, b []float64) float64 {
		var s float64

		for i := range a {
			s += math.Abs(a[i] - b[i])
		}

		return s
	}

	// BatchEuclideanDistance is the batch version of EuclideanDistance.
	BatchEuclideanDistance = Batch(EuclideanDistance)
)

// Batch wraps a distance function so it compares one observation
// with a consecutive range of others.
func Batch(dist DistanceFunc) BatchDistanceFunc {
	return func(d [][]float64, ai, bi, end int) []float64 {
		res := make([]float64, end-bi)

		for j := bi; j < end; j++ {
			res[j-bi] = dist(d[ai], d[j])
		}

		return res
	}
}

// Distances returns the symmetric matrix of pairwise distances.
func Distances(d [][]float64, batch BatchDistanceFunc) [][]float64 {
	n := len(d)
	res := make([][]float64, n)

	for i := range res {
		res[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		row := batch(d, i, i+1, n)

		for k, v := range row {
			j := i + 1 + k
			res[i][j] = v
			res[j][i] = v
		}
	}

	return res
}
