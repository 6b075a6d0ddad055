package config

import (
	"fmt"
	"strings"

	"github.com/photoprism/clusteval/pkg/clusters"
)

// Distance metrics for converting absolute datasets.
const (
	DistanceEuclidean = "euclidean"
	DistanceManhattan = "manhattan"
	DistanceSquared   = "squared"
)

// ParseDistance returns the distance function with the given name.
func ParseDistance(name string) (clusters.DistanceFunc, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", DistanceEuclidean:
		return clusters.EuclideanDistance, nil
	case DistanceManhattan:
		return clusters.ManhattanDistance, nil
	case DistanceSquared:
		return clusters.EuclideanDistanceSquared, nil
	default:
		return nil, fmt.Errorf("config: unknown distance metric %s", name)
	}
}

// Distance returns the name of the distance metric.
func (c *Config) Distance() string {
	if c.options.Distance == "" {
		return DistanceEuclidean
	}

	return strings.ToLower(c.options.Distance)
}

// DistanceFunc returns the distance function used to convert absolute datasets.
func (c *Config) DistanceFunc() clusters.DistanceFunc {
	if f, err := ParseDistance(c.Distance()); err == nil {
		return f
	}

	log.Warnf("config: unknown distance metric %s, using %s", c.Distance(), DistanceEuclidean)

	return clusters.EuclideanDistance
}
