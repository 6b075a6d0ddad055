package clustering

import (
	"fmt"
	"sort"
)

// Cluster represents a named group of items with fuzzy coefficients.
// Clusters are modified through their Clustering only, so the item index
// of the clustering always matches the cluster contents.
type Cluster struct {
	name      string
	items     map[string]float64
	fuzzySize float64
}

func newCluster(name string) *Cluster {
	return &Cluster{
		name:  name,
		items: make(map[string]float64),
	}
}

// Name returns the cluster name.
func (c *Cluster) Name() string {
	return c.name
}

// Size returns the number of items in the cluster.
func (c *Cluster) Size() int {
	return len(c.items)
}

// FuzzySize returns the sum of all membership coefficients.
func (c *Cluster) FuzzySize() float64 {
	return c.fuzzySize
}

// Contains tests if the item is a member of the cluster.
func (c *Cluster) Contains(id string) bool {
	_, ok := c.items[id]
	return ok
}

// Coefficient returns the membership coefficient of an item, 0 if absent.
func (c *Cluster) Coefficient(id string) float64 {
	return c.items[id]
}

// ItemIDs returns the item ids in lexicographic order.
func (c *Cluster) ItemIDs() []string {
	result := make([]string, 0, len(c.items))

	for id := range c.items {
		result = append(result, id)
	}

	sort.Strings(result)

	return result
}

// Items returns a copy of the item coefficients.
func (c *Cluster) Items() map[string]float64 {
	result := make(map[string]float64, len(c.items))

	for id, coef := range c.items {
		result[id] = coef
	}

	return result
}

// String returns the cluster as "name: [id:coef ...]".
func (c *Cluster) String() string {
	return fmt.Sprintf("%s: %s", c.name, formatItems(c))
}

func (c *Cluster) add(id string, coef float64) {
	if old, ok := c.items[id]; ok {
		c.fuzzySize -= old
	}

	c.items[id] = coef
	c.fuzzySize += coef
}

func (c *Cluster) remove(id string) (coef float64, ok bool) {
	if coef, ok = c.items[id]; !ok {
		return 0, false
	}

	delete(c.items, id)
	c.fuzzySize -= coef

	return coef, true
}

func (c *Cluster) clone() *Cluster {
	result := newCluster(c.name)

	for id, coef := range c.items {
		result.items[id] = coef
	}

	result.fuzzySize = c.fuzzySize

	return result
}
