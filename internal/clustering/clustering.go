/*
Package clustering models (possibly fuzzy) partitions of items into named
clusters, as produced by clustering programs or given as gold standard.

Items are identified by their string id. Every item records a membership
coefficient for each cluster it belongs to; in the hard case this is exactly
one membership with coefficient 1.

Clusterings are plain values: Clone returns an explicit deep copy, and the
functions that derive new clusterings (Restrict, ToHard, Threshold) never
modify their inputs.
*/
package clustering

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	ErrEmptyItemID      = errors.New("item id must not be empty")
	ErrEmptyClusterName = errors.New("cluster name must not be empty")
	ErrInvalidCoef      = errors.New("invalid fuzzy coefficient")
)

// Clustering represents a set of clusters over a shared item universe.
type Clustering struct {
	clusters  map[string]*Cluster
	items     map[string]Memberships
	fuzzySize float64
}

// New returns an empty clustering.
func New() *Clustering {
	return &Clustering{
		clusters: make(map[string]*Cluster),
		items:    make(map[string]Memberships),
	}
}

// Add assigns an item to a cluster with the given fuzzy coefficient.
// The cluster is created if needed. A zero coefficient is ignored.
func (c *Clustering) Add(cluster, id string, coef float64) error {
	switch {
	case cluster == "":
		return ErrEmptyClusterName
	case id == "":
		return ErrEmptyItemID
	case coef < 0 || math.IsNaN(coef) || math.IsInf(coef, 0):
		return fmt.Errorf("%w %f for %s in cluster %s", ErrInvalidCoef, coef, id, cluster)
	case coef == 0:
		return nil
	}

	cl, ok := c.clusters[cluster]

	if !ok {
		cl = newCluster(cluster)
		c.clusters[cluster] = cl
	}

	m, ok := c.items[id]

	if !ok {
		m = make(Memberships)
		c.items[id] = m
	}

	if old, ok := m[cluster]; ok {
		c.fuzzySize -= old
	}

	cl.add(id, coef)
	m[cluster] = coef
	c.fuzzySize += coef

	return nil
}

// AddCluster adds all items of a cluster.
func (c *Clustering) AddCluster(cluster string, items map[string]float64) error {
	ids := make([]string, 0, len(items))

	for id := range items {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	for _, id := range ids {
		if err := c.Add(cluster, id, items[id]); err != nil {
			return err
		}
	}

	return nil
}

// Cluster returns the cluster with the given name, or nil.
func (c *Clustering) Cluster(name string) *Cluster {
	return c.clusters[name]
}

// Clusters returns all clusters ordered by name.
func (c *Clustering) Clusters() []*Cluster {
	result := make([]*Cluster, 0, len(c.clusters))

	for _, name := range c.ClusterNames() {
		result = append(result, c.clusters[name])
	}

	return result
}

// ClusterNames returns the cluster names in lexicographic order.
func (c *Clustering) ClusterNames() []string {
	result := make([]string, 0, len(c.clusters))

	for name := range c.clusters {
		result = append(result, name)
	}

	sort.Strings(result)

	return result
}

// NumClusters returns the number of clusters.
func (c *Clustering) NumClusters() int {
	return len(c.clusters)
}

// ItemIDs returns the ids of all clustered items in lexicographic order.
func (c *Clustering) ItemIDs() []string {
	result := make([]string, 0, len(c.items))

	for id := range c.items {
		result = append(result, id)
	}

	sort.Strings(result)

	return result
}

// Contains tests if the item is a member of any cluster.
func (c *Clustering) Contains(id string) bool {
	_, ok := c.items[id]
	return ok
}

// ClusterForItem returns a copy of the memberships of an item, nil if the
// item is unknown.
func (c *Clustering) ClusterForItem(id string) Memberships {
	m, ok := c.items[id]

	if !ok {
		return nil
	}

	return m.Clone()
}

// Primary returns the primary cluster of an item, see Memberships.Primary.
func (c *Clustering) Primary(id string) string {
	name, _ := c.items[id].Primary()
	return name
}

// Size returns the number of distinct items.
func (c *Clustering) Size() int {
	return len(c.items)
}

// FuzzySize returns the sum of all membership coefficients.
func (c *Clustering) FuzzySize() float64 {
	return c.fuzzySize
}

// IsFuzzy tests if any item has more than one membership or a coefficient
// other than 1.
func (c *Clustering) IsFuzzy() bool {
	for _, m := range c.items {
		if len(m) > 1 {
			return true
		}

		for _, coef := range m {
			if coef != 1 {
				return true
			}
		}
	}

	return false
}

// RemoveItem removes an item from all of its clusters. Clusters left
// without items are dropped.
func (c *Clustering) RemoveItem(id string) bool {
	m, ok := c.items[id]

	if !ok {
		return false
	}

	for name := range m {
		c.removeFrom(id, name)
	}

	delete(c.items, id)

	return true
}

// RemoveItemFrom removes a single membership of an item. The item is
// removed from the clustering when it has no membership left.
func (c *Clustering) RemoveItemFrom(id, cluster string) bool {
	m, ok := c.items[id]

	if !ok {
		return false
	}

	if _, ok = m[cluster]; !ok {
		return false
	}

	c.removeFrom(id, cluster)
	delete(m, cluster)

	if len(m) == 0 {
		delete(c.items, id)
	}

	return true
}

func (c *Clustering) removeFrom(id, cluster string) {
	cl, ok := c.clusters[cluster]

	if !ok {
		return
	}

	if coef, ok := cl.remove(id); ok {
		c.fuzzySize -= coef
	}

	if cl.Size() == 0 {
		delete(c.clusters, cluster)
	}
}

// Clone returns a deep copy.
func (c *Clustering) Clone() *Clustering {
	result := &Clustering{
		clusters:  make(map[string]*Cluster, len(c.clusters)),
		items:     make(map[string]Memberships, len(c.items)),
		fuzzySize: c.fuzzySize,
	}

	for name, cl := range c.clusters {
		result.clusters[name] = cl.clone()
	}

	for id, m := range c.items {
		result.items[id] = m.Clone()
	}

	return result
}

// Restrict returns copies of both clusterings restricted to the items they
// have in common. Items found only in the gold standard are removed from the
// gold standard copy, items found only in the candidate from the candidate
// copy. The arguments are not modified.
func Restrict(candidate, gold *Clustering) (*Clustering, *Clustering) {
	c := candidate.Clone()
	g := gold.Clone()

	for id := range gold.items {
		if !c.Contains(id) {
			g.RemoveItem(id)
		}
	}

	for id := range candidate.items {
		if !g.Contains(id) {
			c.RemoveItem(id)
		}
	}

	return c, g
}

// ToHard returns a copy in which every item is a member of its primary
// cluster only, with coefficient 1.
func (c *Clustering) ToHard() *Clustering {
	result := New()

	for id, m := range c.items {
		if name, _ := m.Primary(); name != "" {
			_ = result.Add(name, id, 1)
		}
	}

	return result
}

// Threshold returns a copy without memberships whose coefficient is below t.
// The removed coefficient mass of an item is distributed evenly over its
// remaining memberships. Items left without membership are dropped.
func (c *Clustering) Threshold(t float64) *Clustering {
	result := c.Clone()

	for _, id := range c.ItemIDs() {
		m := c.items[id]

		var removed float64
		var dropped []string

		for _, name := range m.Names() {
			if m[name] < t {
				removed += m[name]
				dropped = append(dropped, name)
			}
		}

		if len(dropped) == 0 {
			continue
		}

		for _, name := range dropped {
			result.RemoveItemFrom(id, name)
		}

		left := result.items[id]

		if len(left) == 0 {
			continue
		}

		add := removed / float64(len(left))

		for _, name := range left.Names() {
			_ = result.Add(name, id, left[name]+add)
		}
	}

	return result
}
