package clustering

import (
	"fmt"
	"strconv"
	"strings"
)

// String returns the clustering in text format, see Parse.
func (c *Clustering) String() string {
	clusters := make([]string, 0, len(c.clusters))

	for _, cl := range c.Clusters() {
		clusters = append(clusters, formatItems(cl))
	}

	return strings.Join(clusters, ";")
}

func formatItems(cl *Cluster) string {
	items := make([]string, 0, cl.Size())

	for _, id := range cl.ItemIDs() {
		items = append(items, id+":"+strconv.FormatFloat(cl.items[id], 'g', -1, 64))
	}

	return strings.Join(items, ",")
}

// Parse reads a clustering in text format: clusters are separated by ";",
// items within a cluster by "," and every item is written as "id:coef".
// The coefficient may be omitted for hard memberships. Clusters are named
// by their position, starting at "1".
//
// Example: "a:1.0,b:0.5;b:0.5,c:1.0"
func Parse(s string) (*Clustering, error) {
	result := New()

	s = strings.TrimSpace(s)

	if s == "" {
		return result, nil
	}

	for i, cluster := range strings.Split(s, ";") {
		name := strconv.Itoa(i + 1)

		for _, item := range strings.Split(cluster, ",") {
			item = strings.TrimSpace(item)

			if item == "" {
				continue
			}

			id, coef, err := parseItem(item)

			if err != nil {
				return nil, fmt.Errorf("clustering: %s in cluster %s", err, name)
			}

			if err = result.Add(name, id, coef); err != nil {
				return nil, fmt.Errorf("clustering: %w", err)
			}
		}
	}

	return result, nil
}

func parseItem(s string) (id string, coef float64, err error) {
	i := strings.LastIndex(s, ":")

	if i < 0 {
		return s, 1, nil
	}

	id = strings.TrimSpace(s[:i])

	if coef, err = strconv.ParseFloat(strings.TrimSpace(s[i+1:]), 64); err != nil {
		return "", 0, fmt.Errorf("invalid coefficient in %q", s)
	}

	return id, coef, nil
}

// MustParse is like Parse but panics on error. Used for fixtures.
func MustParse(s string) *Clustering {
	result, err := Parse(s)

	if err != nil {
		panic(err)
	}

	return result
}
