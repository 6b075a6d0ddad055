package clustering

import (
	"sort"
)

// Memberships maps cluster names to the fuzzy coefficients of one item.
type Memberships map[string]float64

// Names returns the cluster names in lexicographic order.
func (m Memberships) Names() []string {
	result := make([]string, 0, len(m))

	for name := range m {
		result = append(result, name)
	}

	sort.Strings(result)

	return result
}

// Sum returns the total membership of the item.
func (m Memberships) Sum() (result float64) {
	for _, coef := range m {
		result += coef
	}

	return result
}

// Primary returns the cluster with the highest coefficient. Ties are broken
// by the lexicographically smallest cluster name, so the choice never
// depends on map iteration order.
func (m Memberships) Primary() (name string, coef float64) {
	for _, n := range m.Names() {
		if c := m[n]; name == "" || c > coef {
			name, coef = n, c
		}
	}

	return name, coef
}

// TopTwo returns the two largest coefficients and the cluster of the largest.
// The second coefficient is 0 for items with a single membership.
func (m Memberships) TopTwo() (name string, first, second float64) {
	for _, n := range m.Names() {
		c := m[n]

		if c > first {
			second = first
			first = c
			name = n
		} else if c > second {
			second = c
		}
	}

	return name, first, second
}

// Clone returns a copy.
func (m Memberships) Clone() Memberships {
	result := make(Memberships, len(m))

	for name, coef := range m {
		result[name] = coef
	}

	return result
}
