package types

import "sort"

// StringSet is an unordered set of strings
type StringSet map[string]bool

// NewStringSet creates a set holding the given values
func NewStringSet(values ...string) StringSet {
	s := make(StringSet, len(values))
	s.Add(values...)
	return s
}

// Add inserts values into the set
func (s StringSet) Add(values ...string) {
	for _, v := range values {
		s[v] = true
	}
}

// Has reports whether v is in the set
func (s StringSet) Has(v string) bool {
	return s[v]
}

// Union adds every member of other to the set
func (s StringSet) Union(other StringSet) {
	for v := range other {
		s[v] = true
	}
}

// Clone returns an independent copy of the set
func (s StringSet) Clone() StringSet {
	c := make(StringSet, len(s))
	for v := range s {
		c[v] = true
	}
	return c
}

// Sorted returns the members in ascending order
func (s StringSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
