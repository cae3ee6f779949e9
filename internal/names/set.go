package names

import (
	"sort"
	"strings"
)

// Set is an unordered collection of distinct strings.
type Set map[string]struct{}

// NewSet returns a set holding the given items.
func NewSet(items ...string) Set {
	s := make(Set, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

func (s Set) Add(items ...string) {
	for _, it := range items {
		s[it] = struct{}{}
	}
}

func (s Set) Remove(item string) {
	delete(s, item)
}

func (s Set) Has(item string) bool {
	_, ok := s[item]
	return ok
}

func (s Set) Len() int {
	return len(s)
}

// Intersect returns the items present in both s and other.
func (s Set) Intersect(other Set) Set {
	small, large := s, other
	if len(small) > len(large) {
		small, large = large, small
	}
	out := make(Set)
	for it := range small {
		if large.Has(it) {
			out[it] = struct{}{}
		}
	}
	return out
}

// Difference returns the items of s that are not in other.
func (s Set) Difference(other Set) Set {
	out := make(Set, len(s))
	for it := range s {
		if !other.Has(it) {
			out[it] = struct{}{}
		}
	}
	return out
}

// Union adds every item of other to s.
func (s Set) Union(other Set) {
	for it := range other {
		s[it] = struct{}{}
	}
}

func (s Set) Clone() Set {
	out := make(Set, len(s))
	for it := range s {
		out[it] = struct{}{}
	}
	return out
}

// Sorted returns the items in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for it := range s {
		out = append(out, it)
	}
	sort.Strings(out)
	return out
}

func (s Set) String() string {
	return "{" + strings.Join(s.Sorted(), ", ") + "}"
}
