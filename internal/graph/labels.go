package graph

import (
	"sort"
	"strings"

	"impgraph/internal/names"
)

// InternalLabel lists, one per line, the definitions that occur as a substring
// of any matched name. It returns AllLabel when none do, meaning the module as
// a whole was referenced.
func InternalLabel(definitions, matched names.Set) string {
	var hits []string
	for _, def := range definitions.Sorted() {
		for item := range matched {
			if strings.Contains(item, def) {
				hits = append(hits, def)
				break
			}
		}
	}
	if len(hits) == 0 {
		return AllLabel
	}
	return strings.Join(hits, "\n")
}

// ExternalLabels groups external import tokens by their first dotted segment.
// Each group maps to the remaining suffixes of its tokens, one per line; a
// token without a dot contributes its group but no line.
func ExternalLabels(externals names.Set) map[string]string {
	grouped := make(map[string][]string)
	for _, item := range externals.Sorted() {
		first, rest, ok := strings.Cut(item, ".")
		if _, seen := grouped[first]; !seen {
			grouped[first] = nil
		}
		if ok {
			grouped[first] = append(grouped[first], rest)
		}
	}

	out := make(map[string]string, len(grouped))
	for first, rests := range grouped {
		sort.Strings(rests)
		out[first] = strings.Join(rests, "\n")
	}
	return out
}
