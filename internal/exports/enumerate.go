// Package exports derives the names under which other files may reference a module.
//
// The enumeration over-generates on purpose: matching a file's imports against
// these names is then a plain set intersection instead of symbol resolution.
package exports

import "impgraph/internal/names"

// Enumerate returns every plausible dotted reference to the module at modulePath
// and to each of its definitions.
//
// The module path is walked segment by segment while a dotted prefix of the
// already consumed segments is kept in buffer.
func Enumerate(projectName string, modulePath []string, definitions names.Set) names.Set {
	out := make(names.Set)
	defs := definitions.Sorted()
	qualify := func(parts ...string) string {
		s := parts[0]
		for _, p := range parts[1:] {
			s += "." + p
		}
		return s
	}

	buffer := ""
	for _, seg := range modulePath {
		out.Add(seg, qualify(projectName, seg))
		if buffer != "" {
			out.Add(qualify(buffer, seg), qualify(projectName, buffer, seg))
		}
		for _, d := range defs {
			out.Add(
				qualify(projectName, seg, d),
				qualify(seg, d),
				qualify(projectName, d),
			)
			if buffer != "" {
				out.Add(
					qualify(projectName, buffer, seg, d),
					qualify(seg, buffer, d),
					qualify(projectName, buffer, d),
				)
			}
		}
		if buffer == "" {
			buffer = seg
		} else {
			buffer = qualify(buffer, seg)
		}
	}
	return out
}
