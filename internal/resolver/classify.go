// Package resolver separates a unit's imports into those satisfied inside the
// project and those attributed to external dependencies.
package resolver

import (
	"impgraph/internal/extractor"
	"impgraph/internal/names"
)

// Universe folds the export names of every analyzable unit into one set.
// Units that failed to parse contribute nothing.
func Universe(units []*extractor.SourceUnit) names.Set {
	universe := make(names.Set)
	for _, u := range units {
		if u == nil || u.ParseFailed {
			continue
		}
		universe.Union(u.ExportNames)
	}
	return universe
}

// Classify splits unit.RawImports against the export universe. The project's
// own name is never reported as external. Running it again with the same
// universe gives the same result.
func Classify(unit *extractor.SourceUnit, universe names.Set) {
	unit.InternalImports = unit.RawImports.Intersect(universe)
	unit.ExternalImports = unit.RawImports.Difference(unit.InternalImports)
	unit.ExternalImports.Remove(unit.ProjectName)
	unit.Classified = true
}

// ClassifyAll classifies every unit against the universe of all units.
func ClassifyAll(units []*extractor.SourceUnit) names.Set {
	universe := Universe(units)
	for _, u := range units {
		if u == nil || u.ParseFailed {
			continue
		}
		Classify(u, universe)
	}
	return universe
}
