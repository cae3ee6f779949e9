package analysis

import (
	"context"
	"sort"

	"impgraph/internal/graph"
)

// ImpactReport lists the files affected when some source files change.
type ImpactReport struct {
	DirectlyAffected   []*graph.Node // files that import a changed file
	IndirectlyAffected []*graph.Node // files reached only through other importers
}

// Analyzer answers questions about an assembled import graph.
type Analyzer struct {
	g *graph.Graph
}

// NewAnalyzer creates a new analyzer.
func NewAnalyzer(g *graph.Graph) *Analyzer {
	return &Analyzer{g: g}
}

// ImportIndex answers which nodes import a given node over internal edges.
// Self-imports are never reported.
type ImportIndex interface {
	Importers(ctx context.Context, id string) ([]*graph.Node, error)
}

// Impact follows internal edges backwards from the changed files and collects
// every importer, direct or transitive. Changed files are never reported as
// affected.
func Impact(ctx context.Context, idx ImportIndex, changed []string) (*ImpactReport, error) {
	report := &ImpactReport{
		DirectlyAffected:   []*graph.Node{},
		IndirectlyAffected: []*graph.Node{},
	}

	seen := make(map[string]bool, len(changed))
	for _, path := range changed {
		seen[path] = true
	}

	var frontier []string
	for _, path := range changed {
		importers, err := idx.Importers(ctx, path)
		if err != nil {
			return nil, err
		}
		for _, imp := range importers {
			if seen[imp.ID] {
				continue
			}
			seen[imp.ID] = true
			report.DirectlyAffected = append(report.DirectlyAffected, imp)
			frontier = append(frontier, imp.ID)
		}
	}

	for len(frontier) > 0 {
		id := frontier[0]
		frontier = frontier[1:]
		importers, err := idx.Importers(ctx, id)
		if err != nil {
			return nil, err
		}
		for _, imp := range importers {
			if seen[imp.ID] {
				continue
			}
			seen[imp.ID] = true
			report.IndirectlyAffected = append(report.IndirectlyAffected, imp)
			frontier = append(frontier, imp.ID)
		}
	}

	sortNodes(report.DirectlyAffected)
	sortNodes(report.IndirectlyAffected)
	return report, nil
}

// Importers returns the internal nodes with an internal edge into id.
func (a *Analyzer) Importers(_ context.Context, id string) ([]*graph.Node, error) {
	var out []*graph.Node
	for _, e := range a.g.Edges {
		if e.Kind != graph.EdgeInternal || e.To != id || e.From == id {
			continue
		}
		if n, ok := a.g.Nodes[e.From]; ok {
			out = append(out, n)
		}
	}
	return out, nil
}

func sortNodes(nodes []*graph.Node) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
}
