package graph

import (
	"sort"

	"impgraph/internal/extractor"
	"impgraph/internal/resolver"
)

// Options controls graph assembly.
type Options struct {
	ShowExternal bool        // add external-token nodes and edges
	ShowLabels   bool        // attach matched-symbol labels to edges
	Style        StylePolicy // nil selects a fixed two-colour style
}

// DefaultOptions shows external edges and labels.
func DefaultOptions() Options {
	return Options{ShowExternal: true, ShowLabels: true}
}

var defaultFixedStyle = FixedStyle{
	EdgeInternal: "#1f4e79",
	EdgeExternal: "#c8c8c8",
}

// Build assembles the import graph of units.
//
// Every unit's export names are folded into one universe before any pair is
// examined, so the result does not depend on the order of units. For each
// ordered pair (A, B), including A == B, an edge B -> A is added when B's raw
// imports intersect A's export names. Units that failed to parse get a skipped
// node and take part in no edge.
func Build(units []*extractor.SourceUnit, opts Options) *Graph {
	style := opts.Style
	if style == nil {
		style = defaultFixedStyle
	}

	g := NewGraph()
	g.RankSep = float64(len(units)) / 20

	live := make([]*extractor.SourceUnit, 0, len(units))
	for _, u := range units {
		if !u.ParseFailed {
			live = append(live, u)
		}
	}
	if opts.ShowExternal {
		resolver.ClassifyAll(live)
	}

	for _, a := range units {
		if a.ParseFailed {
			g.AddNode(Node{ID: a.Location, Label: a.DisplayName(), Kind: NodeSkipped, Color: SkippedNodeColor})
			g.Skipped = append(g.Skipped, a.Location)
			continue
		}
		g.AddNode(unitNode(a))

		for _, b := range live {
			matched := a.ExportNames.Intersect(b.RawImports)
			if matched.Len() == 0 {
				continue
			}
			g.AddNode(unitNode(b))
			label := ""
			if opts.ShowLabels {
				label = InternalLabel(a.Definitions, matched)
			}
			g.AddEdge(Edge{
				From:    b.Location,
				To:      a.Location,
				Kind:    EdgeInternal,
				Label:   label,
				Color:   style.EdgeColor(EdgeInternal),
				Matched: matched.Sorted(),
			})
		}

		if !opts.ShowExternal {
			continue
		}
		groups := ExternalLabels(a.ExternalImports)
		tokens := make([]string, 0, len(groups))
		for token := range groups {
			tokens = append(tokens, token)
		}
		sort.Strings(tokens)
		for _, token := range tokens {
			g.AddNode(Node{ID: token, Label: token, Kind: NodeExternal, Color: ExternalNodeColor})
			label := ""
			if opts.ShowLabels {
				label = groups[token]
			}
			g.AddEdge(Edge{
				From:  token,
				To:    a.Location,
				Kind:  EdgeExternal,
				Label: label,
				Color: style.EdgeColor(EdgeExternal),
			})
		}
	}
	return g
}

func unitNode(u *extractor.SourceUnit) Node {
	return Node{ID: u.Location, Label: u.DisplayName(), Kind: NodeInternal, Color: InternalNodeColor}
}
