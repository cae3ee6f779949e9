package graph

import (
	"fmt"

	"impgraph/internal/ir"
)

// Snapshot converts the graph into its persisted form, nodes in insertion order.
func (g *Graph) Snapshot() ir.GraphSnapshot {
	snap := ir.GraphSnapshot{
		Version: ir.SnapshotVersion,
		RankSep: g.RankSep,
		Nodes:   make([]ir.NodeIR, 0, len(g.order)),
		Edges:   make([]ir.EdgeIR, 0, len(g.Edges)),
		Skipped: append([]string(nil), g.Skipped...),
	}
	for _, n := range g.NodeList() {
		snap.Nodes = append(snap.Nodes, ir.NodeIR{
			ID:    n.ID,
			Label: n.Label,
			Kind:  string(n.Kind),
			Shape: n.Shape,
			Color: n.Color,
		})
	}
	for _, e := range g.Edges {
		snap.Edges = append(snap.Edges, ir.EdgeIR{
			From:    e.From,
			To:      e.To,
			Kind:    string(e.Kind),
			Label:   e.Label,
			Color:   e.Color,
			Matched: append([]string(nil), e.Matched...),
		})
	}
	return snap
}

// FromSnapshot rebuilds a graph from its persisted form.
func FromSnapshot(snap ir.GraphSnapshot) (*Graph, error) {
	if snap.Version != ir.SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %q", snap.Version)
	}
	g := NewGraph()
	g.RankSep = snap.RankSep
	g.Skipped = append(g.Skipped, snap.Skipped...)
	for _, n := range snap.Nodes {
		g.AddNode(Node{
			ID:    n.ID,
			Label: n.Label,
			Kind:  NodeKind(n.Kind),
			Shape: n.Shape,
			Color: n.Color,
		})
	}
	for _, e := range snap.Edges {
		if _, ok := g.Nodes[e.From]; !ok {
			return nil, fmt.Errorf("edge source %q is not a node", e.From)
		}
		if _, ok := g.Nodes[e.To]; !ok {
			return nil, fmt.Errorf("edge target %q is not a node", e.To)
		}
		g.AddEdge(Edge{
			From:    e.From,
			To:      e.To,
			Kind:    EdgeKind(e.Kind),
			Label:   e.Label,
			Color:   e.Color,
			Matched: e.Matched,
		})
	}
	return g, nil
}
