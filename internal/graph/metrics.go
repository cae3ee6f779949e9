package graph

// EdgeCounts tallies edges per kind.
func (g *Graph) EdgeCounts() map[EdgeKind]int {
	counts := make(map[EdgeKind]int)
	if g == nil {
		return counts
	}
	for _, e := range g.Edges {
		counts[e.Kind]++
	}
	return counts
}

// NodeCounts tallies nodes per kind.
func (g *Graph) NodeCounts() map[NodeKind]int {
	counts := make(map[NodeKind]int)
	if g == nil {
		return counts
	}
	for _, n := range g.Nodes {
		counts[n.Kind]++
	}
	return counts
}
