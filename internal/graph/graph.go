package graph

// Graph manages nodes and their relationships.
type Graph struct {
	Nodes map[string]*Node
	Edges []Edge

	// RankSep is the vertical rank separation hint handed to the renderer.
	RankSep float64
	// Skipped lists the paths of units that failed to parse, in scan order.
	Skipped []string

	order []string
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		Nodes: make(map[string]*Node),
		Edges: []Edge{},
	}
}

// AddNode inserts a node unless one with the same ID exists. It reports whether
// the node was added.
func (g *Graph) AddNode(n Node) bool {
	if _, ok := g.Nodes[n.ID]; ok {
		return false
	}
	if n.Shape == "" {
		n.Shape = NodeShape
	}
	g.Nodes[n.ID] = &n
	g.order = append(g.order, n.ID)
	return true
}

func (g *Graph) AddEdge(e Edge) {
	g.Edges = append(g.Edges, e)
}

// NodeList returns the nodes in insertion order.
func (g *Graph) NodeList() []*Node {
	out := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.Nodes[id])
	}
	return out
}

// GetDependencies returns all nodes that the given node has an edge to.
func (g *Graph) GetDependencies(id string) []*Node {
	var deps []*Node
	for _, edge := range g.Edges {
		if edge.From == id {
			if node, ok := g.Nodes[edge.To]; ok {
				deps = append(deps, node)
			}
		}
	}
	return deps
}

// GetDependents returns all nodes that have an edge to the given node.
func (g *Graph) GetDependents(id string) []*Node {
	var deps []*Node
	for _, edge := range g.Edges {
		if edge.To == id {
			if node, ok := g.Nodes[edge.From]; ok {
				deps = append(deps, node)
			}
		}
	}
	return deps
}
