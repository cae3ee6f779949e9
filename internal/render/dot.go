package render

import (
	"io"
	"strconv"

	"impgraph/internal/graph"

	"github.com/emicklei/dot"
)

// DOT builds the Graphviz document for g: one box per node and one coloured,
// optionally labelled edge per relationship.
func DOT(g *graph.Graph) *dot.Graph {
	d := dot.NewGraph(dot.Directed)
	d.ID("imports")
	d.Attr("ranksep", strconv.FormatFloat(g.RankSep, 'f', -1, 64))

	for _, n := range g.NodeList() {
		node := d.Node(n.ID).
			Label(n.Label).
			Attr("shape", n.Shape).
			Attr("color", n.Color)
		if n.Kind == graph.NodeSkipped {
			node.Attr("style", "dashed")
		}
	}

	// Nodes already exist, so Node looks them up.
	for _, e := range g.Edges {
		edge := d.Edge(d.Node(e.From), d.Node(e.To)).
			Attr("color", e.Color).
			Attr("fontcolor", e.Color)
		if e.Label != "" {
			edge.Attr("label", e.Label)
		}
	}
	return d
}

// WriteDOT writes the DOT document for g to w.
func WriteDOT(g *graph.Graph, w io.Writer) error {
	_, err := io.WriteString(w, DOT(g).String())
	return err
}
