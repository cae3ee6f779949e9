package render

import (
	"fmt"
	"io"
	"strings"

	"impgraph/internal/graph"
)

// WriteMermaid writes g as a Mermaid flowchart. Node IDs are replaced by short
// positional identifiers because paths are not valid Mermaid IDs.
func WriteMermaid(g *graph.Graph, w io.Writer) error {
	var sb strings.Builder
	sb.WriteString("flowchart TD\n")
	sb.WriteString(fmt.Sprintf("    classDef %s stroke:%s\n", graph.NodeInternal, graph.InternalNodeColor))
	sb.WriteString(fmt.Sprintf("    classDef %s stroke:%s\n", graph.NodeExternal, graph.ExternalNodeColor))
	sb.WriteString(fmt.Sprintf("    classDef %s stroke:%s,stroke-dasharray:4\n", graph.NodeSkipped, graph.SkippedNodeColor))

	ids := make(map[string]string, len(g.Nodes))
	for i, n := range g.NodeList() {
		id := fmt.Sprintf("n%d", i)
		ids[n.ID] = id
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]:::%s\n", id, mermaidText(n.Label), n.Kind))
	}

	var styles []string
	link := 0
	for _, e := range g.Edges {
		from, okFrom := ids[e.From]
		to, okTo := ids[e.To]
		if !okFrom || !okTo {
			continue
		}
		if e.Label != "" {
			sb.WriteString(fmt.Sprintf("    %s -->|\"%s\"| %s\n", from, mermaidText(e.Label), to))
		} else {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", from, to))
		}
		if e.Color != "" {
			styles = append(styles, fmt.Sprintf("    linkStyle %d stroke:%s\n", link, e.Color))
		}
		link++
	}
	for _, s := range styles {
		sb.WriteString(s)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func mermaidText(s string) string {
	s = strings.ReplaceAll(s, `"`, "#quot;")
	return strings.ReplaceAll(s, "\n", "<br/>")
}
