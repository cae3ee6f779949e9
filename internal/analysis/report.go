package analysis

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"impgraph/internal/graph"
)

// Report is a textual summary of one graph.
type Report struct {
	Units         int
	Skipped       []string
	InternalEdges int
	ExternalEdges int
	External      []string   // external tokens, sorted
	SelfImports   []string   // files whose imports match their own exports
	Cycles        [][]string // import cycles of two or more files, each sorted
}

// Summarize computes the report for g.
func (a *Analyzer) Summarize() *Report {
	nodes := a.g.NodeCounts()
	edges := a.g.EdgeCounts()

	r := &Report{
		Units:         nodes[graph.NodeInternal] + nodes[graph.NodeSkipped],
		Skipped:       append([]string(nil), a.g.Skipped...),
		InternalEdges: edges[graph.EdgeInternal],
		ExternalEdges: edges[graph.EdgeExternal],
	}
	for _, n := range a.g.NodeList() {
		if n.Kind == graph.NodeExternal {
			r.External = append(r.External, n.ID)
		}
	}
	sort.Strings(r.External)

	self := make(map[string]bool)
	for _, e := range a.g.Edges {
		if e.Kind == graph.EdgeInternal && e.From == e.To && !self[e.From] {
			self[e.From] = true
			r.SelfImports = append(r.SelfImports, e.From)
		}
	}
	sort.Strings(r.SelfImports)

	r.Cycles = a.cycles()
	return r
}

// cycles returns the strongly connected components of the internal edges that
// hold more than one node, found with Tarjan's algorithm.
func (a *Analyzer) cycles() [][]string {
	adj := make(map[string][]string)
	for _, e := range a.g.Edges {
		if e.Kind == graph.EdgeInternal && e.From != e.To {
			adj[e.From] = append(adj[e.From], e.To)
		}
	}

	var (
		index   = make(map[string]int)
		low     = make(map[string]int)
		onStack = make(map[string]bool)
		stack   []string
		next    int
		out     [][]string
	)

	var visit func(v string)
	visit = func(v string) {
		index[v] = next
		low[v] = next
		next++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range adj[v] {
			if _, seen := index[w]; !seen {
				visit(w)
				low[v] = min(low[v], low[w])
			} else if onStack[w] {
				low[v] = min(low[v], index[w])
			}
		}

		if low[v] != index[v] {
			return
		}
		var comp []string
		for {
			w := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[w] = false
			comp = append(comp, w)
			if w == v {
				break
			}
		}
		if len(comp) > 1 {
			sort.Strings(comp)
			out = append(out, comp)
		}
	}

	for _, n := range a.g.NodeList() {
		if _, seen := index[n.ID]; !seen {
			visit(n.ID)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

// Write prints the report in a plain, line-oriented layout.
func (r *Report) Write(w io.Writer) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "units: %d (skipped %d)\n", r.Units, len(r.Skipped))
	fmt.Fprintf(&sb, "edges: %d internal, %d external\n", r.InternalEdges, r.ExternalEdges)
	for _, p := range r.Skipped {
		fmt.Fprintf(&sb, "skipped: %s\n", p)
	}
	if len(r.External) > 0 {
		fmt.Fprintf(&sb, "external: %s\n", strings.Join(r.External, ", "))
	}
	for _, p := range r.SelfImports {
		fmt.Fprintf(&sb, "self-import: %s\n", p)
	}
	for _, c := range r.Cycles {
		fmt.Fprintf(&sb, "cycle: %s\n", strings.Join(c, " -> "))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// Summarize is shorthand for NewAnalyzer(g).Summarize().
func Summarize(g *graph.Graph) *Report {
	return NewAnalyzer(g).Summarize()
}
