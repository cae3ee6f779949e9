package graph

type NodeKind string

const (
	NodeInternal NodeKind = "internal" // an analyzed source file
	NodeExternal NodeKind = "external" // a top-level import token with no internal match
	NodeSkipped  NodeKind = "skipped"  // a source file that failed to parse
)

type EdgeKind string

const (
	EdgeInternal EdgeKind = "internal"
	EdgeExternal EdgeKind = "external"
)

// AllLabel marks an internal edge where no specific definition could be isolated.
const AllLabel = "All"

// Node colours per kind. Edge colours come from a StylePolicy.
const (
	InternalNodeColor = "green"
	ExternalNodeColor = "red"
	SkippedNodeColor  = "gray"
	NodeShape         = "box"
)

// Node is a vertex of the import graph. Internal and skipped nodes are keyed by
// file path, external nodes by their import token.
type Node struct {
	ID    string   `json:"id"`
	Label string   `json:"label"`
	Kind  NodeKind `json:"kind"`
	Shape string   `json:"shape"`
	Color string   `json:"color"`
}

// Edge is a directed relationship. Internal edges point from the importing file
// to the file that exports the matched names; external edges point from the
// external token to the importing file.
type Edge struct {
	From    string   `json:"from"`
	To      string   `json:"to"`
	Kind    EdgeKind `json:"kind"`
	Label   string   `json:"label"`
	Color   string   `json:"color"`
	Matched []string `json:"matched,omitempty"` // intersecting names, internal edges only
}
