package ir

// SnapshotVersion identifies the layout of GraphSnapshot.
const SnapshotVersion = "1"

// NodeIR is a persisted graph vertex.
type NodeIR struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Kind  string `json:"kind"`
	Shape string `json:"shape"`
	Color string `json:"color"`
}

// EdgeIR is a persisted graph edge.
type EdgeIR struct {
	From    string   `json:"from"`
	To      string   `json:"to"`
	Kind    string   `json:"kind"`
	Label   string   `json:"label"`
	Color   string   `json:"color"`
	Matched []string `json:"matched,omitempty"`
}

// GraphSnapshot is the serialized form of one analysis run.
type GraphSnapshot struct {
	Version string   `json:"version"`
	RankSep float64  `json:"rank_sep"`
	Nodes   []NodeIR `json:"nodes"`
	Edges   []EdgeIR `json:"edges"`
	Skipped []string `json:"skipped,omitempty"`
}
