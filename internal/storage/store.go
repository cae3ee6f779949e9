package storage

import (
	"context"

	"impgraph/internal/graph"
)

// GraphStore persists one import graph snapshot.
type GraphStore interface {
	// SaveGraph replaces the stored snapshot with g.
	SaveGraph(ctx context.Context, g *graph.Graph) error

	// LoadGraph reads the stored snapshot back.
	LoadGraph(ctx context.Context) (*graph.Graph, error)

	// GetNode retrieves a node by its ID.
	GetNode(ctx context.Context, id string) (*graph.Node, error)

	// EdgesInto lists the stored edges ending at the given node.
	EdgesInto(ctx context.Context, id string) ([]graph.Edge, error)

	// Importers returns the nodes with an internal edge into the given node.
	Importers(ctx context.Context, id string) ([]*graph.Node, error)

	Close() error
}
