package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"impgraph/internal/graph"
	"impgraph/internal/ir"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNodeNotFound is returned by GetNode for unknown IDs.
var ErrNodeNotFound = errors.New("node not found")

var _ GraphStore = (*SQLiteStore)(nil)

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS nodes (
			id TEXT PRIMARY KEY,
			position INTEGER,
			label TEXT,
			kind TEXT,
			shape TEXT,
			color TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS edges (
			position INTEGER PRIMARY KEY,
			from_id TEXT,
			to_id TEXT,
			kind TEXT,
			label TEXT,
			color TEXT,
			matched JSON
		);`,
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_edges_to ON edges(to_id);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// SaveGraph replaces the stored snapshot in a single transaction.
func (s *SQLiteStore) SaveGraph(ctx context.Context, g *graph.Graph) error {
	snap := g.Snapshot()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"edges", "nodes", "meta"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO nodes (id, position, label, kind, shape, color) VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, n := range snap.Nodes {
		if _, err := stmt.ExecContext(ctx, n.ID, i, n.Label, n.Kind, n.Shape, n.Color); err != nil {
			return fmt.Errorf("failed to save node %s: %w", n.ID, err)
		}
	}

	edgeStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO edges (position, from_id, to_id, kind, label, color, matched) VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer edgeStmt.Close()

	for i, e := range snap.Edges {
		matched, err := json.Marshal(e.Matched)
		if err != nil {
			return err
		}
		if _, err := edgeStmt.ExecContext(ctx, i, e.From, e.To, e.Kind, e.Label, e.Color, matched); err != nil {
			return fmt.Errorf("failed to save edge %s -> %s: %w", e.From, e.To, err)
		}
	}

	skipped, err := json.Marshal(snap.Skipped)
	if err != nil {
		return err
	}
	meta := map[string]string{
		"version":  snap.Version,
		"rank_sep": strconv.FormatFloat(snap.RankSep, 'f', -1, 64),
		"skipped":  string(skipped),
	}
	for k, v := range meta {
		if _, err := tx.ExecContext(ctx, "INSERT INTO meta (key, value) VALUES (?, ?)", k, v); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadGraph reads the stored snapshot. An empty database yields an empty graph.
func (s *SQLiteStore) LoadGraph(ctx context.Context) (*graph.Graph, error) {
	snap := ir.GraphSnapshot{Version: ir.SnapshotVersion}

	meta, err := s.loadMeta(ctx)
	if err != nil {
		return nil, err
	}
	if v, ok := meta["version"]; ok {
		snap.Version = v
	}
	if v, ok := meta["rank_sep"]; ok {
		if snap.RankSep, err = strconv.ParseFloat(v, 64); err != nil {
			return nil, fmt.Errorf("invalid rank_sep %q: %w", v, err)
		}
	}
	if v, ok := meta["skipped"]; ok {
		if err := json.Unmarshal([]byte(v), &snap.Skipped); err != nil {
			return nil, fmt.Errorf("invalid skipped list: %w", err)
		}
	}

	rows, err := s.db.QueryContext(ctx, "SELECT id, label, kind, shape, color FROM nodes ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to query nodes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var n ir.NodeIR
		if err := rows.Scan(&n.ID, &n.Label, &n.Kind, &n.Shape, &n.Color); err != nil {
			return nil, fmt.Errorf("failed to scan node: %w", err)
		}
		snap.Nodes = append(snap.Nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	edges, err := s.queryEdges(ctx, "SELECT from_id, to_id, kind, label, color, matched FROM edges ORDER BY position")
	if err != nil {
		return nil, err
	}
	snap.Edges = edges

	return graph.FromSnapshot(snap)
}

func (s *SQLiteStore) GetNode(ctx context.Context, id string) (*graph.Node, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, label, kind, shape, color FROM nodes WHERE id = ?", id)

	var n graph.Node
	var kind string
	if err := row.Scan(&n.ID, &n.Label, &kind, &n.Shape, &n.Color); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
		}
		return nil, err
	}
	n.Kind = graph.NodeKind(kind)
	return &n, nil
}

// EdgesInto lists the stored edges that end at the given node.
func (s *SQLiteStore) EdgesInto(ctx context.Context, id string) ([]graph.Edge, error) {
	irs, err := s.queryEdges(ctx, "SELECT from_id, to_id, kind, label, color, matched FROM edges WHERE to_id = ? ORDER BY position", id)
	if err != nil {
		return nil, err
	}
	edges := make([]graph.Edge, 0, len(irs))
	for _, e := range irs {
		edges = append(edges, graph.Edge{
			From:    e.From,
			To:      e.To,
			Kind:    graph.EdgeKind(e.Kind),
			Label:   e.Label,
			Color:   e.Color,
			Matched: e.Matched,
		})
	}
	return edges, nil
}

// Importers returns the nodes with an internal edge into id, self-edges
// excluded, straight from the database.
func (s *SQLiteStore) Importers(ctx context.Context, id string) ([]*graph.Node, error) {
	edges, err := s.EdgesInto(ctx, id)
	if err != nil {
		return nil, err
	}
	var out []*graph.Node
	for _, e := range edges {
		if e.Kind != graph.EdgeInternal || e.From == id {
			continue
		}
		n, err := s.GetNode(ctx, e.From)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (s *SQLiteStore) queryEdges(ctx context.Context, query string, args ...any) ([]ir.EdgeIR, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query edges: %w", err)
	}
	defer rows.Close()

	var edges []ir.EdgeIR
	for rows.Next() {
		var e ir.EdgeIR
		var matched []byte
		if err := rows.Scan(&e.From, &e.To, &e.Kind, &e.Label, &e.Color, &matched); err != nil {
			return nil, fmt.Errorf("failed to scan edge: %w", err)
		}
		if len(matched) > 0 {
			if err := json.Unmarshal(matched, &e.Matched); err != nil {
				return nil, fmt.Errorf("invalid matched list for %s -> %s: %w", e.From, e.To, err)
			}
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

func (s *SQLiteStore) loadMeta(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM meta")
	if err != nil {
		return nil, fmt.Errorf("failed to query meta: %w", err)
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		meta[k] = v
	}
	return meta, rows.Err()
}
