package index

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"impgraph/internal/crawler"
	"impgraph/internal/extractor"
	"impgraph/internal/graph"
	"impgraph/internal/ir"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Indexer orchestrates source discovery, per-file analysis and graph assembly.
type Indexer struct {
	crawler   *crawler.Crawler
	extractor *extractor.Extractor
	logger    *log.Logger
	workers   int
}

// NewIndexer creates a new indexer. Fewer than one worker means one.
func NewIndexer(c *crawler.Crawler, ext *extractor.Extractor, logger *log.Logger, workers int) *Indexer {
	if workers < 1 {
		workers = 1
	}
	return &Indexer{
		crawler:   c,
		extractor: ext,
		logger:    logger,
		workers:   workers,
	}
}

// Analyze parses every source file under root. Units come back in discovery
// order whatever the worker count; per-file parse failures are logged and kept
// as failed units.
func (i *Indexer) Analyze(ctx context.Context, root, projectName string) ([]*extractor.SourceUnit, error) {
	units, err := i.parse(ctx, root, projectName)
	if err != nil {
		return nil, err
	}

	for _, u := range units {
		if u.ParseFailed {
			i.logger.Error("Error in the file", "path", u.Location, "err", u.ParseErr)
			continue
		}
		i.logger.Info("analyzed", "path", u.Location, "imports", u.RawImports.Len(), "definitions", u.Definitions.Len())
	}
	return units, nil
}

// parse streams units from the crawler with one worker and fans out over an
// errgroup otherwise, slotting results by discovery index.
func (i *Indexer) parse(ctx context.Context, root, projectName string) ([]*extractor.SourceUnit, error) {
	if i.workers == 1 {
		var units []*extractor.SourceUnit
		err := i.crawler.ScanProject(ctx, root, projectName, func(u *extractor.SourceUnit) {
			units = append(units, u)
		})
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		return units, nil
	}

	paths, err := i.crawler.FindSources(root)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	units := make([]*extractor.SourceUnit, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.workers)
	for idx, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			units[idx] = i.extractor.ExtractFromFile(gctx, path, projectName)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return units, nil
}

// BuildGraph analyzes root and assembles its import graph.
func (i *Indexer) BuildGraph(ctx context.Context, root, projectName string, opts graph.Options) (*graph.Graph, []*extractor.SourceUnit, error) {
	units, err := i.Analyze(ctx, root, projectName)
	if err != nil {
		return nil, nil, err
	}
	return graph.Build(units, opts), units, nil
}

// SaveGraph persists the graph to a JSON file.
func SaveGraph(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create graph file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(g.Snapshot()); err != nil {
		return fmt.Errorf("failed to encode graph: %w", err)
	}
	return nil
}

// LoadGraph loads a graph from a JSON file.
func LoadGraph(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open graph file: %w", err)
	}
	defer f.Close()

	var snap ir.GraphSnapshot
	if err := json.NewDecoder(f).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode graph: %w", err)
	}
	return graph.FromSnapshot(snap)
}
