package crawler

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"impgraph/internal/extractor"
)

// DefaultIgnored are directory names never descended into.
var DefaultIgnored = []string{".git", "__pycache__", ".venv", "venv", "node_modules"}

// Crawler scans a directory for source files.
type Crawler struct {
	extractor *extractor.Extractor
	ignored   []string
}

// NewCrawler creates a new crawler instance. A nil ignored list selects
// DefaultIgnored.
func NewCrawler(ext *extractor.Extractor, ignored []string) *Crawler {
	if ignored == nil {
		ignored = DefaultIgnored
	}
	return &Crawler{
		extractor: ext,
		ignored:   ignored,
	}
}

// FindSources walks root and returns the absolute paths of every file the
// extractor understands, in lexical walk order.
func (c *Crawler) FindSources(root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var paths []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip ignored directories, but never the root itself
		if d.IsDir() {
			if path == absRoot {
				return nil
			}
			for _, ign := range c.ignored {
				if d.Name() == ign {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if c.accepts(d.Name()) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// ScanProject walks the root directory and streams one SourceUnit per source
// file. Files that fail to parse are still streamed, flagged as failed.
func (c *Crawler) ScanProject(ctx context.Context, root, projectName string, onUnit func(*extractor.SourceUnit)) error {
	paths, err := c.FindSources(root)
	if err != nil {
		return err
	}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		onUnit(c.extractor.ExtractFromFile(ctx, path, projectName))
	}
	return nil
}

func (c *Crawler) accepts(name string) bool {
	for _, ext := range c.extractor.Extensions() {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
