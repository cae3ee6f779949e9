// Package git lists the files a working tree has changed since a revision.
package git

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// ChangedFiles runs git diff in dir against baseRef and returns the absolute
// paths of the changed files that still exist in the working tree.
func ChangedFiles(ctx context.Context, dir, baseRef string) ([]string, error) {
	top, err := run(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, err
	}
	root := strings.TrimSpace(string(top))

	out, err := run(ctx, dir, "diff", "--name-only", "--diff-filter=d", baseRef)
	if err != nil {
		return nil, err
	}
	return parseNames(root, out), nil
}

func run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git %s failed: %w: %s", args[0], err, bytes.TrimSpace(stderr.Bytes()))
	}
	return out, nil
}

// parseNames turns repository-relative names, one per line, into paths under root.
func parseNames(root string, output []byte) []string {
	scanner := bufio.NewScanner(bytes.NewReader(output))
	var paths []string
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		paths = append(paths, filepath.Join(root, filepath.FromSlash(name)))
	}
	return paths
}
