// Package render turns an assembled graph into an output artifact.
package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"impgraph/internal/graph"
)

// ErrGraphvizMissing is returned when an image format is requested but the
// Graphviz "dot" binary is not on PATH.
var ErrGraphvizMissing = errors.New("graphviz dot binary not found")

// GraphvizBinary is the executable used for image formats.
var GraphvizBinary = "dot"

// Write renders g in the given format to w. Image formats need Graphviz.
func Write(ctx context.Context, g *graph.Graph, format Format, w io.Writer) error {
	switch format {
	case FormatDOT:
		return WriteDOT(g, w)
	case FormatMermaid:
		return WriteMermaid(g, w)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(g.Snapshot())
	case FormatSVG, FormatPNG, FormatPDF:
		return runGraphviz(ctx, g, format, w)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// WriteFile renders g into the file at path, replacing its contents.
func WriteFile(ctx context.Context, g *graph.Graph, path string, format Format) error {
	var buf bytes.Buffer
	if err := Write(ctx, g, format, &buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func runGraphviz(ctx context.Context, g *graph.Graph, format Format, w io.Writer) error {
	bin, err := exec.LookPath(GraphvizBinary)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGraphvizMissing, err)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "-T"+string(format))
	cmd.Stdin = bytes.NewBufferString(DOT(g).String())
	cmd.Stdout = w
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("graphviz failed: %w: %s", err, bytes.TrimSpace(stderr.Bytes()))
	}
	return nil
}

// View opens path with the platform's default viewer without waiting for it.
func View(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open viewer: %w", err)
	}
	return cmd.Process.Release()
}
