package render

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format is an output artifact kind.
type Format string

const (
	FormatDOT     Format = "dot"
	FormatSVG     Format = "svg"
	FormatPNG     Format = "png"
	FormatPDF     Format = "pdf"
	FormatMermaid Format = "mmd"
	FormatJSON    Format = "json"
	FormatSQLite  Format = "sqlite"
)

// ErrUnsupportedFormat is returned for formats this package cannot write.
var ErrUnsupportedFormat = errors.New("unsupported output format")

var extensions = map[string]Format{
	".dot":     FormatDOT,
	".gv":      FormatDOT,
	".svg":     FormatSVG,
	".png":     FormatPNG,
	".pdf":     FormatPDF,
	".mmd":     FormatMermaid,
	".mermaid": FormatMermaid,
	".json":    FormatJSON,
	".db":      FormatSQLite,
	".sqlite":  FormatSQLite,
	".sqlite3": FormatSQLite,
}

// FormatFromPath picks the format from the file extension, defaulting to SVG.
func FormatFromPath(path string) Format {
	if f, ok := extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return f
	}
	return FormatSVG
}

// ParseFormat accepts a format name or a file extension with or without dot.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if f, ok := extensions["."+strings.TrimPrefix(s, ".")]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, s)
}

// IsImage reports whether the format is produced by the Graphviz binary.
func (f Format) IsImage() bool {
	return f == FormatSVG || f == FormatPNG || f == FormatPDF
}
