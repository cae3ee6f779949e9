package extractor

import (
	"errors"
	"fmt"
)

// ErrSyntax marks a source file whose syntax tree contains errors.
var ErrSyntax = errors.New("syntax error")

// ParseError reports a single file that could not be analyzed.
// It never aborts a run; the unit is skipped instead.
type ParseError struct {
	Path string
	Line int // 1-based, 0 when unknown
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
