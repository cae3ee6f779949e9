// Package preflight validates the run's inputs before any analysis starts.
package preflight

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrFatalPrecondition wraps every failure that must stop the run up front.
var ErrFatalPrecondition = errors.New("fatal precondition")

// CheckDirectory requires dir to exist and be a directory.
func CheckDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: the directory %q does not exist", ErrFatalPrecondition, dir)
		}
		return fmt.Errorf("%w: %v", ErrFatalPrecondition, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: the path %q is not a directory", ErrFatalPrecondition, dir)
	}
	return nil
}

// ResolveOutputPath anchors a bare file name (no path separators) to the
// current working directory. Anything else is returned unchanged.
func ResolveOutputPath(output string) (string, error) {
	if strings.ContainsAny(output, `/\`) {
		return output, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFatalPrecondition, err)
	}
	return filepath.Join(wd, output), nil
}

// CheckWritable opens output for appending, creating it when absent, to prove
// the run can write its artifact.
func CheckWritable(output string) error {
	f, err := os.OpenFile(output, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return fmt.Errorf("%w: there is no write access to %q", ErrFatalPrecondition, output)
		}
		return fmt.Errorf("%w: %v", ErrFatalPrecondition, err)
	}
	return f.Close()
}

// ProjectName derives the project name from the analyzed directory: its last
// path element, ignoring trailing separators.
func ProjectName(dir string) string {
	return filepath.Base(filepath.Clean(dir))
}
