package preflight

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckDirectory(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, CheckDirectory(dir))

	err := CheckDirectory(filepath.Join(dir, "missing"))
	assert.True(t, errors.Is(err, ErrFatalPrecondition))

	file := filepath.Join(dir, "file.py")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	err = CheckDirectory(file)
	assert.True(t, errors.Is(err, ErrFatalPrecondition))
	assert.Contains(t, err.Error(), "not a directory")
}

func TestResolveOutputPath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	wd, err := os.Getwd()
	require.NoError(t, err)

	got, err := ResolveOutputPath("graph.svg")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "graph.svg"), got)

	got, err = ResolveOutputPath("out/graph.svg")
	require.NoError(t, err)
	assert.Equal(t, "out/graph.svg", got)
}

func TestCheckWritable(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, CheckWritable(filepath.Join(dir, "graph.svg")))

	err := CheckWritable(filepath.Join(dir, "missing", "graph.svg"))
	assert.True(t, errors.Is(err, ErrFatalPrecondition))
}

func TestProjectName(t *testing.T) {
	assert.Equal(t, "app", ProjectName("/home/u/app"))
	assert.Equal(t, "app", ProjectName("/home/u/app/"))
	assert.Equal(t, "app", ProjectName("app"))
}
