package git

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNames(t *testing.T) {
	out := []byte("pkg/a.py\n\nREADME.md\npkg/sub/b.py\n")
	root := filepath.FromSlash("/repo")

	assert.Equal(t, []string{
		filepath.Join(root, "pkg", "a.py"),
		filepath.Join(root, "README.md"),
		filepath.Join(root, "pkg", "sub", "b.py"),
	}, parseNames(root, out))

	assert.Empty(t, parseNames(root, nil))
}
