package extractor

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_ExtractFromFile(t *testing.T) {
	ext, err := NewExtractor("python", nil)
	require.NoError(t, err)

	path, err := filepath.Abs(filepath.Join("testdata", "bazaar", "main.py"))
	require.NoError(t, err)

	unit := ext.ExtractFromFile(context.Background(), path, "bazaar")
	require.False(t, unit.ParseFailed, "unexpected parse error: %v", unit.ParseErr)

	t.Run("Module path", func(t *testing.T) {
		assert.Equal(t, "bazaar", unit.ProjectName)
		assert.Equal(t, []string{"main"}, unit.ModulePath)
		assert.Equal(t, 1, unit.Depth())
		assert.Equal(t, "main", unit.DisplayName())
	})

	t.Run("Imports", func(t *testing.T) {
		assert.Equal(t, []string{
			"bazaar.utils",
			"bazaar.utils.Formatter",
			"bazaar.utils.helper",
			"json",
			"models",
			"models.order",
			"models.order.Order",
			"os",
			"pprint",
			"pprint.pprint",
		}, unit.RawImports.Sorted())
	})

	t.Run("Definitions", func(t *testing.T) {
		assert.Equal(t, []string{"Nested", "Service", "build", "fetch", "local", "method", "top"}, unit.Definitions.Sorted())
	})

	t.Run("Export names", func(t *testing.T) {
		assert.True(t, unit.ExportNames.Has("main"))
		assert.True(t, unit.ExportNames.Has("bazaar.main"))
		assert.True(t, unit.ExportNames.Has("bazaar.main.Service"))
		assert.True(t, unit.ExportNames.Has("main.top"))
		assert.False(t, unit.ExportNames.Has("main.inner"))
	})
}

func TestExtractor_RelativeAndFutureImports(t *testing.T) {
	ext, err := NewExtractor("python", nil)
	require.NoError(t, err)

	path, err := filepath.Abs(filepath.Join("testdata", "bazaar", "models", "order.py"))
	require.NoError(t, err)

	unit := ext.ExtractFromFile(context.Background(), path, "bazaar")
	require.False(t, unit.ParseFailed)

	assert.Equal(t, []string{"models", "order"}, unit.ModulePath)
	assert.Equal(t, []string{"__future__", "__future__.annotations", "utils", "utils.*"}, unit.RawImports.Sorted())
	assert.Equal(t, []string{"Order"}, unit.Definitions.Sorted())
}

func TestExtractor_ParseFailure(t *testing.T) {
	ext, err := NewExtractor("python", nil)
	require.NoError(t, err)

	path, err := filepath.Abs(filepath.Join("testdata", "bazaar", "broken.py"))
	require.NoError(t, err)

	unit := ext.ExtractFromFile(context.Background(), path, "bazaar")
	require.True(t, unit.ParseFailed)

	var perr *ParseError
	require.True(t, errors.As(unit.ParseErr, &perr))
	assert.Equal(t, path, perr.Path)
	assert.True(t, errors.Is(unit.ParseErr, ErrSyntax))
	assert.Positive(t, perr.Line)

	assert.Zero(t, unit.RawImports.Len())
	assert.Zero(t, unit.Definitions.Len())
	assert.Zero(t, unit.ExportNames.Len())
	assert.Equal(t, "broken", unit.DisplayName(), "failed units keep their identity")
}

func TestExtractor_RejectsWhatPython3Rejects(t *testing.T) {
	ext, err := NewExtractor("python", nil)
	require.NoError(t, err)

	tests := []struct {
		name string
		src  string
		line int
	}{
		{"print statement", "import os\nprint \"hello\"\n", 2},
		{"exec statement", "import os\nexec \"x = 1\"\n", 2},
		{"except with comma", "import os\ntry:\n    pass\nexcept Exception, e:\n    pass\n", 4},
		{"backtick repr", "import os\nx = `1`\n", 2},
		{"positional after keyword", "import os\nf(x=1, 2)\n", 2},
		{"unpacking after keyword unpacking", "import os\ng(**k, *a)\n", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit := ext.ExtractFromSource(context.Background(), "/work/app/m.py", "app", []byte(tt.src))
			require.True(t, unit.ParseFailed)

			var perr *ParseError
			require.True(t, errors.As(unit.ParseErr, &perr))
			assert.True(t, errors.Is(unit.ParseErr, ErrSyntax))
			assert.Equal(t, tt.line, perr.Line)
			assert.Zero(t, unit.RawImports.Len())
			assert.Zero(t, unit.ExportNames.Len())
		})
	}
}

func TestExtractor_AcceptsPython3Forms(t *testing.T) {
	ext, err := NewExtractor("python", nil)
	require.NoError(t, err)

	src := []byte(`import os
f(*a, x=1, *b, **k)
f(a, *b, c)
f(**k, x=1)
f(a, # note
  b)
h(a for a in b)
print(x, file=y)
exec(c)
s = f"{x}" + rb"raw"
try:
    pass
except (A, B) as e:
    pass
`)
	unit := ext.ExtractFromSource(context.Background(), "/work/app/m.py", "app", src)
	require.False(t, unit.ParseFailed, "%v", unit.ParseErr)
	assert.Equal(t, []string{"os"}, unit.RawImports.Sorted())
}

func TestExtractor_MissingFile(t *testing.T) {
	ext, err := NewExtractor("python", nil)
	require.NoError(t, err)

	unit := ext.ExtractFromFile(context.Background(), filepath.Join(t.TempDir(), "proj", "gone.py"), "")
	assert.True(t, unit.ParseFailed)
	assert.False(t, errors.Is(unit.ParseErr, ErrSyntax))
}

func TestExtractor_LegacyPolicy(t *testing.T) {
	ext, err := NewExtractor("python", LegacyPolicy)
	require.NoError(t, err)

	src := []byte(`
class Service:
    def method(self):
        def inner():
            pass

    class Nested:
        def deep(self):
            pass

def top():
    def local():
        pass
`)
	unit := ext.ExtractFromSource(context.Background(), "/work/proj/svc.py", "proj", src)
	require.False(t, unit.ParseFailed)
	assert.Equal(t, []string{"Nested", "Service", "inner", "local", "top"}, unit.Definitions.Sorted())
}

func TestExtractor_AliasedImports(t *testing.T) {
	ext, err := NewExtractor("python", nil)
	require.NoError(t, err)

	src := []byte("import numpy as np, os.path\nfrom collections import (OrderedDict as OD,\n    defaultdict)\n")
	unit := ext.ExtractFromSource(context.Background(), "/work/proj/a.py", "proj", src)
	require.False(t, unit.ParseFailed)
	assert.Equal(t, []string{
		"collections",
		"collections.OrderedDict",
		"collections.defaultdict",
		"numpy",
		"os.path",
	}, unit.RawImports.Sorted())
}

func TestNewExtractor_UnsupportedLanguage(t *testing.T) {
	_, err := NewExtractor("cobol", nil)
	assert.Error(t, err)
}
