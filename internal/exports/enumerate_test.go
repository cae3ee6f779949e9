package exports

import (
	"testing"

	"impgraph/internal/names"

	"github.com/stretchr/testify/assert"
)

func TestEnumerate_NestedModule(t *testing.T) {
	got := Enumerate("app", []string{"app", "utils"}, names.NewSet("helper"))

	for _, want := range []string{
		"app", "app.app", "utils", "app.utils", "app.app.utils",
		"app.app.helper", "utils.helper", "app.helper",
		"app.utils.helper", "app.app.utils.helper", "utils.app.helper",
	} {
		assert.True(t, got.Has(want), "missing %q in %s", want, got)
	}
	assert.Equal(t, 11, got.Len())
}

func TestEnumerate_NoDefinitions(t *testing.T) {
	got := Enumerate("proj", []string{"pkg", "sub", "mod"}, names.NewSet())

	assert.Equal(t, []string{
		"mod",
		"pkg",
		"pkg.sub",
		"pkg.sub.mod",
		"proj.mod",
		"proj.pkg",
		"proj.pkg.sub",
		"proj.pkg.sub.mod",
		"proj.sub",
		"sub",
	}, got.Sorted())
}

func TestEnumerate_Deterministic(t *testing.T) {
	defs := names.NewSet("Alpha", "beta", "Gamma")
	first := Enumerate("proj", []string{"a", "b"}, defs)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first.Sorted(), Enumerate("proj", []string{"a", "b"}, defs.Clone()).Sorted())
	}
}

func TestEnumerate_EmptyModulePath(t *testing.T) {
	assert.Equal(t, 0, Enumerate("proj", nil, names.NewSet("x")).Len())
}
