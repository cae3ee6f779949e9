package graph

import (
	"context"
	"strconv"
	"testing"

	"impgraph/internal/extractor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseUnits(t *testing.T, project string, files map[string]string, order ...string) []*extractor.SourceUnit {
	t.Helper()
	ext, err := extractor.NewExtractor("python", nil)
	require.NoError(t, err)

	units := make([]*extractor.SourceUnit, 0, len(order))
	for _, path := range order {
		units = append(units, ext.ExtractFromSource(context.Background(), path, project, []byte(files[path])))
	}
	return units
}

func edgesOfKind(g *Graph, kind EdgeKind) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

const (
	utilsPath = "/work/app/utils.py"
	mainPath  = "/work/app/main.py"
)

func TestBuild_InternalEdgeLabelledWithSymbol(t *testing.T) {
	units := parseUnits(t, "app", map[string]string{
		utilsPath: "def helper():\n    return 1\n",
		mainPath:  "from app.utils import helper\n",
	}, utilsPath, mainPath)

	g := Build(units, DefaultOptions())

	internal := edgesOfKind(g, EdgeInternal)
	require.Len(t, internal, 1)
	assert.Equal(t, mainPath, internal[0].From)
	assert.Equal(t, utilsPath, internal[0].To)
	assert.Equal(t, "helper", internal[0].Label)
	assert.Equal(t, []string{"app.utils", "app.utils.helper"}, internal[0].Matched)
	assert.Empty(t, edgesOfKind(g, EdgeExternal))

	t.Run("Dependency lookups", func(t *testing.T) {
		deps := g.GetDependencies(mainPath)
		require.Len(t, deps, 1)
		assert.Equal(t, "utils", deps[0].Label)

		dependents := g.GetDependents(utilsPath)
		require.Len(t, dependents, 1)
		assert.Equal(t, "main", dependents[0].Label)
	})
}

func TestBuild_ModuleLevelMatchIsLabelledAll(t *testing.T) {
	units := parseUnits(t, "app", map[string]string{
		utilsPath: "def helper():\n    return 1\n",
		mainPath:  "import app.utils\n",
	}, utilsPath, mainPath)

	internal := edgesOfKind(Build(units, DefaultOptions()), EdgeInternal)
	require.Len(t, internal, 1)
	assert.Equal(t, AllLabel, internal[0].Label)
}

func TestBuild_ExternalEdges(t *testing.T) {
	files := map[string]string{mainPath: "import os\n"}

	t.Run("Enabled", func(t *testing.T) {
		g := Build(parseUnits(t, "app", files, mainPath), DefaultOptions())

		external := edgesOfKind(g, EdgeExternal)
		require.Len(t, external, 1)
		assert.Equal(t, "os", external[0].From)
		assert.Equal(t, mainPath, external[0].To)
		require.Contains(t, g.Nodes, "os")
		assert.Equal(t, NodeExternal, g.Nodes["os"].Kind)
		assert.Equal(t, ExternalNodeColor, g.Nodes["os"].Color)
	})

	t.Run("Disabled", func(t *testing.T) {
		opts := DefaultOptions()
		opts.ShowExternal = false
		g := Build(parseUnits(t, "app", files, mainPath), opts)

		assert.Empty(t, edgesOfKind(g, EdgeExternal))
		assert.NotContains(t, g.Nodes, "os")
	})
}

func TestBuild_ExternalGroupingAndLabels(t *testing.T) {
	files := map[string]string{
		mainPath: "from os import path\nimport sys\nimport app\n",
	}

	g := Build(parseUnits(t, "app", files, mainPath), DefaultOptions())

	labels := map[string]string{}
	for _, e := range edgesOfKind(g, EdgeExternal) {
		labels[e.From] = e.Label
	}
	assert.Equal(t, map[string]string{"os": "path", "sys": ""}, labels, "the project token itself is never external")

	opts := DefaultOptions()
	opts.ShowLabels = false
	for _, e := range Build(parseUnits(t, "app", files, mainPath), opts).Edges {
		assert.Empty(t, e.Label)
	}
}

func TestBuild_ParseFailureIsSkipped(t *testing.T) {
	brokenPath := "/work/app/broken.py"
	units := parseUnits(t, "app", map[string]string{
		utilsPath:  "def helper():\n    pass\n",
		brokenPath: "from app.utils import helper\ndef broken(:\n",
		mainPath:   "from app.utils import helper\n",
	}, utilsPath, brokenPath, mainPath)
	require.True(t, units[1].ParseFailed)

	g := Build(units, DefaultOptions())

	for _, e := range g.Edges {
		assert.NotEqual(t, brokenPath, e.From)
		assert.NotEqual(t, brokenPath, e.To)
	}
	assert.Equal(t, []string{brokenPath}, g.Skipped)
	require.Contains(t, g.Nodes, brokenPath)
	assert.Equal(t, NodeSkipped, g.Nodes[brokenPath].Kind)
	assert.Len(t, edgesOfKind(g, EdgeInternal), 1)
	assert.InDelta(t, 3.0/20, g.RankSep, 1e-9)
}

func TestBuild_SelfImport(t *testing.T) {
	units := parseUnits(t, "app", map[string]string{
		mainPath: "import main\n\ndef run():\n    pass\n",
	}, mainPath)

	internal := edgesOfKind(Build(units, DefaultOptions()), EdgeInternal)
	require.Len(t, internal, 1)
	assert.Equal(t, mainPath, internal[0].From)
	assert.Equal(t, mainPath, internal[0].To)
}

func TestBuild_DeterministicIgnoringColour(t *testing.T) {
	files := map[string]string{
		utilsPath:            "import json\n\nclass Codec:\n    pass\n\ndef helper():\n    pass\n",
		mainPath:             "import os.path\nfrom app.utils import Codec, helper\nfrom . import models\n",
		"/work/app/models.py": "from .utils import helper\nimport requests\n",
	}
	order := []string{utilsPath, mainPath, "/work/app/models.py"}

	strip := func(g *Graph) []Edge {
		out := make([]Edge, len(g.Edges))
		for i, e := range g.Edges {
			e.Color = ""
			out[i] = e
		}
		return out
	}

	first := Build(parseUnits(t, "app", files, order...), Options{ShowExternal: true, ShowLabels: true, Style: NewRandomStyle(1)})
	second := Build(parseUnits(t, "app", files, order...), Options{ShowExternal: true, ShowLabels: true, Style: NewRandomStyle(2)})
	assert.Equal(t, strip(first), strip(second))

	var labels []string
	for _, e := range edgesOfKind(first, EdgeInternal) {
		if e.From == mainPath && e.To == utilsPath {
			labels = append(labels, e.Label)
		}
	}
	assert.Equal(t, []string{"Codec\nhelper"}, labels)
}

func TestRandomStyle_Palettes(t *testing.T) {
	style := NewRandomStyle(42)
	channels := func(hex string) []int {
		require.Len(t, hex, 7)
		var out []int
		for i := 1; i < 7; i += 2 {
			v, err := strconv.ParseUint(hex[i:i+2], 16, 8)
			require.NoError(t, err)
			out = append(out, int(v))
		}
		return out
	}

	for i := 0; i < 50; i++ {
		for _, c := range channels(style.EdgeColor(EdgeInternal)) {
			assert.LessOrEqual(t, c, 150)
		}
		for _, c := range channels(style.EdgeColor(EdgeExternal)) {
			assert.GreaterOrEqual(t, c, 140)
			assert.LessOrEqual(t, c, 230)
		}
	}

	assert.Equal(t, NewRandomStyle(7).EdgeColor(EdgeInternal), NewRandomStyle(7).EdgeColor(EdgeInternal))
}

func TestSnapshot_RoundTrip(t *testing.T) {
	units := parseUnits(t, "app", map[string]string{
		utilsPath: "def helper():\n    pass\n",
		mainPath:  "from app.utils import helper\nimport os\n",
	}, utilsPath, mainPath)
	g := Build(units, DefaultOptions())

	loaded, err := FromSnapshot(g.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, g.Edges, loaded.Edges)
	assert.Equal(t, g.NodeList(), loaded.NodeList())

	snap := g.Snapshot()
	snap.Edges[0].To = "/nowhere.py"
	_, err = FromSnapshot(snap)
	assert.Error(t, err)
}
