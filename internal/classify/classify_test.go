package classify

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cppdep/cppdep/internal/depgraph"
)

func buildGraph(files []depgraph.File, components []depgraph.Component) *depgraph.Graph {
	return &depgraph.Graph{Files: files, Components: components}
}

func TestComponentDeadHeader(t *testing.T) {
	g := buildGraph([]depgraph.File{
		{Path: "c/dead.h", Component: 0},
	}, []depgraph.Component{{Path: "c"}})

	results := Component(g, 0)
	require.Len(t, results, 1)
	require.Equal(t, Dead, results[0].Class)
}

func TestComponentPublicHeader(t *testing.T) {
	g := buildGraph([]depgraph.File{
		{Path: "b/y.h", Component: 0, Incoming: []depgraph.FileRef{1}},
		{Path: "a/x.cpp", Component: 1},
	}, []depgraph.Component{{Path: "b"}, {Path: "a"}})

	results := Component(g, 0)
	require.Len(t, results, 1)
	require.Equal(t, Public, results[0].Class)
}

func TestComponentSoloHeader(t *testing.T) {
	g := buildGraph([]depgraph.File{
		{Path: "c/foo.h", Component: 0, Incoming: []depgraph.FileRef{1}},
		{Path: "c/foo.cpp", Component: 0},
	}, []depgraph.Component{{Path: "c"}})

	results := Component(g, 0)
	require.Len(t, results, 1)
	require.Equal(t, Solo, results[0].Class)
}

func TestComponentPrivateHeader(t *testing.T) {
	g := buildGraph([]depgraph.File{
		{Path: "c/internal.h", Component: 0, Incoming: []depgraph.FileRef{1, 2}},
		{Path: "c/a.cpp", Component: 0},
		{Path: "c/b.cpp", Component: 0},
	}, []depgraph.Component{{Path: "c"}})

	results := Component(g, 0)
	require.Len(t, results, 1)
	require.Equal(t, Private, results[0].Class)
}

func TestComponentSkipsNonHeaders(t *testing.T) {
	g := buildGraph([]depgraph.File{
		{Path: "c/a.cpp", Component: 0},
	}, []depgraph.Component{{Path: "c"}})

	require.Empty(t, Component(g, 0))
}

func TestIsSoloMatchDirection(t *testing.T) {
	// includer's stem ("foo") must be a substring of the header's stem
	require.True(t, isSoloMatch("foo.h", "foo.cpp"))
	require.True(t, isSoloMatch("foobar.h", "foo.cpp"))
	require.False(t, isSoloMatch("foo.h", "foobar.cpp"))
}
