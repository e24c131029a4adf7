package publicness

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cppdep/cppdep/internal/depgraph"
)

func TestComputeMarksOnlyCrossComponentTargetsPublic(t *testing.T) {
	files := []depgraph.File{
		{Path: "a/x.cpp", Component: 0, Outgoing: []depgraph.FileRef{1}},
		{Path: "b/y.h", Component: 1, Outgoing: []depgraph.FileRef{2}},
		{Path: "b/z.h", Component: 1},
	}

	public := Compute(files)
	require.True(t, public[1], "b/y.h is reached from a different component")
	require.False(t, public[2], "b/z.h is reached only via an intra-component edge from y.h")
}

func TestComputeSelfIncludeDoesNotLeakPublicness(t *testing.T) {
	files := []depgraph.File{
		{Path: "a/foo.h", Component: 0, Outgoing: []depgraph.FileRef{0}},
	}
	public := Compute(files)
	require.False(t, public[0])
}

func TestComputeEmptyGraph(t *testing.T) {
	require.Empty(t, Compute(nil))
}

func TestComputeTransitiveCrossComponentChain(t *testing.T) {
	// p -> q -> r, three distinct components: crossing into q makes q
	// public; q's edge into r also crosses a component boundary, so r
	// becomes public too.
	files := []depgraph.File{
		{Path: "p/x.cpp", Component: 0, Outgoing: []depgraph.FileRef{1}},
		{Path: "q/y.h", Component: 1, Outgoing: []depgraph.FileRef{2}},
		{Path: "r/z.h", Component: 2},
	}
	public := Compute(files)
	require.True(t, public[1])
	require.True(t, public[2])
}
