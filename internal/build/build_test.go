package build

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0644))
}

// TestBuildHeaderClashSuppression runs the full pipeline over scenario
// S1's tree and checks the end-to-end result: an edge to the local
// header, none to the cross-component header, and no path between the
// two components.
func TestBuildHeaderClashSuppression(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app/CMakeLists.txt", "")
	writeFile(t, root, "app/main.cpp", `#include "util.h"`)
	writeFile(t, root, "app/util.h", "")
	writeFile(t, root, "lib/CMakeLists.txt", "")
	writeFile(t, root, "lib/util.h", "")

	g, err := Build(Options{Root: root, Workers: 2})
	require.NoError(t, err)

	mainRef, ok := g.FileByPath("app/main.cpp")
	require.True(t, ok)
	appUtilRef, ok := g.FileByPath("app/util.h")
	require.True(t, ok)
	libUtilRef, ok := g.FileByPath("lib/util.h")
	require.True(t, ok)

	require.Equal(t, []int{int(appUtilRef)}, refsToInts(g.Files[mainRef].Outgoing))
	require.Empty(t, g.Files[libUtilRef].Incoming)
}

func refsToInts[T ~int](refs []T) []int {
	out := make([]int, len(refs))
	for i, r := range refs {
		out[i] = int(r)
	}
	return out
}

func TestBuildEmptyTreeYieldsOnlyRootComponent(t *testing.T) {
	root := t.TempDir()
	g, err := Build(Options{Root: root, Workers: 1})
	require.NoError(t, err)

	require.Len(t, g.Components, 1)
	require.Empty(t, g.Files)
	require.Equal(t, "", g.Components[g.RootComponent()].Path)
}

func TestBuildCrossComponentFileIsPublic(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a/CMakeLists.txt", "")
	writeFile(t, root, "a/x.cpp", `#include "b/y.h"`)
	writeFile(t, root, "b/CMakeLists.txt", "")
	writeFile(t, root, "b/y.h", "")

	g, err := Build(Options{Root: root, Workers: 2})
	require.NoError(t, err)

	yRef, ok := g.FileByPath("b/y.h")
	require.True(t, ok)
	require.True(t, g.Files[yRef].Public)
}
