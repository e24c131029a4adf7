package resolve

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cppdep/cppdep/internal/depgraph"
)

func writeCompileDB(t *testing.T, root string, records []Record) string {
	t.Helper()
	data, err := json.Marshal(records)
	require.NoError(t, err)
	path := filepath.Join(root, "compile_commands.json")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestParseSearchDirs(t *testing.T) {
	dirs := parseSearchDirs(t.TempDir(), "clang++ -Iinclude -isystem /usr/include -c x.cpp")
	require.Len(t, dirs, 2)
}

func TestCompileDBResolveUsesOwnDirFirst(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "include"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "own.h"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "include", "util.h"), nil, 0644))

	dbPath := writeCompileDB(t, root, []Record{
		{File: filepath.Join(root, "src", "main.cpp"), Command: "clang++ -Iinclude -c src/main.cpp"},
	})

	db, err := LoadCompileDB(dbPath)
	require.NoError(t, err)

	files := []depgraph.File{
		{Path: "src/main.cpp", IncludePaths: []string{"own.h", "util.h"}},
		{Path: "src/own.h"},
		{Path: "include/util.h"},
	}

	links := CompileDBResolve(root, files, db, false)
	require.ElementsMatch(t, []depgraph.FileRef{1, 2}, links.Outgoing[0])
}

func TestCompileDBResolveWarnsOnMissing(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0755))

	dbPath := writeCompileDB(t, root, []Record{
		{File: filepath.Join(root, "src", "main.cpp"), Command: "clang++ -c src/main.cpp"},
	})
	db, err := LoadCompileDB(dbPath)
	require.NoError(t, err)

	files := []depgraph.File{{Path: "src/main.cpp", IncludePaths: []string{"missing.h"}}}
	links := CompileDBResolve(root, files, db, true)
	require.Empty(t, links.Outgoing[0])
}
