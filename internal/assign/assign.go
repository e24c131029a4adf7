// Package assign maps every scanned file to exactly one component by
// longest directory-prefix match.
package assign

import (
	"strings"

	"github.com/cppdep/cppdep/internal/depgraph"
	"github.com/cppdep/cppdep/internal/scanner"
)

// Assign returns, for each file in files (by index), the ComponentRef
// of the component it belongs to. components must already contain a
// root component (Path == ""); scanner.Scan guarantees this.
//
// For each file path, the algorithm iteratively strips the last
// "/"-delimited segment, producing prefixes from most specific to
// least specific, and returns the index of the first component whose
// path equals the current prefix. If no prefix matches, the file is
// assigned to the root component. Component paths are unique by
// construction (one marker file per directory), so no ties occur.
func Assign(files []scanner.RawFile, components []scanner.RawComponent) []depgraph.ComponentRef {
	byPath := make(map[string]depgraph.ComponentRef, len(components))
	root := depgraph.ComponentRef(0)
	for i, c := range components {
		byPath[c.Path] = depgraph.ComponentRef(i)
		if c.Path == "" {
			root = depgraph.ComponentRef(i)
		}
	}

	out := make([]depgraph.ComponentRef, len(files))
	for i, f := range files {
		out[i] = assignOne(f.Path, byPath, root)
	}
	return out
}

func assignOne(path string, byPath map[string]depgraph.ComponentRef, root depgraph.ComponentRef) depgraph.ComponentRef {
	prefix := path
	for {
		idx := strings.LastIndex(prefix, "/")
		if idx < 0 {
			break
		}
		prefix = prefix[:idx]
		if ref, ok := byPath[prefix]; ok {
			return ref
		}
	}
	return root
}
