// Package resolve implements both resolver modes:
// the heuristic suffix-index resolver (this file) and the
// compilation-database resolver (compiledb.go).
package resolve

import (
	"github.com/cespare/xxhash/v2"

	"github.com/cppdep/cppdep/internal/debug"
	"github.com/cppdep/cppdep/internal/depgraph"
)

// suffixEntry is one (suffix, file) pair stored in the suffix index. The
// full suffix string is kept alongside the hash so a bucket collision
// doesn't produce a false match.
type suffixEntry struct {
	suffix string
	ref    depgraph.FileRef
}

// suffixIndex is the multi-map from every trailing path of a file to
// the set of files bearing that suffix, keyed by a fast hash of the
// suffix string rather than the string itself.
type suffixIndex map[uint64][]suffixEntry

func hashSuffix(s string) uint64 {
	return xxhash.Sum64String(s)
}

// buildSuffixIndex inserts, for every file with project-relative path
// s0/s1/.../sn, the entries "s0/.../sn", "s1/.../sn", ..., "sn".
func buildSuffixIndex(files []depgraph.File) suffixIndex {
	idx := make(suffixIndex)
	insert := func(suffix string, ref depgraph.FileRef) {
		h := hashSuffix(suffix)
		idx[h] = append(idx[h], suffixEntry{suffix: suffix, ref: ref})
	}

	for i, f := range files {
		ref := depgraph.FileRef(i)
		path := f.Path
		insert(path, ref)
		for j := 0; j < len(path); j++ {
			if path[j] == '/' {
				insert(path[j+1:], ref)
			}
		}
	}
	return idx
}

// lookup returns every file reference registered under the exact suffix
// string, in insertion order.
func (idx suffixIndex) lookup(suffix string) []depgraph.FileRef {
	entries := idx[hashSuffix(suffix)]
	if len(entries) == 0 {
		return nil
	}
	var refs []depgraph.FileRef
	for _, e := range entries {
		if e.suffix == suffix {
			refs = append(refs, e.ref)
		}
	}
	return refs
}

// Links accumulates the incoming/outgoing edge sets a resolver produces
// for every file, indexed by FileRef.
type Links struct {
	Incoming [][]depgraph.FileRef
	Outgoing [][]depgraph.FileRef
}

func newLinks(n int) *Links {
	return &Links{
		Incoming: make([][]depgraph.FileRef, n),
		Outgoing: make([][]depgraph.FileRef, n),
	}
}

func (l *Links) addEdge(from, to depgraph.FileRef) {
	l.Outgoing[from] = append(l.Outgoing[from], to)
	l.Incoming[to] = append(l.Incoming[to], from)
}

// Heuristic resolves every file's textual includes against a
// suffix-index built over all scanned files, applying the
// same-component tie-break: when a candidate exists in
// the includer's own component, every cross-component candidate is
// suppressed; otherwise every candidate (ambiguous or not) is kept.
//
// files must already carry a Component assignment (i.e. this runs
// after the assign phase); Incoming/Outgoing on the input files are
// ignored and only the returned Links matter.
func Heuristic(files []depgraph.File, warnMissing bool) *Links {
	idx := buildSuffixIndex(files)
	links := newLinks(len(files))

	for i, f := range files {
		from := depgraph.FileRef(i)
		for _, include := range f.IncludePaths {
			candidates := idx.lookup(include)
			if len(candidates) == 0 {
				if warnMissing {
					debug.Warn("RESOLVE", "include not found in %s: %s", f.Path, include)
				}
				continue
			}

			sameComponent := false
			for _, d := range candidates {
				if files[d].Component == f.Component {
					sameComponent = true
					break
				}
			}

			for _, d := range candidates {
				if sameComponent && files[d].Component != f.Component {
					continue
				}
				links.addEdge(from, d)
			}
		}
	}

	return links
}
