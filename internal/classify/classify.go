// Package classify implements the header classifier:
// for a given component, every header file it contains is labeled
// Public, Private, Solo, or Dead.
package classify

import (
	"path"
	"strings"

	"github.com/cppdep/cppdep/internal/depgraph"
)

// Class is a header's role within its component.
type Class int

const (
	// Public: at least one incoming edge from outside the component,
	// or from a public file inside the component.
	Public Class = iota
	// Private: not public, not solo, but has at least one incoming edge.
	Private
	// Solo: not public, exactly one incoming edge, from a file whose
	// basename (without extension) is a substring of the header's
	// basename -- the "one .cpp implements this .h" pattern.
	Solo
	// Dead: no incoming edges at all.
	Dead
)

func (c Class) String() string {
	switch c {
	case Public:
		return "Public"
	case Private:
		return "Private"
	case Solo:
		return "Solo"
	case Dead:
		return "Dead"
	default:
		return "Unknown"
	}
}

// Result is one classified header.
type Result struct {
	File     depgraph.FileRef
	Class    Class
	Incoming []depgraph.FileRef
}

// Component classifies every header file assigned to c. Non-header
// files in c never appear in the result. g.Files[*].Public must
// already be populated (i.e. this runs after the publicness phase).
func Component(g *depgraph.Graph, c depgraph.ComponentRef) []Result {
	var results []Result
	for _, fref := range g.ComponentFiles()[c] {
		if !g.IsHeader(fref) {
			continue
		}
		f := g.Files[fref]

		hasOutsidePublicIncoming := false
		for _, in := range f.Incoming {
			if g.Files[in].Component != c || g.Files[in].Public {
				hasOutsidePublicIncoming = true
				break
			}
		}

		switch {
		case hasOutsidePublicIncoming:
			results = append(results, Result{File: fref, Class: Public, Incoming: f.Incoming})
		case len(f.Incoming) == 0:
			results = append(results, Result{File: fref, Class: Dead})
		case len(f.Incoming) == 1 && isSoloMatch(f.Path, g.Files[f.Incoming[0]].Path):
			results = append(results, Result{File: fref, Class: Solo, Incoming: f.Incoming})
		default:
			results = append(results, Result{File: fref, Class: Private, Incoming: f.Incoming})
		}
	}
	return results
}

// isSoloMatch reports whether the includer's basename (without
// extension) is a substring of the header's basename (without
// extension) -- the canonical "foo.cpp implements foo.h" relationship.
func isSoloMatch(headerPath, includerPath string) bool {
	headerStem := stemOf(headerPath)
	includerStem := stemOf(includerPath)
	return includerStem != "" && strings.Contains(headerStem, includerStem)
}

func stemOf(p string) string {
	base := path.Base(p)
	if idx := strings.LastIndex(base, "."); idx > 0 {
		return base[:idx]
	}
	return base
}
