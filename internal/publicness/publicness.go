// Package publicness implements the reachability pass:
// a file is public iff an outgoing edge from some file in a different
// component reaches it. It is not a plain transitive closure: a file
// reached only through intra-component edges stays non-public.
package publicness

import "github.com/cppdep/cppdep/internal/depgraph"

// Compute returns, for every file (by FileRef), whether it is public.
//
// The queue is seeded with every file t such that some file s has
// t in outgoing(s) with component(s) != component(t); those are marked
// public immediately. Propagation then only crosses a file f to a
// target t when component(t) != component(f) -- publicness propagates
// only across component boundaries, so a file reached purely through
// intra-component edges from an already-public file does not itself
// become public unless something from outside crosses into it
// directly.
func Compute(files []depgraph.File) []bool {
	n := len(files)
	public := make([]bool, n)
	queue := make([]depgraph.FileRef, 0, n)

	for _, f := range files {
		for _, t := range f.Outgoing {
			if files[t].Component != f.Component && !public[t] {
				public[t] = true
				queue = append(queue, t)
			}
		}
	}

	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]

		for _, t := range files[f].Outgoing {
			if public[t] {
				continue
			}
			if files[t].Component != files[f].Component {
				public[t] = true
				queue = append(queue, t)
			}
		}
	}

	return public
}
