// Package query implements the graph algorithms (linked-components
// aggregation, BFS shortest path, Tarjan SCC) plus the read-only query
// facade that external collaborators consume.
package query

import (
	"math"
	"sort"

	"github.com/cppdep/cppdep/internal/classify"
	"github.com/cppdep/cppdep/internal/depgraph"
)

// LinkedComponents returns, for component c, the outgoing and incoming
// edges to/from every other component. When onlyPublic is
// true, only edges whose public endpoint (the source file for
// outgoing, the source file for incoming too -- see below) is public
// are included.
//
// Outgoing: for each file f in c (restricted to public files when
// onlyPublic), for each outgoing target t with component(t) != c,
// record edge (f, t) under key component(t).
// Incoming: for each file f in c, for each incoming source s with
// component(s) != c (restricted to public s when onlyPublic), record
// edge (s, f) under key component(s).
func LinkedComponents(g *depgraph.Graph, c depgraph.ComponentRef, onlyPublic bool) (incoming, outgoing map[depgraph.ComponentRef][]depgraph.Edge) {
	incoming = make(map[depgraph.ComponentRef][]depgraph.Edge)
	outgoing = make(map[depgraph.ComponentRef][]depgraph.Edge)

	for _, f := range g.ComponentFiles()[c] {
		file := g.Files[f]

		if !onlyPublic || file.Public {
			for _, t := range file.Outgoing {
				tc := g.Files[t].Component
				if tc != c {
					outgoing[tc] = append(outgoing[tc], depgraph.Edge{From: f, To: t})
				}
			}
		}

		for _, s := range file.Incoming {
			sc := g.Files[s].Component
			if sc == c {
				continue
			}
			if onlyPublic && !g.Files[s].Public {
				continue
			}
			incoming[sc] = append(incoming[sc], depgraph.Edge{From: s, To: f})
		}
	}

	return incoming, outgoing
}

// SortedComponentKeys returns the keys of a component-keyed edge map,
// sorted by component path -- the explicit sort that makes scan-order
// differences invisible at display time.
func SortedComponentKeys(g *depgraph.Graph, m map[depgraph.ComponentRef][]depgraph.Edge) []depgraph.ComponentRef {
	keys := make([]depgraph.ComponentRef, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return g.Components[keys[i]].Path < g.Components[keys[j]].Path
	})
	return keys
}

// ShortestPath runs BFS over the component graph from "from" to "to".
// A component's neighbors are the components of all outgoing targets
// of all its files. When onlyPublic is true, the public-file
// restriction applies only at the origin component, not at
// intermediate hops. Returns nil if "to" is unreachable.
func ShortestPath(g *depgraph.Graph, from, to depgraph.ComponentRef, onlyPublic bool) []depgraph.ComponentRef {
	n := len(g.Components)
	type node struct {
		parent depgraph.ComponentRef
		dist   int
	}
	dists := make([]node, n)
	for i := range dists {
		dists[i] = node{parent: depgraph.ComponentRef(i), dist: math.MaxInt32}
	}
	dists[from] = node{parent: from, dist: 0}

	queue := []depgraph.ComponentRef{from}
	componentFiles := g.ComponentFiles()

	for len(queue) > 0 {
		cSource := queue[0]
		queue = queue[1:]
		dist := dists[cSource].dist + 1

		for _, f := range componentFiles[cSource] {
			if cSource == from && onlyPublic && !g.Files[f].Public {
				continue
			}
			for _, t := range g.Files[f].Outgoing {
				tc := g.Files[t].Component
				if dists[tc].dist > dist {
					dists[tc] = node{parent: cSource, dist: dist}
					queue = append(queue, tc)
				}
			}
		}
	}

	if dists[to].dist == math.MaxInt32 {
		return nil
	}

	var path []depgraph.ComponentRef
	for c := to; c != from; c = dists[c].parent {
		path = append(path, c)
	}
	path = append(path, from)

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// SCC runs Tarjan's algorithm over the component graph, with successor
// sets defined as in ShortestPath (outgoing targets' components,
// excluding self-loops). Only components of size > 1 are returned.
func SCC(g *depgraph.Graph) [][]depgraph.ComponentRef {
	t := &tarjan{
		g:       g,
		indices: make([]int, len(g.Components)),
		lowlink: make([]int, len(g.Components)),
		onStack: make([]bool, len(g.Components)),
		files:   g.ComponentFiles(),
	}
	for i := range t.indices {
		t.indices[i] = -1
	}

	for v := range g.Components {
		if t.indices[v] == -1 {
			t.strongConnect(depgraph.ComponentRef(v))
		}
	}

	var result [][]depgraph.ComponentRef
	for _, scc := range t.sccs {
		if len(scc) > 1 {
			result = append(result, scc)
		}
	}
	return result
}

type tarjan struct {
	g       *depgraph.Graph
	index   int
	indices []int
	lowlink []int
	onStack []bool
	stack   []depgraph.ComponentRef
	sccs    [][]depgraph.ComponentRef
	files   [][]depgraph.FileRef
}

func (t *tarjan) successors(v depgraph.ComponentRef) []depgraph.ComponentRef {
	seen := make(map[depgraph.ComponentRef]bool)
	var out []depgraph.ComponentRef
	for _, f := range t.files[v] {
		for _, to := range t.g.Files[f].Outgoing {
			c := t.g.Files[to].Component
			if c == v || seen[c] {
				continue
			}
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

func (t *tarjan) strongConnect(v depgraph.ComponentRef) {
	t.indices[v] = t.index
	t.lowlink[v] = t.index
	t.index++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	for _, w := range t.successors(v) {
		if t.indices[w] == -1 {
			t.strongConnect(w)
			if t.lowlink[w] < t.lowlink[v] {
				t.lowlink[v] = t.lowlink[w]
			}
		} else if t.onStack[w] {
			// w.index, not w.lowlink -- deliberate, per Tarjan's
			// original formulation.
			if t.indices[w] < t.lowlink[v] {
				t.lowlink[v] = t.indices[w]
			}
		}
	}

	if t.lowlink[v] == t.indices[v] {
		var scc []depgraph.ComponentRef
		for {
			w := t.stack[len(t.stack)-1]
			t.stack = t.stack[:len(t.stack)-1]
			t.onStack[w] = false
			scc = append(scc, w)
			if w == v {
				break
			}
		}
		t.sccs = append(t.sccs, scc)
	}
}

// ClassifyHeaders classifies every header in component c.
func ClassifyHeaders(g *depgraph.Graph, c depgraph.ComponentRef) []classify.Result {
	return classify.Component(g, c)
}
