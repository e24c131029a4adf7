package query

import (
	"github.com/cppdep/cppdep/internal/classify"
	"github.com/cppdep/cppdep/internal/depgraph"
)

// Facade is the read-only view over a built Graph that external
// collaborators (CLI, TUI, HTML renderer) consume. Every
// method is a pure function of the underlying graph and its
// arguments, and is safe to call concurrently from any number of
// readers -- the graph never mutates after Build returns it.
type Facade struct {
	Graph *depgraph.Graph
}

// New wraps a built graph in a query facade.
func New(g *depgraph.Graph) *Facade {
	return &Facade{Graph: g}
}

// Components returns every component in the graph, in array order (not
// sorted; callers that need a display order should sort on NiceName()).
func (q *Facade) Components() []depgraph.Component {
	return q.Graph.Components
}

// Files returns every file in the graph.
func (q *Facade) Files() []depgraph.File {
	return q.Graph.Files
}

// ComponentByName resolves a component by its rendered name (root is ".").
func (q *Facade) ComponentByName(name string) (depgraph.ComponentRef, bool) {
	return q.Graph.ComponentByName(name)
}

// FileByPath resolves a file by its exact project-relative path.
func (q *Facade) FileByPath(path string) (depgraph.FileRef, bool) {
	return q.Graph.FileByPath(path)
}

// ComponentFiles returns the files assigned to component c.
func (q *Facade) ComponentFiles(c depgraph.ComponentRef) []depgraph.FileRef {
	return q.Graph.ComponentFiles()[c]
}

// LinkedComponents aggregates file edges crossing component c's
// boundary, grouped by the neighboring component.
func (q *Facade) LinkedComponents(c depgraph.ComponentRef, onlyPublic bool) (incoming, outgoing map[depgraph.ComponentRef][]depgraph.Edge) {
	return LinkedComponents(q.Graph, c, onlyPublic)
}

// FileIncoming and FileOutgoing expose a single file's edges.
func (q *Facade) FileIncoming(f depgraph.FileRef) []depgraph.FileRef {
	return q.Graph.Files[f].Incoming
}

func (q *Facade) FileOutgoing(f depgraph.FileRef) []depgraph.FileRef {
	return q.Graph.Files[f].Outgoing
}

// ShortestPath finds the shortest component-level path from "from" to "to".
func (q *Facade) ShortestPath(from, to depgraph.ComponentRef, onlyPublic bool) []depgraph.ComponentRef {
	return ShortestPath(q.Graph, from, to, onlyPublic)
}

// SCC returns every non-trivial strongly connected component.
func (q *Facade) SCC() [][]depgraph.ComponentRef {
	return SCC(q.Graph)
}

// ClassifyHeaders classifies every header in component c.
func (q *Facade) ClassifyHeaders(c depgraph.ComponentRef) []classify.Result {
	return ClassifyHeaders(q.Graph, c)
}
