// Package depgraph holds the immutable, read-only component dependency
// graph produced by the build pipeline (scan -> assign -> resolve ->
// publicness -> classify). Files and components are referenced by stable
// array indices (the arena + indices pattern), never by pointer, so the
// graph never needs to break ownership cycles between incoming and
// outgoing edge lists.
package depgraph

// FileRef is a stable index into Graph.Files, valid for the graph's
// lifetime.
type FileRef int

// ComponentRef is a stable index into Graph.Components, valid for the
// graph's lifetime.
type ComponentRef int

// File is an immutable record of one source or header file discovered
// by the scanner.
type File struct {
	// Path is project-relative, forward-slash separated, with no
	// trailing slash and no leading "/".
	Path string

	// IncludePaths are the raw include strings extracted from the
	// file's text, in the order they appear.
	IncludePaths []string

	// Component is the file's assigned component.
	Component ComponentRef

	// Incoming and Outgoing are derived edge sets. Duplicates are
	// permitted: each include occurrence contributes one entry.
	Incoming []FileRef
	Outgoing []FileRef

	// Public is true iff some file in a different component has an
	// outgoing edge to this file. Publicness is not carried along
	// intra-component edges (see internal/publicness).
	Public bool
}

// Component is an immutable record of one build-system-declared
// directory. Path is empty for the root component.
type Component struct {
	// Path is the component's normalized, project-relative directory
	// path. The root component has an empty Path.
	Path string
}

// NiceName renders the component's path, with the root component shown
// as ".".
func (c Component) NiceName() string {
	if c.Path == "" {
		return "."
	}
	return c.Path
}

// Edge is one textual include occurrence, materialized on demand when
// answering a query; it is not stored directly in the graph.
type Edge struct {
	From FileRef
	To   FileRef
}

// Graph is the finalized, read-only dependency graph. It is built once
// by the pipeline in internal/build and is safe for concurrent readers
// thereafter -- nothing in this package mutates a Graph after
// construction.
type Graph struct {
	Files      []File
	Components []Component

	// componentFiles is lazily derived the first time it is needed and
	// cached; it never changes after that, so concurrent readers are
	// safe (see ComponentFiles).
	componentFiles [][]FileRef
}

// IsHeader reports whether f's path carries a header suffix.
func (g *Graph) IsHeader(f FileRef) bool {
	return isHeaderPath(g.Files[f].Path)
}

func isHeaderPath(path string) bool {
	for _, suffix := range []string{".h", ".hpp", ".hxx"} {
		if len(path) > len(suffix) && path[len(path)-len(suffix):] == suffix {
			return true
		}
	}
	return false
}

// ComponentFiles returns, for each component, the list of file
// references assigned to it, in file-discovery order. The result is
// computed once and reused.
func (g *Graph) ComponentFiles() [][]FileRef {
	if g.componentFiles != nil {
		return g.componentFiles
	}
	byComponent := make([][]FileRef, len(g.Components))
	for i, f := range g.Files {
		byComponent[f.Component] = append(byComponent[f.Component], FileRef(i))
	}
	g.componentFiles = byComponent
	return byComponent
}

// ComponentByName looks up a component by its nice (rendered) name,
// i.e. its project-relative path with the root rendered as ".".
func (g *Graph) ComponentByName(name string) (ComponentRef, bool) {
	for i, c := range g.Components {
		if c.NiceName() == name {
			return ComponentRef(i), true
		}
	}
	return 0, false
}

// FileByPath looks up a file by its exact project-relative path.
func (g *Graph) FileByPath(path string) (FileRef, bool) {
	for i, f := range g.Files {
		if f.Path == path {
			return FileRef(i), true
		}
	}
	return 0, false
}

// RootComponent returns the ref of the component with empty path. Every
// well-formed Graph has exactly one.
func (g *Graph) RootComponent() ComponentRef {
	for i, c := range g.Components {
		if c.Path == "" {
			return ComponentRef(i)
		}
	}
	// The build pipeline guarantees a root component always exists; if
	// this is reached the graph was constructed outside that pipeline.
	panic("depgraph: graph has no root component")
}
