// Package build wires the first four phases of the pipeline together:
// scan -> assign -> resolve -> publicness. The fifth phase, header
// classification, runs on demand through the query facade. The
// resulting Graph is immutable for the rest of the process's lifetime;
// Build is the only place a Graph is constructed.
package build

import (
	"github.com/cppdep/cppdep/internal/assign"
	"github.com/cppdep/cppdep/internal/debug"
	"github.com/cppdep/cppdep/internal/depgraph"
	cdperrors "github.com/cppdep/cppdep/internal/errors"
	"github.com/cppdep/cppdep/internal/publicness"
	"github.com/cppdep/cppdep/internal/resolve"
	"github.com/cppdep/cppdep/internal/scanner"
)

// Options configures a full build.
type Options struct {
	Root             string
	Workers          int
	Include          []string
	Exclude          []string
	RespectGitignore bool
	WarnMissing      bool
	WarnMalformed    bool

	// CompileDBPath, if non-empty, switches the resolver from the
	// heuristic suffix-index resolver to the compilation-database
	// resolver.
	CompileDBPath string
}

// Build runs the full pipeline and returns the finished, read-only graph.
func Build(opts Options) (*depgraph.Graph, error) {
	scanRes, err := scanner.Scan(scanner.Options{
		Root:             opts.Root,
		Workers:          opts.Workers,
		Include:          opts.Include,
		Exclude:          opts.Exclude,
		RespectGitignore: opts.RespectGitignore,
		WarnMissing:      opts.WarnMissing,
		WarnMalformed:    opts.WarnMalformed,
	})
	if err != nil {
		return nil, err
	}

	// Per-entry read faults don't fail the build; the caller already
	// saw the offending file skipped. They're still surfaced as a
	// single aggregated diagnostic rather than dropped silently.
	if len(scanRes.Errors) > 0 {
		debug.LogScan("%v", cdperrors.NewMultiError(scanRes.Errors))
	}

	// Sorting here (rather than leaving scan's worker-interleaved
	// order) gives the graph's FileRef/ComponentRef assignment itself
	// a deterministic, rerun-stable order, on top of the explicit
	// sort callers apply again at display time.
	files, components := scanner.SortForDisplay(scanRes.Files, scanRes.Components)

	componentRefs := assign.Assign(files, components)

	graphFiles := make([]depgraph.File, len(files))
	for i, f := range files {
		graphFiles[i] = depgraph.File{
			Path:         f.Path,
			IncludePaths: f.IncludePaths,
			Component:    componentRefs[i],
		}
	}

	graphComponents := make([]depgraph.Component, len(components))
	for i, c := range components {
		graphComponents[i] = depgraph.Component{Path: c.Path}
	}

	var links *resolve.Links
	if opts.CompileDBPath != "" {
		db, loadErr := resolve.LoadCompileDB(opts.CompileDBPath)
		if loadErr != nil {
			return nil, loadErr
		}
		links = resolve.CompileDBResolve(opts.Root, graphFiles, db, opts.WarnMissing)
	} else {
		links = resolve.Heuristic(graphFiles, opts.WarnMissing)
	}

	for i := range graphFiles {
		graphFiles[i].Incoming = links.Incoming[i]
		graphFiles[i].Outgoing = links.Outgoing[i]
	}

	g := &depgraph.Graph{Files: graphFiles, Components: graphComponents}

	public := publicness.Compute(g.Files)
	for i := range g.Files {
		g.Files[i].Public = public[i]
	}

	// Fill the lazily cached per-component file lists now, so no query
	// writes to the graph after Build returns.
	g.ComponentFiles()

	return g, nil
}
