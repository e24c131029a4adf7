// Package scanner performs the parallel directory walk: it discovers
// build-system marker files, collects source files, and extracts
// their textual #include directives. It is the
// first phase of the five-phase build pipeline (scan -> assign ->
// resolve -> publicness -> classify).
package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/cppdep/cppdep/internal/config"
	"github.com/cppdep/cppdep/internal/debug"
	cdperrors "github.com/cppdep/cppdep/internal/errors"
)

// markerFile names the build-system marker that declares a component.
const markerFile = "CMakeLists.txt"

// sourceSuffixes are the file extensions the scanner parses for
// includes. Anything else is ignored.
var sourceSuffixes = []string{
	".c", ".cpp", ".cc", ".cxx", ".h", ".hpp", ".hh", ".hxx", ".H", ".inl", ".ipp", ".imp", ".impl",
}

// RawFile is a file discovered by the scanner, before component
// assignment.
type RawFile struct {
	Path         string
	IncludePaths []string
}

// RawComponent is a component marker discovered by the scanner.
type RawComponent struct {
	Path string
}

// Options configures one scan.
type Options struct {
	// Root is the directory to walk.
	Root string

	// Workers bounds the fixed worker pool. Zero means the default of 6.
	Workers int

	// Include and Exclude are optional doublestar glob patterns
	// (relative to Root, forward-slash separated) that additionally
	// filter which files are scanned, independent of .gitignore rules.
	// Include, if non-empty, is a whitelist: a file must match at
	// least one pattern to be scanned. Exclude patterns are applied
	// after Include and always win.
	Include []string
	Exclude []string

	// RespectGitignore enables the ignore rules of the .gitignore file
	// at Root. .gitignore files in subdirectories are not read.
	RespectGitignore bool

	// WarnMissing and WarnMalformed gate optional diagnostics printed
	// unconditionally to stderr (see internal/debug.Warn). WarnMissing
	// is only consumed by the resolver, not the scanner itself, but is
	// threaded through Options so a single config struct can be passed
	// down the whole pipeline.
	WarnMissing   bool
	WarnMalformed bool
}

// Result is the scanner's output: every discovered file and component,
// in file/component-discovery order (unspecified across workers, stable
// within a worker), plus every per-entry read fault encountered along
// the way (the offending entry is skipped, not fatal to the scan).
type Result struct {
	Files      []RawFile
	Components []RawComponent
	Errors     []error
}

// Scan walks opts.Root with a bounded worker pool, honoring ignore
// rules, and returns every discovered file and component. Per-entry I/O
// errors are reported to stderr via internal/debug and the offending
// entry is skipped; Scan itself only fails if the root cannot be
// enumerated at all.
func Scan(opts Options) (Result, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = 6
	}

	var gitignore *config.GitignoreParser
	if opts.RespectGitignore {
		gitignore = config.NewGitignoreParser()
		_ = gitignore.LoadGitignore(opts.Root)
	}

	paths := make(chan string, 256)

	var mu sync.Mutex
	var allFiles []RawFile
	var allComponents []RawComponent
	var allErrors []error

	g := new(errgroup.Group)
	g.SetLimit(workers)

	for i := 0; i < workers; i++ {
		g.Go(func() error {
			var files []RawFile
			var components []RawComponent
			var errs []error
			for path := range paths {
				f, c, err := processEntry(opts.Root, path, opts.WarnMalformed)
				if err != nil {
					errs = append(errs, err)
					continue
				}
				if f != nil {
					files = append(files, *f)
				}
				if c != nil {
					components = append(components, *c)
				}
			}
			mu.Lock()
			allFiles = append(allFiles, files...)
			allComponents = append(allComponents, components...)
			allErrors = append(allErrors, errs...)
			mu.Unlock()
			return nil
		})
	}

	walkErr := filepath.Walk(opts.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			debug.LogScan("walk error at %s: %v", path, err)
			return nil
		}
		if info.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(opts.Root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if gitignore != nil && gitignore.ShouldIgnore(rel, false) {
			return nil
		}
		if !matchesIncludeExclude(rel, opts.Include, opts.Exclude) {
			return nil
		}

		paths <- path
		return nil
	})
	close(paths)
	_ = g.Wait()
	if walkErr != nil {
		return Result{}, cdperrors.NewScanError("walk", opts.Root, walkErr)
	}

	if !hasRootComponent(allComponents) {
		allComponents = append(allComponents, RawComponent{Path: ""})
	}

	return Result{Files: allFiles, Components: allComponents, Errors: allErrors}, nil
}

func hasRootComponent(components []RawComponent) bool {
	for _, c := range components {
		if c.Path == "" {
			return true
		}
	}
	return false
}

func matchesIncludeExclude(rel string, include, exclude []string) bool {
	if len(include) > 0 {
		matched := false
		for _, pat := range include {
			if ok, _ := doublestar.Match(pat, rel); ok {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	for _, pat := range exclude {
		if ok, _ := doublestar.Match(pat, rel); ok {
			return false
		}
	}
	return true
}

// processEntry classifies one walked path: a marker contributes a
// component, a recognized source suffix contributes a file (with its
// includes extracted), anything else is ignored. A non-nil error means
// the entry was dropped entirely because of an I/O fault; the caller
// collects it rather than failing the whole scan.
func processEntry(root, path string, warnMalformed bool) (*RawFile, *RawComponent, error) {
	slashPath := filepath.ToSlash(path)

	if strings.HasSuffix(slashPath, "/"+markerFile) || filepath.Base(slashPath) == markerFile {
		dir := filepath.Dir(path)
		rel := relPath(root, dir)
		return nil, &RawComponent{Path: rel}, nil
	}

	if !hasSourceSuffix(slashPath) {
		return nil, nil, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		fileErr := cdperrors.NewFileError("read", path, err)
		debug.LogScan("%v", fileErr)
		return nil, nil, fileErr
	}

	var warn func(string)
	if warnMalformed {
		warn = func(include string) {
			debug.Warn("SCAN", "malformed include in %s: %s", path, include)
		}
	}

	includes := extractIncludes(content, warn)
	rel := relPath(root, path)
	return &RawFile{Path: rel, IncludePaths: includes}, nil, nil
}

func hasSourceSuffix(path string) bool {
	for _, suf := range sourceSuffixes {
		if strings.HasSuffix(path, suf) {
			return true
		}
	}
	return false
}

// relPath normalizes path to be project-relative, forward-slash
// separated, with no trailing slash and no leading "/".
func relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	rel = strings.TrimPrefix(rel, "/")
	rel = strings.TrimSuffix(rel, "/")
	if rel == "." {
		rel = ""
	}
	return rel
}

// SortForDisplay returns files and components sorted by path; global
// discovery order across workers is unspecified, so deterministic
// output is achieved by sorting explicitly at display/query time
// rather than relying on scan order.
func SortForDisplay(files []RawFile, components []RawComponent) ([]RawFile, []RawComponent) {
	sf := make([]RawFile, len(files))
	copy(sf, files)
	sort.Slice(sf, func(i, j int) bool { return sf[i].Path < sf[j].Path })

	sc := make([]RawComponent, len(components))
	copy(sc, components)
	sort.Slice(sc, func(i, j int) bool { return sc[i].Path < sc[j].Path })

	return sf, sc
}
