package resolve

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/cppdep/cppdep/internal/debug"
	"github.com/cppdep/cppdep/internal/depgraph"
	cdperrors "github.com/cppdep/cppdep/internal/errors"
)

// Record is one entry of a compilation database: a source file and the
// command used to build it. Any other fields of a record are ignored.
type Record struct {
	File    string `json:"file"`
	Command string `json:"command"`
}

// CompileDB is the per-translation-unit include search path table
// derived from a compilation database.
type CompileDB struct {
	// searchDirs maps a lowercased, canonicalized absolute source path
	// to its ordered list of include search directories.
	searchDirs map[string][]string
}

// LoadCompileDB reads a JSON array of Records from path and builds the
// per-file search-path table. A record whose command carries no usable
// -I/-isystem tokens still gets an (empty) entry so its file is known
// to the database.
func LoadCompileDB(path string) (*CompileDB, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, cdperrors.NewFileError("read", path, err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, cdperrors.NewResolveError("parse-compiledb", path, "", err)
	}

	baseDir := filepath.Dir(path)

	db := &CompileDB{searchDirs: make(map[string][]string, len(records))}
	for _, rec := range records {
		canon, ok := canonicalizePath(baseDir, rec.File)
		if !ok {
			continue
		}
		db.searchDirs[strings.ToLower(canon)] = parseSearchDirs(baseDir, rec.Command)
	}
	return db, nil
}

// parseSearchDirs tokenizes a compile command on spaces. A token
// beginning with "-I" contributes its remainder as a search directory;
// a token immediately following "-isystem" contributes itself. A
// relative path is resolved against baseDir (the directory holding the
// compile database, matching the "directory" field real compile
// databases record alongside each command). Paths that fail
// canonicalization are silently skipped.
func parseSearchDirs(baseDir, command string) []string {
	tokens := strings.Fields(command)
	var dirs []string
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch {
		case tok == "-isystem":
			if i+1 < len(tokens) {
				if canon, ok := canonicalizePath(baseDir, tokens[i+1]); ok {
					dirs = append(dirs, canon)
				}
				i++
			}
		case strings.HasPrefix(tok, "-I") && len(tok) > len("-I"):
			if canon, ok := canonicalizePath(baseDir, tok[len("-I"):]); ok {
				dirs = append(dirs, canon)
			}
		}
	}
	return dirs
}

// canonicalizePath resolves p to a clean absolute path. A relative p is
// joined against baseDir first; an absolute p ignores baseDir entirely.
func canonicalizePath(baseDir, p string) (string, bool) {
	if !filepath.IsAbs(p) {
		p = filepath.Join(baseDir, p)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", false
	}
	return filepath.Clean(abs), true
}

// CompileDBResolve replaces the heuristic resolver with the precise,
// search-path-driven one. root is the absolute path of the tree the
// scanner walked (needed to turn project-relative File.Path values back
// into absolute paths comparable against the database's canonical
// keys).
func CompileDBResolve(root string, files []depgraph.File, db *CompileDB, warnMissing bool) *Links {
	links := newLinks(len(files))

	byCanonPath := make(map[string]depgraph.FileRef, len(files))
	for i, f := range files {
		abs := filepath.Join(root, filepath.FromSlash(f.Path))
		if canon, ok := canonicalizePath("", abs); ok {
			byCanonPath[strings.ToLower(canon)] = depgraph.FileRef(i)
		}
	}

	resolver := &dbResolver{
		root:        root,
		files:       files,
		db:          db,
		byCanon:     byCanonPath,
		links:       links,
		warnMissing: warnMissing,
	}

	for i := range files {
		// A file already resolved through a recursive call keeps the
		// search path it was first resolved with.
		if len(links.Outgoing[i]) > 0 {
			continue
		}
		resolver.resolveFile(depgraph.FileRef(i), resolver.searchDirsFor(depgraph.FileRef(i)))
	}

	return links
}

type dbResolver struct {
	root        string
	files       []depgraph.File
	db          *CompileDB
	byCanon     map[string]depgraph.FileRef
	links       *Links
	warnMissing bool
}

func (r *dbResolver) searchDirsFor(f depgraph.FileRef) []string {
	abs := filepath.Join(r.root, filepath.FromSlash(r.files[f].Path))
	canon, ok := canonicalizePath("", abs)
	if !ok {
		return nil
	}
	return r.db.searchDirs[strings.ToLower(canon)]
}

// resolveFile resolves every include of f using searchDirs (inherited
// by recursive calls from the originating translation unit, not
// recomputed per-target -- a documented approximation: a header may in
// practice be compiled under more than one translation unit's search
// path, and only the first-seen one is used).
func (r *dbResolver) resolveFile(f depgraph.FileRef, searchDirs []string) {
	file := r.files[f]
	// ownDir is project-relative, so it still needs r.root prefixed; the
	// entries in searchDirs are already absolute (canonicalizePath in
	// parseSearchDirs), so filepath.Join(r.root, d, ...) would wrongly
	// nest them under root instead of resetting to d.
	ownDir := filepath.Join(r.root, filepath.Dir(filepath.FromSlash(file.Path)))

	candidateDirs := make([]string, 0, len(searchDirs)+1)
	candidateDirs = append(candidateDirs, ownDir)
	candidateDirs = append(candidateDirs, searchDirs...)

	for _, include := range file.IncludePaths {
		resolved := false
		for _, d := range candidateDirs {
			full := filepath.Join(d, filepath.FromSlash(include))
			canon, ok := canonicalizePath("", full)
			if !ok {
				continue
			}
			if _, err := os.Stat(canon); err != nil {
				continue
			}
			target, known := r.byCanon[strings.ToLower(canon)]
			if !known {
				continue
			}

			r.links.addEdge(f, target)
			resolved = true
			if len(r.links.Outgoing[target]) == 0 {
				r.resolveFile(target, searchDirs)
			}
			break
		}

		if !resolved && r.warnMissing {
			debug.Warn("RESOLVE", "include not found (compile-db) in %s: %s", file.Path, include)
		}
	}
}
