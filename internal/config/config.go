// Package config loads and validates project configuration (inputs
// and flags), plus the gitignore-style ignore-rule matcher the
// scanner consumes.
package config

// Config is the full, resolved configuration for one build. CLI flags
// given on the command line take precedence over what a .cppdep.kdl
// file set, except that --exclude patterns are added to the file's
// exclude list (see buildFacade in cmd/cppdep).
type Config struct {
	Project     Project
	Performance Performance

	// Include and Exclude are doublestar glob patterns, evaluated in
	// addition to any .gitignore rules found in the tree.
	Include []string
	Exclude []string

	// RespectGitignore toggles honoring the .gitignore file at the
	// project root. .gitignore files in subdirectories are not read.
	RespectGitignore bool

	// WarnMissing and WarnMalformed are the two optional diagnostics
	// flags
	WarnMissing   bool
	WarnMalformed bool

	// CompileDBPath, if set, selects the compilation-database resolver
	// instead of the heuristic one.
	CompileDBPath string
}

// Project identifies the tree being analyzed.
type Project struct {
	Root string
	Name string
}

// Performance controls the scanner's worker pool.
type Performance struct {
	// Workers bounds the scanner's fixed worker pool. Zero means the
	// documented default of 6.
	Workers int
}

// Default returns a Config with this package's documented defaults.
func Default() *Config {
	return &Config{
		Project:          Project{Root: "."},
		Performance:      Performance{Workers: 6},
		Include:          []string{},
		Exclude:          []string{},
		RespectGitignore: true,
	}
}
