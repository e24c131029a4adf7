// Command cppdep analyzes a C/C++ source tree's component dependency
// graph: it walks the tree, resolves #include edges, determines which
// headers are publicly reachable across component boundaries, and
// answers queries about the resulting graph.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/cppdep/cppdep/internal/build"
	"github.com/cppdep/cppdep/internal/config"
	"github.com/cppdep/cppdep/internal/debug"
	"github.com/cppdep/cppdep/internal/query"
	"github.com/cppdep/cppdep/internal/version"
)

func main() {
	app := &cli.App{
		Name:                   "cppdep",
		Usage:                  "Analyze C/C++ component dependencies",
		Version:                version.Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Project root directory to analyze",
				Value:   ".",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Config file name; not read: the config is always loaded from .cppdep.kdl under --root",
				Value: config.ConfigFileName,
			},
			&cli.StringSliceFlag{
				Name:  "include",
				Usage: "Include only files matching these doublestar glob patterns",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Exclude files matching these doublestar glob patterns",
			},
			&cli.BoolFlag{
				Name:  "warn-missing",
				Usage: "Warn when a textual include resolves to no candidate file",
			},
			&cli.BoolFlag{
				Name:  "warn-malformed",
				Usage: "Warn when a malformed include path is salvaged by truncation",
			},
			&cli.StringFlag{
				Name:  "compile-db",
				Usage: "Path to a compile_commands.json; switches to the compilation-database resolver",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Scanner worker pool size (0 = config/default)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable diagnostic logging to stderr",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				debug.EnableDebug = "true"
				debug.SetDebugOutput(os.Stderr)
			}
			return nil
		},
		Commands: []*cli.Command{
			componentCommand(),
			fileCommand(),
			headersCommand(),
			shortestCommand(),
			sccCommand(),
			uiCommand(),
			htmlCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildFacade runs the build pipeline (scan, assign, resolve,
// publicness) from the app's global flags and wraps the result in a
// read-only query facade, which classifies headers on demand.
func buildFacade(c *cli.Context) (*query.Facade, error) {
	root := c.String("root")
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root %q: %w", root, err)
	}

	cfg, err := config.LoadKDL(absRoot)
	if err != nil {
		return nil, err
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	if v := c.StringSlice("include"); len(v) > 0 {
		cfg.Include = v
	}
	if v := c.StringSlice("exclude"); len(v) > 0 {
		cfg.Exclude = append(cfg.Exclude, v...)
	}
	if c.Bool("warn-missing") {
		cfg.WarnMissing = true
	}
	if c.Bool("warn-malformed") {
		cfg.WarnMalformed = true
	}
	if w := c.Int("workers"); w > 0 {
		cfg.Performance.Workers = w
	}
	if db := c.String("compile-db"); db != "" {
		cfg.CompileDBPath = db
	}

	g, err := build.Build(build.Options{
		Root:             absRoot,
		Workers:          cfg.Performance.Workers,
		Include:          cfg.Include,
		Exclude:          cfg.Exclude,
		RespectGitignore: cfg.RespectGitignore,
		WarnMissing:      cfg.WarnMissing,
		WarnMalformed:    cfg.WarnMalformed,
		CompileDBPath:    cfg.CompileDBPath,
	})
	if err != nil {
		return nil, err
	}

	return query.New(g), nil
}

// exitUsage prints a configuration-fault message to stderr and exits
// with status 1: an unresolvable component or file name given on the
// command line is a usage error, not a recoverable warning.
func exitUsage(format string, args ...interface{}) error {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
	return nil
}
