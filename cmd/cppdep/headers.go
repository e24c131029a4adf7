package main

import (
	"fmt"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/cppdep/cppdep/internal/classify"
)

func headersCommand() *cli.Command {
	return &cli.Command{
		Name:      "headers",
		Usage:     "Print public/private/solo/dead header classification for one component",
		ArgsUsage: "<component>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return exitUsage("usage: cppdep headers <component>")
			}
			name := c.Args().Get(0)

			q, err := buildFacade(c)
			if err != nil {
				return err
			}

			ref, ok := q.ComponentByName(name)
			if !ok {
				return exitUsage("component not found: %s", name)
			}

			results := q.ClassifyHeaders(ref)
			files := q.Files()

			byClass := map[classify.Class][]classify.Result{}
			for _, r := range results {
				byClass[r.Class] = append(byClass[r.Class], r)
			}

			verbose := c.Bool("verbose")
			for _, cls := range []classify.Class{classify.Public, classify.Private, classify.Solo, classify.Dead} {
				rs := byClass[cls]
				sort.Slice(rs, func(i, j int) bool { return files[rs[i].File].Path < files[rs[j].File].Path })
				fmt.Printf("%s:\n", cls)
				for _, r := range rs {
					fmt.Printf("  %s\n", files[r.File].Path)
					if verbose {
						for _, in := range r.Incoming {
							fmt.Printf("    <- %s\n", files[in].Path)
						}
					}
				}
			}
			return nil
		},
	}
}
