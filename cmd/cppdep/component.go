package main

import (
	"fmt"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/cppdep/cppdep/internal/depgraph"
	"github.com/cppdep/cppdep/internal/query"
)

func componentCommand() *cli.Command {
	return &cli.Command{
		Name:      "component",
		Usage:     "Print component(s) and their incoming/outgoing component neighbors",
		ArgsUsage: "[from] [to]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose"},
			&cli.BoolFlag{Name: "only_public"},
		},
		Action: func(c *cli.Context) error {
			q, err := buildFacade(c)
			if err != nil {
				return err
			}

			onlyPublic := c.Bool("only_public")
			verbose := c.Bool("verbose")

			var targets []depgraph.ComponentRef
			if c.NArg() == 0 {
				for i := range q.Components() {
					targets = append(targets, depgraph.ComponentRef(i))
				}
				sort.Slice(targets, func(i, j int) bool {
					return q.Components()[targets[i]].NiceName() < q.Components()[targets[j]].NiceName()
				})
			} else {
				for i := 0; i < c.NArg(); i++ {
					name := c.Args().Get(i)
					ref, ok := q.ComponentByName(name)
					if !ok {
						return exitUsage("component not found: %s", name)
					}
					targets = append(targets, ref)
				}
			}

			for _, ref := range targets {
				printComponent(q, ref, onlyPublic, verbose)
			}
			return nil
		},
	}
}

func printComponent(q *query.Facade, ref depgraph.ComponentRef, onlyPublic, verbose bool) {
	comps := q.Components()
	fmt.Printf("%s\n", comps[ref].NiceName())

	incoming, outgoing := q.LinkedComponents(ref, onlyPublic)

	printEdgeMap := func(label string, m map[depgraph.ComponentRef][]depgraph.Edge) {
		keys := make([]depgraph.ComponentRef, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			return comps[keys[i]].NiceName() < comps[keys[j]].NiceName()
		})
		fmt.Printf("  %s:\n", label)
		for _, k := range keys {
			fmt.Printf("    %s (%d edges)\n", comps[k].NiceName(), len(m[k]))
			if verbose {
				for _, e := range m[k] {
					fmt.Printf("      %s -> %s\n", q.Files()[e.From].Path, q.Files()[e.To].Path)
				}
			}
		}
	}

	printEdgeMap("Outgoing", outgoing)
	printEdgeMap("Incoming", incoming)
}
