package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

func shortestCommand() *cli.Command {
	return &cli.Command{
		Name:      "shortest",
		Usage:     "Print the BFS shortest component path, or \"No path found.\"",
		ArgsUsage: "<from-component> <to-component>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose"},
			&cli.BoolFlag{Name: "only_public"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return exitUsage("usage: cppdep shortest <from> <to>")
			}
			fromName, toName := c.Args().Get(0), c.Args().Get(1)

			q, err := buildFacade(c)
			if err != nil {
				return err
			}

			from, ok := q.ComponentByName(fromName)
			if !ok {
				return exitUsage("component not found: %s", fromName)
			}
			to, ok := q.ComponentByName(toName)
			if !ok {
				return exitUsage("component not found: %s", toName)
			}

			path := q.ShortestPath(from, to, c.Bool("only_public"))
			if path == nil {
				fmt.Println("No path found.")
				return nil
			}

			comps := q.Components()
			names := make([]string, len(path))
			for i, ref := range path {
				names[i] = comps[ref].NiceName()
			}
			fmt.Println(strings.Join(names, " -> "))
			return nil
		},
	}
}
