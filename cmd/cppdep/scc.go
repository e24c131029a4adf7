package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/urfave/cli/v2"
)

func sccCommand() *cli.Command {
	return &cli.Command{
		Name:  "scc",
		Usage: "Print each non-trivial strongly connected component",
		Action: func(c *cli.Context) error {
			q, err := buildFacade(c)
			if err != nil {
				return err
			}

			comps := q.Components()
			sccs := q.SCC()
			if len(sccs) == 0 {
				fmt.Println("No cycles found.")
				return nil
			}

			for _, scc := range sccs {
				names := make([]string, len(scc))
				for i, ref := range scc {
					names[i] = comps[ref].NiceName()
				}
				sort.Strings(names)
				fmt.Println(strings.Join(names, ", "))
			}
			return nil
		},
	}
}
