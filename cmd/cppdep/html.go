package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/cppdep/cppdep/internal/htmlreport"
)

func htmlCommand() *cli.Command {
	return &cli.Command{
		Name:      "html",
		Usage:     "Export a static HTML dependency report",
		ArgsUsage: "<output-dir>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return exitUsage("usage: cppdep html <output-dir>")
			}
			outDir := c.Args().Get(0)

			q, err := buildFacade(c)
			if err != nil {
				return err
			}

			if err := htmlreport.Export(q, outDir); err != nil {
				return err
			}
			fmt.Printf("wrote report to %s\n", outDir)
			return nil
		},
	}
}
