package main

import (
	"github.com/urfave/cli/v2"

	"github.com/cppdep/cppdep/internal/tui"
)

func uiCommand() *cli.Command {
	return &cli.Command{
		Name:  "ui",
		Usage: "Launch the terminal UI",
		Action: func(c *cli.Context) error {
			q, err := buildFacade(c)
			if err != nil {
				return err
			}
			return tui.Run(q)
		},
	}
}
