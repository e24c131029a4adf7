package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

func fileCommand() *cli.Command {
	return &cli.Command{
		Name:      "file",
		Usage:     "Print incoming and outgoing file-level edges",
		ArgsUsage: "<path>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "incoming", Usage: "Show only incoming edges"},
			&cli.BoolFlag{Name: "outgoing", Usage: "Show only outgoing edges"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return exitUsage("usage: cppdep file <path>")
			}
			path := c.Args().Get(0)

			q, err := buildFacade(c)
			if err != nil {
				return err
			}

			ref, ok := q.FileByPath(path)
			if !ok {
				return exitUsage("file not found: %s", path)
			}

			showIncoming := c.Bool("incoming")
			showOutgoing := c.Bool("outgoing")
			if !showIncoming && !showOutgoing {
				showIncoming, showOutgoing = true, true
			}

			files := q.Files()
			fmt.Printf("%s\n", files[ref].Path)

			if showOutgoing {
				fmt.Println("  Outgoing:")
				for _, t := range q.FileOutgoing(ref) {
					fmt.Printf("    %s\n", files[t].Path)
				}
			}
			if showIncoming {
				fmt.Println("  Incoming:")
				for _, s := range q.FileIncoming(ref) {
					fmt.Printf("    %s\n", files[s].Path)
				}
			}
			return nil
		},
	}
}
