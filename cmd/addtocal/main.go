package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

var version = "(unknown)"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "addtocal",
		Usage:   "Fill calendar links into event pages and receipt emails",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to a JSON configuration file",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "SQLite database holding the civicrm_event table",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Output debug messages",
			},
		},
		Commands: []cli.Command{
			PageCmd,
			EmailCmd,
		},
	}
}
