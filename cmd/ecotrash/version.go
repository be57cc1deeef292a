package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// Set with -ldflags "-X main.version=... -X main.commit=...".
var (
	version = "0.0.0"
	commit  = ""
)

func Version() string {
	if commit == "" {
		return version + "-dev"
	}
	return version
}

func FullVersion() string {
	c := commit
	if c == "" {
		c = "000000000000"
	}
	return fmt.Sprintf("%s-%s", Version(), c)
}

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print build version & exit",
		Action: func(c *cli.Context) error {
			fmt.Fprintln(c.App.Writer, FullVersion())
			return nil
		},
	}
}
