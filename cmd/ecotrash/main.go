package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

const (
	ServiceName = "ecotrash-dashboard"
)

func main() {
	app := &cli.App{
		Name:    "ecotrash",
		Usage:   "EcoTrash dashboard gateway and session tools",
		Version: Version(),
		Commands: []*cli.Command{
			serveCmd(),
			loginCmd(),
			logoutCmd(),
			whoamiCmd(),
			changePasswordCmd(),
			versionCmd(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
