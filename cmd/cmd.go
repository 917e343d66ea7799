// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// serveCommand starts the catalogue server
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the music catalogue server",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Action: r.Serve,
	}
}

// connectCommand runs the interactive console client
func connectCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "connect",
		Aliases: []string{"client"},
		Usage:   "Connect to a running server with the interactive client",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Server address, overrides the configured host/port",
			},
		},
		Action: r.Connect,
	}
}

// setupCommand initializes config and library directories
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Write an example config and create the library directories",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Setup,
	}
}
