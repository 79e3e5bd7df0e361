package main

import "github.com/urfave/cli/v2"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to the directory containing the config file",
		EnvVars: []string{"BROADSIDE_CONFIG"},
		Value:   "./",
	}
}

func hostCommand() *cli.Command {
	return &cli.Command{
		Name:        "host",
		Usage:       "host a game",
		Description: "Waits for an opponent to connect and fires the first shot.",
		Action:      host,
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "listen",
				Usage: "Address to listen on, overriding hostname and port from the config",
			},
		},
	}
}

func joinCommand() *cli.Command {
	return &cli.Command{
		Name:        "join",
		Usage:       "join a hosted game",
		ArgsUsage:   "<host:port>",
		Description: "Connects to an opponent hosting a game. The host fires first.",
		Action:      join,
		Flags:       []cli.Flag{configFlag()},
	}
}

func historyCommand() *cli.Command {
	return &cli.Command{
		Name:        "history",
		Usage:       "list recorded games",
		Description: "Lists the most recent games recorded when history is enabled.",
		Action:      history,
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Number of games to list",
				Value: 10,
			},
			&cli.StringFlag{
				Name:  "opponent",
				Usage: "Only list games against this opponent address",
			},
		},
	}
}
