// The broadside command runs one side of a game of naval combat between two
// players over a single TCP connection. One player hosts and the other joins.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := app().Run(os.Args); err != nil {
		fmt.Printf("broadside error: %v\n", err)
		os.Exit(1)
	}
}

func app() *cli.App {
	app := cli.NewApp()
	app.Name = "broadside"
	app.Usage = "naval combat for two players over TCP"
	app.Commands = []*cli.Command{
		hostCommand(),
		joinCommand(),
		historyCommand(),
	}
	return app
}
