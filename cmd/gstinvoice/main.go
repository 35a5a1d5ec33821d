package main

import (
	"fmt"
	"os"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/gstinvoice/internal/clock"
	"github.com/smallbiznis/gstinvoice/internal/observability"
	"github.com/smallbiznis/gstinvoice/internal/server"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "gstinvoice",
		Usage:   "compute GST totals and render invoices",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP API",
				Action: func(*cli.Context) error {
					newApp().Run()
					return nil
				},
			},
			renderCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *fx.App {
	return fx.New(
		observability.Module,
		fx.Provide(RegisterSnowflake),
		clock.Module,
		server.Module,
	)
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
