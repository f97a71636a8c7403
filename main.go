package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/simquant/backtester/config"
	"github.com/simquant/backtester/engine"
	"github.com/simquant/backtester/log"
	"github.com/simquant/backtester/strategies"
)

func main() {
	app := &cli.App{
		Name:  "backtester",
		Usage: "event-driven backtesting of trading strategies against historical data",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "execute a backtest from a config file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "config",
						Aliases:  []string{"c"},
						Usage:    "path to the run config file",
						Required: true,
					},
					&cli.BoolFlag{
						Name:    "verbose",
						Aliases: []string{"v"},
						Usage:   "enable debug logging",
					},
				},
				Action: runBacktest,
			},
			{
				Name:   "strategies",
				Usage:  "list the available strategies",
				Action: listStrategies,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runBacktest(c *cli.Context) error {
	if c.Bool("verbose") {
		log.SetDebug(true)
	}
	cfg, err := config.ReadConfigFromPath(c.String("config"))
	if err != nil {
		return err
	}
	bt, err := engine.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	if err = bt.Run(); err != nil {
		return err
	}
	bt.PrintResult()
	return nil
}

func listStrategies(*cli.Context) error {
	for _, s := range strategies.GetStrategies() {
		fmt.Printf("%v\n  %v\n", s.Name(), s.Description())
	}
	return nil
}
