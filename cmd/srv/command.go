package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "Raidpot"
	app.Usage = ""
	app.Commands = []*cli.Command{
		{
			Action:      server.startApi,
			Name:        "api",
			Usage:       "Start the api service",
			Category:    "Api",
			Description: `The main service with every auction, distribution, and wallet api.`,
		},
		{
			Action:      server.startProxy,
			Name:        "proxy",
			Usage:       "Start the websocket proxy",
			Category:    "Websocket",
			Description: `Fans raid events out to clients over direct websocket connections.`,
		},
		{
			Action:      server.startRecover,
			Name:        "recover",
			Usage:       "Run the recovery reconciliation once and exit",
			Category:    "Worker",
			Description: `Settles expired auctions and sweeps expired pre-auctions without serving traffic.`,
		},
		{
			Action:      server.startMigrate,
			Name:        "migrate",
			Usage:       "Run database migrations and exit",
			Category:    "Worker",
			Description: `Creates or updates every table this service owns.`,
		},
	}

	s.app = app
}
