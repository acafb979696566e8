package main

import (
	"github.com/urfave/cli/v2"
)

func (s *srv) loadApp() {
	s.app = cli.NewApp()
	s.app.Action = cli.ShowAppHelp
	s.app.Name = "WasteBounty"
	s.app.Usage = "Report litter, clean it up, earn points"
	s.app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Value:   "config.toml",
			Usage:   "Path of the toml config file",
		},
	}
	s.app.Before = s.setup
	s.app.After = s.teardown
	s.app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Category:    "Api",
			Description: `Used for start service api, it serves every http endpoint and /metrics.`,
		},
		{
			Action:   s.startMigrate,
			Name:     "migrate",
			Usage:    "Migrate database",
			Category: "Database",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "version",
					Usage: "Re-run only this migrator",
				},
				&cli.BoolFlag{
					Name:  "sql",
					Usage: "Apply the embedded mysql scripts instead of gorm migrators",
				},
			},
			Description: `Used to bring the database schema up to date.`,
		},
		{
			Action:      s.startCron,
			Name:        "cron",
			Usage:       "Start cron jobs",
			Category:    "Worker",
			Description: `Used to refresh cached community statistics periodically.`,
		},
		{
			Action:      s.startNotifier,
			Name:        "notifier",
			Usage:       "Start notification relay",
			Category:    "Worker",
			Description: `Used to forward notification events from the message queue to the WhatsApp relay.`,
		},
	}
}
