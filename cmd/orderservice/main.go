package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	logger := log.New()
	logger.SetFormatter(&log.JSONFormatter{})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var cnf *config
	app := &cli.App{
		Name:  "orderservice",
		Usage: "order management service",
		Before: func(*cli.Context) error {
			var err error
			cnf, err = parseEnv()
			if err != nil {
				return err
			}
			level, err := log.ParseLevel(cnf.LogLevel)
			if err != nil {
				return err
			}
			logger.SetLevel(level)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "service",
				Usage: "serve the REST API and gRPC health endpoint",
				Action: func(c *cli.Context) error {
					return runService(c.Context, cnf, logger)
				},
			},
			{
				Name:  "migrate",
				Usage: "apply or roll back database migrations",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "down",
						Usage: "roll back the given number of migrations instead of applying",
					},
				},
				Action: func(c *cli.Context) error {
					return runMigrate(cnf, c.Int("down"), logger)
				},
			},
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		logger.WithError(err).Fatal("orderservice failed")
	}
}
