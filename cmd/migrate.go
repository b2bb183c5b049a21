package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/dtroode/sessiongate/database"
	"github.com/dtroode/sessiongate/internal/config"
)

func migrateCmd() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "manage the Postgres schema",
		Subcommands: []*cli.Command{
			{
				Name:   "up",
				Usage:  "apply all pending migrations",
				Action: migrateUp,
			},
			{
				Name:   "status",
				Usage:  "print the applied and the latest schema version",
				Action: migrateStatus,
			},
		},
	}
}

func migrateUp(c *cli.Context) error {
	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}

	if err := database.Migrate(c.Context, cfg.Database.DSN); err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, "migrations applied")
	return nil
}

func migrateStatus(c *cli.Context) error {
	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	current, err := database.CurrentVersion(c.Context, db)
	if err != nil {
		return err
	}
	latest, err := database.LatestVersion()
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "current version: %d\nlatest version: %d\n", current, latest)
	if current < latest {
		fmt.Fprintln(c.App.Writer, "pending migrations: run `sessiongate migrate up`")
	}
	return nil
}
