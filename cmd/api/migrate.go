package main

import (
	"context"
	"errors"
	"time"

	"go-tawk/config"
	"go-tawk/internal/infrastructure/database"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		if cfg.Database.Driver != config.DriverPostgres {
			return errors.New("migrate: only the postgres driver has a schema")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()
		pool, err := database.NewPool(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := database.Migrate(ctx, pool); err != nil {
			return err
		}
		log.Info("schema up to date")
		return nil
	},
}
