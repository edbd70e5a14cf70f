package main

import (
	"errors"
	"os/signal"
	"syscall"

	"go-tawk/config"
	"go-tawk/internal/infrastructure/database"
	queueadapter "go-tawk/internal/infrastructure/queue/adapter"
	"go-tawk/internal/pkg/social/application/task"
	socialadapter "go-tawk/internal/pkg/social/persistence/repository/adapter"

	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run background task consumers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		if cfg.Redis.URL == "" {
			return errors.New("worker: REDIS_URL is required")
		}
		if cfg.Database.Driver != config.DriverPostgres {
			return errors.New("worker: the memory driver cannot be shared with a separate worker, use serve --embedded-worker")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		db, err := database.OpenBun(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		srv, err := queueadapter.NewAsynqServer(cfg.Redis.URL, cfg.Queue, log)
		if err != nil {
			return err
		}
		task.RegisterSetPresenceTask(srv, socialadapter.NewBunSocialRepository(db, log))

		log.Info("worker started", "queues", cfg.Queue.Queues)
		return srv.Run(ctx)
	},
}
