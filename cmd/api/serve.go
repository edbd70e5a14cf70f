package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var embeddedWorker bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP and websocket server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := buildApp(ctx, cfg, log, embeddedWorker)
		if err != nil {
			return err
		}
		defer func() {
			if err := a.close(); err != nil {
				log.Error("close resources", "err", err)
			}
		}()

		if a.worker != nil {
			go func() {
				if err := a.worker.Run(ctx); err != nil {
					log.Error("embedded worker stopped", "err", err)
				}
			}()
		}

		srv := &http.Server{
			Addr:    ":" + cfg.Server.Port,
			Handler: a.engine,
		}
		serveErr := make(chan error, 1)
		go func() {
			log.Infof("listening on %s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serveErr <- err
			}
			close(serveErr)
		}()

		select {
		case err := <-serveErr:
			if err != nil {
				return err
			}
		case <-ctx.Done():
		}

		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Hijacked websocket connections are not tracked by the server.
		a.registry.Shutdown(shutdownCtx)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("http shutdown", "err", err)
		}
		if a.worker != nil {
			_ = a.worker.Stop(shutdownCtx)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().BoolVar(&embeddedWorker, "embedded-worker", false,
		"consume presence tasks in this process (requires REDIS_URL)")
}
