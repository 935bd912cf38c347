package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/vertex-mlops/vertex-featurestore-go-sdk/server"
	"go.uber.org/zap"
)

func newServeCmd(a *app) *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve online feature reads over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := a.cfg.Validate(); err != nil {
				return err
			}
			store, err := a.openStore(ctx, a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer store.Close()

			e := server.BuildServer(store, a.cfg.Serving, logLevel)
			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("serving", zap.String("listen", a.cfg.Serving.Listen))
				errCh <- e.Start(a.cfg.Serving.Listen)
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
				a.logger.Info("received shutdown signal")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return e.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&logLevel, "loglevel", "warn", "Server log level: debug, info, warn, error, off")

	return cmd
}
