package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/chainalign/internal/cli"
	httpAdapter "github.com/aretw0/chainalign/pkg/adapters/http"
	"github.com/aretw0/chainalign/pkg/observability"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the reference comparison session service",
	Long: `Serves the catalog and the session API (start, process, vote) over HTTP.
Sessions live in memory, in a directory of JSON files or in Redis (--store).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sigCtx := cli.NotifyInterrupt(context.Background())
		defer sigCtx.Stop()

		cat, err := cli.LoadCatalog(sigCtx, cfg, logger)
		if err != nil {
			return err
		}

		backend, err := cli.NewBackend(sigCtx, cfg, logger)
		if err != nil {
			return err
		}
		defer backend.Close()

		metrics := observability.NewMetrics()
		svc := cli.NewService(backend, cfg, metrics, logger)

		srv := &http.Server{
			Addr: cfg.Server.Addr,
			Handler: httpAdapter.NewHandler(svc, cat,
				httpAdapter.WithMetricsHandler(metrics.Handler()),
				httpAdapter.WithServerLogger(logger),
			),
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("Starting chainalign server", "addr", srv.Addr, "units", cat.Len(), "store", cfg.Store.Backend)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case <-sigCtx.Done():
			logger.Info("Start shutdown", "reason", sigCtx.Reason())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("Graceful shutdown did not complete", "error", err)
				if err := srv.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			logger.Info("Server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8000", "address to listen on")
	serveCmd.Flags().String("store", "memory", "session store: memory, file or redis")
	serveCmd.Flags().String("store-dir", ".chainalign/sessions", "session directory for the file store")
	serveCmd.Flags().String("redis-addr", "localhost:6379", "redis address for the redis store")
	serveCmd.Flags().Int64("seed", 0, "seed for matchup pairing (0 = random)")

	bindFlag(serveCmd, "server.addr", "addr")
	bindFlag(serveCmd, "store.backend", "store")
	bindFlag(serveCmd, "store.dir", "store-dir")
	bindFlag(serveCmd, "redis.addr", "redis-addr")
	bindFlag(serveCmd, "server.seed", "seed")
}
