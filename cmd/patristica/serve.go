package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/hyperjump/patristica/internal/server"
	"github.com/hyperjump/patristica/internal/watcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the read-only HTTP lookup API",
		Long: `Serve lookups from the published snapshot. The snapshot is reloaded whenever
"patristica index" publishes a new one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := initializeComponents(opts)
			if err != nil {
				return err
			}
			defer c.Close()
			logger := c.Logger
			ctx := cmd.Context()

			if err := c.Holder.Reload(); err != nil {
				logger.Warn("serving without an index until a snapshot is published", zap.String("path", c.Store.Path()))
			}

			watchOpts := []watcher.WatcherOption{}
			if c.Config.Debug || opts.debug {
				watchOpts = append(watchOpts, watcher.WithLogger(logger))
			}
			watchSvc := watcher.NewWatcher(c.Store.Path(), func(string) { _ = c.Holder.Reload() }, watchOpts...)
			watchCtx, watchCancel := context.WithCancel(ctx)
			defer watchCancel()
			if err := watchSvc.Start(watchCtx); err != nil {
				return err
			}
			defer watchSvc.Stop()

			srv := server.NewServer(c.Holder, c.Matcher, c.Store.Path(), &c.Config.Server, logger)
			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info("Shutting down...")
			watchCancel()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Stop(shutdownCtx)
		},
	}
}
