// Package main is the patristica CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/hyperjump/patristica/internal/config"
	"github.com/hyperjump/patristica/internal/matcher"
	"github.com/hyperjump/patristica/internal/reference"
	"github.com/hyperjump/patristica/internal/storage"
	"github.com/hyperjump/patristica/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/patristica/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development); if that exists it is used.
// A missing default config yields the built-in defaults; a missing explicit path is an error.
// Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
		cfg, err := config.LoadOrDefault(path)
		if err != nil {
			return nil, "", err
		}
		return cfg, path, nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Components holds the shared objects every command builds from the config.
type Components struct {
	Config     *config.Config
	ConfigPath string
	Logger     *zap.Logger
	Books      *reference.Books
	Store      *storage.SnapshotStore
	Holder     *matcher.Holder
	Matcher    *matcher.Matcher
}

func initializeComponents(opts *rootOptions) (*Components, error) {
	cfg, resolvedConfigPath, err := loadConfig(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	debugMode := cfg.Debug || opts.debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	logger.Debug("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	books := reference.DefaultBooks()
	store := storage.NewSnapshotStore(cfg.Storage.SnapshotPath, cfg.Storage.LockTimeout, logger)
	return &Components{
		Config:     cfg,
		ConfigPath: resolvedConfigPath,
		Logger:     logger,
		Books:      books,
		Store:      store,
		Holder:     matcher.NewHolder(store, logger),
		Matcher:    matcher.New(books, matcher.WithLogger(logger)),
	}, nil
}

func (c *Components) Close() {
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
}
