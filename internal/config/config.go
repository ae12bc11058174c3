// Package config provides configuration loading and structs for patristica.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hyperjump/patristica/internal/ranking"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug      bool                  `yaml:"debug"`
	Server     ServerConfig          `yaml:"server"`
	Storage    StorageConfig         `yaml:"storage"`
	Corpus     CorpusConfig          `yaml:"corpus"`
	Liturgy    LiturgyConfig         `yaml:"liturgy"`
	Lectionary LectionaryConfig      `yaml:"lectionary"`
	Forum      ForumConfig           `yaml:"forum"`
	Ranking    ranking.RankingConfig `yaml:"ranking"`
	Feed       FeedConfig            `yaml:"feed"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig holds the snapshot location and the publish lock timeout.
type StorageConfig struct {
	SnapshotPath string        `yaml:"snapshot_path"`
	LockTimeout  time.Duration `yaml:"lock_timeout"`
}

// CorpusConfig points at the digitized commentary text.
type CorpusConfig struct {
	Path string `yaml:"path"`
}

// LiturgyConfig toggles the liturgy block of the feed.
type LiturgyConfig struct {
	Enabled        *bool `yaml:"enabled"`
	IncludeFathers *bool `yaml:"include_fathers"`
	MaxComments    int   `yaml:"max_comments"`
}

// EnabledOrDefault reports whether readings are fetched; defaults to true when unset.
func (l *LiturgyConfig) EnabledOrDefault() bool {
	if l.Enabled != nil {
		return *l.Enabled
	}
	return true
}

// IncludeFathersOrDefault reports whether readings are matched against the index; defaults to true.
func (l *LiturgyConfig) IncludeFathersOrDefault() bool {
	if l.IncludeFathers != nil {
		return *l.IncludeFathers
	}
	return true
}

// LectionaryConfig holds the daily readings API settings.
type LectionaryConfig struct {
	BaseURL   string        `yaml:"base_url"`
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
	Attempts  uint          `yaml:"attempts"`
}

// ForumConfig holds the discussion forum settings.
type ForumConfig struct {
	BaseURL    string        `yaml:"base_url"`
	UserAgent  string        `yaml:"user_agent"`
	Subreddits []string      `yaml:"subreddits"`
	Limit      int           `yaml:"limit"`
	Timeout    time.Duration `yaml:"timeout"`
	Attempts   uint          `yaml:"attempts"`
}

// FeedConfig holds where the daily feed is written.
type FeedConfig struct {
	OutputPath string `yaml:"output_path"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Storage.SnapshotPath = expandPath(cfg.Storage.SnapshotPath, configDir)
	cfg.Feed.OutputPath = expandPath(cfg.Feed.OutputPath, configDir)
	if cfg.Corpus.Path != "" {
		cfg.Corpus.Path = expandPath(cfg.Corpus.Path, configDir)
	}

	return &cfg, nil
}

// LoadOrDefault behaves like Load but returns the defaults when path does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg = &Config{}
		ApplyDefaults(cfg)
		return cfg, nil
	}
	return cfg, err
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
