package config

import "time"

// DefaultSubreddits mirrors the forum topics shown on the dashboard.
var DefaultSubreddits = []string{"Catholicism", "ChatGPT", "OpenAI"}

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.SnapshotPath == "" {
		cfg.Storage.SnapshotPath = "/usr/local/var/patristica/data/fathers_index.json"
	}
	if cfg.Storage.LockTimeout == 0 {
		cfg.Storage.LockTimeout = 5 * time.Second
	}
	if cfg.Liturgy.MaxComments == 0 {
		cfg.Liturgy.MaxComments = 3
	}
	if cfg.Lectionary.BaseURL == "" {
		cfg.Lectionary.BaseURL = "https://cpbjr.github.io/catholic-readings-api"
	}
	if cfg.Lectionary.UserAgent == "" {
		cfg.Lectionary.UserAgent = "DashboardCollector/1.0"
	}
	if cfg.Lectionary.Timeout == 0 {
		cfg.Lectionary.Timeout = 15 * time.Second
	}
	if cfg.Lectionary.Attempts == 0 {
		cfg.Lectionary.Attempts = 3
	}
	if cfg.Forum.BaseURL == "" {
		cfg.Forum.BaseURL = "https://www.reddit.com"
	}
	if cfg.Forum.UserAgent == "" {
		cfg.Forum.UserAgent = "DashboardCollector/1.0"
	}
	if cfg.Forum.Subreddits == nil {
		cfg.Forum.Subreddits = append([]string(nil), DefaultSubreddits...)
	}
	if cfg.Forum.Limit == 0 {
		cfg.Forum.Limit = 5
	}
	if cfg.Forum.Timeout == 0 {
		cfg.Forum.Timeout = 15 * time.Second
	}
	if cfg.Forum.Attempts == 0 {
		cfg.Forum.Attempts = 2
	}
	cfg.Ranking.ApplyDefaults()
	if cfg.Feed.OutputPath == "" {
		cfg.Feed.OutputPath = "/usr/local/var/patristica/data/weekly-feed.json"
	}
}
