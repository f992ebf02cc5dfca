package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	MarketData struct {
		FallbackTicker string   `yaml:"fallback_ticker"`
		Unsupported    []string `yaml:"unsupported"`
	} `yaml:"market_data"`
	Analysis struct {
		TemplatesFile    string `yaml:"templates_file"`
		TopMatches       int    `yaml:"top_matches"`
		WindowDays       int    `yaml:"window_days"`
		WindowBufferDays int    `yaml:"window_buffer_days"`
	} `yaml:"analysis"`
	RepeatCache struct {
		Capacity               int     `yaml:"capacity"`
		LookbackDays           int     `yaml:"lookback_days"`
		JaccardThreshold       float64 `yaml:"jaccard_threshold"`
		BitSimilarityThreshold float64 `yaml:"bit_similarity_threshold"`
	} `yaml:"repeat_cache"`
	Storage struct {
		BaseDir      string `yaml:"base_dir"`
		RemoteURL    string `yaml:"remote_url"`
		RemoteAPIKey string `yaml:"remote_api_key"`
	} `yaml:"storage"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		FeedCron  string `yaml:"feed_cron"`
		StatsCron string `yaml:"stats_cron"`
	} `yaml:"schedule"`
	Feed struct {
		Path string `yaml:"path"`
	} `yaml:"feed"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("REMOTE_STORE_URL"); v != "" {
		cfg.Storage.RemoteURL = v
	}
	if v := os.Getenv("REMOTE_STORE_API_KEY"); v != "" {
		cfg.Storage.RemoteAPIKey = v
	}
	if v := os.Getenv("ANALYSIS_DIR"); v != "" {
		cfg.Storage.BaseDir = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HEADLINE_FEED_PATH"); v != "" {
		cfg.Feed.Path = v
	}
	if v := os.Getenv("CRON_FEED"); v != "" {
		cfg.Schedule.FeedCron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("TOP_MATCHES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.TopMatches = n
		}
	}

	// Defaults
	if cfg.MarketData.FallbackTicker == "" {
		cfg.MarketData.FallbackTicker = "SPY"
	}
	if cfg.Analysis.TemplatesFile == "" {
		cfg.Analysis.TemplatesFile = "data/event_templates.json"
	}
	if cfg.Analysis.TopMatches == 0 {
		cfg.Analysis.TopMatches = 3
	}
	if cfg.Analysis.WindowDays == 0 {
		cfg.Analysis.WindowDays = 7
	}
	if cfg.Analysis.WindowBufferDays == 0 {
		cfg.Analysis.WindowBufferDays = 10
	}
	if cfg.RepeatCache.Capacity == 0 {
		cfg.RepeatCache.Capacity = 256
	}
	if cfg.RepeatCache.LookbackDays == 0 {
		cfg.RepeatCache.LookbackDays = 30
	}
	if cfg.RepeatCache.JaccardThreshold == 0 {
		cfg.RepeatCache.JaccardThreshold = 0.7
	}
	if cfg.RepeatCache.BitSimilarityThreshold == 0 {
		cfg.RepeatCache.BitSimilarityThreshold = 0.9
	}
	if cfg.Storage.BaseDir == "" {
		cfg.Storage.BaseDir = "analysis_history"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/trade_history.db"
	}
	if cfg.Schedule.FeedCron == "" {
		cfg.Schedule.FeedCron = "0 */2 * * * *"
	}
	if cfg.Schedule.StatsCron == "" {
		cfg.Schedule.StatsCron = "0 0 18 * * *"
	}
	if cfg.Feed.Path == "" {
		cfg.Feed.Path = "data/headline_feed.json"
	}

	return cfg, nil
}

// Validate checks that all required fields are set and thresholds are sane.
func (c *Config) Validate() error {
	if c.Analysis.TemplatesFile == "" {
		return fmt.Errorf("analysis.templates_file is required")
	}
	if c.Analysis.TopMatches <= 0 {
		return fmt.Errorf("analysis.top_matches must be positive")
	}
	if c.Analysis.WindowDays < 2 {
		return fmt.Errorf("analysis.window_days must be at least 2")
	}
	if c.RepeatCache.Capacity <= 0 {
		return fmt.Errorf("repeat_cache.capacity must be positive")
	}
	if c.RepeatCache.JaccardThreshold <= 0 || c.RepeatCache.JaccardThreshold > 1 {
		return fmt.Errorf("repeat_cache.jaccard_threshold must be in (0, 1]")
	}
	if c.RepeatCache.BitSimilarityThreshold <= 0 || c.RepeatCache.BitSimilarityThreshold > 1 {
		return fmt.Errorf("repeat_cache.bit_similarity_threshold must be in (0, 1]")
	}
	return nil
}
