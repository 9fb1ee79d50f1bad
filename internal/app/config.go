package app

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"thainews/internal/cache"
	"thainews/internal/calendar"
	"thainews/internal/extractors"
	"thainews/internal/extractors/filters"
)

// Config holds runtime settings for the server.
type Config struct {
	Env            string          `yaml:"env"`
	Addr           string          `yaml:"addr"`
	UserAgent      string          `yaml:"user_agent"`
	RequestTimeout time.Duration   `yaml:"request_timeout"`
	Cache          CacheConfig     `yaml:"cache"`
	Calendar       calendar.Config `yaml:"calendar"`
	Import         ImportConfig    `yaml:"import"`
}

type CacheConfig struct {
	cache.TTLs    `yaml:",inline"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

// FeedSource is a feed imported on schedule or on demand.
type FeedSource struct {
	URL      string `yaml:"url"`
	Category string `yaml:"category"`
}

type ImportConfig struct {
	Feeds []FeedSource `yaml:"feeds"`
	Limit int          `yaml:"limit"`
	// Interval between scheduled imports of Feeds; zero disables the schedule.
	Interval time.Duration `yaml:"interval"`
	// Sites maps a domain to the extraction rule for its article pages.
	Sites   map[string]extractors.SiteRule `yaml:"sites"`
	Filters []filters.URLFilter            `yaml:"filters"`
}

// DefaultConfig returns sane defaults.
func DefaultConfig() *Config {
	return &Config{
		Env:            "development",
		Addr:           ":8080",
		UserAgent:      "Mozilla/5.0 (compatible; ThaiNewsBot/1.0)",
		RequestTimeout: 15 * time.Second,
		Cache: CacheConfig{
			TTLs:          cache.DefaultTTLs(),
			SweepInterval: time.Minute,
		},
		Calendar: calendar.DefaultConfig(),
		Import: ImportConfig{
			Limit: 20,
		},
	}
}

// LoadConfig overlays the YAML file at path (if any) and then the environment
// on top of DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("APP_ENV"); v != "" {
		c.Env = v
	}
	// Allow overriding port via PORT env (useful for platforms)
	if p := os.Getenv("PORT"); p != "" {
		c.Addr = ":" + p
	}
	if v := os.Getenv("CALENDAR_SOURCE_URL"); v != "" {
		c.Calendar.SourceURL = v
	}
}
