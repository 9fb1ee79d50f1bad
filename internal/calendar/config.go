package calendar

import (
	"fmt"
	"time"
)

// Config selects the resolver tiers.
type Config struct {
	SourceURL       string        `yaml:"source_url"`
	SourceTimeout   time.Duration `yaml:"source_timeout"`
	LunarCalculator bool          `yaml:"lunar_calculator"`
	FallbackFile    string        `yaml:"fallback_file"`
}

// DefaultConfig enables the local tiers; the remote tier needs a URL.
func DefaultConfig() Config {
	return Config{
		SourceTimeout:   5 * time.Second,
		LunarCalculator: true,
	}
}

// NewFromConfig builds the remote -> lunar -> fallback chain.
func NewFromConfig(cfg Config, userAgent string) (*Resolver, error) {
	var sources []Source
	if cfg.SourceURL != "" {
		sources = append(sources, NewRemoteSource(cfg.SourceURL, cfg.SourceTimeout, userAgent))
	}

	var calc Calculator = UnavailableCalculator{}
	if cfg.LunarCalculator {
		calc = NewAstronomicalCalculator()
	}
	sources = append(sources, &LunarSource{Calculator: calc})

	table := DefaultFallbackTable()
	if cfg.FallbackFile != "" {
		t, err := LoadFallbackFile(cfg.FallbackFile)
		if err != nil {
			return nil, fmt.Errorf("load fallback file: %w", err)
		}
		table = t
	}
	sources = append(sources, &FallbackSource{Table: table})

	return NewResolver(sources...), nil
}
