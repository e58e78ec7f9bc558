// Package config defines the betedge service configuration and how it is loaded.
package config

import (
	"strings"
	"time"

	"github.com/XavierBriggs/fortuna/services/betedge/internal/detector"
)

// Config contains process configuration. Keys are flat so that every field
// can be set from a BETEDGE_ environment variable.
type Config struct {
	// Addr configures the HTTP listen address, e.g. ":8090".
	Addr string `koanf:"addr"`

	// RequestTimeout bounds each HTTP request, including snapshot fetches.
	RequestTimeout time.Duration `koanf:"request_timeout"`

	// CORSOrigins lists the origins allowed to call the API.
	CORSOrigins []string `koanf:"cors_origins"`

	// Logging
	LogLevel       string `koanf:"log_level"`
	LogEncoding    string `koanf:"log_encoding"` // json or console
	LogDevelopment bool   `koanf:"log_development"`

	// Odds provider (the-odds-api v4)
	OddsAPIKey     string        `koanf:"odds_api_key"`
	OddsAPIBaseURL string        `koanf:"odds_api_base_url"`
	OddsAPIRegions []string      `koanf:"odds_api_regions"`
	OddsAPITimeout time.Duration `koanf:"odds_api_timeout"`

	// Sports and Markets are scanned when a request names no sport.
	Sports  []string `koanf:"sports"`
	Markets []string `koanf:"markets"`

	// FetchConcurrency bounds parallel per-sport fetches.
	FetchConcurrency int `koanf:"fetch_concurrency"`

	// Retry policy for transient provider failures
	RetryMaxAttempts    int           `koanf:"retry_max_attempts"`
	RetryInitialBackoff time.Duration `koanf:"retry_initial_backoff"`
	RetryMaxBackoff     time.Duration `koanf:"retry_max_backoff"`

	// DatabaseURL points at the Alexandria odds store. When set it replaces
	// the odds provider as the snapshot source.
	DatabaseURL string `koanf:"database_url"`

	// RedisURL enables the snapshot cache when set.
	RedisURL       string        `koanf:"redis_url"`
	CacheTTL       time.Duration `koanf:"cache_ttl"`
	CacheKeyPrefix string        `koanf:"cache_key_prefix"`

	// Detection
	ArbitrageTTL     time.Duration `koanf:"arbitrage_ttl"`
	EVFreshness      time.Duration `koanf:"ev_freshness"`
	VigFactor        float64       `koanf:"vig_factor"`
	KellyFraction    float64       `koanf:"kelly_fraction"`
	StakeCap         float64       `koanf:"stake_cap"`
	StakeUnit        float64       `koanf:"stake_unit"`
	TotalStake       float64       `koanf:"total_stake"`
	MinQuotes        int           `koanf:"min_quotes"`
	DefaultMinProfit float64       `koanf:"default_min_profit"`
	DefaultMinEV     float64       `koanf:"default_min_ev"`
}

// LogConfig is the subset of Config the logger needs
type LogConfig struct {
	Level       string
	Encoding    string
	Development bool
}

// New creates a Config populated with defaults.
func New() *Config {
	d := detector.DefaultConfig()

	return &Config{
		Addr:           ":8090",
		RequestTimeout: 30 * time.Second,
		CORSOrigins:    []string{"*"},

		LogLevel:    "info",
		LogEncoding: "json",

		OddsAPIBaseURL: "https://api.the-odds-api.com",
		OddsAPIRegions: []string{"us"},
		OddsAPITimeout: 15 * time.Second,

		Sports: []string{
			"americanfootball_nfl",
			"basketball_nba",
			"baseball_mlb",
			"icehockey_nhl",
			"soccer_epl",
		},
		Markets: []string{"h2h", "spreads", "totals"},

		FetchConcurrency: 3,

		RetryMaxAttempts:    3,
		RetryInitialBackoff: 500 * time.Millisecond,
		RetryMaxBackoff:     5 * time.Second,

		CacheTTL:       60 * time.Second,
		CacheKeyPrefix: "betedge:snapshot",

		ArbitrageTTL:     d.ArbitrageTTL,
		EVFreshness:      d.EVFreshness,
		VigFactor:        d.VigFactor,
		KellyFraction:    d.KellyFraction,
		StakeCap:         d.StakeCap,
		StakeUnit:        d.StakeUnit,
		TotalStake:       d.TotalStake,
		MinQuotes:        d.MinQuotes,
		DefaultMinProfit: d.DefaultMinProfit,
		DefaultMinEV:     d.DefaultMinEV,
	}
}

// Log returns the logger settings
func (c *Config) Log() LogConfig {
	return LogConfig{
		Level:       c.LogLevel,
		Encoding:    c.LogEncoding,
		Development: c.LogDevelopment,
	}
}

// Detector returns the detection constants, starting from the detector
// defaults for anything not exposed as a config key
func (c *Config) Detector() detector.Config {
	d := detector.DefaultConfig()
	d.ArbitrageTTL = c.ArbitrageTTL
	d.EVFreshness = c.EVFreshness
	d.VigFactor = c.VigFactor
	d.KellyFraction = c.KellyFraction
	d.StakeCap = c.StakeCap
	d.StakeUnit = c.StakeUnit
	d.TotalStake = c.TotalStake
	d.MinQuotes = c.MinQuotes
	d.DefaultMinProfit = c.DefaultMinProfit
	d.DefaultMinEV = c.DefaultMinEV
	return d
}

// splitList expands comma separated entries, as delivered by env vars,
// into separate trimmed items
func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
