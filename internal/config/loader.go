package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix  = "BETEDGE_"
	envFileVar = "BETEDGE_CONFIG"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if BETEDGE_CONFIG is set
//  3. env (prefix BETEDGE_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(envFileVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// BETEDGE_ODDS_API_KEY -> odds_api_key
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.CORSOrigins = splitList(cfg.CORSOrigins)
	cfg.OddsAPIRegions = splitList(cfg.OddsAPIRegions)
	cfg.Sports = splitList(cfg.Sports)
	cfg.Markets = splitList(cfg.Markets)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the config for values the service cannot run with
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.RequestTimeout <= 0:
		return fmt.Errorf("%w: request_timeout must be positive", ErrInvalidConfig)
	case c.OddsAPIKey == "" && c.DatabaseURL == "":
		return fmt.Errorf("%w: one of odds_api_key or database_url is required", ErrInvalidConfig)
	case len(c.Sports) == 0:
		return fmt.Errorf("%w: sports must not be empty", ErrInvalidConfig)
	case len(c.Markets) == 0:
		return fmt.Errorf("%w: markets must not be empty", ErrInvalidConfig)
	case c.VigFactor <= 0 || c.VigFactor > 1:
		return fmt.Errorf("%w: vig_factor must be in (0, 1]", ErrInvalidConfig)
	case c.KellyFraction <= 0 || c.KellyFraction > 1:
		return fmt.Errorf("%w: kelly_fraction must be in (0, 1]", ErrInvalidConfig)
	case c.ArbitrageTTL <= 0 || c.EVFreshness <= 0:
		return fmt.Errorf("%w: arbitrage_ttl and ev_freshness must be positive", ErrInvalidConfig)
	case c.MinQuotes < 1:
		return fmt.Errorf("%w: min_quotes must be at least 1", ErrInvalidConfig)
	case c.FetchConcurrency < 1:
		return fmt.Errorf("%w: fetch_concurrency must be at least 1", ErrInvalidConfig)
	case c.StakeUnit <= 0 || c.TotalStake <= 0:
		return fmt.Errorf("%w: stake_unit and total_stake must be positive", ErrInvalidConfig)
	}
	return nil
}
