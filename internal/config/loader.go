package config

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const weightSumTolerance = 1e-9

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New(ctx))
//  2. file (YAML) if HIRELENS_CONFIG is set
//  3. env (prefix HIRELENS_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("HIRELENS_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: HIRELENS_ADDR, HIRELENS_QUEUE_SIZE, ...
	// Map env keys like HIRELENS_QUEUE_SIZE -> queue_size (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("HIRELENS_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "hirelens_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate checks the invariants the pipeline depends on.
func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.ResultStore != StoreMemory && c.ResultStore != StoreSQLite {
		return fmt.Errorf("%w: result_store must be %q or %q", ErrInvalidConfig, StoreMemory, StoreSQLite)
	}
	if c.ResultStore == StoreSQLite && c.SQLitePath == "" {
		return fmt.Errorf("%w: sqlite_path must not be empty", ErrInvalidConfig)
	}
	if c.VideoWeight < 0 || c.AudioWeight < 0 || c.TextWeight < 0 {
		return fmt.Errorf("%w: channel weights must be non-negative", ErrInvalidConfig)
	}
	if sum := c.VideoWeight + c.AudioWeight + c.TextWeight; math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("%w: channel weights must sum to 1.0, got %v", ErrInvalidConfig, sum)
	}
	if c.ResultTTLMinutes < 0 {
		return fmt.Errorf("%w: result_ttl_minutes must not be negative", ErrInvalidConfig)
	}
	return nil
}
