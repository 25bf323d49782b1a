// Package config loads bookpal settings from an optional YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/suhruthkrishna/bookpal/internal/recommend"
	"github.com/suhruthkrishna/bookpal/internal/storage"
	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings for bookpal
type Config struct {
	// Provider selects the embedding backend: openai, gemini or ollama
	Provider string `yaml:"provider"`

	// Thresholds are the tier cutoffs for match classification
	Thresholds recommend.Thresholds `yaml:"thresholds"`

	// TopK is the number of alternative suggestions returned for weak matches
	TopK int `yaml:"top_k"`

	// FavoritesPath is where the favorites JSON file lives
	FavoritesPath string `yaml:"favorites_path"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Provider:      "ollama",
		Thresholds:    recommend.DefaultThresholds(),
		TopK:          recommend.DefaultTopK,
		FavoritesPath: storage.DefaultPath,
	}
}

// Load reads the YAML config file at path when it exists, then applies
// environment overrides. An empty path or missing file yields defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("failed to read config file: %w", err)
			}
			slog.Debug("Config file not found, using defaults", "path", path)
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("BOOKPAL_PROVIDER"); v != "" {
		c.Provider = v
	}
	if v := os.Getenv("BOOKPAL_FAVORITES_PATH"); v != "" {
		c.FavoritesPath = v
	}
	if v := os.Getenv("BOOKPAL_TOP_K"); v != "" {
		if k, err := strconv.Atoi(v); err == nil {
			c.TopK = k
		} else {
			slog.Warn("Ignoring invalid BOOKPAL_TOP_K", "value", v)
		}
	}
	if v := os.Getenv("BOOKPAL_STRONG_THRESHOLD"); v != "" {
		if t, err := strconv.ParseFloat(v, 64); err == nil {
			c.Thresholds.Strong = t
		} else {
			slog.Warn("Ignoring invalid BOOKPAL_STRONG_THRESHOLD", "value", v)
		}
	}
	if v := os.Getenv("BOOKPAL_PARTIAL_THRESHOLD"); v != "" {
		if t, err := strconv.ParseFloat(v, 64); err == nil {
			c.Thresholds.Partial = t
		} else {
			slog.Warn("Ignoring invalid BOOKPAL_PARTIAL_THRESHOLD", "value", v)
		}
	}
}

// Validate checks the threshold invariant and suggestion count
func (c *Config) Validate() error {
	if err := c.Thresholds.Validate(); err != nil {
		return err
	}
	if c.TopK < 1 {
		return fmt.Errorf("%w: top_k must be >= 1, got %d", recommend.ErrInvalidConfiguration, c.TopK)
	}
	return nil
}

// RecommenderOptions converts the config into recommender options
func (c *Config) RecommenderOptions() recommend.Options {
	return recommend.Options{Thresholds: c.Thresholds, TopK: c.TopK}
}
