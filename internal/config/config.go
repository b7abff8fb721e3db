// Package config loads process configuration: word store credentials
// plus an optional JSON override for the static band and level tables.
// Priority is ENV > YAML file > defaults.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the full process configuration.
type Config struct {
	Store  StoreConfig  `yaml:"store"`
	Tables TablesConfig `yaml:"tables"`
}

// StoreConfig points at the remote word store.
type StoreConfig struct {
	URL            string `yaml:"url"             env:"KOTOBA_STORE_URL"`
	APIKey         string `yaml:"api_key"         env:"KOTOBA_STORE_API_KEY"`
	WordsTable     string `yaml:"words_table"     env:"KOTOBA_WORDS_TABLE"  env-default:"bccwj"`
	TagsTable      string `yaml:"tags_table"      env:"KOTOBA_TAGS_TABLE"   env-default:"jlpt"`
	TimeoutSeconds int    `yaml:"timeout_seconds" env:"KOTOBA_STORE_TIMEOUT" env-default:"15"`
}

// TablesConfig optionally points at a JSON file overriding the built-in
// band partition, thresholds and level tables.
type TablesConfig struct {
	Path string `yaml:"path" env:"KOTOBA_TABLES_PATH"`
}

// Load reads configuration from a YAML file and environment variables.
// The file path comes from KOTOBA_CONFIG (fallback "./kotoba.yaml"); a
// missing default file is fine, configuration then comes from ENV and
// defaults only.
func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv("KOTOBA_CONFIG")
	explicitPath := path != ""
	if !explicitPath {
		path = "./kotoba.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// Validate checks the fields the process cannot run without.
func (c *Config) Validate() error {
	if c.Store.URL == "" {
		return errors.New("store url is required (KOTOBA_STORE_URL)")
	}
	if c.Store.APIKey == "" {
		return errors.New("store api key is required (KOTOBA_STORE_API_KEY)")
	}
	if c.Store.TimeoutSeconds <= 0 {
		return errors.New("store timeout must be positive")
	}
	return nil
}
