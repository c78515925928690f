package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/natefinch/atomic"
)

// ModelConfig holds the defaults used when building and sampling a model.
type ModelConfig struct {
	WindowLength int    `json:"window_length" toml:"window_length"`
	Length       int    `json:"length" toml:"length"`
	Random       bool   `json:"random" toml:"random"`
	Seed         uint64 `json:"seed" toml:"seed"`
	PruneMin     int    `json:"prune_min_count" toml:"prune_min_count"`
}

// Config is the top-level configuration struct that aggregates all other configs.
type Config struct {
	LogLevel     string       `json:"log_level" toml:"log_level"`
	DatabasePath string       `json:"database_path" toml:"database_path"`
	Model        *ModelConfig `json:"model_config" toml:"model_config"`
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:     "info",
		DatabasePath: "./data/charkov.db",
		Model: &ModelConfig{
			WindowLength: 3,
			Length:       200,
			Random:       false,
			Seed:         fixedSeed,
			PruneMin:     0,
		},
	}
}

// isTOML reports whether path names a TOML config file.
func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// LoadConfig reads the configuration from a JSON or TOML file at the given
// path, chosen by extension. If the file doesn't exist, it creates one with
// default values.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		// If the file doesn't exist, create it with the default config.
		if os.IsNotExist(err) {
			var data []byte
			data, err = encodeConfig(path, config)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				// Running with defaults is still possible.
				fmt.Fprintf(os.Stderr, "warning: failed to write default config file: %v\n", err)
			}
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if isTOML(path) {
		if _, err = toml.Decode(string(file), config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if err = json.Unmarshal(file, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if config.Model == nil {
		config.Model = DefaultConfig().Model
	}
	return config, nil
}

// encodeConfig serializes config in the format implied by path.
func encodeConfig(path string, config *Config) ([]byte, error) {
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(config); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return json.MarshalIndent(config, "", "  ")
}
