package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level sprout.yaml configuration.
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Display  DisplayConfig  `yaml:"display"`
}

// StorageConfig locates the database and data directory.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
	DataDir      string `yaml:"data_dir"` // audit log and import staging
}

// DefaultsConfig seeds preferences for newly initialized users.
type DefaultsConfig struct {
	DailyLimit        string `yaml:"daily_limit"` // decimal string, e.g. "30.00"
	RequireCategories bool   `yaml:"require_categories"`
	RolloverEnabled   bool   `yaml:"rollover_enabled"`
}

// DisplayConfig controls output formatting.
type DisplayConfig struct {
	CurrencySymbol string `yaml:"currency_symbol"`
	HeatmapDays    int    `yaml:"heatmap_days"`
	HistoryDays    int    `yaml:"history_days"`
}

// Load reads a sprout.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new ledger rooted at
// dataDir.
func Default(dataDir string) *Config {
	return &Config{
		Storage: StorageConfig{
			DatabasePath: dataDir + "/sprout.db",
			DataDir:      dataDir,
		},
		Defaults: DefaultsConfig{
			DailyLimit:        "30.00",
			RequireCategories: true,
			RolloverEnabled:   false,
		},
		Display: DisplayConfig{
			CurrencySymbol: "$",
			HeatmapDays:    28,
			HistoryDays:    7,
		},
	}
}
