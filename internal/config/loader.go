package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the configuration file name looked up in every location.
const ConfigFile = "buns.yaml"

// LoadBuns loads the game configuration.
// Search order: customPath -> ~/.burrows/configs/buns.yaml -> ./configs/buns.yaml -> embedded default
//
// Files are decoded over the defaults, so a file only needs the keys it changes.
func LoadBuns(customPath string) (BunsConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BunsConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return BunsConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", ConfigFile)); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultBunsYAML)
	if err != nil {
		return DefaultBunsConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes data over the hardcoded defaults and validates the result.
func parse(data []byte) (BunsConfig, error) {
	cfg := DefaultBunsConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BunsConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return BunsConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".burrows", "configs", filename)
}
