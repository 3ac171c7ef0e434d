package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the application configuration.
// Search order: customPath -> ~/.match3/config.yaml -> ./configs/match3.yaml -> embedded default.
// Keys missing from a file keep their default values.
func Load(customPath string) (AppConfig, error) {
	cfg := DefaultAppConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, cfg.validate()
			}
			cfg = DefaultAppConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "match3.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, cfg.validate()
		}
		cfg = DefaultAppConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return DefaultAppConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".match3", filename)
}

func (c AppConfig) validate() error {
	if _, err := ParsePreset(string(c.Difficulty)); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Engine.BasePoints < 0 {
		return fmt.Errorf("config: engine.base_points must not be negative")
	}
	for _, m := range c.Engine.ComboTable {
		if m <= 0 {
			return fmt.Errorf("config: engine.combo_table entries must be positive")
		}
	}
	return nil
}
