// Package config provides YAML-based application configuration loading and
// difficulty presets for match3.
package config

import "github.com/vovakirdan/match3/internal/board"

// AppConfig contains all configuration for the match3 binary.
type AppConfig struct {
	Engine     EngineConfig     `yaml:"engine"`
	Difficulty DifficultyPreset `yaml:"difficulty"`
	Storage    StorageConfig    `yaml:"storage"`
	Levels     LevelsConfig     `yaml:"levels"`
	Log        LogConfig        `yaml:"log"`
	Server     ServerConfig     `yaml:"server"`
}

// EngineConfig defines scoring and board behaviour shared by every level.
type EngineConfig struct {
	BasePoints       int       `yaml:"base_points"`
	ComboTable       []float64 `yaml:"combo_table"` // Used when a level has no combo table
	DisableReshuffle bool      `yaml:"disable_reshuffle"`
}

// StorageConfig defines where session results are kept.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// LevelsConfig defines where extra level files are looked up.
type LevelsConfig struct {
	Dir string `yaml:"dir"` // Searched before the built-in campaign; empty disables
}

// LogConfig defines logging verbosity.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// ServerConfig defines the SSH server.
type ServerConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	HostKeyPath string `yaml:"host_key_path"`
}

// Apply copies the engine settings into a level's board configuration.
// Level-specific combo tables take precedence.
func (e EngineConfig) Apply(cfg *board.Config) {
	if e.BasePoints > 0 {
		cfg.BasePoints = e.BasePoints
	}
	if len(cfg.ComboTable) == 0 && len(e.ComboTable) > 0 {
		cfg.ComboTable = append([]float64(nil), e.ComboTable...)
	}
	cfg.DisableReshuffle = e.DisableReshuffle
}
