package config

import (
	_ "embed"

	"github.com/vovakirdan/match3/internal/board"
)

//go:embed defaults/match3.yaml
var defaultYAML []byte

// DefaultAppConfig returns the hard-coded default configuration.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Engine: EngineConfig{
			BasePoints: board.DefaultBasePoints,
			ComboTable: []float64{1.0},
		},
		Difficulty: DifficultyNormal,
		Storage: StorageConfig{
			DBPath: "~/.match3/scores.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        2323,
			HostKeyPath: ".ssh/match3_ed25519",
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultYAML
}
