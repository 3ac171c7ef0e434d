package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/match3/internal/board"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a name into a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// LimitScaleForPreset returns the factor applied to move and time limits.
func LimitScaleForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 1.25
	case DifficultyHard:
		return 0.8
	default:
		return 1.0
	}
}

// IsFixedPreset returns true if the preset leaves levels as authored.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset adjusts a level's limits and combo table for a preset.
func ApplyPreset(cfg *board.Config, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		return
	}

	scale := LimitScaleForPreset(preset)
	if cfg.MoveLimit > 0 {
		cfg.MoveLimit = max(int(float64(cfg.MoveLimit)*scale+0.5), 1)
	}
	if cfg.TimeLimit > 0 {
		cfg.TimeLimit = max(time.Duration(float64(cfg.TimeLimit)*scale).Round(time.Second), time.Second)
	}

	// Easy games reward cascades more generously
	if preset == DifficultyEasy && len(cfg.ComboTable) <= 1 {
		cfg.ComboTable = []float64{1.0, 1.5, 2.0}
	}
}
