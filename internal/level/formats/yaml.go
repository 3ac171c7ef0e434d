// Package formats provides level file format parsers.
package formats

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/match3/internal/board"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID        string            `yaml:"id"`
	Name      string            `yaml:"name"`
	Size      YAMLSize          `yaml:"size"`
	Colors    int               `yaml:"colors"`
	MinMatch  int               `yaml:"min_match,omitempty"`
	Moves     int               `yaml:"moves,omitempty"`
	TimeLimit int               `yaml:"time_limit,omitempty"` // Seconds
	Goals     []YAMLGoal        `yaml:"goals"`
	Holes     []YAMLCoord       `yaml:"holes,omitempty"`
	Jelly     []YAMLCoord       `yaml:"jelly,omitempty"`
	Locked    []YAMLCoord       `yaml:"locked,omitempty"`
	Layout    []string          `yaml:"layout,omitempty"`
	Combo     []float64         `yaml:"combo,omitempty"`
	Metadata  map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents grid dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLGoal is one objective.
type YAMLGoal struct {
	Kind   string `yaml:"kind"`
	Target int    `yaml:"target"`
}

// YAMLCoord is a cell reference. Layers only applies to jelly.
type YAMLCoord struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Layers int `yaml:"layers,omitempty"`
}

// Level represents a parsed level ready for use.
type Level struct {
	ID        string
	Name      string
	Width     int
	Height    int
	Colors    int
	MinMatch  int
	Moves     int
	TimeLimit time.Duration
	Goals     []board.GoalSpec
	Holes     []board.Coord
	Jelly     []board.Coord // One entry per layer
	Locked    []board.Coord
	Layout    []string
	Combo     []float64
	Metadata  map[string]string
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	minMatch := yl.MinMatch
	if minMatch <= 0 {
		minMatch = 3 // Default run length
	}

	level := Level{
		ID:        yl.ID,
		Name:      yl.Name,
		Width:     yl.Size.W,
		Height:    yl.Size.H,
		Colors:    yl.Colors,
		MinMatch:  minMatch,
		Moves:     yl.Moves,
		TimeLimit: time.Duration(yl.TimeLimit) * time.Second,
		Holes:     coords(yl.Holes),
		Locked:    coords(yl.Locked),
		Layout:    yl.Layout,
		Combo:     yl.Combo,
		Metadata:  yl.Metadata,
	}
	if level.Width == 0 && level.Height == 0 && len(yl.Layout) > 0 {
		level.Height = len(yl.Layout)
		level.Width = len(yl.Layout[0])
	}

	for _, g := range yl.Goals {
		level.Goals = append(level.Goals, board.GoalSpec{Kind: g.Kind, Target: g.Target})
	}
	for _, j := range yl.Jelly {
		layers := max(j.Layers, 1)
		for range layers {
			level.Jelly = append(level.Jelly, board.C(j.X, j.Y))
		}
	}

	return level, nil
}

func coords(in []YAMLCoord) []board.Coord {
	if len(in) == 0 {
		return nil
	}
	out := make([]board.Coord, len(in))
	for i, c := range in {
		out[i] = board.C(c.X, c.Y)
	}
	return out
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
