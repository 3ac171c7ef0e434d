// Package level provides level definitions and loading for the board engine.
// This package depends on board but board does not depend on level.
package level

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/match3/internal/board"
)

// ErrNotFound is returned when no level has the requested ID.
var ErrNotFound = errors.New("level not found")

// Level represents a complete level definition.
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
	Jelly     []board.Coord
	Locked    []board.Coord
	Layout    []string
	Combo     []float64
	Metadata  map[string]string
	FilePath  string
}

// Title returns the display name, falling back to the ID.
func (l *Level) Title() string {
	if l.Name != "" {
		return l.Name
	}
	return l.ID
}

// ToConfig converts the level into an engine configuration.
func (l *Level) ToConfig() board.Config {
	return board.Config{
		Width:      l.Width,
		Height:     l.Height,
		Colors:     l.Colors,
		MinMatch:   l.MinMatch,
		MoveLimit:  l.Moves,
		TimeLimit:  l.TimeLimit,
		Goals:      l.Goals,
		Holes:      l.Holes,
		Jelly:      l.Jelly,
		Locked:     l.Locked,
		Layout:     l.Layout,
		ComboTable: l.Combo,
	}
}

// Describe returns a one-line summary of limits and goals.
func (l *Level) Describe() string {
	limit := fmt.Sprintf("%d moves", l.Moves)
	switch {
	case l.Moves == 0:
		limit = l.TimeLimit.String()
	case l.TimeLimit > 0:
		limit += ", " + l.TimeLimit.String()
	}
	goals := ""
	for i, g := range l.Goals {
		if i > 0 {
			goals += ", "
		}
		goals += fmt.Sprintf("%s %d", g.Kind, g.Target)
	}
	return fmt.Sprintf("%dx%d, %d colours, %s; %s", l.Width, l.Height, l.Colors, limit, goals)
}

// Provider supplies levels by ID.
type Provider interface {
	Level(id string) (Level, error)
	List() ([]Level, error)
}
