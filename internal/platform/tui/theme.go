package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/match3/internal/board"
)

// Theme contains all configurable visual styles for the board screens.
type Theme struct {
	// Tile colours by kind
	Tiles map[board.Kind]lipgloss.Style
	Bomb  lipgloss.Style
	Hole  lipgloss.Style
	Empty lipgloss.Style

	// Cell overlays
	Jelly    lipgloss.Style // Background for cells with jelly left
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Hint     lipgloss.Style

	// HUD styles
	HUDTitle    lipgloss.Style
	HUDLabel    lipgloss.Style
	HUDValue    lipgloss.Style
	HUDWarning  lipgloss.Style
	GoalDone    lipgloss.Style
	GoalPending lipgloss.Style
	Status      lipgloss.Style
	Help        lipgloss.Style

	// Overlay styles
	OverlayBorder lipgloss.Style
	OverlayTitle  lipgloss.Style
	OverlayText   lipgloss.Style

	// Level menu styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Tiles: map[board.Kind]lipgloss.Style{
			board.KindRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
			board.KindGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
			board.KindBlue:   lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
			board.KindYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
			board.KindPurple: lipgloss.NewStyle().Foreground(lipgloss.Color("135")).Bold(true),
			board.KindOrange: lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
			board.KindCyan:   lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		},
		Bomb:  lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Bold(true),
		Hole:  lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
		Empty: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),

		Jelly:    lipgloss.NewStyle().Background(lipgloss.Color("53")),
		Cursor:   lipgloss.NewStyle().Reverse(true),
		Selected: lipgloss.NewStyle().Background(lipgloss.Color("57")),
		Hint:     lipgloss.NewStyle().Underline(true),

		HUDTitle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		HUDLabel:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		HUDValue:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
		HUDWarning:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		GoalDone:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		GoalPending: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("180")).Italic(true),
		Help:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		OverlayBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("229")).
			Padding(1, 3),
		OverlayTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		OverlayText:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),

		MenuTitle:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).MarginBottom(1),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// TileStyle returns the style for a tile kind.
func (t Theme) TileStyle(k board.Kind) lipgloss.Style {
	if s, ok := t.Tiles[k]; ok {
		return s
	}
	return lipgloss.NewStyle()
}
