package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/match3/internal/board"
)

// boardView is what the play screen overlays on the grid.
type boardView struct {
	cursor   board.Coord
	selected *board.Coord
	hint     *board.Move
}

// specialMarks maps specials to the marker drawn after the tile letter.
var specialMarks = map[board.Special]rune{
	board.SpecialRowClear:    '-',
	board.SpecialColumnClear: '|',
	board.SpecialAreaBomb:    '+',
}

// cellGlyph returns the three-character glyph of a cell.
func cellGlyph(cell board.Cell) string {
	switch {
	case cell.IsHole():
		return "   "
	case cell.IsEmpty():
		return " . "
	}

	t := cell.Tile
	left, center, right := ' ', t.Kind.Char(), ' '
	if t.Special == board.SpecialColorBomb {
		center = '*'
	}
	if m, ok := specialMarks[t.Special]; ok {
		right = m
	}
	if t.Locked {
		left = '['
		if right == ' ' {
			right = ']'
		}
	}
	return string([]rune{left, center, right})
}

// RenderBoard draws the grid with cursor, selection and hint overlays.
func RenderBoard(g *board.Grid, v boardView, theme Theme) string {
	var sb strings.Builder
	for y := range g.H {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := range g.W {
			c := board.C(x, y)
			cell := g.Get(c)

			style := theme.Empty
			switch {
			case cell.IsHole():
				style = theme.Hole
			case cell.IsOccupied() && cell.Tile.Special == board.SpecialColorBomb:
				style = theme.Bomb
			case cell.IsOccupied():
				style = theme.TileStyle(cell.Tile.Kind)
			}
			if cell.Jelly > 0 {
				style = style.Inherit(theme.Jelly)
			}
			if v.hint != nil && (v.hint.A == c || v.hint.B == c) {
				style = style.Inherit(theme.Hint)
			}
			if v.selected != nil && *v.selected == c {
				style = style.Inherit(theme.Selected)
			}
			if v.cursor == c {
				style = style.Inherit(theme.Cursor)
			}
			sb.WriteString(style.Render(cellGlyph(cell)))
		}
	}
	return sb.String()
}

// RenderHUD draws the level title, counters and goals. The clock is shown
// for timed levels only.
func RenderHUD(title string, s board.SessionState, timed bool, theme Theme) string {
	var lines []string
	lines = append(lines, theme.HUDTitle.Render(title), "")

	field := func(label, value string, warn bool) string {
		vs := theme.HUDValue
		if warn {
			vs = theme.HUDWarning
		}
		return theme.HUDLabel.Render(fmt.Sprintf("%-7s", label)) + vs.Render(value)
	}

	lines = append(lines, field("Score", fmt.Sprintf("%d", s.Score), false))
	if s.MovesRemaining >= 0 {
		lines = append(lines, field("Moves", fmt.Sprintf("%d", s.MovesRemaining), s.MovesRemaining <= 3))
	}
	if timed {
		lines = append(lines, field("Time", formatClock(s.TimeRemaining), s.TimeRemaining <= 10*time.Second))
	}
	if s.Combo > 1 {
		lines = append(lines, field("Combo", fmt.Sprintf("x%d", s.Combo), false))
	}
	lines = append(lines, field("Best", fmt.Sprintf("x%d", s.BestCombo), false), "")

	lines = append(lines, theme.HUDLabel.Render("Goals"))
	for _, g := range s.Goals {
		style, mark := theme.GoalPending, " "
		if g.Met() {
			style, mark = theme.GoalDone, "v"
		}
		lines = append(lines, style.Render(fmt.Sprintf("%s %s", mark, g)))
	}
	if s.Deadlocked {
		lines = append(lines, "", theme.HUDWarning.Render("No moves left"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// formatClock renders a duration as m:ss.
func formatClock(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
