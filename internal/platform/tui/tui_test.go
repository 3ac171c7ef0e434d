package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/match3/internal/board"
	"github.com/vovakirdan/match3/internal/config"
	"github.com/vovakirdan/match3/internal/core"
	"github.com/vovakirdan/match3/internal/game"
	"github.com/vovakirdan/match3/internal/level"
)

type testLevels map[string]level.Level

func (m testLevels) Level(id string) (level.Level, error) {
	l, ok := m[id]
	if !ok {
		return level.Level{}, level.ErrNotFound
	}
	return l, nil
}

func (m testLevels) List() ([]level.Level, error) {
	out := make([]level.Level, 0, len(m))
	for _, l := range m {
		out = append(out, l)
	}
	return out, nil
}

func newTestPlay(t *testing.T) PlayModel {
	t.Helper()
	levels := testLevels{
		"t": {
			ID: "t", Name: "Test", Width: 5, Height: 5, Colors: 5, MinMatch: 3, Moves: 10,
			Layout: []string{
				"YPGYP",
				"BGPGY",
				"GRYPG",
				"RYGYP",
				"RBBPY",
			},
			Goals: []board.GoalSpec{{Kind: board.GoalScore, Target: 100_000}},
		},
	}
	runner := game.NewRunner(levels, game.Options{Difficulty: config.DifficultyFixed})
	if err := runner.Start("t", 1); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	return NewPlayModel(runner, core.DefaultConfig())
}

func step(t *testing.T, m PlayModel, actions ...core.Action) PlayModel {
	t.Helper()
	for _, a := range actions {
		next, _ := m.apply(a)
		pm, ok := next.(PlayModel)
		if !ok {
			t.Fatalf("apply(%v) returned %T", a, next)
		}
		m = pm
	}
	return m
}

func TestKeyMapAction(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		msg      tea.KeyMsg
		expected core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}, core.ActionDown},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")}, core.ActionRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionSelect},
		{tea.KeyMsg{Type: tea.KeySpace}, core.ActionSelect},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")}, core.ActionHint},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")}, core.ActionRestart},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")}, core.ActionNone},
	}

	for _, tt := range tests {
		if got := keys.Action(tt.msg); got != tt.expected {
			t.Errorf("Action(%q) = %v, expected %v", tt.msg.String(), got, tt.expected)
		}
	}
}

func TestCellGlyph(t *testing.T) {
	tests := []struct {
		name     string
		cell     board.Cell
		expected string
	}{
		{"hole", board.Hole(), "   "},
		{"empty", board.Empty(), " . "},
		{"plain", board.Occupied(board.Tile{Kind: board.KindRed}), " R "},
		{"row clear", board.Occupied(board.Tile{Kind: board.KindBlue, Special: board.SpecialRowClear}), " B-"},
		{"column clear", board.Occupied(board.Tile{Kind: board.KindBlue, Special: board.SpecialColumnClear}), " B|"},
		{"area bomb", board.Occupied(board.Tile{Kind: board.KindGreen, Special: board.SpecialAreaBomb}), " G+"},
		{"color bomb", board.Occupied(board.Tile{Special: board.SpecialColorBomb}), " * "},
		{"locked", board.Occupied(board.Tile{Kind: board.KindYellow, Locked: true}), "[Y]"},
	}

	for _, tt := range tests {
		if got := cellGlyph(tt.cell); got != tt.expected {
			t.Errorf("cellGlyph(%s) = %q, expected %q", tt.name, got, tt.expected)
		}
	}
}

func TestDescribeTurn(t *testing.T) {
	rejected := board.SwapOutcome{Reason: board.RejectNoMatch}
	if got := describeTurn(rejected); got != "Can't swap: no match" {
		t.Errorf("describeTurn(rejected) = %q", got)
	}

	accepted := board.SwapOutcome{
		Accepted:   true,
		ScoreDelta: 900,
		Waves:      []board.Wave{{Generation: 1}, {Generation: 2}},
		Events: []board.Event{
			board.SpecialCreated{Tile: board.Tile{Special: board.SpecialAreaBomb}},
			board.JellyCleared{},
			board.JellyCleared{},
			board.BoardShuffled{Attempts: 1},
		},
	}
	got := describeTurn(accepted)
	for _, want := range []string{"+900", "2-wave cascade", "area-bomb created", "2 jelly hit", "board shuffled"} {
		if !strings.Contains(got, want) {
			t.Errorf("describeTurn() = %q, missing %q", got, want)
		}
	}
}

func TestPlayPickAndSwap(t *testing.T) {
	m := newTestPlay(t)

	// Cursor to (0,2), pick, move right, swap
	m = step(t, m, core.ActionDown, core.ActionDown, core.ActionSelect)
	if m.selected == nil || *m.selected != board.C(0, 2) {
		t.Fatalf("selected = %v, expected (0,2)", m.selected)
	}

	m = step(t, m, core.ActionRight, core.ActionSelect)
	if m.selected != nil {
		t.Error("selection should clear after a swap")
	}
	s := m.runner.Engine().Session()
	if s.MovesUsed != 1 || s.Score == 0 {
		t.Errorf("Session() = %+v, expected one scoring move", s)
	}
	if !strings.HasPrefix(m.status, "+") {
		t.Errorf("status = %q, expected a score delta", m.status)
	}
}

func TestPlayRejectedSwapKeepsMoves(t *testing.T) {
	m := newTestPlay(t)

	m = step(t, m, core.ActionSelect, core.ActionRight, core.ActionSelect)
	if got := m.runner.Engine().Session().MovesUsed; got != 0 {
		t.Errorf("MovesUsed = %d, expected 0", got)
	}
	if !strings.HasPrefix(m.status, "Can't swap") {
		t.Errorf("status = %q", m.status)
	}
}

func TestPlayCursorClamped(t *testing.T) {
	m := newTestPlay(t)
	m = step(t, m, core.ActionUp, core.ActionLeft)
	if m.cursor != board.C(0, 0) {
		t.Errorf("cursor = %v, expected (0,0)", m.cursor)
	}
	for range 10 {
		m = step(t, m, core.ActionRight, core.ActionDown)
	}
	if m.cursor != board.C(4, 4) {
		t.Errorf("cursor = %v, expected (4,4)", m.cursor)
	}
}

func TestPlayHintAndBack(t *testing.T) {
	m := newTestPlay(t)
	m = step(t, m, core.ActionHint)
	if m.hint == nil {
		t.Fatal("hint should be set on a playable board")
	}

	m = step(t, m, core.ActionBack)
	if !m.BackToMenu() {
		t.Error("BackToMenu() = false after back")
	}
	if got := m.runner.Engine().Session().Status; got != board.StatusAbandoned {
		t.Errorf("Status = %v, expected abandoned", got)
	}
}

func TestPlayViewShowsHUD(t *testing.T) {
	m := newTestPlay(t)
	view := m.View()
	for _, want := range []string{"Test", "Score", "Moves", "Goals"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}
