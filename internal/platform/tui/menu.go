package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/match3/internal/core"
	"github.com/vovakirdan/match3/internal/level"
)

// HighScores looks up the best completed score of a level.
type HighScores interface {
	HighScore(levelID string) (int, error)
}

// MenuItem represents a selectable level in the menu.
type MenuItem struct {
	LevelID   string
	Title     string
	Summary   string
	HighScore int
}

// MenuModel is the Bubble Tea model for the level picker.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	config         core.RuntimeConfig
	keys           KeyMap
	theme          Theme
	err            error
	quitting       bool
	selected       *MenuItem // Set when user selects a level
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model. scores may be nil.
func NewMenuModel(levels level.Provider, scores HighScores, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		config: cfg,
		keys:   DefaultKeyMap(),
		theme:  DefaultTheme(),
	}

	list, err := levels.List()
	if err != nil {
		m.err = err
		return m
	}
	m.items = make([]MenuItem, 0, len(list))
	for _, l := range list {
		item := MenuItem{
			LevelID: l.ID,
			Title:   l.Title(),
			Summary: l.Describe(),
		}
		if scores != nil {
			//nolint:errcheck // A missing high score shows as zero
			item.HighScore, _ = scores.HighScore(l.ID)
		}
		m.items = append(m.items, item)
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Scores) {
		m.openScoreboard = true
		return m, tea.Quit // Exit menu to show scoreboard
	}

	switch m.keys.Action(msg) {
	case core.ActionQuit, core.ActionBack:
		m.quitting = true
		return m, tea.Quit

	case core.ActionUp:
		m.cursor = core.Clamp(m.cursor-1, 0, max(len(m.items)-1, 0))

	case core.ActionDown:
		m.cursor = core.Clamp(m.cursor+1, 0, max(len(m.items)-1, 0))

	case core.ActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start level
		}
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	width := m.config.ScreenW
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("  M A T C H  3  "), width))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(centerText(m.theme.HUDWarning.Render(m.err.Error()), width))
		b.WriteString("\n\n")
	}

	for i, item := range m.items {
		line := fmt.Sprintf("%-24s", item.Title)
		if item.HighScore > 0 {
			line += fmt.Sprintf("  best %d", item.HighScore)
		}
		style := m.theme.MenuItemNormal
		if i == m.cursor {
			style = m.theme.MenuItemActive
		}
		b.WriteString(centerText(style.Render(line), width))
		b.WriteString("\n")
	}

	if len(m.items) > 0 {
		b.WriteString("\n")
		b.WriteString(centerText(m.theme.MenuDescription.Render(m.items[m.cursor].Summary), width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(m.theme.Help.Render(controls), width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}
