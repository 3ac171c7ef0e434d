package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/match3/internal/core"
	"github.com/vovakirdan/match3/internal/game"
	"github.com/vovakirdan/match3/internal/level"
	"github.com/vovakirdan/match3/internal/storage"
)

// screen is the active part of a session.
type screen int

const (
	screenMenu screen = iota
	screenPlay
	screenScores
)

// SessionModel manages the full flow: menu -> level -> menu, with the
// scoreboard reachable from the menu. It is the top-level model for SSH
// sessions and for interactive play without a level argument.
type SessionModel struct {
	levels     level.Provider
	store      *storage.Store
	highScores HighScores
	runner     *game.Runner
	config     core.RuntimeConfig
	screen     screen
	menu       MenuModel
	play       PlayModel
	scores     ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a new session model. store and scores may be nil.
func NewSessionModel(levels level.Provider, store *storage.Store, scores HighScores, runner *game.Runner, cfg core.RuntimeConfig) SessionModel {
	return SessionModel{
		levels:     levels,
		store:      store,
		highScores: scores,
		runner:     runner,
		config:     cfg,
		menu:       NewMenuModel(levels, scores, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenPlay:
		return m.updatePlay(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scores = NewScoreboardModel(m.levels, m.store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
		return m, m.scores.Init()

	case m.menu.Selected() != nil:
		if err := m.runner.Start(m.menu.Selected().LevelID, m.config.Seed); err != nil {
			m.menu = NewMenuModel(m.levels, m.highScores, m.config)
			m.menu.err = err
			return m, nil
		}
		m.config.Seed++
		m.play = NewPlayModel(m.runner, m.config)
		m.screen = screenPlay
		return m, m.play.Init()
	}

	return m, cmd
}

func (m SessionModel) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.play.Update(msg)
	if playModel, ok := newModel.(PlayModel); ok {
		m.play = playModel
	}

	if m.play.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.play.BackToMenu() {
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if scores, ok := newModel.(ScoreboardModel); ok {
		m.scores = scores
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		return m.backToMenu()
	}
	return m, cmd
}

// backToMenu rebuilds the menu so fresh high scores show.
func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.levels, m.highScores, m.config)
	m.screen = screenMenu
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenPlay:
		return m.play.View()
	case screenScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs the menu-driven session locally.
func RunSession(levels level.Provider, store *storage.Store, runner *game.Runner, cfg core.RuntimeConfig) error {
	var scores HighScores
	if store != nil {
		scores = store
	}
	model := NewSessionModel(levels, store, scores, runner, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	runner.Abandon()
	return err
}
