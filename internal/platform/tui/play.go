package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/match3/internal/board"
	"github.com/vovakirdan/match3/internal/core"
	"github.com/vovakirdan/match3/internal/game"
)

// PlayModel is the Bubble Tea model for playing one level.
type PlayModel struct {
	runner     *game.Runner
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	theme      Theme
	cursor     board.Coord
	selected   *board.Coord
	hint       *board.Move
	status     string
	lastTick   time.Time
	quitOnBack bool // Standalone play has no menu to return to
	quitting   bool
	backToMenu bool
}

// NewPlayModel creates a play model over a runner with a started session.
func NewPlayModel(runner *game.Runner, cfg core.RuntimeConfig) PlayModel {
	h := help.New()
	h.ShowAll = false
	return PlayModel{
		runner:   runner,
		config:   cfg,
		keys:     DefaultKeyMap(),
		help:     h,
		theme:    DefaultTheme(),
		lastTick: time.Now(),
	}
}

// Init starts the clock.
func (m PlayModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.apply(m.keys.Action(msg))

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleTick advances the session clock by the wall time since the last tick.
func (m PlayModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.active() {
		m.runner.Advance(now.Sub(m.lastTick))
	}
	m.lastTick = now
	return m, tickCmd(m.config.TickRate)
}

func (m PlayModel) active() bool {
	e := m.runner.Engine()
	return e != nil && !e.Session().Status.Terminal()
}

// apply performs one play action.
func (m PlayModel) apply(action core.Action) (tea.Model, tea.Cmd) {
	e := m.runner.Engine()

	if dx, dy, ok := action.Delta(); ok {
		cfg := e.Config()
		m.cursor = board.C(
			core.Clamp(m.cursor.X+dx, 0, cfg.Width-1),
			core.Clamp(m.cursor.Y+dy, 0, cfg.Height-1),
		)
		return m, nil
	}

	switch action {
	case core.ActionQuit:
		m.quitting = true
		m.runner.Abandon()
		return m, tea.Quit

	case core.ActionBack:
		m.runner.Abandon()
		m.backToMenu = true
		if m.quitOnBack {
			return m, tea.Quit
		}

	case core.ActionSelect:
		return m.pick(), nil

	case core.ActionCancel:
		m.selected = nil

	case core.ActionHint:
		if moves := e.LegalMoves(); len(moves) > 0 && m.active() {
			m.hint = &moves[0]
			m.status = fmt.Sprintf("Try %v", moves[0])
		}

	case core.ActionRestart:
		if err := m.runner.Restart(); err != nil {
			m.status = "Restart failed: " + err.Error()
			return m, nil
		}
		m.selected, m.hint = nil, nil
		m.status = "Restarted"

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// pick selects the tile under the cursor, or swaps it with the selected one.
func (m PlayModel) pick() PlayModel {
	if !m.active() {
		return m
	}
	cur := m.cursor
	switch {
	case m.selected == nil:
		m.selected = &cur
	case *m.selected == cur:
		m.selected = nil
	case !board.IsAdjacent(*m.selected, cur):
		m.selected = &cur
	default:
		out, err := m.runner.Swap(*m.selected, cur)
		if err != nil {
			m.status = err.Error()
		} else {
			m.status = describeTurn(out)
		}
		m.selected, m.hint = nil, nil
	}
	return m
}

// View renders the board, HUD, status line and help.
func (m PlayModel) View() string {
	if m.quitting {
		return ""
	}
	e := m.runner.Engine()
	if e == nil {
		return "No level loaded.\n"
	}

	lvl := m.runner.Level()
	s := e.Session()

	timed := e.Config().TimeLimit > 0

	grid := RenderBoard(e.Grid(), boardView{cursor: m.cursor, selected: m.selected, hint: m.hint}, m.theme)
	if s.Status.Terminal() {
		grid = m.renderOverlay(s, timed)
	}
	hud := RenderHUD(lvl.Title(), s, timed, m.theme)
	body := lipgloss.JoinHorizontal(lipgloss.Top, grid, "    ", hud)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n\n")
	b.WriteString(m.theme.Status.Render(m.status))
	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render(m.help.View(m.keys)))
	return b.String()
}

// renderOverlay draws the end-of-session box in place of the board.
func (m PlayModel) renderOverlay(s board.SessionState, timed bool) string {
	title := "LEVEL ABANDONED"
	switch s.Status {
	case board.StatusCompleted:
		title = "LEVEL COMPLETE"
	case board.StatusFailed:
		switch {
		case s.MovesRemaining == 0:
			title = "OUT OF MOVES"
		case timed && s.TimeRemaining == 0:
			title = "TIME UP"
		default:
			title = "BOARD STUCK"
		}
	}
	text := fmt.Sprintf("Score %d\nMoves %d\nBest combo x%d\n\nr: retry   esc: levels",
		s.Score, s.MovesUsed, s.BestCombo)
	return m.theme.OverlayBorder.Render(
		lipgloss.JoinVertical(lipgloss.Center,
			m.theme.OverlayTitle.Render(title),
			"",
			m.theme.OverlayText.Render(text),
		),
	)
}

// IsQuitting returns true if user requested to quit entirely.
func (m PlayModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m PlayModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a single level.
func Run(runner *game.Runner, cfg core.RuntimeConfig) error {
	model := NewPlayModel(runner, cfg)
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	runner.Abandon()
	return err
}
