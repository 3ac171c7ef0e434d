// Package game runs level sessions: it builds an engine per attempt, logs
// turns and persists results when a session ends.
package game

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/match3/internal/board"
	"github.com/vovakirdan/match3/internal/config"
	"github.com/vovakirdan/match3/internal/level"
)

// ErrNoSession is returned when an action needs a running session.
var ErrNoSession = errors.New("no session started")

// Result is the summary of a finished session.
type Result struct {
	SessionID string
	LevelID   string
	Player    string
	Outcome   string
	Score     int
	MovesUsed int
	BestCombo int
	Elapsed   time.Duration
	Seed      int64
}

// ResultSaver persists finished sessions.
type ResultSaver interface {
	SaveGameResult(Result) error
}

// Options configures a Runner.
type Options struct {
	Engine     config.EngineConfig
	Difficulty config.DifficultyPreset
	Logger     *log.Logger
	Saver      ResultSaver
	Gate       board.MoveGate
	Player     string
	Listeners  []board.Listener
}

// Runner owns one engine per level attempt.
type Runner struct {
	levels level.Provider
	opts   Options
	log    *log.Logger

	lvl       level.Level
	engine    *board.Engine
	seed      int64
	sessionID string
	saved     bool
	last      board.SwapOutcome
}

// NewRunner creates a runner over a level provider.
func NewRunner(levels level.Provider, opts Options) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{levels: levels, opts: opts, log: logger}
}

// Start begins a new attempt at a level with a seed.
func (r *Runner) Start(levelID string, seed int64) error {
	lvl, err := r.levels.Level(levelID)
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}

	cfg := lvl.ToConfig()
	r.opts.Engine.Apply(&cfg)
	config.ApplyPreset(&cfg, r.opts.Difficulty)

	opts := []board.Option{
		board.WithSeed(seed),
		board.WithListener(board.ListenerFunc(r.onEvent)),
	}
	if r.opts.Gate != nil {
		opts = append(opts, board.WithMoveGate(r.opts.Gate))
	}
	for _, l := range r.opts.Listeners {
		opts = append(opts, board.WithListener(l))
	}

	engine, err := board.New(cfg, opts...)
	if err != nil {
		return fmt.Errorf("game: level %s: %w", lvl.ID, err)
	}

	r.lvl = lvl
	r.engine = engine
	r.seed = seed
	r.sessionID = uuid.NewString()
	r.saved = false
	r.last = board.SwapOutcome{}

	r.log.Info("session started",
		"level", lvl.ID,
		"session", r.sessionID,
		"seed", seed,
		"difficulty", r.opts.Difficulty,
	)
	return nil
}

// Restart abandons the current attempt and starts the same level with the next seed.
func (r *Runner) Restart() error {
	if r.engine == nil {
		return ErrNoSession
	}
	r.Abandon()
	return r.Start(r.lvl.ID, r.seed+1)
}

// Swap forwards a swap to the engine.
func (r *Runner) Swap(a, b board.Coord) (board.SwapOutcome, error) {
	if r.engine == nil {
		return board.SwapOutcome{}, ErrNoSession
	}
	out, err := r.engine.RequestSwap(a, b)
	if err != nil {
		r.log.Error("invalid swap", "level", r.lvl.ID, "from", a, "to", b, "err", err)
		return out, err
	}
	r.last = out
	if out.Accepted {
		r.log.Debug("swap",
			"level", r.lvl.ID,
			"from", a,
			"to", b,
			"waves", len(out.Waves),
			"delta", out.ScoreDelta,
		)
	} else {
		r.log.Debug("swap rejected", "level", r.lvl.ID, "from", a, "to", b, "reason", out.Reason)
	}
	return out, nil
}

// Advance moves the session clock and any time-based gate forward.
func (r *Runner) Advance(d time.Duration) {
	if r.engine == nil {
		return
	}
	if ticker, ok := r.opts.Gate.(interface{ Advance(time.Duration) }); ok {
		ticker.Advance(d)
	}
	r.engine.AdvanceTime(d)
}

// Abandon ends the current attempt without a win or loss.
func (r *Runner) Abandon() {
	if r.engine == nil {
		return
	}
	r.engine.Abandon()
}

// Engine returns the engine of the current attempt, or nil.
func (r *Runner) Engine() *board.Engine {
	return r.engine
}

// Level returns the level of the current attempt.
func (r *Runner) Level() level.Level {
	return r.lvl
}

// SessionID returns the ID of the current attempt.
func (r *Runner) SessionID() string {
	return r.sessionID
}

// Seed returns the seed of the current attempt.
func (r *Runner) Seed() int64 {
	return r.seed
}

// LastOutcome returns the outcome of the most recent swap.
func (r *Runner) LastOutcome() board.SwapOutcome {
	return r.last
}

// onEvent persists the session once it ends.
func (r *Runner) onEvent(ev board.Event) {
	ended, ok := ev.(board.SessionEnded)
	if !ok || r.saved {
		return
	}
	r.saved = true

	s := r.engine.Session()
	result := Result{
		SessionID: r.sessionID,
		LevelID:   r.lvl.ID,
		Player:    r.opts.Player,
		Outcome:   ended.Outcome.String(),
		Score:     ended.Score,
		MovesUsed: ended.MovesUsed,
		BestCombo: s.BestCombo,
		Elapsed:   ended.Elapsed,
		Seed:      r.seed,
	}
	r.log.Info("session ended",
		"level", result.LevelID,
		"session", result.SessionID,
		"outcome", result.Outcome,
		"score", result.Score,
		"moves", result.MovesUsed,
	)

	if r.opts.Saver == nil {
		return
	}
	if err := r.opts.Saver.SaveGameResult(result); err != nil {
		r.log.Error("failed to save result", "session", result.SessionID, "err", err)
	}
}
