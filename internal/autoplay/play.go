package autoplay

import (
	"time"

	"github.com/vovakirdan/match3/internal/board"
	"github.com/vovakirdan/match3/internal/game"
)

// Report summarizes an automated session.
type Report struct {
	Level     string             `json:"level"`
	Session   string             `json:"session"`
	Strategy  string             `json:"strategy"`
	Seed      int64              `json:"seed"`
	Outcome   string             `json:"outcome"`
	Score     int                `json:"score"`
	MovesUsed int                `json:"moves_used"`
	Turns     int                `json:"turns"`
	BestCombo int                `json:"best_combo"`
	Cascades  int                `json:"cascades"`
	Specials  int                `json:"specials"`
	Shuffles  int                `json:"shuffles"`
	Stuck     bool               `json:"stuck"`
	Elapsed   time.Duration      `json:"elapsed_ns"`
	Goals     []board.GoalStatus `json:"goals"`
}

// Options bounds an automated session.
type Options struct {
	MaxTurns int           // Zero means no bound beyond the level's limits
	Tick     time.Duration // Clock advance after each turn
}

// Play drives the runner's current session with s until it ends, no move
// is available or the turn bound is hit. The session is abandoned when play
// stops early so the result is still recorded.
func Play(r *game.Runner, s Strategy, opts Options) (Report, error) {
	e := r.Engine()
	if e == nil {
		return Report{}, game.ErrNoSession
	}

	rep := Report{
		Level:    r.Level().ID,
		Session:  r.SessionID(),
		Strategy: s.Name(),
		Seed:     r.Seed(),
	}

	for !e.Session().Status.Terminal() {
		if opts.MaxTurns > 0 && rep.Turns >= opts.MaxTurns {
			break
		}
		m, ok := s.Choose(e)
		if !ok {
			rep.Stuck = true
			break
		}
		out, err := r.Swap(m.A, m.B)
		if err != nil {
			return rep, err
		}
		if !out.Accepted {
			rep.Stuck = true
			break
		}
		rep.Turns++
		if len(out.Waves) > 1 {
			rep.Cascades++
		}
		for _, ev := range out.Events {
			switch ev.(type) {
			case board.SpecialCreated:
				rep.Specials++
			case board.BoardShuffled:
				rep.Shuffles++
			}
		}
		if opts.Tick > 0 {
			r.Advance(opts.Tick)
		}
	}

	if !e.Session().Status.Terminal() {
		r.Abandon()
	}

	state := e.Session()
	rep.Outcome = state.Status.String()
	rep.Score = state.Score
	rep.MovesUsed = state.MovesUsed
	rep.BestCombo = state.BestCombo
	rep.Elapsed = state.Elapsed
	rep.Goals = state.Goals
	return rep, nil
}
