package game_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/match3/internal/board"
	"github.com/vovakirdan/match3/internal/config"
	"github.com/vovakirdan/match3/internal/game"
	"github.com/vovakirdan/match3/internal/level"
)

type levels map[string]level.Level

func (m levels) Level(id string) (level.Level, error) {
	l, ok := m[id]
	if !ok {
		return level.Level{}, fmt.Errorf("%w: %s", level.ErrNotFound, id)
	}
	return l, nil
}

func (m levels) List() ([]level.Level, error) {
	out := make([]level.Level, 0, len(m))
	for _, l := range m {
		out = append(out, l)
	}
	return out, nil
}

type recorder struct {
	results []game.Result
	err     error
}

func (r *recorder) SaveGameResult(res game.Result) error {
	r.results = append(r.results, res)
	return r.err
}

// Swapping (0,2) with (1,2) completes a vertical red run.
var layout = []string{
	"YPGYP",
	"BGPGY",
	"GRYPG",
	"RYGYP",
	"RBBPY",
}

func testLevels() levels {
	return levels{
		"easy-win": {
			ID: "easy-win", Width: 5, Height: 5, Colors: 5, MinMatch: 3, Moves: 5,
			Layout: layout,
			Goals:  []board.GoalSpec{{Kind: board.GoalScore, Target: 1}},
		},
		"one-move": {
			ID: "one-move", Width: 5, Height: 5, Colors: 5, MinMatch: 3, Moves: 1,
			Layout: layout,
			Goals:  []board.GoalSpec{{Kind: board.GoalScore, Target: 1_000_000}},
		},
	}
}

func newRunner(saver game.ResultSaver, gate board.MoveGate) *game.Runner {
	return game.NewRunner(testLevels(), game.Options{
		Difficulty: config.DifficultyFixed,
		Saver:      saver,
		Gate:       gate,
		Player:     "tester",
	})
}

func TestRunnerRequiresSession(t *testing.T) {
	r := newRunner(nil, nil)

	_, err := r.Swap(board.C(0, 2), board.C(1, 2))
	assert.ErrorIs(t, err, game.ErrNoSession)
	assert.ErrorIs(t, r.Restart(), game.ErrNoSession)
	assert.Nil(t, r.Engine())

	// No-ops without a session
	r.Advance(time.Second)
	r.Abandon()
}

func TestRunnerStartUnknownLevel(t *testing.T) {
	r := newRunner(nil, nil)
	err := r.Start("missing", 1)
	assert.ErrorIs(t, err, level.ErrNotFound)
}

func TestRunnerSavesWinOnce(t *testing.T) {
	rec := &recorder{}
	r := newRunner(rec, nil)
	require.NoError(t, r.Start("easy-win", 7))
	require.NotEmpty(t, r.SessionID())

	out, err := r.Swap(board.C(0, 2), board.C(1, 2))
	require.NoError(t, err)
	require.True(t, out.Accepted)
	assert.Equal(t, board.StatusCompleted, r.Engine().Session().Status)
	assert.Equal(t, out, r.LastOutcome())

	r.Abandon()
	r.Advance(time.Minute)

	require.Len(t, rec.results, 1)
	res := rec.results[0]
	assert.Equal(t, r.SessionID(), res.SessionID)
	assert.Equal(t, "easy-win", res.LevelID)
	assert.Equal(t, "tester", res.Player)
	assert.Equal(t, "completed", res.Outcome)
	assert.Equal(t, out.ScoreDelta, res.Score)
	assert.Equal(t, 1, res.MovesUsed)
	assert.Equal(t, int64(7), res.Seed)
	assert.GreaterOrEqual(t, res.BestCombo, 1)
}

func TestRunnerMoveLimitFails(t *testing.T) {
	rec := &recorder{}
	r := newRunner(rec, nil)
	require.NoError(t, r.Start("one-move", 1))

	_, err := r.Swap(board.C(0, 2), board.C(1, 2))
	require.NoError(t, err)

	require.Len(t, rec.results, 1)
	assert.Equal(t, "failed", rec.results[0].Outcome)
}

func TestRunnerRestartAbandonsAndReseeds(t *testing.T) {
	rec := &recorder{}
	r := newRunner(rec, nil)
	require.NoError(t, r.Start("easy-win", 3))
	first := r.SessionID()

	require.NoError(t, r.Restart())

	require.Len(t, rec.results, 1)
	assert.Equal(t, "abandoned", rec.results[0].Outcome)
	assert.Equal(t, first, rec.results[0].SessionID)
	assert.NotEqual(t, first, r.SessionID())
	assert.Equal(t, int64(4), r.Seed())
	assert.Equal(t, board.StatusActive, r.Engine().Session().Status)
}

func TestRunnerSaveErrorDoesNotBreakSession(t *testing.T) {
	rec := &recorder{err: errors.New("disk full")}
	r := newRunner(rec, nil)
	require.NoError(t, r.Start("easy-win", 1))

	out, err := r.Swap(board.C(0, 2), board.C(1, 2))
	require.NoError(t, err)
	assert.True(t, out.Accepted)
	assert.Len(t, rec.results, 1)
}

func TestRunnerOutOfBounds(t *testing.T) {
	r := newRunner(nil, nil)
	require.NoError(t, r.Start("easy-win", 1))

	_, err := r.Swap(board.C(-1, 0), board.C(0, 0))
	assert.ErrorIs(t, err, board.ErrOutOfBounds)
}

func TestRunnerEnergyGate(t *testing.T) {
	energy := game.NewEnergy(1, time.Second)
	energy.ConsumeMove()

	r := newRunner(nil, energy)
	require.NoError(t, r.Start("easy-win", 1))

	out, err := r.Swap(board.C(0, 2), board.C(1, 2))
	require.NoError(t, err)
	assert.Equal(t, board.RejectNoEnergy, out.Reason)

	r.Advance(time.Second)
	assert.Equal(t, 1, energy.Left())

	out, err = r.Swap(board.C(0, 2), board.C(1, 2))
	require.NoError(t, err)
	assert.True(t, out.Accepted)
	assert.Equal(t, 0, energy.Left())
}

func TestRunnerAppliesDifficulty(t *testing.T) {
	r := game.NewRunner(testLevels(), game.Options{Difficulty: config.DifficultyEasy})
	require.NoError(t, r.Start("easy-win", 1))

	cfg := r.Engine().Config()
	assert.Equal(t, 6, cfg.MoveLimit)
	assert.Equal(t, []float64{1.0, 1.5, 2.0}, cfg.ComboTable)
}
