package board_test

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/match3/internal/board"
)

// scriptRand replays a fixed sequence of draws.
type scriptRand struct {
	seq []int
	i   int
}

func (r *scriptRand) Intn(n int) int {
	v := r.seq[r.i%len(r.seq)]
	r.i++
	return v % n
}

// cascadeLayout: swapping (0,2) with (1,2) forms a vertical red run in
// column 0; the blue tile from (0,1) then lands next to two blues in row 4.
var cascadeLayout = []string{
	"YPGYP",
	"BGPGY",
	"GRYPG",
	"RYGYP",
	"RBBPY",
}

// cascadeRefill keeps both refills free of new runs.
var cascadeRefill = []int{0, 4, 0, 2, 0, 2}

func cascadeConfig() board.Config {
	return board.Config{
		Colors:    5,
		MoveLimit: 10,
		Layout:    cascadeLayout,
		Goals:     []board.GoalSpec{{Kind: "green", Target: 30}},
	}
}

func newEngine(t *testing.T, cfg board.Config, opts ...board.Option) *board.Engine {
	t.Helper()
	e, err := board.New(cfg, opts...)
	require.NoError(t, err)
	return e
}

func eventsOf[T board.Event](events []board.Event) []T {
	var out []T
	for _, ev := range events {
		if v, ok := ev.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func TestSwapTriggersCascade(t *testing.T) {
	cfg := cascadeConfig()
	cfg.ComboTable = []float64{1, 2}
	e := newEngine(t, cfg, board.WithRand(&scriptRand{seq: cascadeRefill}))

	out, err := e.RequestSwap(board.C(0, 2), board.C(1, 2))
	require.NoError(t, err)
	require.True(t, out.Accepted)
	require.Len(t, out.Waves, 2)

	first := out.Waves[0]
	assert.Equal(t, 1, first.Generation)
	require.Len(t, first.Removed, 3)
	for i, r := range first.Removed {
		assert.Equal(t, board.C(0, 2+i), r.At)
		assert.Equal(t, board.KindRed, r.Tile.Kind)
		assert.Equal(t, board.CauseMatch, r.Cause)
	}

	second := out.Waves[1]
	assert.Equal(t, 2, second.Generation)
	require.Len(t, second.Matches, 1)
	assert.Equal(t, board.KindBlue, second.Matches[0].Kind)
	assert.Equal(t, board.Horizontal, second.Matches[0].Orientation)

	scores := eventsOf[board.ScoreChanged](out.Events)
	require.Len(t, scores, 2)
	assert.Equal(t, board.ScoreChanged{Score: 300, Delta: 300, Generation: 1}, scores[0])
	assert.Equal(t, board.ScoreChanged{Score: 900, Delta: 600, Generation: 2}, scores[1])
	assert.Equal(t, 900, out.ScoreDelta)

	combos := eventsOf[board.ComboTriggered](out.Events)
	require.Len(t, combos, 1)
	assert.Equal(t, board.ComboTriggered{Generation: 2, Multiplier: 2}, combos[0])

	removed := eventsOf[board.TileRemoved](out.Events)
	require.Len(t, removed, 6)
	for _, r := range removed[:3] {
		assert.Equal(t, 1, r.Generation)
	}

	assert.Equal(t, board.Swapped{A: board.C(0, 2), B: board.C(1, 2)}, out.Events[0])

	g := e.Grid()
	assert.Equal(t, "BRBYP\nRPGGY\nPGPPG\nRGYYP\nYYGPY", g.String())
	assert.False(t, board.HasMatch(g, 3))

	s := e.Session()
	assert.Equal(t, board.StatusActive, s.Status)
	assert.Equal(t, 900, s.Score)
	assert.Equal(t, 1, s.MovesUsed)
	assert.Equal(t, 9, s.MovesRemaining)
	assert.Equal(t, 2, s.Combo)
}

func TestRejectedSwapLeavesGridUntouched(t *testing.T) {
	tests := []struct {
		name   string
		a, b   board.Coord
		reason board.RejectReason
	}{
		{"no match", board.C(3, 0), board.C(4, 0), board.RejectNoMatch},
		{"same cell", board.C(1, 1), board.C(1, 1), board.RejectInvalidAdjacency},
		{"diagonal", board.C(1, 1), board.C(2, 2), board.RejectInvalidAdjacency},
		{"distant", board.C(0, 0), board.C(0, 2), board.RejectInvalidAdjacency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t, cascadeConfig(), board.WithRand(&scriptRand{seq: cascadeRefill}))
			before := e.Grid()

			out, err := e.RequestSwap(tt.a, tt.b)
			require.NoError(t, err)
			assert.False(t, out.Accepted)
			assert.Equal(t, tt.reason, out.Reason)
			assert.Empty(t, out.Events)
			assert.True(t, before.Equal(e.Grid()), "grid changed on rejection")
			assert.Equal(t, 0, e.Session().MovesUsed)
		})
	}
}

func TestOutOfBoundsSwap(t *testing.T) {
	e := newEngine(t, cascadeConfig())
	before := e.Grid()

	out, err := e.RequestSwap(board.C(4, 4), board.C(5, 4))
	require.Error(t, err)
	assert.True(t, errors.Is(err, board.ErrOutOfBounds))
	assert.False(t, out.Accepted)
	assert.Equal(t, board.RejectInvalidAdjacency, out.Reason)
	assert.True(t, before.Equal(e.Grid()))
}

func TestBlockedSwap(t *testing.T) {
	cfg := cascadeConfig()
	cfg.Layout = []string{
		"YPGYP",
		"BGPGY",
		"GrYPG",
		"RYGYP",
		"RBBP#",
	}
	e := newEngine(t, cfg)

	out, err := e.RequestSwap(board.C(0, 2), board.C(1, 2))
	require.NoError(t, err)
	assert.Equal(t, board.RejectBlocked, out.Reason)

	out, err = e.RequestSwap(board.C(3, 4), board.C(4, 4))
	require.NoError(t, err)
	assert.Equal(t, board.RejectBlocked, out.Reason)
}

func TestJellyGoalCompletesSession(t *testing.T) {
	cfg := cascadeConfig()
	cfg.Goals = []board.GoalSpec{{Kind: board.GoalClearJelly, Target: 5}}
	cfg.Jelly = []board.Coord{
		board.C(0, 2), board.C(0, 3), board.C(0, 4),
		board.C(1, 4), board.C(2, 4),
	}

	var ended []board.SessionEnded
	listener := board.ListenerFunc(func(ev board.Event) {
		if se, ok := ev.(board.SessionEnded); ok {
			ended = append(ended, se)
		}
	})
	e := newEngine(t, cfg,
		board.WithRand(&scriptRand{seq: cascadeRefill}),
		board.WithListener(listener),
	)

	out, err := e.RequestSwap(board.C(0, 2), board.C(1, 2))
	require.NoError(t, err)
	require.True(t, out.Accepted)

	require.Len(t, ended, 1)
	assert.Equal(t, board.StatusCompleted, ended[0].Outcome)
	assert.Len(t, eventsOf[board.SessionEnded](out.Events), 1)
	assert.Len(t, eventsOf[board.JellyCleared](out.Events), 5)
	assert.Equal(t, 0, e.Grid().JellyCount())

	progress := e.GoalProgress()
	require.Len(t, progress, 1)
	assert.Equal(t, board.GoalStatus{ID: board.GoalClearJelly, Target: 5, Current: 5}, progress[0])

	assert.False(t, e.CanAcceptSwap())
	out, err = e.RequestSwap(board.C(1, 1), board.C(1, 2))
	require.NoError(t, err)
	assert.Equal(t, board.RejectSessionOver, out.Reason)
	assert.Nil(t, e.AdvanceTime(time.Second))
	assert.Nil(t, e.Abandon())
	assert.Len(t, ended, 1)
}

func TestGoalMetOnLastMoveWins(t *testing.T) {
	cfg := cascadeConfig()
	cfg.MoveLimit = 1
	cfg.Goals = []board.GoalSpec{{Kind: "red", Target: 3}}
	e := newEngine(t, cfg, board.WithRand(&scriptRand{seq: cascadeRefill}))

	_, err := e.RequestSwap(board.C(0, 2), board.C(1, 2))
	require.NoError(t, err)
	assert.Equal(t, board.StatusCompleted, e.Session().Status)
}

func TestMoveLimitFailsSession(t *testing.T) {
	cfg := cascadeConfig()
	cfg.MoveLimit = 1
	e := newEngine(t, cfg, board.WithRand(&scriptRand{seq: cascadeRefill}))

	out, err := e.RequestSwap(board.C(0, 2), board.C(1, 2))
	require.NoError(t, err)
	ended := eventsOf[board.SessionEnded](out.Events)
	require.Len(t, ended, 1)
	assert.Equal(t, board.StatusFailed, ended[0].Outcome)
	assert.Equal(t, 0, e.Session().MovesRemaining)
}

func TestAdvanceTime(t *testing.T) {
	cfg := cascadeConfig()
	cfg.MoveLimit = 0
	cfg.TimeLimit = time.Minute
	e := newEngine(t, cfg)

	assert.Nil(t, e.AdvanceTime(30*time.Second))
	assert.Equal(t, board.StatusActive, e.Session().Status)
	assert.Equal(t, -1, e.Session().MovesRemaining)
	assert.Equal(t, 30*time.Second, e.Session().TimeRemaining)

	events := e.AdvanceTime(30 * time.Second)
	require.Len(t, events, 1)
	assert.Equal(t, board.StatusFailed, events[0].(board.SessionEnded).Outcome)
	assert.False(t, e.CanAcceptSwap())
}

func TestAbandon(t *testing.T) {
	e := newEngine(t, cascadeConfig())
	events := e.Abandon()
	require.Len(t, events, 1)
	assert.Equal(t, board.StatusAbandoned, e.Session().Status)

	e.Reset()
	assert.Equal(t, board.StatusActive, e.Session().Status)
	assert.True(t, e.CanAcceptSwap())
}

type energy struct {
	left     int
	consumed int
}

func (g *energy) MoveAvailable() bool { return g.left > 0 }
func (g *energy) ConsumeMove() {
	g.left--
	g.consumed++
}

func TestMoveGate(t *testing.T) {
	gate := &energy{left: 1}
	e := newEngine(t, cascadeConfig(),
		board.WithRand(&scriptRand{seq: cascadeRefill}),
		board.WithMoveGate(gate),
	)

	out, err := e.RequestSwap(board.C(0, 2), board.C(1, 2))
	require.NoError(t, err)
	require.True(t, out.Accepted)
	assert.Equal(t, 1, gate.consumed)

	assert.False(t, e.CanAcceptSwap())
	moves := e.LegalMoves()
	require.NotEmpty(t, moves)
	out, err = e.RequestSwap(moves[0].A, moves[0].B)
	require.NoError(t, err)
	assert.Equal(t, board.RejectNoEnergy, out.Reason)
	assert.Equal(t, 1, gate.consumed)
}

func TestSpecialCreatedAtSwapDestination(t *testing.T) {
	cfg := board.Config{
		Colors:    5,
		MoveLimit: 5,
		Goals:     []board.GoalSpec{{Kind: board.GoalSpecial, Target: 3}},
		Layout: []string{
			"RRGRY",
			"GBRBG",
			"BYPYP",
			"YPGPY",
			"PGYGB",
		},
	}
	e := newEngine(t, cfg, board.WithSeed(7))

	out, err := e.RequestSwap(board.C(2, 1), board.C(2, 0))
	require.NoError(t, err)
	require.True(t, out.Accepted)

	first := out.Waves[0]
	require.Len(t, first.Created, 1)
	assert.Equal(t, board.C(2, 0), first.Created[0].At)
	assert.Equal(t, board.SpecialRowClear, first.Created[0].Tile.Special)
	assert.Equal(t, board.KindRed, first.Created[0].Tile.Kind)
	assert.Len(t, first.Removed, 3)
	require.NotEmpty(t, eventsOf[board.SpecialCreated](out.Events))
	assert.Equal(t, 400, eventsOf[board.ScoreChanged](out.Events)[0].Delta)
}

func TestLocateFollowsTiles(t *testing.T) {
	e := newEngine(t, cascadeConfig(), board.WithRand(&scriptRand{seq: cascadeRefill}))
	_, err := e.RequestSwap(board.C(0, 2), board.C(1, 2))
	require.NoError(t, err)

	g := e.Grid()
	for _, c := range g.AllCoords() {
		cell := g.Get(c)
		at, ok := e.Locate(cell.Tile.ID)
		require.True(t, ok, "tile %d at %v not indexed", cell.Tile.ID, c)
		assert.Equal(t, c, at)
	}
}

func TestRandomPlayKeepsInvariants(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		cfg := board.Config{
			Width:     8,
			Height:    8,
			Colors:    5,
			MoveLimit: 30,
			Holes:     []board.Coord{board.C(0, 0), board.C(7, 0), board.C(3, 4)},
			Goals:     []board.GoalSpec{{Kind: board.GoalScore, Target: 1_000_000}},
		}
		rng := rand.New(rand.NewSource(seed))
		e := newEngine(t, cfg, board.WithRand(rand.New(rand.NewSource(seed*31))))
		playable := 64 - 3

		for e.CanAcceptSwap() {
			g := e.Grid()
			require.False(t, board.HasMatch(g, 3), "seed %d: unstable board\n%s", seed, g)
			require.Equal(t, playable, g.OccupiedCount())

			// A random, usually illegal, swap never changes the board.
			a := board.C(rng.Intn(8), rng.Intn(8))
			b := a.Add(1, 0)
			if b.X < 8 {
				out, err := e.RequestSwap(a, b)
				require.NoError(t, err)
				if !out.Accepted {
					require.True(t, g.Equal(e.Grid()), "seed %d: rejected swap mutated grid", seed)
					moves := e.LegalMoves()
					require.NotEmpty(t, moves)
					m := moves[rng.Intn(len(moves))]
					out, err = e.RequestSwap(m.A, m.B)
					require.NoError(t, err)
					require.True(t, out.Accepted, "seed %d: legal move %v rejected: %v", seed, m, out.Reason)
				}
				assert.LessOrEqual(t, len(out.Waves), 64)
				continue
			}
			moves := e.LegalMoves()
			require.NotEmpty(t, moves)
			_, err := e.RequestSwap(moves[0].A, moves[0].B)
			require.NoError(t, err)
		}
		assert.Equal(t, board.StatusFailed, e.Session().Status)
		assert.Equal(t, 30, e.Session().MovesUsed)
	}
}

func TestAdjacencySymmetry(t *testing.T) {
	for x := -1; x <= 3; x++ {
		for y := -1; y <= 3; y++ {
			a, b := board.C(1, 1), board.C(x, y)
			assert.Equal(t, board.IsAdjacent(a, b), board.IsAdjacent(b, a))
		}
	}
	assert.True(t, board.IsAdjacent(board.C(1, 1), board.C(1, 2)))
	assert.False(t, board.IsAdjacent(board.C(1, 1), board.C(2, 2)))
	assert.False(t, board.IsAdjacent(board.C(1, 1), board.C(1, 1)))
}

func TestGeneratedBoardIsPlayable(t *testing.T) {
	for seed := int64(0); seed < 25; seed++ {
		e := newEngine(t, board.Config{
			Width: 6, Height: 6, Colors: 4, MoveLimit: 10,
			Goals:  []board.GoalSpec{{Kind: "red", Target: 10}},
			Jelly:  []board.Coord{board.C(2, 2), board.C(2, 2)},
			Locked: []board.Coord{board.C(5, 5)},
		}, board.WithSeed(seed))
		g := e.Grid()
		assert.False(t, board.HasMatch(g, 3))
		assert.NotEmpty(t, e.LegalMoves())
		assert.Equal(t, uint8(2), g.Get(board.C(2, 2)).Jelly)
		assert.True(t, g.Get(board.C(5, 5)).Tile.Locked)
	}
}

// deadlockLayout has one legal move: (1,2)<->(2,2) lines up red in column 1.
// Refilling that column with red, blue, green leaves RRG/GBB/GGB, which has
// no move.
var deadlockLayout = []string{
	"RRG",
	"GRB",
	"GBR",
}

func deadlockConfig() board.Config {
	return board.Config{
		Colors:    3,
		MoveLimit: 10,
		Layout:    deadlockLayout,
		Goals:     []board.GoalSpec{{Kind: board.GoalScore, Target: 10000}},
	}
}

func TestDeadlockReshuffles(t *testing.T) {
	e := newEngine(t, deadlockConfig(), board.WithRand(&scriptRand{seq: []int{0, 2, 1}}))

	out, err := e.RequestSwap(board.C(1, 2), board.C(2, 2))
	require.NoError(t, err)
	require.True(t, out.Accepted)

	shuffled := eventsOf[board.BoardShuffled](out.Events)
	require.Len(t, shuffled, 1)
	assert.Equal(t, board.BoardShuffled{Attempts: 1}, shuffled[0])
	assert.IsType(t, board.BoardShuffled{}, out.Events[len(out.Events)-1])

	g := e.Grid()
	assert.Equal(t, "GBB\nGGB\nRGR", g.String())
	assert.False(t, board.HasMatch(g, 3))
	assert.True(t, board.HasMove(g, 3))

	s := e.Session()
	assert.Equal(t, board.StatusActive, s.Status)
	assert.False(t, s.Deadlocked)
	assert.NotEmpty(t, e.LegalMoves())

	for _, c := range g.AllCoords() {
		id := g.Get(c).Tile.ID
		at, ok := e.Locate(id)
		require.True(t, ok)
		assert.Equal(t, c, at)
	}
}

func TestDeadlockWithoutReshuffle(t *testing.T) {
	cfg := deadlockConfig()
	cfg.DisableReshuffle = true
	e := newEngine(t, cfg, board.WithRand(&scriptRand{seq: []int{0, 2, 1}}))

	out, err := e.RequestSwap(board.C(1, 2), board.C(2, 2))
	require.NoError(t, err)
	require.True(t, out.Accepted)

	assert.Empty(t, eventsOf[board.BoardShuffled](out.Events))
	assert.Equal(t, "RRG\nGBB\nGGB", e.Grid().String())
	assert.Empty(t, e.LegalMoves())

	s := e.Session()
	assert.True(t, s.Deadlocked)
	assert.Equal(t, board.StatusActive, s.Status)
}

// With holes leaving four playable cells, the refill R, G, R leaves two reds
// and two greens. No arrangement of those has a move, and regeneration under
// the same script never finds one either.
func TestDeadlockShuffleFailureEndsSession(t *testing.T) {
	cfg := board.Config{
		Colors:    3,
		MoveLimit: 10,
		Layout:    []string{"###", "R##", "GRR"},
		Goals:     []board.GoalSpec{{Kind: board.GoalScore, Target: 10000}},
	}
	e := newEngine(t, cfg, board.WithRand(&scriptRand{seq: []int{0, 1}}))

	out, err := e.RequestSwap(board.C(0, 1), board.C(0, 2))
	require.NoError(t, err)
	require.True(t, out.Accepted)

	shuffled := eventsOf[board.BoardShuffled](out.Events)
	require.Len(t, shuffled, 1)
	assert.True(t, shuffled[0].Regenerated)

	ended := eventsOf[board.SessionEnded](out.Events)
	require.Len(t, ended, 1)
	assert.Equal(t, board.StatusFailed, ended[0].Outcome)
	assert.Equal(t, board.StatusFailed, e.Session().Status)
	assert.False(t, e.CanAcceptSwap())
}

func TestDeadlockedLayoutAtStart(t *testing.T) {
	cfg := deadlockConfig()
	cfg.Layout = []string{"RRG", "GBB", "GGB"}
	e := newEngine(t, cfg)

	assert.True(t, e.Session().Deadlocked)
	assert.Empty(t, e.LegalMoves())

	playable := newEngine(t, deadlockConfig())
	assert.False(t, playable.Session().Deadlocked)
}

func TestListenersSeeFinishedTurn(t *testing.T) {
	var e *board.Engine
	var accepting []bool
	e = newEngine(t, cascadeConfig(),
		board.WithRand(&scriptRand{seq: cascadeRefill}),
		board.WithListener(board.ListenerFunc(func(ev board.Event) {
			if _, ok := ev.(board.ScoreChanged); ok {
				accepting = append(accepting, e.CanAcceptSwap())
			}
		})),
	)

	_, err := e.RequestSwap(board.C(0, 2), board.C(1, 2))
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true}, accepting)
}

func TestLayoutColorBombSurvivesDeal(t *testing.T) {
	cfg := deadlockConfig()
	cfg.Layout = []string{"R*G", "GBR", "BRG"}
	e := newEngine(t, cfg)

	cell := e.Grid().Get(board.C(1, 0))
	assert.Equal(t, board.SpecialColorBomb, cell.Tile.Special)
	assert.False(t, e.Session().Deadlocked)
}
