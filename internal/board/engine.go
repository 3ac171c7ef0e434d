package board

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/kamstrup/intmap"
)

// Status is the lifecycle state of a level session.
type Status uint8

const (
	StatusActive Status = iota
	StatusCompleted
	StatusFailed
	StatusAbandoned
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	case StatusAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// Terminal reports whether the session has ended.
func (s Status) Terminal() bool {
	return s != StatusActive
}

// SessionState is a snapshot of the session counters.
type SessionState struct {
	Status         Status
	Score          int
	MovesUsed      int
	MovesRemaining int // -1 when the level has no move limit
	Elapsed        time.Duration
	TimeRemaining  time.Duration // Zero when the level has no time limit
	Combo          int           // Waves resolved by the last turn
	BestCombo      int
	Deadlocked     bool // No legal move is available and the board was not reshuffled
	Goals          []GoalStatus
}

// MoveGate decides whether a move may begin, for energy or lives systems.
type MoveGate interface {
	MoveAvailable() bool
	ConsumeMove()
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source for generation, refill and shuffles.
func WithRand(r Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithSeed seeds a math/rand source for reproducible sessions.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewSource(seed)) }
}

// WithMoveGate consults g before every swap and notifies it of each committed move.
func WithMoveGate(g MoveGate) Option {
	return func(e *Engine) { e.gate = g }
}

// WithListener registers a listener for all events.
func WithListener(l Listener) Option {
	return func(e *Engine) { e.listeners = append(e.listeners, l) }
}

// Engine owns the board of one level attempt. It is not safe for concurrent use.
type Engine struct {
	cfg       Config
	kinds     []Kind
	rng       Rand
	gate      MoveGate
	listeners []Listener

	grid      *Grid
	positions *intmap.Map[TileID, Coord]
	nextID    TileID
	scorer    *scorer
	goals     *goalTracker
	session   SessionState
	resolving bool
}

// New validates cfg and deals a starting board.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{cfg: cfg.withDefaults()}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	e.kinds = ActiveKinds(e.cfg.Colors)
	e.positions = intmap.New[TileID, Coord](e.cfg.Width * e.cfg.Height)
	e.start()
	return e, nil
}

// AddListener registers a listener.
func (e *Engine) AddListener(l Listener) {
	e.listeners = append(e.listeners, l)
}

// Reset deals a new board and starts a fresh session with the same config.
// The random source continues from where it was.
func (e *Engine) Reset() {
	if e.resolving {
		panic("board: Reset called while a turn is resolving")
	}
	e.start()
}

func (e *Engine) start() {
	e.grid = e.deal()
	e.scorer = newScorer(e.cfg.BasePoints, e.cfg.ComboTable)
	e.goals = newGoalTracker(e.cfg.Goals)
	e.session = SessionState{
		Status:     StatusActive,
		Deadlocked: !HasMove(e.grid, e.cfg.MinMatch),
	}
	e.reindex()
}

func (e *Engine) newTile(k Kind) Tile {
	e.nextID++
	return Tile{ID: e.nextID, Kind: k}
}

// deal builds the starting grid: layout or generated tiles, obstacles applied,
// no runs, and at least one legal move for generated boards.
func (e *Engine) deal() *Grid {
	g := NewGrid(e.cfg.Width, e.cfg.Height)
	fixed := len(e.cfg.Layout) > 0
	if fixed {
		// Validated in New.
		lg, _ := ParseLayout(e.cfg.Layout)
		for i, cell := range lg.Cells {
			if cell.State == CellOccupied {
				t := e.newTile(cell.Tile.Kind)
				t.Special = cell.Tile.Special
				t.Locked = cell.Tile.Locked
				cell.Tile = t
			}
			g.Cells[i] = cell
		}
	}
	for _, h := range e.cfg.Holes {
		g.Set(h, Hole())
	}
	for _, j := range e.cfg.Jelly {
		cell := g.Get(j)
		cell.Jelly++
		g.Set(j, cell)
	}

	fillStable(g, e.rng, e.kinds, e.cfg.MinMatch, e.newTile)

	for _, l := range e.cfg.Locked {
		cell := g.Get(l)
		cell.Tile.Locked = true
		g.Set(l, cell)
	}

	if !fixed && !e.cfg.DisableReshuffle && !HasMove(g, e.cfg.MinMatch) {
		shuffle(g, e.rng, e.kinds, e.cfg.MinMatch, e.newTile)
	}
	return g
}

func (e *Engine) reindex() {
	e.positions.Clear()
	for _, c := range e.grid.AllCoords() {
		if cell := e.grid.Get(c); cell.State == CellOccupied {
			e.positions.Put(cell.Tile.ID, c)
		}
	}
}

// RequestSwap validates a swap and, when accepted, resolves the whole turn.
// Out-of-bounds coordinates are a caller bug: the swap is rejected and the
// returned error wraps ErrOutOfBounds.
func (e *Engine) RequestSwap(a, b Coord) (SwapOutcome, error) {
	if e.resolving {
		panic("board: RequestSwap called while a turn is resolving")
	}
	if !e.grid.InBounds(a) || !e.grid.InBounds(b) {
		return rejected(RejectInvalidAdjacency), fmt.Errorf("board: swap %v with %v: %w", a, b, ErrOutOfBounds)
	}
	if e.session.Status.Terminal() {
		return rejected(RejectSessionOver), nil
	}
	if e.gate != nil && !e.gate.MoveAvailable() {
		return rejected(RejectNoEnergy), nil
	}
	trig, reason := checkSwap(e.grid, a, b, e.cfg.MinMatch)
	if reason != RejectNone {
		return rejected(reason), nil
	}

	e.resolving = true
	defer func() { e.resolving = false }()

	e.grid.Swap(a, b)
	e.positions.Put(e.grid.Get(a).Tile.ID, a)
	e.positions.Put(e.grid.Get(b).Tile.ID, b)
	e.session.MovesUsed++
	if e.gate != nil {
		e.gate.ConsumeMove()
	}
	events := []Event{Swapped{A: a, B: b}}

	r := &resolver{
		grid:    e.grid,
		minLen:  e.cfg.MinMatch,
		kinds:   e.kinds,
		rng:     e.rng,
		newTile: e.newTile,
	}
	waves := r.resolve(trig)

	delta := 0
	for _, w := range waves {
		var d int
		events, d = e.applyWave(w, events)
		delta += d
	}
	e.session.Combo = len(waves)
	e.session.BestCombo = max(e.session.BestCombo, len(waves))

	events = e.settle(events)
	// Listeners see a finished turn and may query or swap again.
	e.resolving = false
	e.publish(events)

	return SwapOutcome{
		Accepted:   true,
		Waves:      waves,
		Events:     events,
		ScoreDelta: delta,
	}, nil
}

// applyWave feeds a resolved wave to the score and goal trackers and
// translates it into events.
func (e *Engine) applyWave(w Wave, events []Event) ([]Event, int) {
	gen := w.Generation
	if gen > 1 {
		events = append(events, ComboTriggered{
			Generation: gen,
			Multiplier: e.scorer.multiplier(gen).InexactFloat64(),
		})
	}
	for _, r := range w.Removed {
		e.positions.Del(r.Tile.ID)
		events = append(events, TileRemoved{At: r.At, Tile: r.Tile, Generation: gen, Cause: r.Cause})
	}
	for _, h := range w.JellyHits {
		events = append(events, JellyCleared{At: h.At, Remaining: h.Remaining, Generation: gen})
	}
	for _, c := range w.Created {
		events = append(events, SpecialCreated{At: c.At, Tile: c.Tile, Generation: gen})
	}

	delta := e.scorer.scoreWave(w)
	e.session.Score = e.scorer.total
	if delta != 0 {
		events = append(events, ScoreChanged{Score: e.session.Score, Delta: delta, Generation: gen})
	}

	e.goals.recordWave(w)
	e.goals.recordScore(e.session.Score)
	for _, g := range e.goals.drainChanged() {
		events = append(events, GoalProgressChanged{Goal: g})
	}

	for _, d := range w.Drops {
		e.positions.Put(d.ID, d.To)
		events = append(events, TileDropped{ID: d.ID, From: d.From, To: d.To, Generation: gen})
	}
	for _, s := range w.Spawns {
		e.positions.Put(s.Tile.ID, s.At)
		events = append(events, TileSpawned{At: s.At, Tile: s.Tile, Generation: gen})
	}
	return events, delta
}

// settle evaluates goals and limits after a turn, then handles deadlock.
// Meeting every goal on the last move wins.
func (e *Engine) settle(events []Event) []Event {
	switch {
	case e.goals.complete():
		return e.end(StatusCompleted, events)
	case e.cfg.MoveLimit > 0 && e.session.MovesUsed >= e.cfg.MoveLimit:
		return e.end(StatusFailed, events)
	case e.cfg.TimeLimit > 0 && e.session.Elapsed >= e.cfg.TimeLimit:
		return e.end(StatusFailed, events)
	}

	e.session.Deadlocked = false
	if HasMove(e.grid, e.cfg.MinMatch) {
		return events
	}
	if e.cfg.DisableReshuffle {
		e.session.Deadlocked = true
		return events
	}
	attempts, regenerated, ok := shuffle(e.grid, e.rng, e.kinds, e.cfg.MinMatch, e.newTile)
	e.reindex()
	events = append(events, BoardShuffled{Attempts: attempts, Regenerated: regenerated})
	if !ok {
		return e.end(StatusFailed, events)
	}
	return events
}

// end moves the session to a terminal status. SessionEnded fires once.
func (e *Engine) end(status Status, events []Event) []Event {
	if e.session.Status.Terminal() {
		return events
	}
	e.session.Status = status
	return append(events, SessionEnded{
		Outcome:   status,
		Score:     e.session.Score,
		MovesUsed: e.session.MovesUsed,
		Elapsed:   e.session.Elapsed,
		Goals:     e.goals.progress(),
	})
}

func (e *Engine) publish(events []Event) {
	for _, ev := range events {
		for _, l := range e.listeners {
			l.OnEvent(ev)
		}
	}
}

// AdvanceTime adds d to the session clock. A timed level fails once the
// limit is reached. Returns the events produced, if any.
func (e *Engine) AdvanceTime(d time.Duration) []Event {
	if e.session.Status.Terminal() || d <= 0 {
		return nil
	}
	e.session.Elapsed += d
	if e.cfg.TimeLimit == 0 || e.session.Elapsed < e.cfg.TimeLimit {
		return nil
	}
	events := e.end(StatusFailed, nil)
	e.publish(events)
	return events
}

// Abandon ends an active session without a result.
func (e *Engine) Abandon() []Event {
	if e.session.Status.Terminal() {
		return nil
	}
	events := e.end(StatusAbandoned, nil)
	e.publish(events)
	return events
}

// CanAcceptSwap reports whether a swap request could currently begin.
func (e *Engine) CanAcceptSwap() bool {
	if e.resolving || e.session.Status.Terminal() {
		return false
	}
	return e.gate == nil || e.gate.MoveAvailable()
}

// Grid returns a copy of the current board.
func (e *Engine) Grid() *Grid {
	return e.grid.Clone()
}

// Config returns the effective configuration with defaults applied.
func (e *Engine) Config() Config {
	return e.cfg
}

// Kinds returns the active colour set.
func (e *Engine) Kinds() []Kind {
	return append([]Kind(nil), e.kinds...)
}

// GoalProgress returns the progress of every goal in level order.
func (e *Engine) GoalProgress() []GoalStatus {
	return e.goals.progress()
}

// Session returns a snapshot of the session counters.
func (e *Engine) Session() SessionState {
	s := e.session
	s.MovesRemaining = -1
	if e.cfg.MoveLimit > 0 {
		s.MovesRemaining = max(e.cfg.MoveLimit-s.MovesUsed, 0)
	}
	if e.cfg.TimeLimit > 0 {
		s.TimeRemaining = max(e.cfg.TimeLimit-s.Elapsed, 0)
	}
	s.Goals = e.goals.progress()
	return s
}

// LegalMoves returns every swap the validator would accept.
func (e *Engine) LegalMoves() []Move {
	return FindMoves(e.grid, e.cfg.MinMatch)
}

// Preview returns the first-wave effect of a move on the current board.
func (e *Engine) Preview(m Move) (Preview, bool) {
	return PreviewMove(e.grid, m, e.cfg.MinMatch)
}

// Locate returns the current cell of a tile.
func (e *Engine) Locate(id TileID) (Coord, bool) {
	return e.positions.Get(id)
}
