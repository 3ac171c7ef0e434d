package board

import "time"

// Event is emitted by the engine while a turn resolves.
type Event interface {
	boardEvent()
}

// Swapped is emitted when an accepted swap is committed.
type Swapped struct {
	A, B Coord
}

// TileRemoved is emitted for every tile cleared.
type TileRemoved struct {
	At         Coord
	Tile       Tile
	Generation int
	Cause      Cause
}

// TileDropped is emitted when gravity moves a tile.
type TileDropped struct {
	ID         TileID
	From, To   Coord
	Generation int
}

// TileSpawned is emitted when refill places a new tile.
type TileSpawned struct {
	At         Coord
	Tile       Tile
	Generation int
}

// SpecialCreated is emitted when a matched tile is upgraded in place.
type SpecialCreated struct {
	At         Coord
	Tile       Tile
	Generation int
}

// JellyCleared is emitted when a jelly layer is consumed.
type JellyCleared struct {
	At         Coord
	Remaining  int
	Generation int
}

// ScoreChanged is emitted once per wave that scored.
type ScoreChanged struct {
	Score      int
	Delta      int
	Generation int
}

// ComboTriggered is emitted for every wave after the first in a turn.
type ComboTriggered struct {
	Generation int
	Multiplier float64
}

// GoalProgressChanged is emitted when a goal advances.
type GoalProgressChanged struct {
	Goal GoalStatus
}

// BoardShuffled is emitted when a deadlocked board is rearranged.
type BoardShuffled struct {
	Attempts    int
	Regenerated bool
}

// SessionEnded is emitted exactly once when the session reaches a terminal status.
type SessionEnded struct {
	Outcome   Status
	Score     int
	MovesUsed int
	Elapsed   time.Duration
	Goals     []GoalStatus
}

func (Swapped) boardEvent()             {}
func (TileRemoved) boardEvent()         {}
func (TileDropped) boardEvent()         {}
func (TileSpawned) boardEvent()         {}
func (SpecialCreated) boardEvent()      {}
func (JellyCleared) boardEvent()        {}
func (ScoreChanged) boardEvent()        {}
func (ComboTriggered) boardEvent()      {}
func (GoalProgressChanged) boardEvent() {}
func (BoardShuffled) boardEvent()       {}
func (SessionEnded) boardEvent()        {}

// Listener receives engine events in order.
type Listener interface {
	OnEvent(Event)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(Event)

// OnEvent calls f(e).
func (f ListenerFunc) OnEvent(e Event) {
	f(e)
}
