package game

import "time"

// Energy is a move gate that spends one unit per move and regains
// units over time, up to Max.
type Energy struct {
	Max    int
	Refill time.Duration // Time to regain one unit; zero disables regeneration

	left    int
	pending time.Duration
}

// NewEnergy creates a full energy gate.
func NewEnergy(maxUnits int, refill time.Duration) *Energy {
	return &Energy{Max: maxUnits, Refill: refill, left: maxUnits}
}

// Left returns the units available.
func (e *Energy) Left() int {
	return e.left
}

// MoveAvailable implements board.MoveGate.
func (e *Energy) MoveAvailable() bool {
	return e.left > 0
}

// ConsumeMove implements board.MoveGate.
func (e *Energy) ConsumeMove() {
	if e.left > 0 {
		e.left--
	}
}

// Advance regains units for the elapsed time.
func (e *Energy) Advance(d time.Duration) {
	if e.Refill <= 0 || e.left >= e.Max {
		e.pending = 0
		return
	}
	e.pending += d
	for e.pending >= e.Refill && e.left < e.Max {
		e.pending -= e.Refill
		e.left++
	}
}
