package board

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is returned when a swap names a coordinate off the board.
var ErrOutOfBounds = errors.New("coordinate out of bounds")

// RejectReason explains why a swap was refused.
type RejectReason uint8

const (
	RejectNone RejectReason = iota
	RejectInvalidAdjacency
	RejectBlocked
	RejectNoMatch
	RejectSessionOver
	RejectNoEnergy
)

func (r RejectReason) String() string {
	switch r {
	case RejectNone:
		return "none"
	case RejectInvalidAdjacency:
		return "invalid adjacency"
	case RejectBlocked:
		return "blocked"
	case RejectNoMatch:
		return "no match"
	case RejectSessionOver:
		return "session over"
	case RejectNoEnergy:
		return "no energy"
	default:
		return "unknown"
	}
}

// SwapOutcome is the result of one swap request. An accepted outcome carries
// the ordered waves and events of the whole turn.
type SwapOutcome struct {
	Accepted   bool
	Reason     RejectReason
	Waves      []Wave
	Events     []Event
	ScoreDelta int
}

func (o SwapOutcome) String() string {
	if !o.Accepted {
		return fmt.Sprintf("rejected (%s)", o.Reason)
	}
	return fmt.Sprintf("accepted: %d waves, +%d", len(o.Waves), o.ScoreDelta)
}

func rejected(r RejectReason) SwapOutcome {
	return SwapOutcome{Reason: r}
}

// Move is a swap of two adjacent cells.
type Move struct {
	A, B Coord
}

func (m Move) String() string {
	return fmt.Sprintf("%v<->%v", m.A, m.B)
}

// checkSwap decides whether swapping a and b is legal without touching g.
// Both coordinates must be in bounds.
func checkSwap(g *Grid, a, b Coord, minLen int) (trigger, RejectReason) {
	if a == b || !IsAdjacent(a, b) {
		return trigger{}, RejectInvalidAdjacency
	}
	ca, cb := g.Get(a), g.Get(b)
	if !ca.swappable() || !cb.swappable() {
		return trigger{}, RejectBlocked
	}

	trig := trigger{swapped: []Coord{b, a}}
	if acts, ok := swapActivations(a, b, ca.Tile, cb.Tile); ok {
		trig.activations = acts
		return trig, RejectNone
	}

	// Only runs through a or b can be new.
	trial := g.Clone()
	trial.Swap(a, b)
	if !matchThrough(trial, a, minLen) && !matchThrough(trial, b, minLen) {
		return trigger{}, RejectNoMatch
	}
	return trig, RejectNone
}

// matchThrough reports whether a run of minLen passes through c.
func matchThrough(g *Grid, c Coord, minLen int) bool {
	k, ok := g.kindAt(c)
	if !ok {
		return false
	}
	return completesRun(g, c, k, minLen)
}
