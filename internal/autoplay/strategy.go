// Package autoplay plays level sessions without a human, for simulation
// and stress testing.
package autoplay

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/match3/internal/board"
)

// Strategy picks the next move for an engine.
type Strategy interface {
	Name() string
	// Choose returns a legal move, or false when there is none.
	Choose(e *board.Engine) (board.Move, bool)
}

// Strategy names accepted by ParseStrategy.
const (
	StrategyFirst  = "first"
	StrategyRandom = "random"
	StrategyGreedy = "greedy"
)

// Names lists the available strategies.
func Names() []string {
	return []string{StrategyFirst, StrategyRandom, StrategyGreedy}
}

// ParseStrategy returns the strategy with the given name. The seed drives
// the random strategy.
func ParseStrategy(name string, seed int64) (Strategy, error) {
	switch name {
	case StrategyFirst, "":
		return First{}, nil
	case StrategyRandom:
		return NewRandom(seed), nil
	case StrategyGreedy:
		return Greedy{}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (want first, random or greedy)", name)
	}
}

// First plays the first legal move in row-major order.
type First struct{}

func (First) Name() string { return StrategyFirst }

func (First) Choose(e *board.Engine) (board.Move, bool) {
	moves := e.LegalMoves()
	if len(moves) == 0 {
		return board.Move{}, false
	}
	return moves[0], true
}

// Random plays a uniformly chosen legal move.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a seeded random strategy.
func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (*Random) Name() string { return StrategyRandom }

func (r *Random) Choose(e *board.Engine) (board.Move, bool) {
	moves := e.LegalMoves()
	if len(moves) == 0 {
		return board.Move{}, false
	}
	return moves[r.rng.Intn(len(moves))], true
}

// Greedy plays the move with the largest immediate effect. Ties go to the
// earliest move in row-major order.
type Greedy struct{}

func (Greedy) Name() string { return StrategyGreedy }

func (Greedy) Choose(e *board.Engine) (board.Move, bool) {
	var best board.Move
	bestValue := -1
	for _, m := range e.LegalMoves() {
		p, ok := e.Preview(m)
		if !ok {
			continue
		}
		if v := value(p); v > bestValue {
			best, bestValue = m, v
		}
	}
	return best, bestValue >= 0
}

// value weighs removed tiles, with bonuses for specials and jelly.
func value(p board.Preview) int {
	return p.Removed + 2*p.Created + p.Jelly
}
