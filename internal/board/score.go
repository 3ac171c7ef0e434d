package board

import "github.com/shopspring/decimal"

// DefaultBasePoints is the score of one matched tile at generation 1.
const DefaultBasePoints = 100

// scorer accumulates points per wave.
type scorer struct {
	base  int64
	combo []decimal.Decimal
	total int
}

func newScorer(base int, table []float64) *scorer {
	s := &scorer{base: int64(base)}
	for _, m := range table {
		s.combo = append(s.combo, decimal.NewFromFloat(m))
	}
	if len(s.combo) == 0 {
		s.combo = []decimal.Decimal{decimal.NewFromInt(1)}
	}
	return s
}

// multiplier returns the combo multiplier for a generation.
// The last table entry applies to every generation beyond the table.
func (s *scorer) multiplier(gen int) decimal.Decimal {
	i := gen - 1
	if i >= len(s.combo) {
		i = len(s.combo) - 1
	}
	if i < 0 {
		i = 0
	}
	return s.combo[i]
}

// scoreWave adds a wave's points to the total and returns the delta.
// Each run scores its length times base times (1 + specials in the run);
// tiles cleared only by an activation score base each.
func (s *scorer) scoreWave(w Wave) int {
	raw := int64(0)
	for _, m := range w.Matches {
		raw += int64(m.Len()) * s.base * int64(1+m.Specials)
	}
	for _, r := range w.Removed {
		if r.Cause == CauseActivation {
			raw += s.base
		}
	}
	delta := int(decimal.NewFromInt(raw).Mul(s.multiplier(w.Generation)).IntPart())
	s.total += delta
	return delta
}
