package board

// Orientation is the direction of a run.
type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Match is one contiguous run of same-kind tiles.
type Match struct {
	Kind        Kind
	Orientation Orientation
	Cells       []Coord // Ordered left to right or top to bottom
	Specials    int     // Special tiles taking part in the run
}

// Len returns the run length.
func (m Match) Len() int {
	return len(m.Cells)
}

// Contains reports whether c is part of the run.
func (m Match) Contains(c Coord) bool {
	for _, mc := range m.Cells {
		if mc == c {
			return true
		}
	}
	return false
}

// Midpoint returns the middle cell of the run (the later one for even lengths).
func (m Match) Midpoint() Coord {
	return m.Cells[len(m.Cells)/2]
}

// FindAllMatches returns every run of at least minLen same-kind tiles.
// Rows are scanned left to right first, then columns top to bottom.
// Runs that share a cell are reported separately.
func FindAllMatches(g *Grid, minLen int) []Match {
	var matches []Match
	for y := 0; y < g.H; y++ {
		matches = scanLine(g, C(0, y), 1, 0, g.W, minLen, Horizontal, matches)
	}
	for x := 0; x < g.W; x++ {
		matches = scanLine(g, C(x, 0), 0, 1, g.H, minLen, Vertical, matches)
	}
	return matches
}

// HasMatch reports whether the grid contains at least one run.
func HasMatch(g *Grid, minLen int) bool {
	return len(FindAllMatches(g, minLen)) > 0
}

func scanLine(g *Grid, start Coord, dx, dy, n, minLen int, o Orientation, out []Match) []Match {
	at := func(i int) Coord { return start.Add(dx*i, dy*i) }

	runStart := 0
	for i := 1; i <= n; i++ {
		if i < n && sameKind(g, at(runStart), at(i)) {
			continue
		}
		if length := i - runStart; length >= minLen {
			if kind, ok := g.kindAt(at(runStart)); ok {
				m := Match{Kind: kind, Orientation: o, Cells: make([]Coord, length)}
				for j := 0; j < length; j++ {
					c := at(runStart + j)
					m.Cells[j] = c
					if g.Get(c).Tile.IsSpecial() {
						m.Specials++
					}
				}
				out = append(out, m)
			}
		}
		runStart = i
	}
	return out
}

func sameKind(g *Grid, a, b Coord) bool {
	ka, okA := g.kindAt(a)
	kb, okB := g.kindAt(b)
	return okA && okB && ka == kb
}
