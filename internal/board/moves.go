package board

// maxShuffleAttempts bounds rearrangement before the board is regenerated.
const maxShuffleAttempts = 100

// FindMoves returns every legal swap on the grid, scanning row-major and
// trying the right and lower neighbour of each cell.
func FindMoves(g *Grid, minLen int) []Move {
	var moves []Move
	for _, a := range g.AllCoords() {
		for _, b := range [2]Coord{a.Add(1, 0), a.Add(0, 1)} {
			if !g.InBounds(b) {
				continue
			}
			if _, reason := checkSwap(g, a, b, minLen); reason == RejectNone {
				moves = append(moves, Move{A: a, B: b})
			}
		}
	}
	return moves
}

// HasMove reports whether at least one legal swap exists.
func HasMove(g *Grid, minLen int) bool {
	for _, a := range g.AllCoords() {
		for _, b := range [2]Coord{a.Add(1, 0), a.Add(0, 1)} {
			if !g.InBounds(b) {
				continue
			}
			if _, reason := checkSwap(g, a, b, minLen); reason == RejectNone {
				return true
			}
		}
	}
	return false
}

// shuffle rearranges the swappable tiles of a deadlocked grid until it is
// stable and has a legal move. Locked tiles and holes stay in place.
// After maxShuffleAttempts the swappable cells are refilled with new kinds.
// ok is false when no arrangement with a legal move was found.
func shuffle(g *Grid, rng Rand, kinds []Kind, minLen int, newTile func(Kind) Tile) (attempts int, regenerated, ok bool) {
	var cells []Coord
	var tiles []Tile
	for _, c := range g.AllCoords() {
		if cell := g.Get(c); cell.swappable() {
			cells = append(cells, c)
			tiles = append(tiles, cell.Tile)
		}
	}
	if len(cells) < 2 {
		return 0, false, false
	}

	for attempts < maxShuffleAttempts {
		attempts++
		for i := len(tiles) - 1; i > 0; i-- {
			j := rng.Intn(i + 1)
			tiles[i], tiles[j] = tiles[j], tiles[i]
		}
		for i, c := range cells {
			g.Place(c, tiles[i])
		}
		if !HasMatch(g, minLen) && HasMove(g, minLen) {
			return attempts, false, true
		}
	}

	for attempts < 2*maxShuffleAttempts {
		attempts++
		for _, c := range cells {
			g.Clear(c)
		}
		fillStable(g, rng, kinds, minLen, newTile)
		if !HasMatch(g, minLen) && HasMove(g, minLen) {
			return attempts, true, true
		}
	}
	return attempts, true, false
}

// Preview is the immediate effect of a move, before any cascade.
type Preview struct {
	Move    Move
	Removed int
	Created int
	Jelly   int
}

type zeroRand struct{}

func (zeroRand) Intn(int) int { return 0 }

// PreviewMove resolves the first wave of m on a copy of g. ok is false
// when the move would be rejected.
func PreviewMove(g *Grid, m Move, minLen int) (p Preview, ok bool) {
	if !g.InBounds(m.A) || !g.InBounds(m.B) {
		return Preview{}, false
	}
	trig, reason := checkSwap(g, m.A, m.B, minLen)
	if reason != RejectNone {
		return Preview{}, false
	}

	trial := g.Clone()
	trial.Swap(m.A, m.B)
	r := &resolver{
		grid:    trial,
		minLen:  minLen,
		kinds:   []Kind{KindRed},
		rng:     zeroRand{},
		newTile: func(k Kind) Tile { return Tile{Kind: k} },
	}
	w := r.step(1, FindAllMatches(trial, minLen), trig.activations, trig.swapped)
	return Preview{
		Move:    m,
		Removed: len(w.Removed),
		Created: len(w.Created),
		Jelly:   len(w.JellyHits),
	}, true
}
