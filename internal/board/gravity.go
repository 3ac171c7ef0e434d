package board

// Drop records a tile falling to a lower cell.
type Drop struct {
	ID   TileID
	From Coord
	To   Coord
}

// Spawn records a new tile entering an empty cell.
type Spawn struct {
	At   Coord
	Tile Tile
}

// Rand is the random source used for board generation and refill.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// applyGravity moves tiles down within each column, preserving their order.
// Tiles fall through holes to the next non-hole cell below.
func applyGravity(g *Grid) []Drop {
	var drops []Drop
	for x := 0; x < g.W; x++ {
		write := g.H - 1
		for y := g.H - 1; y >= 0; y-- {
			c := C(x, y)
			cell := g.Get(c)
			if cell.State != CellOccupied {
				continue
			}
			for g.Get(C(x, write)).State == CellHole {
				write--
			}
			if write != y {
				to := C(x, write)
				g.Place(to, cell.Tile)
				g.Clear(c)
				drops = append(drops, Drop{ID: cell.Tile.ID, From: c, To: to})
			}
			write--
		}
	}
	return drops
}

// refill fills every empty cell with a tile of a uniformly random active kind.
// Columns are filled left to right, each from the top down.
func refill(g *Grid, rng Rand, kinds []Kind, newTile func(Kind) Tile) []Spawn {
	var spawns []Spawn
	for x := 0; x < g.W; x++ {
		for y := 0; y < g.H; y++ {
			c := C(x, y)
			if g.Get(c).State != CellEmpty {
				continue
			}
			t := newTile(kinds[rng.Intn(len(kinds))])
			g.Place(c, t)
			spawns = append(spawns, Spawn{At: c, Tile: t})
		}
	}
	return spawns
}

// fillStable fills every empty cell without creating a run of minLen,
// in row-major order. Needs at least three kinds.
func fillStable(g *Grid, rng Rand, kinds []Kind, minLen int, newTile func(Kind) Tile) {
	for _, c := range g.AllCoords() {
		if g.Get(c).State != CellEmpty {
			continue
		}
		allowed := make([]Kind, 0, len(kinds))
		for _, k := range kinds {
			if !completesRun(g, c, k, minLen) {
				allowed = append(allowed, k)
			}
		}
		if len(allowed) == 0 {
			allowed = kinds
		}
		g.Place(c, newTile(allowed[rng.Intn(len(allowed))]))
	}
}

// completesRun reports whether placing k at c would form a run of minLen
// with the tiles already on the board.
func completesRun(g *Grid, c Coord, k Kind, minLen int) bool {
	for _, dir := range [2]Coord{{X: 1}, {Y: 1}} {
		n := 1 + sameKindRun(g, c, -dir.X, -dir.Y, k) + sameKindRun(g, c, dir.X, dir.Y, k)
		if n >= minLen {
			return true
		}
	}
	return false
}

func sameKindRun(g *Grid, c Coord, dx, dy int, k Kind) int {
	n := 0
	for p := c.Add(dx, dy); g.InBounds(p); p = p.Add(dx, dy) {
		got, ok := g.kindAt(p)
		if !ok || got != k {
			break
		}
		n++
	}
	return n
}
