package board

import (
	"fmt"
	"strings"
)

// Grid represents the board as a rectangular grid of cells.
// Cells are stored in row-major order: index = y*W + x.
type Grid struct {
	W     int    // Width of the grid
	H     int    // Height of the grid
	Cells []Cell // Flat array of cells, length W*H
}

// NewGrid creates a grid with all cells empty.
func NewGrid(w, h int) *Grid {
	return &Grid{
		W:     w,
		H:     h,
		Cells: make([]Cell, w*h),
	}
}

// index converts a coordinate to a flat array index.
func (g *Grid) index(c Coord) int {
	if !g.InBounds(c) {
		panic(fmt.Sprintf("board: coordinate %v outside %dx%d grid", c, g.W, g.H))
	}
	return c.Y*g.W + c.X
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.W && c.Y >= 0 && c.Y < g.H
}

// Area returns the number of cells in the grid.
func (g *Grid) Area() int {
	return g.W * g.H
}

// Get returns the cell at the given coordinate.
// Panics if the coordinate is out of bounds.
func (g *Grid) Get(c Coord) Cell {
	return g.Cells[g.index(c)]
}

// Set replaces the cell at the given coordinate.
// Panics if the coordinate is out of bounds.
func (g *Grid) Set(c Coord, cell Cell) {
	g.Cells[g.index(c)] = cell
}

// Place puts a tile into the cell, keeping its jelly layers.
func (g *Grid) Place(c Coord, t Tile) {
	i := g.index(c)
	g.Cells[i].State = CellOccupied
	g.Cells[i].Tile = t
}

// Clear empties the cell, keeping its jelly layers. Holes are left untouched.
func (g *Grid) Clear(c Coord) {
	i := g.index(c)
	if g.Cells[i].State == CellHole {
		return
	}
	g.Cells[i].State = CellEmpty
	g.Cells[i].Tile = Tile{}
}

// Swap exchanges the tiles of two cells. Jelly stays with the cell.
func (g *Grid) Swap(a, b Coord) {
	ia, ib := g.index(a), g.index(b)
	ca, cb := g.Cells[ia], g.Cells[ib]
	g.Cells[ia].State, g.Cells[ib].State = cb.State, ca.State
	g.Cells[ia].Tile, g.Cells[ib].Tile = cb.Tile, ca.Tile
}

// kindAt returns the kind of a matchable tile at c.
func (g *Grid) kindAt(c Coord) (Kind, bool) {
	cell := g.Cells[g.index(c)]
	if cell.State != CellOccupied || !cell.Tile.matchable() {
		return 0, false
	}
	return cell.Tile.Kind, true
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{
		W:     g.W,
		H:     g.H,
		Cells: cells,
	}
}

// Equal returns true if two grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.W != other.W || g.H != other.H {
		return false
	}
	for i, cell := range g.Cells {
		if cell != other.Cells[i] {
			return false
		}
	}
	return true
}

// OccupiedCount returns the number of cells holding a tile.
func (g *Grid) OccupiedCount() int {
	return g.count(func(c Cell) bool { return c.State == CellOccupied })
}

// HoleCount returns the number of permanent holes.
func (g *Grid) HoleCount() int {
	return g.count(func(c Cell) bool { return c.State == CellHole })
}

// JellyCount returns the number of cells still carrying jelly.
func (g *Grid) JellyCount() int {
	return g.count(func(c Cell) bool { return c.Jelly > 0 })
}

// LockedCount returns the number of locked tiles.
func (g *Grid) LockedCount() int {
	return g.count(func(c Cell) bool { return c.State == CellOccupied && c.Tile.Locked })
}

func (g *Grid) count(pred func(Cell) bool) int {
	n := 0
	for _, cell := range g.Cells {
		if pred(cell) {
			n++
		}
	}
	return n
}

// AllCoords returns every coordinate of the grid, ordered by row then column.
func (g *Grid) AllCoords() []Coord {
	coords := make([]Coord, 0, g.W*g.H)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			coords = append(coords, C(x, y))
		}
	}
	return coords
}

// String renders the grid as ASCII rows: kind letters (lowercase when locked),
// '*' for colour bombs, '#' for holes and '.' for empty cells.
func (g *Grid) String() string {
	var sb strings.Builder
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			sb.WriteRune(cellChar(g.Get(C(x, y))))
		}
		if y < g.H-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func cellChar(cell Cell) rune {
	switch cell.State {
	case CellHole:
		return '#'
	case CellEmpty:
		return '.'
	}
	if cell.Tile.Special == SpecialColorBomb {
		return '*'
	}
	ch := cell.Tile.Kind.Char()
	if cell.Tile.Locked {
		ch = ch - 'A' + 'a'
	}
	return ch
}

// ParseLayout builds a grid from ASCII rows using the String notation.
// '?' marks a cell left empty for the generator to fill. Line and area
// specials have no notation and read back as plain tiles.
// Tiles receive sequential IDs starting at 1.
func ParseLayout(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("layout has no rows")
	}
	w := len(rows[0])
	g := NewGrid(w, len(rows))
	id := TileID(0)
	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("layout row %d has width %d, expected %d", y, len(row), w)
		}
		for x, ch := range row {
			c := C(x, y)
			switch {
			case ch == '#':
				g.Set(c, Hole())
			case ch == '.' || ch == '?':
				g.Set(c, Empty())
			case ch == '*':
				id++
				g.Place(c, Tile{ID: id, Special: SpecialColorBomb})
			default:
				locked := ch >= 'a' && ch <= 'z'
				kind, ok := ParseKind(string(ch))
				if !ok {
					return nil, fmt.Errorf("layout cell %v: unknown tile %q", c, ch)
				}
				id++
				g.Place(c, Tile{ID: id, Kind: kind, Locked: locked})
			}
		}
	}
	return g, nil
}
