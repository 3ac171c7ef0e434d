package board

import "strings"

// Kind is the colour of a tile.
type Kind uint8

const (
	KindRed Kind = iota
	KindGreen
	KindBlue
	KindYellow
	KindPurple
	KindOrange
	KindCyan
	KindCount // Sentinel value for iteration
)

// MinColors and MaxColors bound the size of a level's active colour set.
const (
	MinColors = 3
	MaxColors = int(KindCount)
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	switch k {
	case KindRed:
		return "red"
	case KindGreen:
		return "green"
	case KindBlue:
		return "blue"
	case KindYellow:
		return "yellow"
	case KindPurple:
		return "purple"
	case KindOrange:
		return "orange"
	case KindCyan:
		return "cyan"
	default:
		return "unknown"
	}
}

// Char returns a single character representation of the kind for ASCII rendering.
func (k Kind) Char() rune {
	switch k {
	case KindRed:
		return 'R'
	case KindGreen:
		return 'G'
	case KindBlue:
		return 'B'
	case KindYellow:
		return 'Y'
	case KindPurple:
		return 'P'
	case KindOrange:
		return 'O'
	case KindCyan:
		return 'C'
	default:
		return '?'
	}
}

// ParseKind converts a colour name or its single-letter form to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(s) {
	case "red", "r":
		return KindRed, true
	case "green", "g":
		return KindGreen, true
	case "blue", "b":
		return KindBlue, true
	case "yellow", "y":
		return KindYellow, true
	case "purple", "p":
		return KindPurple, true
	case "orange", "o":
		return KindOrange, true
	case "cyan", "c":
		return KindCyan, true
	default:
		return KindRed, false
	}
}

// ActiveKinds returns the first n kinds, the active colour set of a level.
func ActiveKinds(n int) []Kind {
	if n > MaxColors {
		n = MaxColors
	}
	kinds := make([]Kind, 0, n)
	for k := Kind(0); int(k) < n; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Special is the category of a special tile.
type Special uint8

const (
	SpecialNone Special = iota
	SpecialRowClear
	SpecialColumnClear
	SpecialColorBomb
	SpecialAreaBomb
)

func (s Special) String() string {
	switch s {
	case SpecialNone:
		return "none"
	case SpecialRowClear:
		return "row-clear"
	case SpecialColumnClear:
		return "column-clear"
	case SpecialColorBomb:
		return "color-bomb"
	case SpecialAreaBomb:
		return "area-bomb"
	default:
		return "unknown"
	}
}

// TileID identifies a tile for event correlation. Zero means unassigned.
type TileID uint32

// Tile is a piece occupying a cell.
type Tile struct {
	ID      TileID
	Kind    Kind
	Special Special
	Locked  bool // Cannot be swapped; the lock is cleared with the tile
}

// IsSpecial reports whether the tile carries a special category.
func (t Tile) IsSpecial() bool {
	return t.Special != SpecialNone
}

// matchable reports whether the tile takes part in runs.
// Colour bombs have no colour of their own for matching purposes.
func (t Tile) matchable() bool {
	return t.Special != SpecialColorBomb
}

// CellState is the occupancy of a cell.
type CellState uint8

const (
	CellEmpty CellState = iota
	CellOccupied
	CellHole // Permanent; never refilled, matched or swapped
)

// Cell represents a single cell in the grid.
type Cell struct {
	State CellState
	Tile  Tile  // Valid only when State is CellOccupied
	Jelly uint8 // Jelly layers under the tile; consumed when the tile is removed
}

// Empty returns an empty cell.
func Empty() Cell {
	return Cell{State: CellEmpty}
}

// Occupied returns a cell holding the given tile.
func Occupied(t Tile) Cell {
	return Cell{State: CellOccupied, Tile: t}
}

// Hole returns a permanent hole.
func Hole() Cell {
	return Cell{State: CellHole}
}

// IsOccupied reports whether the cell holds a tile.
func (c Cell) IsOccupied() bool {
	return c.State == CellOccupied
}

// IsHole reports whether the cell is a permanent hole.
func (c Cell) IsHole() bool {
	return c.State == CellHole
}

// IsEmpty reports whether the cell is waiting for a tile.
func (c Cell) IsEmpty() bool {
	return c.State == CellEmpty
}

// swappable reports whether the player may move the cell's tile.
func (c Cell) swappable() bool {
	return c.State == CellOccupied && !c.Tile.Locked
}
