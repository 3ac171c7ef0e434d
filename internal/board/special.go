package board

// creation is a planned in-place upgrade of a matched tile.
type creation struct {
	At      Coord
	Special Special
}

// activation forces a special tile to fire regardless of matches.
type activation struct {
	At     Coord
	Target Kind // Colour-bomb target kind
	All    bool // Colour bomb swapped with a colour bomb clears every tile
}

// planSpecials applies the creation rules to a wave's matches.
// swapped lists the cells moved by the player, destination first; it is
// empty for cascade generations.
func planSpecials(g *Grid, matches []Match, swapped []Coord) []creation {
	var plan []creation
	taken := make(map[Coord]bool)
	consumed := make([]bool, len(matches))

	// L and T shapes: a horizontal and a vertical run of one kind sharing a cell.
	for i, h := range matches {
		if h.Orientation != Horizontal || consumed[i] {
			continue
		}
		for j, v := range matches {
			if v.Orientation != Vertical || consumed[j] || v.Kind != h.Kind {
				continue
			}
			shared, ok := sharedCell(h, v)
			if !ok || !designatable(g, shared, taken) {
				continue
			}
			special := SpecialAreaBomb
			if h.Len() >= 5 || v.Len() >= 5 {
				special = SpecialColorBomb
			}
			plan = append(plan, creation{At: shared, Special: special})
			taken[shared] = true
			consumed[i], consumed[j] = true, true
			break
		}
	}

	for i, m := range matches {
		if consumed[i] || m.Len() < 4 {
			continue
		}
		special := SpecialColorBomb
		if m.Len() == 4 {
			special = SpecialRowClear
			if m.Orientation == Vertical {
				special = SpecialColumnClear
			}
		}
		at, ok := designate(g, m, swapped, taken)
		if !ok {
			continue
		}
		plan = append(plan, creation{At: at, Special: special})
		taken[at] = true
	}
	return plan
}

// designate picks the cell of m that becomes the special tile: the swapped
// cell when the player's move formed the run, otherwise the midpoint.
func designate(g *Grid, m Match, swapped []Coord, taken map[Coord]bool) (Coord, bool) {
	for _, c := range swapped {
		if m.Contains(c) && designatable(g, c, taken) {
			return c, true
		}
	}
	if mid := m.Midpoint(); designatable(g, mid, taken) {
		return mid, true
	}
	for _, c := range m.Cells {
		if designatable(g, c, taken) {
			return c, true
		}
	}
	return Coord{}, false
}

func designatable(g *Grid, c Coord, taken map[Coord]bool) bool {
	if taken[c] {
		return false
	}
	cell := g.Get(c)
	return cell.State == CellOccupied && !cell.Tile.IsSpecial() && !cell.Tile.Locked
}

func sharedCell(a, b Match) (Coord, bool) {
	for _, c := range a.Cells {
		if b.Contains(c) {
			return c, true
		}
	}
	return Coord{}, false
}

// blast returns the cells hit when the special tile at c fires.
func blast(g *Grid, c Coord, t Tile, act *activation) []Coord {
	var hit []Coord
	add := func(p Coord) {
		if g.InBounds(p) && g.Get(p).State == CellOccupied {
			hit = append(hit, p)
		}
	}

	switch t.Special {
	case SpecialRowClear:
		for x := 0; x < g.W; x++ {
			add(C(x, c.Y))
		}
	case SpecialColumnClear:
		for y := 0; y < g.H; y++ {
			add(C(c.X, y))
		}
	case SpecialAreaBomb:
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				add(c.Add(dx, dy))
			}
		}
	case SpecialColorBomb:
		target := t.Kind
		all := false
		if act != nil {
			target, all = act.Target, act.All
		}
		add(c)
		for _, p := range g.AllCoords() {
			cell := g.Get(p)
			if p == c || cell.State != CellOccupied {
				continue
			}
			if all || cell.Tile.Kind == target {
				hit = append(hit, p)
			}
		}
	}
	return hit
}

// swapActivations reports the activations triggered by swapping ta (moving
// to b) with tb (moving to a). ok is false when the swap is an ordinary one.
func swapActivations(a, b Coord, ta, tb Tile) ([]activation, bool) {
	aBomb := ta.Special == SpecialColorBomb
	bBomb := tb.Special == SpecialColorBomb
	switch {
	case aBomb && bBomb:
		return []activation{{At: b, All: true}, {At: a, All: true}}, true
	case aBomb:
		return []activation{{At: b, Target: tb.Kind}}, true
	case bBomb:
		return []activation{{At: a, Target: ta.Kind}}, true
	case ta.IsSpecial() && tb.IsSpecial():
		return []activation{{At: b}, {At: a}}, true
	}
	return nil, false
}
