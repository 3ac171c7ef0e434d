package board

import (
	"fmt"
	"sort"
)

// Cause explains why a tile was removed.
type Cause uint8

const (
	CauseMatch      Cause = iota // Part of a run
	CauseActivation              // Hit by a special tile
)

func (c Cause) String() string {
	if c == CauseActivation {
		return "activation"
	}
	return "match"
}

// Removal is one tile cleared during a wave.
type Removal struct {
	At    Coord
	Tile  Tile
	Cause Cause
}

// JellyHit is one jelly layer consumed under a removed tile.
type JellyHit struct {
	At        Coord
	Remaining int
}

// Creation is a special tile produced by a wave.
type Creation struct {
	At   Coord
	Tile Tile
}

// Wave is one generation of cascade resolution, in the order it happened:
// removal, special creation, gravity, refill.
type Wave struct {
	Generation int
	Matches    []Match
	Removed    []Removal
	JellyHits  []JellyHit
	Created    []Creation
	Drops      []Drop
	Spawns     []Spawn
}

// trigger is what the player's swap set in motion.
type trigger struct {
	swapped     []Coord // Destination first
	activations []activation
}

// resolver runs waves until the grid is stable.
type resolver struct {
	grid    *Grid
	minLen  int
	kinds   []Kind
	rng     Rand
	newTile func(Kind) Tile
}

// maxWaves bounds a single resolution. Each wave removes at least one tile,
// so a legitimate cascade never gets close.
func (r *resolver) maxWaves() int {
	return r.grid.Area() * 4
}

func (r *resolver) resolve(trig trigger) []Wave {
	var waves []Wave
	for gen := 1; ; gen++ {
		if gen > r.maxWaves() {
			panic(fmt.Sprintf("board: cascade exceeded %d waves", r.maxWaves()))
		}
		matches := FindAllMatches(r.grid, r.minLen)
		var forced []activation
		var swapped []Coord
		if gen == 1 {
			forced = trig.activations
			swapped = trig.swapped
		}
		if len(matches) == 0 && len(forced) == 0 {
			return waves
		}
		waves = append(waves, r.step(gen, matches, forced, swapped))
	}
}

// step resolves one generation in place.
func (r *resolver) step(gen int, matches []Match, forced []activation, swapped []Coord) Wave {
	w := Wave{Generation: gen, Matches: matches}

	causes := make(map[Coord]Cause)
	for _, m := range matches {
		for _, c := range m.Cells {
			causes[c] = CauseMatch
		}
	}

	plan := planSpecials(r.grid, matches, swapped)
	designated := make(map[Coord]bool, len(plan))
	for _, p := range plan {
		designated[p.At] = true
		delete(causes, p.At)
	}

	r.expand(causes, designated, forced)

	order := make([]Coord, 0, len(causes))
	for c := range causes {
		order = append(order, c)
	}
	sort.Slice(order, func(i, j int) bool { return order[i].less(order[j]) })

	for _, c := range order {
		cell := r.grid.Get(c)
		w.Removed = append(w.Removed, Removal{At: c, Tile: cell.Tile, Cause: causes[c]})
		if cell.Jelly > 0 {
			cell.Jelly--
			r.grid.Set(c, cell)
			w.JellyHits = append(w.JellyHits, JellyHit{At: c, Remaining: int(cell.Jelly)})
		}
		r.grid.Clear(c)
	}

	for _, p := range plan {
		t := r.grid.Get(p.At).Tile
		t.Special = p.Special
		r.grid.Place(p.At, t)
		w.Created = append(w.Created, Creation{At: p.At, Tile: t})
	}

	w.Drops = applyGravity(r.grid)
	w.Spawns = refill(r.grid, r.rng, r.kinds, r.newTile)
	return w
}

// expand grows the removal set with every special tile it reaches, chaining
// until no new special fires. Designated cells survive the wave.
func (r *resolver) expand(causes map[Coord]Cause, designated map[Coord]bool, forced []activation) {
	fired := make(map[Coord]bool)
	var queue []Coord
	acts := make(map[Coord]*activation, len(forced))

	for i := range forced {
		f := &forced[i]
		acts[f.At] = f
		if _, ok := causes[f.At]; !ok {
			causes[f.At] = CauseActivation
		}
		queue = append(queue, f.At)
	}
	for c := range causes {
		if r.grid.Get(c).Tile.IsSpecial() {
			queue = append(queue, c)
		}
	}
	sort.Slice(queue, func(i, j int) bool { return queue[i].less(queue[j]) })

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if fired[c] {
			continue
		}
		fired[c] = true
		t := r.grid.Get(c).Tile
		for _, hit := range blast(r.grid, c, t, acts[c]) {
			if designated[hit] {
				continue
			}
			if _, ok := causes[hit]; !ok {
				causes[hit] = CauseActivation
			}
			if !fired[hit] && r.grid.Get(hit).Tile.IsSpecial() {
				queue = append(queue, hit)
			}
		}
	}
}
