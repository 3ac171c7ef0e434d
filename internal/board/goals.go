package board

import "fmt"

// Goal kinds that are not colour names.
const (
	GoalClearJelly = "clear_jelly"
	GoalClearLock  = "clear_lock"
	GoalScore      = "score"
	GoalSpecial    = "special"
)

// GoalSpec is a level objective: a goal kind and its target.
// Kind is a colour name (collect that many tiles) or one of the Goal* constants.
type GoalSpec struct {
	Kind   string
	Target int
}

// GoalStatus is the progress of one goal.
type GoalStatus struct {
	ID      string `json:"id"`
	Target  int    `json:"target"`
	Current int    `json:"current"`
}

// Met reports whether the goal has reached its target.
func (g GoalStatus) Met() bool {
	return g.Current >= g.Target
}

// Remaining returns how much is left to reach the target.
func (g GoalStatus) Remaining() int {
	if g.Current >= g.Target {
		return 0
	}
	return g.Target - g.Current
}

func (g GoalStatus) String() string {
	return fmt.Sprintf("%s %d/%d", g.ID, g.Current, g.Target)
}

type goal struct {
	GoalStatus
	collect Kind
	isColor bool
	changed bool
}

// goalTracker owns goal progress. Progress is capped at the target.
type goalTracker struct {
	goals []goal
}

func newGoalTracker(specs []GoalSpec) *goalTracker {
	t := &goalTracker{goals: make([]goal, 0, len(specs))}
	for _, s := range specs {
		g := goal{GoalStatus: GoalStatus{ID: s.Kind, Target: s.Target}}
		if k, ok := ParseKind(s.Kind); ok {
			g.collect, g.isColor = k, true
			g.ID = k.String()
		}
		t.goals = append(t.goals, g)
	}
	return t
}

func (t *goalTracker) add(match func(g *goal) bool, n int) {
	for i := range t.goals {
		g := &t.goals[i]
		if g.Met() || !match(g) {
			continue
		}
		g.Current += n
		if g.Current > g.Target {
			g.Current = g.Target
		}
		g.changed = true
	}
}

// recordWave consumes a wave's removals, jelly hits and creations.
func (t *goalTracker) recordWave(w Wave) {
	for _, r := range w.Removed {
		kind, locked := r.Tile.Kind, r.Tile.Locked
		t.add(func(g *goal) bool { return g.isColor && g.collect == kind }, 1)
		if locked {
			t.add(func(g *goal) bool { return g.ID == GoalClearLock }, 1)
		}
	}
	for _, h := range w.JellyHits {
		if h.Remaining == 0 {
			t.add(func(g *goal) bool { return g.ID == GoalClearJelly }, 1)
		}
	}
	if n := len(w.Created); n > 0 {
		t.add(func(g *goal) bool { return g.ID == GoalSpecial }, n)
	}
}

// recordScore sets score goals to the running total.
func (t *goalTracker) recordScore(total int) {
	for i := range t.goals {
		g := &t.goals[i]
		if g.ID != GoalScore || g.Met() {
			continue
		}
		cur := min(total, g.Target)
		if cur != g.Current {
			g.Current = cur
			g.changed = true
		}
	}
}

// drainChanged returns goals updated since the last call.
func (t *goalTracker) drainChanged() []GoalStatus {
	var out []GoalStatus
	for i := range t.goals {
		if t.goals[i].changed {
			out = append(out, t.goals[i].GoalStatus)
			t.goals[i].changed = false
		}
	}
	return out
}

// complete reports whether every goal is met.
func (t *goalTracker) complete() bool {
	for _, g := range t.goals {
		if !g.Met() {
			return false
		}
	}
	return len(t.goals) > 0
}

func (t *goalTracker) progress() []GoalStatus {
	out := make([]GoalStatus, len(t.goals))
	for i, g := range t.goals {
		out[i] = g.GoalStatus
	}
	return out
}
