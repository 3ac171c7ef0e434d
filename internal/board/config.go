package board

import (
	"fmt"
	"time"
)

// Board size limits.
const (
	MinSize = 3
	MaxSize = 16
)

// Config is everything the engine needs to run one level attempt.
type Config struct {
	Width     int
	Height    int
	Colors    int // Size of the active colour set, MinColors..MaxColors
	MinMatch  int // Defaults to 3
	MoveLimit int // Zero means no move limit
	TimeLimit time.Duration
	Goals     []GoalSpec
	Holes     []Coord
	Jelly     []Coord // Repeating a coordinate stacks another layer
	Locked    []Coord
	Layout    []string // Optional fixed starting board, see ParseLayout

	ComboTable []float64 // Multiplier per cascade generation; defaults to [1.0]
	BasePoints int       // Defaults to DefaultBasePoints

	// DisableReshuffle leaves deadlocked boards as they are instead of
	// rearranging them.
	DisableReshuffle bool
}

// ConfigError describes an invalid engine configuration.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("board: invalid %s: %s", e.Field, e.Message)
}

func configErr(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// withDefaults fills zero-valued tuning fields.
func (c Config) withDefaults() Config {
	if c.MinMatch == 0 {
		c.MinMatch = 3
	}
	if c.BasePoints == 0 {
		c.BasePoints = DefaultBasePoints
	}
	if len(c.ComboTable) == 0 {
		c.ComboTable = []float64{1.0}
	}
	if c.Width == 0 && c.Height == 0 && len(c.Layout) > 0 {
		c.Height = len(c.Layout)
		c.Width = len(c.Layout[0])
	}
	return c
}

// Validate checks the configuration after defaults are applied.
func (c Config) Validate() error {
	c = c.withDefaults()

	if c.Width < MinSize || c.Width > MaxSize {
		return configErr("width", "%d outside %d..%d", c.Width, MinSize, MaxSize)
	}
	if c.Height < MinSize || c.Height > MaxSize {
		return configErr("height", "%d outside %d..%d", c.Height, MinSize, MaxSize)
	}
	if c.Colors < MinColors || c.Colors > MaxColors {
		return configErr("colors", "%d outside %d..%d", c.Colors, MinColors, MaxColors)
	}
	if c.MinMatch < 3 || c.MinMatch > max(c.Width, c.Height) {
		return configErr("min_match", "%d must be at least 3 and fit the board", c.MinMatch)
	}
	if c.MoveLimit < 0 {
		return configErr("moves", "must not be negative")
	}
	if c.TimeLimit < 0 {
		return configErr("time_limit", "must not be negative")
	}
	if c.MoveLimit == 0 && c.TimeLimit == 0 {
		return configErr("moves", "a move limit or a time limit is required")
	}
	if c.BasePoints < 0 {
		return configErr("base_points", "must not be negative")
	}
	for i, m := range c.ComboTable {
		if m <= 0 {
			return configErr("combo", "entry %d is %v, must be positive", i, m)
		}
	}

	if len(c.Goals) == 0 {
		return configErr("goals", "at least one goal is required")
	}
	seen := make(map[string]bool)
	for _, g := range c.Goals {
		id, err := goalID(g.Kind, c.Colors)
		if err != nil {
			return err
		}
		if seen[id] {
			return configErr("goals", "duplicate goal %q", id)
		}
		seen[id] = true
		if g.Target <= 0 {
			return configErr("goals", "goal %q target must be positive", id)
		}
	}

	g := NewGrid(c.Width, c.Height)
	holes := make(map[Coord]bool)
	if len(c.Layout) > 0 {
		lg, err := c.validateLayout()
		if err != nil {
			return err
		}
		for _, h := range lg.AllCoords() {
			if lg.Get(h).State == CellHole {
				holes[h] = true
			}
		}
	}
	for _, h := range c.Holes {
		if !g.InBounds(h) {
			return configErr("holes", "%v out of bounds", h)
		}
		holes[h] = true
	}
	if len(holes) == g.Area() {
		return configErr("holes", "board has no playable cells")
	}
	for _, j := range c.Jelly {
		if !g.InBounds(j) || holes[j] {
			return configErr("jelly", "%v is out of bounds or a hole", j)
		}
	}
	for _, l := range c.Locked {
		if !g.InBounds(l) || holes[l] {
			return configErr("locked", "%v is out of bounds or a hole", l)
		}
	}
	return nil
}

// validateLayout parses the fixed layout and checks it against the board.
func (c Config) validateLayout() (*Grid, error) {
	lg, err := ParseLayout(c.Layout)
	if err != nil {
		return nil, configErr("layout", "%v", err)
	}
	if lg.W != c.Width || lg.H != c.Height {
		return nil, configErr("layout", "%dx%d does not match board %dx%d", lg.W, lg.H, c.Width, c.Height)
	}
	for _, cell := range lg.Cells {
		if cell.State == CellOccupied && int(cell.Tile.Kind) >= c.Colors {
			return nil, configErr("layout", "kind %s outside the %d active colours", cell.Tile.Kind, c.Colors)
		}
	}
	if HasMatch(lg, c.MinMatch) {
		return nil, configErr("layout", "starting board already contains a match")
	}
	return lg, nil
}

func goalID(kind string, colors int) (string, error) {
	switch kind {
	case GoalClearJelly, GoalClearLock, GoalScore, GoalSpecial:
		return kind, nil
	}
	k, ok := ParseKind(kind)
	if !ok {
		return "", configErr("goals", "unknown goal kind %q", kind)
	}
	if int(k) >= colors {
		return "", configErr("goals", "colour %s is not in the %d active colours", k, colors)
	}
	return k.String(), nil
}
