package core

// RuntimeConfig contains configuration passed to the play screen at start.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Clock ticks per second for timed levels
	Seed     int64 // RNG seed for deterministic boards
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 4,
		Seed:     0, // 0 means use current time in platform layer
	}
}
