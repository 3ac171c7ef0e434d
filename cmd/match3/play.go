package main

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/match3/internal/core"
	"github.com/vovakirdan/match3/internal/game"
	"github.com/vovakirdan/match3/internal/platform/tui"
)

var (
	flagEnergy  int
	flagRefill  time.Duration
	flagLogFile string
	flagPlayer  string
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Play the given level, or pick one from the level menu.

Controls:
  Arrows/hjkl  - Move cursor
  Space/Enter  - Pick a tile, then pick a neighbour to swap
  x            - Drop the picked tile
  ?            - Show a legal move
  R            - Restart the level
  Esc/B        - Back to the menu
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - 25% more moves and time, generous combo multipliers
  normal - Levels as authored
  hard   - 20% fewer moves and less time
  fixed  - Levels as authored, ignoring engine overrides from config

Examples:
  match3 play
  match3 play 03-jelly-garden
  match3 play 06-time-attack --difficulty easy
  match3 play 01-first-steps --energy 5 --refill 30s`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagEnergy, "energy", 0, "Limit moves to an energy pool of this size (0 = unlimited)")
	playCmd.Flags().DurationVar(&flagRefill, "refill", 30*time.Second, "Time to regain one energy unit")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file while playing")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Player name stored with results (default: $USER)")
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	// The alternate screen owns stdout, so logs go to a file or nowhere
	var logOut io.Writer = io.Discard
	if flagLogFile != "" {
		if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
			fail("creating log directory: %v", err)
		}
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fail("opening log file: %v", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := newLogger(logOut, cfg)

	store := openStore(cfg)
	defer store.Close()

	player := flagPlayer
	if player == "" {
		player = os.Getenv("USER")
	}

	opts := game.Options{
		Engine:     cfg.Engine,
		Difficulty: cfg.Difficulty,
		Logger:     logger,
		Saver:      store,
		Player:     player,
	}
	if flagEnergy > 0 {
		opts.Gate = game.NewEnergy(flagEnergy, flagRefill)
	}

	levels := levelProvider(cfg)
	runner := game.NewRunner(levels, opts)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rc := core.DefaultConfig()
	rc.ScreenW = width
	rc.ScreenH = height
	rc.Seed = seed()

	if len(args) == 0 {
		if err := tui.RunSession(levels, store, runner, rc); err != nil {
			fail("%v", err)
		}
		return
	}

	if err := runner.Start(args[0], rc.Seed); err != nil {
		fail("%v\nRun 'match3 levels' to see available levels.", err)
	}
	if err := tui.Run(runner, rc); err != nil {
		fail("%v", err)
	}
}
