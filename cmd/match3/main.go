// match3 plays, simulates and serves match-3 levels in the terminal.
//
// Usage:
//
//	match3 levels             - List available levels
//	match3 play [level]       - Play a level, or pick one from the menu
//	match3 sim <level>        - Let an autoplayer play a level
//	match3 scores <level>     - Show high scores for a level
//	match3 serve              - Start SSH server for remote play
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for reproducible boards
//	--db <path>          - Set database path (default: ~/.match3/scores.db)
//	--config <path>      - Use a specific config file
//	--levels <dir>       - Look up levels in a directory before the campaign
//	--difficulty <name>  - easy, normal, hard or fixed
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/match3/internal/config"
	"github.com/vovakirdan/match3/internal/level"
	"github.com/vovakirdan/match3/internal/storage"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagLevelsDir  string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "match3",
	Short: "Match-3 puzzles in your terminal",
	Long: `match3 is a terminal match-3 game: swap adjacent tiles to line up
three or more of a kind, trigger cascades and clear level goals.

Available commands:
  levels   - Show all available levels
  play     - Play a level directly or from the menu
  sim      - Run an autoplayer on a level
  scores   - View high scores and level statistics
  serve    - Start SSH server for remote play

Examples:
  match3 levels
  match3 play 03-jelly-garden
  match3 sim 05-broken-floor --strategy greedy --runs 20
  match3 scores 01-first-steps
  match3 serve --ssh :2323`,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to results database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory of level files searched before the campaign")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadConfig loads the app config and applies global flag overrides.
func loadConfig() config.AppConfig {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLevelsDir != "" {
		cfg.Levels.Dir = flagLevelsDir
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			fail("%v", err)
		}
		cfg.Difficulty = preset
	}
	return cfg
}

// newLogger creates the process logger writing to w.
func newLogger(w io.Writer, cfg config.AppConfig) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "match3",
	})
	if lvl, err := log.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.Warn("unknown log level, using info", "level", cfg.Log.Level)
	}
	return logger
}

// levelProvider returns the level directory, if any, backed by the campaign.
func levelProvider(cfg config.AppConfig) level.Provider {
	if cfg.Levels.Dir == "" {
		return level.Campaign()
	}
	return level.Sources{level.NewLoader(cfg.Levels.Dir), level.Campaign()}
}

// openStore opens the results database or exits.
func openStore(cfg config.AppConfig) *storage.Store {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fail("opening results database: %v", err)
	}
	return store
}

// seed returns the --seed value, or a time-based seed.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
