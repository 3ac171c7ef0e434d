package main

import (
	"fmt"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/match3/internal/autoplay"
	"github.com/vovakirdan/match3/internal/game"
)

var (
	flagStrategy string
	flagRuns     int
	flagMaxTurns int
	flagTick     time.Duration
	flagJSON     bool
	flagSave     bool
	flagVerbose  bool
)

var simCmd = &cobra.Command{
	Use:   "sim <level>",
	Short: "Let an autoplayer play a level",
	Long: `Play a level with an automatic strategy and report the results.

Strategies:
  first   - First legal move in row-major order
  random  - Uniformly random legal move
  greedy  - Move with the largest immediate effect

Run i uses seed --seed + i, so a fixed --seed makes a batch reproducible.

Examples:
  match3 sim 01-first-steps
  match3 sim 03-jelly-garden --strategy greedy --runs 50
  match3 sim 06-time-attack --tick 3s --json
  match3 sim 02-colour-mix --seed 7 --save`,
	Args: cobra.ExactArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagStrategy, "strategy", autoplay.StrategyGreedy, "Strategy: first, random, greedy")
	simCmd.Flags().IntVar(&flagRuns, "runs", 1, "Number of sessions to play")
	simCmd.Flags().IntVar(&flagMaxTurns, "max-turns", 1000, "Abandon a session after this many turns")
	simCmd.Flags().DurationVar(&flagTick, "tick", 2*time.Second, "Clock advance per turn for timed levels")
	simCmd.Flags().BoolVar(&flagJSON, "json", false, "Print the summary as JSON")
	simCmd.Flags().BoolVar(&flagSave, "save", false, "Record results in the database")
	simCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Print every run")
}

func runSim(cmd *cobra.Command, args []string) {
	levelID := args[0]
	cfg := loadConfig()
	logger := newLogger(os.Stderr, cfg)

	if flagRuns < 1 {
		fail("--runs must be at least 1")
	}

	opts := game.Options{
		Engine:     cfg.Engine,
		Difficulty: cfg.Difficulty,
		Logger:     logger,
		Player:     "sim:" + flagStrategy,
	}
	if flagSave {
		store := openStore(cfg)
		defer store.Close()
		opts.Saver = store
	}
	runner := game.NewRunner(levelProvider(cfg), opts)

	base := seed()
	reports := make([]autoplay.Report, 0, flagRuns)
	for i := range flagRuns {
		runSeed := base + int64(i)
		if err := runner.Start(levelID, runSeed); err != nil {
			fail("%v\nRun 'match3 levels' to see available levels.", err)
		}
		strategy, err := autoplay.ParseStrategy(flagStrategy, runSeed)
		if err != nil {
			fail("%v", err)
		}
		rep, err := autoplay.Play(runner, strategy, autoplay.Options{MaxTurns: flagMaxTurns, Tick: flagTick})
		if err != nil {
			fail("run %d: %v", i+1, err)
		}
		reports = append(reports, rep)
	}

	summary := autoplay.Summarize(reports)

	if flagJSON {
		if flagVerbose {
			summary.Reports = reports
		}
		out, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(summary, "", "  ")
		if err != nil {
			fail("encoding summary: %v", err)
		}
		fmt.Println(string(out))
		return
	}

	if flagVerbose {
		fmt.Printf("  %-4s  %-12s  %-10s  %-8s  %-6s  %s\n", "Run", "Seed", "Outcome", "Score", "Moves", "Combo")
		for i, r := range reports {
			fmt.Printf("  %-4d  %-12d  %-10s  %-8d  %-6d  x%d\n", i+1, r.Seed, r.Outcome, r.Score, r.MovesUsed, r.BestCombo)
		}
		fmt.Println()
	}

	fmt.Printf("Level:     %s\n", summary.Level)
	fmt.Printf("Strategy:  %s\n", summary.Strategy)
	fmt.Printf("Runs:      %d\n", summary.Runs)
	fmt.Printf("Wins:      %d (%s%%)\n", summary.Wins, summary.WinRate.Shift(2).StringFixed(0))
	fmt.Printf("Avg score: %s (best %d)\n", summary.AvgScore.StringFixed(1), summary.MaxScore)
	fmt.Printf("Avg moves: %s\n", summary.AvgMoves.StringFixed(1))
	fmt.Printf("Best combo: x%d  cascades: %d  specials: %d  shuffles: %d\n",
		summary.MaxCombo, summary.Cascades, summary.Specials, summary.Shuffles)
	if summary.StuckRuns > 0 {
		fmt.Printf("Stuck:     %d runs ended with no legal move\n", summary.StuckRuns)
	}
}
