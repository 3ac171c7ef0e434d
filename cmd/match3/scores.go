package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/match3/internal/platform/tui"
	"github.com/vovakirdan/match3/internal/storage"
)

var (
	flagLimit  int
	flagRecent bool
	flagClear  bool
	flagTUI    bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show high scores for a level",
	Long: `Display the top completed sessions and statistics for a level.

Examples:
  match3 scores 01-first-steps
  match3 scores --recent
  match3 scores --tui
  match3 scores 01-first-steps --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of sessions to show")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the most recent sessions of every level")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all sessions of the level")
	scoresCmd.Flags().BoolVar(&flagTUI, "tui", false, "Browse scores interactively")
}

func runScores(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	store := openStore(cfg)
	defer store.Close()

	switch {
	case flagTUI:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(levelProvider(cfg), store, width, height); err != nil {
			fail("%v", err)
		}
		return

	case flagRecent:
		recent, err := store.RecentSessions(flagLimit)
		if err != nil {
			fail("retrieving sessions: %v", err)
		}
		printSessions("Recent sessions", recent, true)
		return

	case len(args) == 0:
		fail("a level ID is required unless --recent or --tui is given")
	}

	levelID := args[0]
	lvl, err := levelProvider(cfg).Level(levelID)
	if err != nil {
		fail("%v\nRun 'match3 levels' to see available levels.", err)
	}

	if flagClear {
		if err := store.ClearLevel(levelID); err != nil {
			fail("clearing level: %v", err)
		}
		fmt.Printf("Cleared all sessions of %s.\n", levelID)
		return
	}

	scores, err := store.TopScores(levelID, flagLimit)
	if err != nil {
		fail("retrieving scores: %v", err)
	}

	if len(scores) == 0 {
		fmt.Printf("High Scores - %s\n\n", lvl.Title())
		fmt.Println("No wins recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'match3 play %s' to set the first high score!\n", levelID)
		return
	}
	printSessions("High Scores - "+lvl.Title(), scores, false)

	if stats, err := store.LevelStats(levelID); err == nil {
		fmt.Println()
		fmt.Printf("Plays: %d  Wins: %d (%.0f%%)  Best: %d  Avg: %.0f\n",
			stats.Plays, stats.Wins, stats.WinRate()*100, stats.HighScore, stats.AvgScore)
	}
}

func printSessions(title string, sessions []storage.SessionResult, withLevel bool) {
	fmt.Println(title)
	fmt.Println()

	if withLevel {
		fmt.Printf("  %-4s  %-18s  %-10s  %-8s  %-5s  %-12s  %s\n", "#", "Level", "Outcome", "Score", "Moves", "Player", "Date")
	} else {
		fmt.Printf("  %-4s  %-8s  %-5s  %-6s  %-12s  %s\n", "Rank", "Score", "Moves", "Combo", "Player", "Date")
	}

	for i, s := range sessions {
		date := s.CreatedAt.Format("2006-01-02 15:04")
		if withLevel {
			fmt.Printf("  %-4d  %-18s  %-10s  %-8d  %-5d  %-12s  %s\n", i+1, s.LevelID, s.Outcome, s.Score, s.MovesUsed, s.Player, date)
		} else {
			fmt.Printf("  %-4d  %-8d  %-5d  x%-5d  %-12s  %s\n", i+1, s.Score, s.MovesUsed, s.BestCombo, s.Player, date)
		}
	}
}
