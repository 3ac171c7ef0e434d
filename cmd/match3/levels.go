package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/match3/internal/level"
)

var flagCheck bool

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all available levels",
	Long: `Shows every level from the --levels directory and the built-in campaign.

With --check, every file in the --levels directory (or the campaign) is
parsed and validated, and problems are reported per file.`,
	Run: runLevels,
}

func init() {
	levelsCmd.Flags().BoolVar(&flagCheck, "check", false, "Validate level files and report errors")
}

func runLevels(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	if flagCheck {
		runCheck(cfg.Levels.Dir)
		return
	}

	levels, err := levelProvider(cfg).List()
	if err != nil {
		fail("listing levels: %v", err)
	}
	if len(levels) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Available levels:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, l := range levels {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	fmt.Printf("  %-*s  %-20s  %s\n", maxIDLen, "ID", "Title", "Rules")
	fmt.Printf("  %-*s  %-20s  %s\n", maxIDLen, "--", "-----", "-----")
	for i := range levels {
		l := &levels[i]
		fmt.Printf("  %-*s  %-20s  %s\n", maxIDLen, l.ID, l.Title(), l.Describe())
	}

	fmt.Println()
	fmt.Println("Run 'match3 play <id>' to play a level.")
}

func runCheck(dir string) {
	loader := level.Campaign()
	if dir != "" {
		loader = level.NewLoader(dir)
	}

	problems, err := loader.Check()
	if err != nil {
		fail("reading levels from %s: %v", loader.Root, err)
	}
	if len(problems) == 0 {
		fmt.Printf("All levels in %s are valid.\n", loader.Root)
		return
	}

	names := make([]string, 0, len(problems))
	for name := range problems {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, problems[name])
	}
	os.Exit(1)
}
