package tui

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/match3/internal/board"
)

// describeTurn summarizes a swap outcome as a one-line status.
func describeTurn(out board.SwapOutcome) string {
	if !out.Accepted {
		return "Can't swap: " + out.Reason.String()
	}

	var parts []string
	if out.ScoreDelta > 0 {
		parts = append(parts, fmt.Sprintf("+%d", out.ScoreDelta))
	}
	if n := len(out.Waves); n > 1 {
		parts = append(parts, fmt.Sprintf("%d-wave cascade", n))
	}

	jelly := 0
	for _, ev := range out.Events {
		switch ev := ev.(type) {
		case board.SpecialCreated:
			parts = append(parts, ev.Tile.Special.String()+" created")
		case board.JellyCleared:
			jelly++
		case board.BoardShuffled:
			if ev.Regenerated {
				parts = append(parts, "board regenerated")
			} else {
				parts = append(parts, "board shuffled")
			}
		case board.SessionEnded:
			parts = append(parts, "session "+ev.Outcome.String())
		}
	}
	if jelly > 0 {
		parts = append(parts, fmt.Sprintf("%d jelly hit", jelly))
	}
	return strings.Join(parts, "  ")
}
