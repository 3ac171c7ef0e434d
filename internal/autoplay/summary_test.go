package autoplay_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/match3/internal/autoplay"
)

func TestSummarize(t *testing.T) {
	reports := []autoplay.Report{
		{Level: "l", Strategy: "greedy", Outcome: "completed", Score: 1000, MovesUsed: 10, BestCombo: 2, Cascades: 3, Specials: 1},
		{Level: "l", Strategy: "greedy", Outcome: "failed", Score: 500, MovesUsed: 20, BestCombo: 4, Shuffles: 1},
		{Level: "l", Strategy: "greedy", Outcome: "abandoned", Score: 0, MovesUsed: 1, Stuck: true},
	}

	s := autoplay.Summarize(reports)
	assert.Equal(t, "l", s.Level)
	assert.Equal(t, "greedy", s.Strategy)
	assert.Equal(t, 3, s.Runs)
	assert.Equal(t, 1, s.Wins)
	assert.Equal(t, "0.33", s.WinRate.String())
	assert.Equal(t, "500", s.AvgScore.String())
	assert.Equal(t, "10.33", s.AvgMoves.String())
	assert.Equal(t, 1000, s.MaxScore)
	assert.Equal(t, 4, s.MaxCombo)
	assert.Equal(t, 3, s.Cascades)
	assert.Equal(t, 1, s.Specials)
	assert.Equal(t, 1, s.Shuffles)
	assert.Equal(t, 1, s.StuckRuns)
}

func TestSummarizeEmpty(t *testing.T) {
	s := autoplay.Summarize(nil)
	assert.Zero(t, s.Runs)
	assert.True(t, s.WinRate.IsZero())
}
