package autoplay

import (
	"github.com/shopspring/decimal"
)

// Summary aggregates many automated sessions of one level.
type Summary struct {
	Level     string          `json:"level"`
	Strategy  string          `json:"strategy"`
	Runs      int             `json:"runs"`
	Wins      int             `json:"wins"`
	WinRate   decimal.Decimal `json:"win_rate"`
	AvgScore  decimal.Decimal `json:"avg_score"`
	AvgMoves  decimal.Decimal `json:"avg_moves"`
	MaxScore  int             `json:"max_score"`
	MaxCombo  int             `json:"max_combo"`
	Cascades  int             `json:"cascades"`
	Specials  int             `json:"specials"`
	Shuffles  int             `json:"shuffles"`
	StuckRuns int             `json:"stuck_runs"`
	Reports   []Report        `json:"reports,omitempty"`
}

// Summarize aggregates reports. Averages are rounded to two places.
func Summarize(reports []Report) Summary {
	var s Summary
	if len(reports) == 0 {
		return s
	}
	s.Level = reports[0].Level
	s.Strategy = reports[0].Strategy
	s.Runs = len(reports)

	var totalScore, totalMoves int64
	for _, r := range reports {
		if r.Outcome == "completed" {
			s.Wins++
		}
		if r.Stuck {
			s.StuckRuns++
		}
		totalScore += int64(r.Score)
		totalMoves += int64(r.MovesUsed)
		s.MaxScore = max(s.MaxScore, r.Score)
		s.MaxCombo = max(s.MaxCombo, r.BestCombo)
		s.Cascades += r.Cascades
		s.Specials += r.Specials
		s.Shuffles += r.Shuffles
	}

	runs := decimal.NewFromInt(int64(s.Runs))
	s.WinRate = decimal.NewFromInt(int64(s.Wins)).Div(runs).Round(2)
	s.AvgScore = decimal.NewFromInt(totalScore).Div(runs).Round(2)
	s.AvgMoves = decimal.NewFromInt(totalMoves).Div(runs).Round(2)
	return s
}
