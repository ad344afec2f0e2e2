package analysis

import (
	"rsu-backtest/internal/backtest"
	"rsu-backtest/internal/strategy"
)

// StrategySummary is one row of the closing comparison.
type StrategySummary struct {
	Name        string  `json:"name"`
	EndingValue float64 `json:"ending_value"`
	// DiffVsHold is zero for the hold row itself.
	DiffVsHold float64 `json:"diff_vs_hold"`
}

// Summarize compares the three strategies at the last ledger row.
func Summarize(res *backtest.Result) []StrategySummary {
	final := res.Final()
	return []StrategySummary{
		{Name: strategy.HoldName, EndingValue: final.HoldValue},
		{Name: strategy.DivestRSUName, EndingValue: final.DivestRSUValue, DiffVsHold: final.DivestRSUValue - final.HoldValue},
		{Name: strategy.DivestCashName, EndingValue: final.DivestCashValue, DiffVsHold: final.DivestCashValue - final.HoldValue},
	}
}
