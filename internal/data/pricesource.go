package data

import (
	"fmt"
	"time"

	"rsu-backtest/internal/model"
)

// PriceSource returns the daily closes for ticker in [start, end).
// The end bound is exclusive, so a caller wanting the last day of a month
// must extend the window one day past month end.
type PriceSource interface {
	History(ticker string, start, end time.Time) ([]model.PriceBar, error)
}

// DataUnavailableError reports an empty price window. It is fatal for the
// affected ticker/window and is surfaced, not retried.
type DataUnavailableError struct {
	Ticker string
	Start  time.Time
	End    time.Time
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("no price data for %s in [%s, %s)",
		e.Ticker, e.Start.Format("2006-01-02"), e.End.Format("2006-01-02"))
}
