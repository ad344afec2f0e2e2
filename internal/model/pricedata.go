package model

import "time"

// PriceBar is one daily close for a ticker. Dates are civil dates pinned to
// midnight UTC; intraday pricing is out of scope.
type PriceBar struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceHistory matches the JSON shape of the price fixture files used by the
// demo and tests.
type PriceHistory struct {
	Ticker string     `json:"ticker"`
	Bars   []PriceBar `json:"bars"`
}

// PriceFixture is a bundle of histories, one per ticker.
type PriceFixture struct {
	Histories []PriceHistory `json:"histories"`
}

// MeanClose averages the closes of a bar series. Returns 0 for an empty
// series; callers treat empty windows as a data-unavailable condition first.
func MeanClose(bars []PriceBar) float64 {
	if len(bars) == 0 {
		return 0
	}
	sum := 0.0
	for _, b := range bars {
		sum += b.Close
	}
	return sum / float64(len(bars))
}

// Day normalizes a civil date to midnight UTC, the convention used for all
// date comparisons in this module.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
