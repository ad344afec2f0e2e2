package strategy

import "time"

// Day is one resolved day of market and vesting facts.
type Day struct {
	Date         time.Time
	StockPrice   float64
	MarketPrice  float64
	SharesVested float64
	CashVested   float64
}

// Strategy is one hypothetical disposition of vested compensation. Observe
// folds in a day's vesting and returns the strategy's end-of-day portfolio
// value at that day's prices.
type Strategy interface {
	Name() string
	Observe(d Day) float64
}
