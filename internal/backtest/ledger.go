package backtest

import "time"

// LedgerRow is one day of output. This is the primary artifact for "what
// happened" across the analysis window; vested amounts are post-withholding.
type LedgerRow struct {
	Date time.Time

	StockClose  float64
	MarketClose float64

	SharesVested float64
	CashVested   float64

	TotalShares     float64
	TotalCashVested float64

	// Benchmark shares bought under the two divest strategies.
	MarketSharesRSU       float64
	TotalMarketSharesRSU  float64
	MarketSharesCash      float64
	TotalMarketSharesCash float64

	HoldValue       float64
	DivestRSUValue  float64
	DivestCashValue float64
}

type Result struct {
	Stock  string
	Market string
	Ledger []LedgerRow
}

// Final returns the last ledger row, the basis of the strategy comparison.
func (r *Result) Final() LedgerRow {
	if len(r.Ledger) == 0 {
		return LedgerRow{}
	}
	return r.Ledger[len(r.Ledger)-1]
}
