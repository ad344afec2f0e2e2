package models

import (
	"time"

	"rsu-backtest/internal/analysis"
	"rsu-backtest/internal/backtest"
)

// AnalysisResponse represents the response from an analysis run
type AnalysisResponse struct {
	Status      string                     `json:"status"`
	Stock       string                     `json:"stock"`
	Market      string                     `json:"market"`
	LatestPrice float64                    `json:"latest_price"`
	Summary     []analysis.StrategySummary `json:"summary"`
	Ledger      []LedgerRow                `json:"ledger,omitempty"`
}

// LedgerRow represents one day in the analysis ledger
type LedgerRow struct {
	Date                  time.Time `json:"date"`
	StockClose            float64   `json:"stock_close"`
	MarketClose           float64   `json:"market_close"`
	SharesVested          float64   `json:"shares_vested"`
	CashVested            float64   `json:"cash_vested"`
	TotalShares           float64   `json:"total_shares"`
	TotalCashVested       float64   `json:"total_cash_vested"`
	MarketSharesRSU       float64   `json:"market_shares_rsu"`
	TotalMarketSharesRSU  float64   `json:"total_market_shares_rsu"`
	MarketSharesCash      float64   `json:"market_shares_cash"`
	TotalMarketSharesCash float64   `json:"total_market_shares_cash"`
	HoldValue             float64   `json:"hold_value"`
	DivestRSUValue        float64   `json:"divest_rsu_value"`
	DivestCashValue       float64   `json:"divest_cash_value"`
}

// FromLedger converts engine rows to their JSON form.
func FromLedger(rows []backtest.LedgerRow) []LedgerRow {
	out := make([]LedgerRow, len(rows))
	for i, r := range rows {
		out[i] = LedgerRow{
			Date:                  r.Date,
			StockClose:            r.StockClose,
			MarketClose:           r.MarketClose,
			SharesVested:          r.SharesVested,
			CashVested:            r.CashVested,
			TotalShares:           r.TotalShares,
			TotalCashVested:       r.TotalCashVested,
			MarketSharesRSU:       r.MarketSharesRSU,
			TotalMarketSharesRSU:  r.TotalMarketSharesRSU,
			MarketSharesCash:      r.MarketSharesCash,
			TotalMarketSharesCash: r.TotalMarketSharesCash,
			HoldValue:             r.HoldValue,
			DivestRSUValue:        r.DivestRSUValue,
			DivestCashValue:       r.DivestCashValue,
		}
	}
	return out
}

// GrantInfo represents one resolved grant
type GrantInfo struct {
	GrantReason   string  `json:"grant_reason"`
	GrantDate     string  `json:"grant_date"`
	GrantValue    float64 `json:"grant_value"`
	GrantQty      int     `json:"grant_qty"`
	VestRate      float64 `json:"vest_rate"`
	FirstVestDate string  `json:"first_vest_date"`
}

// StrategyInfo describes one disposition strategy
type StrategyInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
