package backtest

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// WriteLedgerCSV writes the daily ledger. The stock and market tickers are
// embedded in the price column headers so the file is self-describing.
func WriteLedgerCSV(path string, res *Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"date",
		res.Stock + "_close",
		res.Market + "_close",
		"shares_vested",
		"cash_vested",
		"total_shares",
		"total_cash_vested",
		"market_shares_rsu",
		"total_market_shares_rsu",
		"market_shares_cash",
		"total_market_shares_cash",
		"hold_value",
		"divest_rsu_value",
		"divest_cash_value",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range res.Ledger {
		row := []string{
			fmtDate(r.Date),
			fmtFloat(r.StockClose),
			fmtFloat(r.MarketClose),
			fmtFloat(r.SharesVested),
			fmtFloat(r.CashVested),
			fmtFloat(r.TotalShares),
			fmtFloat(r.TotalCashVested),
			fmtFloat(r.MarketSharesRSU),
			fmtFloat(r.TotalMarketSharesRSU),
			fmtFloat(r.MarketSharesCash),
			fmtFloat(r.TotalMarketSharesCash),
			fmtFloat(r.HoldValue),
			fmtFloat(r.DivestRSUValue),
			fmtFloat(r.DivestCashValue),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
