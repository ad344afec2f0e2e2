package backtest

import (
	"fmt"
	"math"
	"time"

	"rsu-backtest/internal/data"
	"rsu-backtest/internal/model"
	"rsu-backtest/internal/strategy"
	"rsu-backtest/internal/vesting"
)

// LookbackDays pads the analysis window before the first vest so price
// history exists by the time the first vest lands.
const LookbackDays = 30

type Engine struct {
	prices data.PriceSource
}

func New(prices data.PriceSource) *Engine { return &Engine{prices: prices} }

// Run walks every calendar day from the analysis start through today,
// joining forward-filled closes with the ledger's per-day vesting, and
// values the three disposition strategies. Monetary values are rounded to
// two decimals only in the final table, never during accumulation.
func (e *Engine) Run(ledger *vesting.Ledger, stock, market string, today time.Time) (*Result, error) {
	if ledger == nil {
		return nil, fmt.Errorf("ledger is nil")
	}
	if stock == "" || market == "" {
		return nil, fmt.Errorf("stock and market tickers are required")
	}

	firstVest, err := ledger.FirstVestDate()
	if err != nil {
		return nil, err
	}
	today = model.Day(today.Year(), today.Month(), today.Day())
	start := firstVest.AddDate(0, 0, -LookbackDays)

	// The source's end bound is exclusive; extend one day so today's close
	// is included when available.
	end := today.AddDate(0, 0, 1)
	stockCloses, err := e.closesByDay(stock, start, end)
	if err != nil {
		return nil, err
	}
	marketCloses, err := e.closesByDay(market, start, end)
	if err != nil {
		return nil, err
	}

	hold := &strategy.Hold{}
	divestRSU := &strategy.DivestRSU{}
	divestCash := &strategy.DivestCash{}

	rows := make([]LedgerRow, 0, int(today.Sub(start).Hours()/24)+1)
	var (
		stockClose, marketClose float64
		totalShares             float64
		totalCash               float64
		prevRSUShares           float64
		prevCashShares          float64
	)

	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		// Forward-fill: markets are closed on weekends and holidays, so a
		// missing day carries the prior available close.
		if c, ok := stockCloses[d]; ok {
			stockClose = c
		}
		if c, ok := marketCloses[d]; ok {
			marketClose = c
		}

		shares := ledger.VestedOn(d, false)
		cash := ledger.VestedOn(d, true)
		totalShares += shares
		totalCash += cash

		day := strategy.Day{
			Date:         d,
			StockPrice:   stockClose,
			MarketPrice:  marketClose,
			SharesVested: shares,
			CashVested:   cash,
		}
		holdValue := hold.Observe(day)
		rsuValue := divestRSU.Observe(day)
		cashValue := divestCash.Observe(day)

		rows = append(rows, LedgerRow{
			Date:                  d,
			StockClose:            stockClose,
			MarketClose:           marketClose,
			SharesVested:          shares,
			CashVested:            cash,
			TotalShares:           totalShares,
			TotalCashVested:       totalCash,
			MarketSharesRSU:       divestRSU.MarketShares() - prevRSUShares,
			TotalMarketSharesRSU:  divestRSU.MarketShares(),
			MarketSharesCash:      divestCash.MarketShares() - prevCashShares,
			TotalMarketSharesCash: divestCash.MarketShares(),
			HoldValue:             holdValue,
			DivestRSUValue:        rsuValue,
			DivestCashValue:       cashValue,
		})
		prevRSUShares = divestRSU.MarketShares()
		prevCashShares = divestCash.MarketShares()
	}

	for i := range rows {
		roundRow(&rows[i])
	}

	return &Result{Stock: stock, Market: market, Ledger: rows}, nil
}

func (e *Engine) closesByDay(ticker string, start, end time.Time) (map[time.Time]float64, error) {
	bars, err := e.prices.History(ticker, start, end)
	if err != nil {
		return nil, err
	}
	out := make(map[time.Time]float64, len(bars))
	for _, b := range bars {
		out[model.Day(b.Date.Year(), b.Date.Month(), b.Date.Day())] = b.Close
	}
	return out, nil
}

func roundRow(r *LedgerRow) {
	r.StockClose = round2(r.StockClose)
	r.MarketClose = round2(r.MarketClose)
	r.SharesVested = round2(r.SharesVested)
	r.CashVested = round2(r.CashVested)
	r.TotalShares = round2(r.TotalShares)
	r.TotalCashVested = round2(r.TotalCashVested)
	r.MarketSharesRSU = round2(r.MarketSharesRSU)
	r.TotalMarketSharesRSU = round2(r.TotalMarketSharesRSU)
	r.MarketSharesCash = round2(r.MarketSharesCash)
	r.TotalMarketSharesCash = round2(r.TotalMarketSharesCash)
	r.HoldValue = round2(r.HoldValue)
	r.DivestRSUValue = round2(r.DivestRSUValue)
	r.DivestCashValue = round2(r.DivestCashValue)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
