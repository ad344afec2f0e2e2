package strategy

// Strategy names are stable; they appear in CSV output and the summary table.
const (
	HoldName       = "Hold Strategy"
	DivestRSUName  = "Divest Strategy"
	DivestCashName = "Cash Strategy"
)

// Hold keeps every vested share: cumulative shares valued at the stock price.
type Hold struct {
	shares float64
}

func (h *Hold) Name() string { return HoldName }

func (h *Hold) Observe(d Day) float64 {
	h.shares += d.SharesVested
	return h.shares * d.StockPrice
}

// DivestRSU sells each day's vested shares immediately and buys the market
// benchmark at that day's price ratio. Capital gains are ignored; a sale at
// the vest-day price realizes a negligible amount.
type DivestRSU struct {
	marketShares float64
}

func (s *DivestRSU) Name() string { return DivestRSUName }

func (s *DivestRSU) Observe(d Day) float64 {
	if d.MarketPrice > 0 {
		s.marketShares += d.SharesVested * d.StockPrice / d.MarketPrice
	}
	return s.marketShares * d.MarketPrice
}

// MarketShares returns the benchmark shares bought so far.
func (s *DivestRSU) MarketShares() float64 { return s.marketShares }

// DivestCash assumes the award was taken as cash and each day's vested
// dollars buy the market benchmark at that day's price.
type DivestCash struct {
	marketShares float64
}

func (s *DivestCash) Name() string { return DivestCashName }

func (s *DivestCash) Observe(d Day) float64 {
	if d.MarketPrice > 0 {
		s.marketShares += d.CashVested / d.MarketPrice
	}
	return s.marketShares * d.MarketPrice
}

func (s *DivestCash) MarketShares() float64 { return s.marketShares }
