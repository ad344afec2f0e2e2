package data

import (
	"encoding/json"
	"os"
	"sort"
	"time"

	"rsu-backtest/internal/model"
)

// FixtureSource serves price history from an in-memory fixture. It backs the
// demo binary and tests so they run without network access.
type FixtureSource struct {
	histories map[string][]model.PriceBar
}

// LoadPriceFixture reads a PriceFixture JSON file from disk.
func LoadPriceFixture(path string) (*FixtureSource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fx model.PriceFixture
	if err := json.Unmarshal(raw, &fx); err != nil {
		return nil, err
	}
	return NewFixtureSource(fx), nil
}

func NewFixtureSource(fx model.PriceFixture) *FixtureSource {
	s := &FixtureSource{histories: make(map[string][]model.PriceBar)}
	for _, h := range fx.Histories {
		bars := append([]model.PriceBar(nil), h.Bars...)
		sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
		s.histories[h.Ticker] = bars
	}
	return s
}

func (s *FixtureSource) History(ticker string, start, end time.Time) ([]model.PriceBar, error) {
	var out []model.PriceBar
	for _, b := range s.histories[ticker] {
		if b.Date.Before(start) || !b.Date.Before(end) {
			continue
		}
		out = append(out, b)
	}
	if len(out) == 0 {
		return nil, &DataUnavailableError{Ticker: ticker, Start: start, End: end}
	}
	return out, nil
}
