package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rsu-backtest/internal/model"
)

type countingSource struct {
	calls int
	fail  bool
}

func (s *countingSource) History(ticker string, start, end time.Time) ([]model.PriceBar, error) {
	s.calls++
	if s.fail {
		return nil, &DataUnavailableError{Ticker: ticker, Start: start, End: end}
	}
	return []model.PriceBar{{Date: start, Close: 100}}, nil
}

func TestCacheDeduplicatesWindows(t *testing.T) {
	src := &countingSource{}
	c := NewCache(src)

	start := model.Day(2024, time.January, 1)
	end := model.Day(2024, time.February, 1)

	for i := 0; i < 3; i++ {
		bars, err := c.History("ACME", start, end)
		require.NoError(t, err)
		require.Len(t, bars, 1)
	}
	assert.Equal(t, 1, src.calls)

	// A different ticker or window is a different entry.
	_, err := c.History("SPY", start, end)
	require.NoError(t, err)
	_, err = c.History("ACME", start, end.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 3, src.calls)
}

func TestCacheDoesNotCacheErrors(t *testing.T) {
	src := &countingSource{fail: true}
	c := NewCache(src)

	start := model.Day(2024, time.January, 1)
	end := model.Day(2024, time.February, 1)

	for i := 0; i < 2; i++ {
		_, err := c.History("ACME", start, end)
		var dErr *DataUnavailableError
		require.ErrorAs(t, err, &dErr)
	}
	assert.Equal(t, 2, src.calls)
}

func TestFixtureSourceWindowing(t *testing.T) {
	fx := NewFixtureSource(model.PriceFixture{
		Histories: []model.PriceHistory{{
			Ticker: "ACME",
			Bars: []model.PriceBar{
				{Date: model.Day(2024, time.January, 3), Close: 101},
				{Date: model.Day(2024, time.January, 1), Close: 99},
				{Date: model.Day(2024, time.January, 2), Close: 100},
			},
		}},
	})

	bars, err := fx.History("ACME", model.Day(2024, time.January, 1), model.Day(2024, time.January, 3))
	require.NoError(t, err)
	// Sorted, and the end bound is exclusive.
	require.Len(t, bars, 2)
	assert.Equal(t, 99.0, bars[0].Close)
	assert.Equal(t, 100.0, bars[1].Close)

	_, err = fx.History("ACME", model.Day(2025, time.January, 1), model.Day(2025, time.February, 1))
	var dErr *DataUnavailableError
	require.ErrorAs(t, err, &dErr)

	_, err = fx.History("NOPE", model.Day(2024, time.January, 1), model.Day(2024, time.February, 1))
	require.ErrorAs(t, err, &dErr)
}
