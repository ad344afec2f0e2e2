package grant

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rsu-backtest/internal/data"
	"rsu-backtest/internal/model"
)

var quarterly = model.Schedule{
	{Month: time.March, Day: 5},
	{Month: time.June, Day: 5},
	{Month: time.September, Day: 5},
	{Month: time.December, Day: 5},
}

// stubPrices returns a constant close for every day in the requested window.
type stubPrices struct {
	close float64
	err   error
	calls int
}

func (s *stubPrices) History(ticker string, start, end time.Time) ([]model.PriceBar, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	var bars []model.PriceBar
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		bars = append(bars, model.PriceBar{Date: d, Close: s.close})
	}
	return bars, nil
}

func testResolver(close float64) Resolver {
	return Resolver{Schedule: quarterly, Ticker: "ACME", Prices: &stubPrices{close: close}}
}

func modelRecord(vm model.VestModel) model.GrantRecord {
	return model.GrantRecord{
		GrantDate:   "2023-01-15",
		GrantValue:  16000,
		GrantReason: "new hire",
		SellableQty: 78,
		VestQty:     100,
		VestModel:   &vm,
	}
}

func planTotal(p Plan) float64 {
	total := 0.0
	for _, weights := range p {
		for _, w := range weights {
			total += w
		}
	}
	return total
}

func TestSynthesizeCliffGrant(t *testing.T) {
	g, err := testResolver(100).Resolve(modelRecord(model.VestModel{
		DurationYears:     4,
		CliffSkippedVests: 2,
		CliffVestQty:      0.25,
	}))
	require.NoError(t, err)

	// Two slots consumed by the cliff, a 25% lump at the third, then twelve
	// standard vests of 1/16.
	require.Contains(t, g.Plan, 2023)
	assert.Equal(t, []float64{0, 0, 0.25, 0.0625}, g.Plan[2023])
	assert.Equal(t, []float64{0.0625, 0.0625, 0.0625, 0.0625}, g.Plan[2024])
	assert.Equal(t, []float64{0.0625, 0.0625, 0.0625, 0.0625}, g.Plan[2025])
	assert.Equal(t, []float64{0.0625, 0.0625, 0.0625, 0}, g.Plan[2026])

	assert.InDelta(t, 1.0, planTotal(g.Plan), 1e-9)
}

func TestSynthesizeWeightInvariants(t *testing.T) {
	tests := []struct {
		name string
		vm   model.VestModel
	}{
		{"plain 4 year", model.VestModel{DurationYears: 4}},
		{"one year", model.VestModel{DurationYears: 1}},
		{"cliff lump only", model.VestModel{DurationYears: 4, CliffVestQty: 1}},
		{"non-dyadic standard vest", model.VestModel{DurationYears: 3, CliffSkippedVests: 1, CliffVestQty: 0.1}},
		{"long duration", model.VestModel{DurationYears: 7, CliffSkippedVests: 3, CliffVestQty: 0.33}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := testResolver(100).Resolve(modelRecord(tt.vm))
			require.NoError(t, err)
			assert.InDelta(t, 1.0, planTotal(g.Plan), 1e-9)
			for year, weights := range g.Plan {
				assert.Len(t, weights, quarterly.SlotsPerYear(), "year %d", year)
			}
		})
	}
}

func TestSynthesizeMissedVests(t *testing.T) {
	rec := modelRecord(model.VestModel{DurationYears: 1})
	// Issued after the March and June slots: both are skipped outright.
	rec.GrantDate = "2023-07-01"

	g, err := testResolver(100).Resolve(rec)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 0, 0.25, 0.25}, g.Plan[2023])
	assert.Equal(t, []float64{0.25, 0.25, 0, 0}, g.Plan[2024])
	assert.InDelta(t, 1.0, planTotal(g.Plan), 1e-9)
}

func TestResolveValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.GrantRecord)
		msg    string
	}{
		{
			"bad date",
			func(r *model.GrantRecord) { r.GrantDate = "15/01/2023" },
			"invalid grant_date",
		},
		{
			"no vesting logic",
			func(r *model.GrantRecord) { r.VestModel = nil },
			"no vesting logic",
		},
		{
			"both modes",
			func(r *model.GrantRecord) { r.VestPlan = map[int][]float64{2023: {1, 0, 0, 0}} },
			"mutually exclusive",
		},
		{
			"zero duration",
			func(r *model.GrantRecord) { r.VestModel = &model.VestModel{DurationYears: 0} },
			"duration_years",
		},
		{
			"negative cliff skips",
			func(r *model.GrantRecord) {
				r.VestModel = &model.VestModel{DurationYears: 4, CliffSkippedVests: -1}
			},
			"cliff_skipped_vests",
		},
		{
			"cliff lump above 1",
			func(r *model.GrantRecord) {
				r.VestModel = &model.VestModel{DurationYears: 4, CliffVestQty: 1.5}
			},
			"cliff_vest_qty",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := modelRecord(model.VestModel{DurationYears: 4})
			tt.mutate(&rec)
			_, err := testResolver(100).Resolve(rec)
			require.Error(t, err)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, "new hire", vErr.Reason)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestResolveExplicitPlan(t *testing.T) {
	explicit := func(plan map[int][]float64) model.GrantRecord {
		rec := modelRecord(model.VestModel{})
		rec.VestModel = nil
		rec.VestPlan = plan
		return rec
	}

	t.Run("whole plan sums to one", func(t *testing.T) {
		// The sum rule spans the whole plan, not each period.
		g, err := testResolver(100).Resolve(explicit(map[int][]float64{
			2023: {0.25, 0.25, 0, 0},
			2024: {0.25, 0.25, 0, 0},
		}))
		require.NoError(t, err)
		assert.InDelta(t, 1.0, planTotal(g.Plan), 1e-9)
	})

	t.Run("single half period rejected", func(t *testing.T) {
		_, err := testResolver(100).Resolve(explicit(map[int][]float64{
			2023: {0.25, 0.25, 0, 0},
		}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sum to 100%")
	})

	t.Run("overfull plan rejected", func(t *testing.T) {
		_, err := testResolver(100).Resolve(explicit(map[int][]float64{
			2023: {0.5, 0.5, 0, 0},
			2024: {0.5, 0.5, 0, 0},
		}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sum to 100%")
	})

	t.Run("wrong slot count", func(t *testing.T) {
		_, err := testResolver(100).Resolve(explicit(map[int][]float64{
			2023: {0.5, 0.5},
		}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "4 vesting fractions")
	})

	t.Run("year before grant", func(t *testing.T) {
		_, err := testResolver(100).Resolve(explicit(map[int][]float64{
			2022: {1, 0, 0, 0},
		}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "prior to grant_date")
	})

	t.Run("offset keys resolve to absolute years", func(t *testing.T) {
		g, err := testResolver(100).Resolve(explicit(map[int][]float64{
			0: {0, 0.5, 0.25, 0.25},
			1: {0, 0, 0, 0},
		}))
		require.NoError(t, err)
		assert.Contains(t, g.Plan, 2023)
		assert.Contains(t, g.Plan, 2024)
	})
}

func TestGrantQty(t *testing.T) {
	rec := modelRecord(model.VestModel{DurationYears: 4})
	rec.GrantValue = 10050

	g, err := testResolver(100).Resolve(rec)
	require.NoError(t, err)
	// ceil(10050 / 100.00)
	assert.Equal(t, 101, g.Qty)
	assert.InDelta(t, 0.78, g.VestRate, 1e-12)
}

func TestGrantQtyDataUnavailable(t *testing.T) {
	r := testResolver(100)
	r.Prices = &stubPrices{err: &data.DataUnavailableError{Ticker: "ACME"}}

	_, err := r.Resolve(modelRecord(model.VestModel{DurationYears: 4}))
	var dErr *data.DataUnavailableError
	require.ErrorAs(t, err, &dErr)
}

func TestResolveDeterministic(t *testing.T) {
	rec := modelRecord(model.VestModel{DurationYears: 4, CliffSkippedVests: 2, CliffVestQty: 0.25})
	r := testResolver(100)

	a, err := r.Resolve(rec)
	require.NoError(t, err)
	b, err := r.Resolve(rec)
	require.NoError(t, err)

	assert.Equal(t, a.Plan, b.Plan)
	assert.Equal(t, a.Qty, b.Qty)
}

func TestFirstVestDate(t *testing.T) {
	t.Run("skips zero-weight slots", func(t *testing.T) {
		g, err := testResolver(100).Resolve(modelRecord(model.VestModel{
			DurationYears:     4,
			CliffSkippedVests: 2,
			CliffVestQty:      0.25,
		}))
		require.NoError(t, err)

		first, err := g.FirstVestDate()
		require.NoError(t, err)
		assert.Equal(t, model.Day(2023, time.September, 5), first)
	})

	t.Run("missed slots push into next year", func(t *testing.T) {
		rec := modelRecord(model.VestModel{DurationYears: 1, CliffSkippedVests: 2})
		rec.GrantDate = "2023-10-01"

		g, err := testResolver(100).Resolve(rec)
		require.NoError(t, err)

		first, err := g.FirstVestDate()
		require.NoError(t, err)
		// Three slots missed in 2023, two more consumed by the cliff.
		assert.Equal(t, model.Day(2024, time.June, 5), first)
	})
}
