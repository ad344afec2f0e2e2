package grant

import (
	"fmt"
	"math"
	"sort"
	"time"

	"rsu-backtest/internal/data"
	"rsu-backtest/internal/model"
)

// weightTolerance bounds floating drift when checking that a plan's weights
// sum to 1. The tolerance is part of the contract; exact-equality comparison
// on summed fractions is not.
const weightTolerance = 1e-9

// Plan keys below this are zero-based offsets from the grant year rather
// than absolute calendar years.
const minAbsoluteYear = 1900

const dateLayout = "2006-01-02"

// ValidationError is a fatal grant construction error. Reason carries the
// offending record's grant_reason so the message names the grant.
type ValidationError struct {
	Reason string
	Msg    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("grant %q: %s", e.Reason, e.Msg)
}

// Plan maps a calendar year to the fractional weight vesting at each slot of
// that year. Every year has exactly one weight per schedule slot and the
// weights across the whole plan sum to 1.
type Plan map[int][]float64

// Grant is one fully resolved equity award. It is a value object: resolved
// fresh from its record, never mutated afterwards.
type Grant struct {
	Date     time.Time
	Value    float64
	Reason   string
	Qty      int     // shares the dollar value bought at issuance-month average close
	VestRate float64 // sellable/vest, the post-withholding delivery fraction
	Plan     Plan

	sched model.Schedule
}

// Resolver turns raw grant records into resolved Grants. The schedule, the
// ticker and the price source are explicit dependencies; nothing is read
// from ambient configuration.
type Resolver struct {
	Schedule model.Schedule
	Ticker   string
	Prices   data.PriceSource
}

func (r Resolver) Resolve(rec model.GrantRecord) (*Grant, error) {
	grantDate, err := time.Parse(dateLayout, rec.GrantDate)
	if err != nil {
		return nil, &ValidationError{
			Reason: rec.GrantReason,
			Msg:    fmt.Sprintf("invalid grant_date %q, use YYYY-MM-DD", rec.GrantDate),
		}
	}
	grantDate = model.Day(grantDate.Year(), grantDate.Month(), grantDate.Day())

	var plan Plan
	switch {
	case rec.VestModel == nil && rec.VestPlan == nil:
		return nil, &ValidationError{Reason: rec.GrantReason, Msg: "no vesting logic defined: supply vest_model or vest_plan"}
	case rec.VestModel != nil && rec.VestPlan != nil:
		return nil, &ValidationError{Reason: rec.GrantReason, Msg: "vest_model and vest_plan are mutually exclusive"}
	case rec.VestModel != nil:
		plan, err = r.synthesize(grantDate, *rec.VestModel, rec.GrantReason)
	default:
		plan, err = r.validateExplicit(grantDate, rec.VestPlan, rec.GrantReason)
	}
	if err != nil {
		return nil, err
	}

	qty, err := r.grantQty(grantDate, rec.GrantValue)
	if err != nil {
		return nil, err
	}

	return &Grant{
		Date:     grantDate,
		Value:    rec.GrantValue,
		Reason:   rec.GrantReason,
		Qty:      qty,
		VestRate: rec.SellableQty / rec.VestQty,
		Plan:     plan,
		sched:    r.Schedule,
	}, nil
}

// ResolveAll resolves every record, failing on the first invalid grant.
func (r Resolver) ResolveAll(recs []model.GrantRecord) ([]*Grant, error) {
	grants := make([]*Grant, 0, len(recs))
	for _, rec := range recs {
		g, err := r.Resolve(rec)
		if err != nil {
			return nil, err
		}
		grants = append(grants, g)
	}
	return grants, nil
}

// synthesize builds the plan from a vest model. The flat weight sequence is:
// slots already missed in the grant year, slots consumed by the cliff, the
// cliff lump (if any), then equal standard vests. Any residual from integer
// truncation or float drift lands on the last entry so the total is exactly 1.
func (r Resolver) synthesize(grantDate time.Time, vm model.VestModel, reason string) (Plan, error) {
	if vm.DurationYears < 1 {
		return nil, &ValidationError{Reason: reason, Msg: "duration_years must be an integer >= 1"}
	}
	if vm.CliffSkippedVests < 0 {
		return nil, &ValidationError{Reason: reason, Msg: "cliff_skipped_vests must be a non-negative integer"}
	}
	if vm.CliffVestQty < 0 || vm.CliffVestQty > 1 {
		return nil, &ValidationError{Reason: reason, Msg: "cliff_vest_qty must be between 0 and 1"}
	}

	k := r.Schedule.SlotsPerYear()

	// Slots whose date in the grant year precedes the grant date are missed
	// outright; they carry zero weight and are never paid retroactively.
	missed := r.Schedule.CountBefore(grantDate)

	weights := make([]float64, missed+vm.CliffSkippedVests)
	if vm.CliffVestQty > 0 {
		weights = append(weights, vm.CliffVestQty)
	}

	standard := 1.0 / float64(vm.DurationYears*k)
	remaining := int((1 - vm.CliffVestQty) / standard)
	for i := 0; i < remaining; i++ {
		weights = append(weights, standard)
	}

	total := 0.0
	for _, w := range weights {
		total += w
	}
	if residual := 1.0 - total; residual != 0 {
		weights[len(weights)-1] += residual
	}

	// Chunk into years of exactly k slots, zero-padding the tail.
	plan := make(Plan)
	for i := 0; i*k < len(weights); i++ {
		year := make([]float64, k)
		copy(year, weights[i*k:min(len(weights), (i+1)*k)])
		plan[grantDate.Year()+i] = year
	}
	return plan, nil
}

// validateExplicit checks a caller-supplied plan and normalizes its keys to
// absolute calendar years.
func (r Resolver) validateExplicit(grantDate time.Time, raw map[int][]float64, reason string) (Plan, error) {
	k := r.Schedule.SlotsPerYear()
	plan := make(Plan, len(raw))
	total := 0.0
	for key, weights := range raw {
		if len(weights) != k {
			return nil, &ValidationError{
				Reason: reason,
				Msg:    fmt.Sprintf("vest_plan period %d must have %d vesting fractions", key, k),
			}
		}
		year := periodYear(key, grantDate.Year())
		if year < grantDate.Year() {
			return nil, &ValidationError{Reason: reason, Msg: "vest_plan must not have a year prior to grant_date"}
		}
		plan[year] = append([]float64(nil), weights...)
		for _, w := range weights {
			total += w
		}
	}
	if math.Abs(total-1) > weightTolerance {
		return nil, &ValidationError{Reason: reason, Msg: "vest proportions must sum to 100%"}
	}
	return plan, nil
}

// grantQty converts the dollar grant value into shares at the average close
// of the issuance month. The window runs to the first day of the following
// month because the price source's end bound is exclusive.
func (r Resolver) grantQty(grantDate time.Time, value float64) (int, error) {
	start := model.Day(grantDate.Year(), grantDate.Month(), 1)
	end := start.AddDate(0, 1, 0)

	bars, err := r.Prices.History(r.Ticker, start, end)
	if err != nil {
		return 0, err
	}
	if len(bars) == 0 {
		return 0, &data.DataUnavailableError{Ticker: r.Ticker, Start: start, End: end}
	}
	return int(math.Ceil(value / model.MeanClose(bars))), nil
}

// FirstVestDate returns the date of the earliest slot with nonzero weight.
func (g *Grant) FirstVestDate() (time.Time, error) {
	years := make([]int, 0, len(g.Plan))
	for y := range g.Plan {
		years = append(years, y)
	}
	sort.Ints(years)
	for _, y := range years {
		for i, w := range g.Plan[y] {
			if w > 0 {
				return g.sched.Date(y, i), nil
			}
		}
	}
	return time.Time{}, fmt.Errorf("grant %q: vest plan has no nonzero vests", g.Reason)
}

func periodYear(key, grantYear int) int {
	if key < minAbsoluteYear {
		return grantYear + key
	}
	return key
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
