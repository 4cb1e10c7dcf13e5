// Package orchestrator drives the rolling-intrinsic valuation: for each day
// in the price timeseries it optimises a day-ahead schedule, then rolls it
// into intraday-1 and intraday-2 whenever the roll strictly improves cash,
// then commits the realized ID2 slice onto the plant state.
package orchestrator

import (
	"errors"
	"fmt"

	"hydro-intrinsic/internal/market"
	"hydro-intrinsic/internal/optimizer"
	"hydro-intrinsic/internal/plant"
)

// ErrPriceLengthMismatch means the ID1/ID2 price vectors are not exactly
// (HoursPerDay/IntradayStepH)*D long (96*D with the defaults) for
// D = len(dayAhead)/HoursPerDay days.
var ErrPriceLengthMismatch = errors.New("orchestrator: intraday price length does not match the day-ahead horizon")

// Config holds the construction-time knobs of a rolling run.
type Config struct {
	// TimehorizonDays is how many days of day-ahead lookahead each
	// optimisation call sees (the source default is 7).
	TimehorizonDays int
	// EndLevelMWh is the required plant level at the end of every
	// optimisation horizon (the terminal-pinned boundary condition).
	EndLevelMWh float64
	// DayAheadStepH is the day-ahead slot duration in hours (1.0).
	DayAheadStepH float64
	// IntradayStepH is the ID1/ID2 slot duration in hours (0.25).
	IntradayStepH float64
	// HoursPerDay is the number of hours in one simulated day (24).
	HoursPerDay int
}

// DefaultConfig returns the source market model's defaults.
func DefaultConfig(endLevelMWh float64) Config {
	return Config{
		TimehorizonDays: 7,
		EndLevelMWh:     endLevelMWh,
		DayAheadStepH:   1.0,
		IntradayStepH:   0.25,
		HoursPerDay:     24,
	}
}

// DayResult summarizes one simulated day, passed to an optional observer.
type DayResult struct {
	Day             int
	RolledID1       bool
	RolledID2       bool
	ID1RollCashflow float64
	ID2RollCashflow float64
	SumDABaseline   float64
	SumID1OverDA    float64
	SumID2OverID1   float64
	EnergyLevelMWh  float64
	LastAction      plant.Action
}

// DayObserver is notified once per simulated day, after that day's ID2 roll
// and plant-state commit complete.
type DayObserver func(DayResult)

// Orchestrator drives a full multi-day rolling-intrinsic valuation run.
type Orchestrator struct {
	Model     *plant.Model
	Ledger    *market.Ledger
	Optimizer optimizer.ScheduleOptimizer
	State     *plant.State
	Config    Config

	OnDay DayObserver

	daPrices, id1Prices, id2Prices []float64
}

// New wires together an Orchestrator from its dependencies.
func New(model *plant.Model, ledger *market.Ledger, opt optimizer.ScheduleOptimizer, state *plant.State, cfg Config) *Orchestrator {
	return &Orchestrator{Model: model, Ledger: ledger, Optimizer: opt, State: state, Config: cfg}
}

// SetPrices installs the three market price timeseries for a run. da must
// be a multiple of HoursPerDay long; id1 and id2 must each be exactly
// (HoursPerDay/IntradayStepH)*D long for D = len(da)/HoursPerDay.
func (o *Orchestrator) SetPrices(da, id1, id2 []float64) error {
	if o.Config.HoursPerDay <= 0 {
		return fmt.Errorf("orchestrator: hours per day must be > 0")
	}
	if len(da)%o.Config.HoursPerDay != 0 {
		return fmt.Errorf("orchestrator: day-ahead length %d is not a multiple of %d hours", len(da), o.Config.HoursPerDay)
	}
	days := len(da) / o.Config.HoursPerDay
	stepsPerDay := int(float64(o.Config.HoursPerDay) / o.Config.IntradayStepH)
	want := days * stepsPerDay
	if len(id1) != want {
		return fmt.Errorf("%w: id1 has %d entries, want %d (%d days * %d steps/day)", ErrPriceLengthMismatch, len(id1), want, days, stepsPerDay)
	}
	if len(id2) != want {
		return fmt.Errorf("%w: id2 has %d entries, want %d (%d days * %d steps/day)", ErrPriceLengthMismatch, len(id2), want, days, stepsPerDay)
	}

	o.daPrices = da
	o.id1Prices = id1
	o.id2Prices = id2
	return nil
}

// Optimise runs the full rolling valuation day by day, mutating Ledger and
// State. It calls State.Clear first, so every run starts from level zero with
// an empty history; Ledger is not reset.
func (o *Orchestrator) Optimise() error {
	if o.daPrices == nil {
		return fmt.Errorf("orchestrator: SetPrices was not called")
	}

	o.State.Clear()

	hoursPerDay := o.Config.HoursPerDay
	stepsPerDayIntraday := int(float64(hoursPerDay) / o.Config.IntradayStepH)
	daPeriodsInDay := int(float64(hoursPerDay) / o.Config.DayAheadStepH)
	splitFactor := int(o.Config.DayAheadStepH / o.Config.IntradayStepH)

	days := len(o.daPrices) / hoursPerDay

	for day := 0; day < days; day++ {
		daWindow, daSteps := o.dayAheadWindow(day)
		scheduleDA, err := o.runOptimizer(daWindow, daSteps)
		if err != nil {
			return fmt.Errorf("orchestrator: day %d day-ahead schedule: %w", day, err)
		}

		n := min(daPeriodsInDay, len(daWindow), len(scheduleDA))
		o.Ledger.DoTransactionsDA(daWindow[:n], scheduleDA[:n], day)

		splitDA := splitFirstDaySlots(scheduleDA, splitFactor, daPeriodsInDay)

		id1Window, id1Steps := o.intradayWindow(o.id1Prices, o.Config.IntradayStepH, day)
		scheduleID1, rolled1, cf1, err := o.rollDay(id1Window, id1Steps, splitDA, day, market.RollID1OverDA, stepsPerDayIntraday)
		if err != nil {
			return fmt.Errorf("orchestrator: day %d intraday-1 roll: %w", day, err)
		}

		id2Window, id2Steps := o.intradayWindow(o.id2Prices, o.Config.IntradayStepH, day)
		scheduleID2, rolled2, cf2, err := o.rollDay(id2Window, id2Steps, scheduleID1, day, market.RollID2OverID1, stepsPerDayIntraday)
		if err != nil {
			return fmt.Errorf("orchestrator: day %d intraday-2 roll: %w", day, err)
		}

		commitN := min(stepsPerDayIntraday, len(id2Window), len(scheduleID2))
		if err := o.State.ExecuteSchedule(o.Model, id2Window[:commitN], day, scheduleID2[:commitN]); err != nil {
			return fmt.Errorf("orchestrator: day %d commit: %w", day, err)
		}

		if o.OnDay != nil {
			o.OnDay(DayResult{
				Day:             day,
				RolledID1:       rolled1,
				RolledID2:       rolled2,
				ID1RollCashflow: cf1,
				ID2RollCashflow: cf2,
				SumDABaseline:   o.Ledger.SumDABaseline,
				SumID1OverDA:    o.Ledger.SumID1OverDA,
				SumID2OverID1:   o.Ledger.SumID2OverID1,
				EnergyLevelMWh:  o.State.EnergyLevelMWh,
				LastAction:      o.State.LastAction,
			})
		}
	}

	return nil
}

func (o *Orchestrator) runOptimizer(prices, steps []float64) ([]float64, error) {
	res, err := o.Optimizer.Optimize(o.Model, optimizer.Request{
		Prices:             prices,
		StepHours:          steps,
		InitialLevelMWh:    o.State.EnergyLevelMWh,
		FinalLevelMWh:      o.Config.EndLevelMWh,
		PreviousLastAction: o.State.LastAction,
	})
	if err != nil {
		return nil, err
	}
	signed := make([]float64, len(prices))
	for i := range signed {
		signed[i] = res.SellMWh[i] - res.BuyMWh[i]
	}
	return signed, nil
}

// dayAheadWindow returns the day-ahead price/step window for a call at the
// start of day: the day-ahead timehorizon starting at this day.
func (o *Orchestrator) dayAheadWindow(day int) (prices, steps []float64) {
	n := len(o.daPrices)
	from := day * o.Config.HoursPerDay
	if from > n {
		from = n
	}
	to := (day + o.Config.TimehorizonDays) * o.Config.HoursPerDay
	if to > n {
		to = n
	}
	prices = o.daPrices[from:to]
	steps = make([]float64, len(prices))
	for i := range steps {
		steps[i] = o.Config.DayAheadStepH
	}
	return prices, steps
}

// intradayWindow returns the composite price/step window for an intraday
// roll call: the current day at intraday resolution, followed by the
// day-ahead lookahead tail for the remaining days in the horizon.
func (o *Orchestrator) intradayWindow(idPrices []float64, idStepH float64, day int) (prices, steps []float64) {
	stepsPerDayID := int(float64(o.Config.HoursPerDay) / idStepH)
	idFrom := day * stepsPerDayID
	idTo := (day + 1) * stepsPerDayID
	if idTo > len(idPrices) {
		idTo = len(idPrices)
	}
	if idFrom > idTo {
		idFrom = idTo
	}
	idSlice := idPrices[idFrom:idTo]

	n := len(o.daPrices)
	daFrom := (day + 1) * o.Config.HoursPerDay
	if daFrom > n {
		daFrom = n
	}
	daTo := (day + o.Config.TimehorizonDays) * o.Config.HoursPerDay
	if daTo > n {
		daTo = n
	}
	if daFrom > daTo {
		daFrom = daTo
	}
	daSlice := o.daPrices[daFrom:daTo]

	prices = make([]float64, 0, len(idSlice)+len(daSlice))
	prices = append(prices, idSlice...)
	prices = append(prices, daSlice...)

	steps = make([]float64, 0, len(prices))
	for range idSlice {
		steps = append(steps, idStepH)
	}
	for range daSlice {
		steps = append(steps, o.Config.DayAheadStepH)
	}
	return prices, steps
}

// splitFirstDaySlots divides each of the first daySlots entries of schedule
// into factor equal-MWh pieces (the day-ahead-hour to intraday-quarter-hour
// split in original_source/market.py's split_first_day_periode), leaving
// any lookahead tail untouched.
func splitFirstDaySlots(schedule []float64, factor, daySlots int) []float64 {
	n := daySlots
	if n > len(schedule) {
		n = len(schedule)
	}
	out := make([]float64, 0, n*factor+len(schedule)-n)
	for i := 0; i < n; i++ {
		v := schedule[i] / float64(factor)
		for k := 0; k < factor; k++ {
			out = append(out, v)
		}
	}
	out = append(out, schedule[n:]...)
	return out
}

// rollDay re-optimises over price/steps and compares the resulting schedule
// against the previously committed one over the first windowLen slots. The
// roll is accepted only if it strictly improves cash (cumulative delta
// cashflow > 0); a rejected roll keeps the previous schedule and books a
// zero-cashflow transaction so the ledger's per-day history stays complete.
func (o *Orchestrator) rollDay(prices, steps, previousSchedule []float64, day int, kind market.RollKind, windowLen int) (adopted []float64, rolled bool, cashflow float64, err error) {
	candidate, err := o.runOptimizer(prices, steps)
	if err != nil {
		return nil, false, 0, err
	}

	n := min(windowLen, len(candidate), len(previousSchedule), len(prices))

	delta := make([]float64, n)
	for i := 0; i < n; i++ {
		delta[i] = candidate[i] - previousSchedule[i]
	}
	rollCF := market.Cashflow(prices[:n], delta)
	var total float64
	for _, v := range rollCF {
		total += v
	}

	if total > 0 {
		if _, err := o.Ledger.DoTransactionsID(prices[:n], delta, day, kind); err != nil {
			return nil, false, 0, err
		}
		return candidate, true, total, nil
	}

	zero := make([]float64, n)
	if _, err := o.Ledger.DoTransactionsID(prices[:n], zero, day, kind); err != nil {
		return nil, false, 0, err
	}
	return previousSchedule, false, total, nil
}
