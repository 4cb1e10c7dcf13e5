// Package optimizer implements the backward-induction dynamic programming
// schedule optimizer: given a price/duration vector and boundary levels, it
// returns the profit-maximal pump/idle/turbine schedule.
package optimizer

import "hydro-intrinsic/internal/plant"

// Request is one call to the schedule optimizer.
type Request struct {
	// Prices holds one price per slot, in the slot's native currency per
	// MWh.
	Prices []float64
	// StepHours holds the duration of each slot in hours; must be the same
	// length as Prices.
	StepHours []float64
	// InitialLevelMWh is the plant's energy level at the start of the
	// horizon, snapped to the nearest grid index.
	InitialLevelMWh float64
	// FinalLevelMWh is the required energy level at the end of the
	// horizon, snapped to the nearest grid index.
	FinalLevelMWh float64
	// PreviousLastAction is the action taken in the slot immediately
	// preceding this horizon, used only to forbid repeating that action in
	// slot 0 (see the DP kernel's boundary rule).
	PreviousLastAction plant.Action
}

// Result is the profit-maximal action sequence for one Request. SellMWh and
// BuyMWh are mutually exclusive per slot (turbine sells, pump buys, idle
// does neither).
type Result struct {
	SellMWh   []float64
	BuyMWh    []float64
	LevelMWh  []float64
	ProfitEUR float64
}

// ScheduleOptimizer maps a Request to the profit-maximal schedule. Pure: no
// side effects, safe for concurrent calls with distinct Requests.
type ScheduleOptimizer interface {
	Optimize(model *plant.Model, req Request) (Result, error)
}
