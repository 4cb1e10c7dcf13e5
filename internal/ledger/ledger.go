// Package ledger assembles a per-slot, per-day audit trail of a rolling run
// and validates it for self-consistency, replacing the teacher's
// internal/backtest ledger/engine pair.
package ledger

import (
	"fmt"

	"hydro-intrinsic/internal/plant"
)

// Row is one committed ID2 slot. NetMWh is the efficiency-derated quantity
// actually stored/withdrawn; Cashflow is booked on the gross (pre-derating)
// quantity, matching PlantState.ExecuteSchedule.
type Row struct {
	Day    int
	Slot   int
	Price  float64
	Action plant.Action

	NetMWh   float64
	Cashflow float64

	LevelMWh float64
}

// Build walks State's appended history and the committed per-day schedule
// length (stepsPerDay) into a flat row list.
func Build(state *plant.State, stepsPerDay int) []Row {
	rows := make([]Row, 0, len(state.ExecutedSchedule))
	for i, net := range state.ExecutedSchedule {
		rows = append(rows, Row{
			Day:      i / stepsPerDay,
			Slot:     i % stepsPerDay,
			Price:    state.Prices[i],
			Action:   plant.ActionFromSignedMWh(net),
			NetMWh:   net,
			Cashflow: state.CashflowSchedule[i],
		})
	}
	annotateLevels(rows, stepsPerDay)
	return rows
}

// annotateLevels fills in the resulting level after each row by replaying
// the cumulative sum of net MWh, mirroring PlantState.EnergyLevelMWh's
// -sum(executed_schedule) definition.
func annotateLevels(rows []Row, stepsPerDay int) {
	var cum float64
	for i := range rows {
		cum += rows[i].NetMWh
		rows[i].LevelMWh = -cum
	}
}

// Validate checks that every row's resulting level sits within
// [0, maxLevelMWh]. It does not check cashflow against price*net (cashflow
// is booked on the gross quantity, NetMWh is derated), and it does not compare against market.Ledger's
// bucketed totals, which are booked at each roll's own price and are not
// expected to equal a single-price repricing of the final committed
// schedule (that divergence is the entire point of rolling intrinsic
// valuation).
func Validate(rows []Row, maxLevelMWh float64) error {
	for _, r := range rows {
		if r.LevelMWh < -1e-6 || r.LevelMWh > maxLevelMWh+1e-6 {
			return fmt.Errorf("ledger: day %d slot %d level %.6f MWh out of bounds [0, %.6f]", r.Day, r.Slot, r.LevelMWh, maxLevelMWh)
		}
	}
	return nil
}
