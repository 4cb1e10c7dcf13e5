package plant

import "fmt"

// State is the mutable simulation state of a pump-storage plant: its
// current energy level, the last committed action, and the full
// appended history of committed schedule/cashflow/price data.
type State struct {
	EnergyLevelMWh float64
	LastAction     Action

	// ExecutedSchedule holds net (efficiency-derated) signed MWh per
	// committed slot: positive sold to the grid, negative bought from it.
	ExecutedSchedule []float64
	// CashflowSchedule holds realized cashflow per committed slot, computed
	// on the gross (pre-derating) signed MWh, matching execute_schedule.
	CashflowSchedule []float64
	// Prices holds the realized ID2 price per committed slot.
	Prices []float64

	sumExecuted float64
}

// NewState returns a zeroed plant state.
func NewState() *State {
	return &State{}
}

// Clear resets the level, last action, and all appended history. The source
// implementation's PlantState.clear leaves cashflow_schedule untouched,
// which the design notes call a bug; this resets it too so repeated runs on
// one State start from an empty ledger.
func (s *State) Clear() {
	s.EnergyLevelMWh = 0
	s.LastAction = ActionIdle
	s.ExecutedSchedule = s.ExecutedSchedule[:0]
	s.CashflowSchedule = s.CashflowSchedule[:0]
	s.Prices = s.Prices[:0]
	s.sumExecuted = 0
}

// ExecuteSchedule commits one day's realized schedule onto the state.
// schedule is signed MWh per slot (positive sold, negative bought) at ID2
// resolution; prices is the realized ID2 price per slot. Cashflow is booked
// against the gross (unmodified) schedule; the stored executed schedule and
// resulting energy level are derated by pump efficiency on the negative
// (purchase) entries, matching execute_schedule in the source market model.
func (s *State) ExecuteSchedule(model *Model, prices []float64, dayIndex int, schedule []float64) error {
	if len(prices) != len(schedule) {
		return fmt.Errorf("plant: execute schedule day %d: prices len %d != schedule len %d", dayIndex, len(prices), len(schedule))
	}
	if len(schedule) == 0 {
		return fmt.Errorf("plant: execute schedule day %d: empty schedule", dayIndex)
	}

	for i, sell := range schedule {
		s.CashflowSchedule = append(s.CashflowSchedule, prices[i]*sell)
	}
	s.Prices = append(s.Prices, prices...)

	for _, v := range schedule {
		net := v
		if net < 0 {
			net *= model.PumpEfficiency
		}
		s.ExecutedSchedule = append(s.ExecutedSchedule, net)
		s.sumExecuted += net
	}

	s.LastAction = ActionFromSignedMWh(schedule[len(schedule)-1])
	s.EnergyLevelMWh = -s.sumExecuted
	return nil
}
