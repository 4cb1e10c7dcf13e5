package plant_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hydro-intrinsic/internal/plant"
)

func TestExecuteScheduleAppliesPumpEfficiencyOnlyToPurchases(t *testing.T) {
	m, err := plant.New(10, 10, 100, 0.8, plant.GridOptions{})
	require.NoError(t, err)

	s := plant.NewState()
	prices := []float64{50, 50}
	schedule := []float64{-10, 5} // buy 10, sell 5

	require.NoError(t, s.ExecuteSchedule(m, prices, 0, schedule))

	// Cashflow is booked on the gross schedule.
	require.InDelta(t, -500.0, s.CashflowSchedule[0], 1e-9)
	require.InDelta(t, 250.0, s.CashflowSchedule[1], 1e-9)

	// Stored executed schedule derates only the negative (purchase) entry.
	require.InDelta(t, -8.0, s.ExecutedSchedule[0], 1e-9)
	require.InDelta(t, 5.0, s.ExecutedSchedule[1], 1e-9)

	require.InDelta(t, 3.0, s.EnergyLevelMWh, 1e-9)
	require.Equal(t, plant.ActionTurbine, s.LastAction)
}

func TestClearResetsAllHistoryIncludingCashflow(t *testing.T) {
	m, err := plant.New(10, 10, 100, 0.9, plant.GridOptions{})
	require.NoError(t, err)

	s := plant.NewState()
	require.NoError(t, s.ExecuteSchedule(m, []float64{10}, 0, []float64{-2}))
	require.NotEmpty(t, s.CashflowSchedule)

	s.Clear()
	require.Empty(t, s.ExecutedSchedule)
	require.Empty(t, s.CashflowSchedule)
	require.Empty(t, s.Prices)
	require.Equal(t, 0.0, s.EnergyLevelMWh)
	require.Equal(t, plant.ActionIdle, s.LastAction)
}

func TestExecuteScheduleRejectsMismatchedLengths(t *testing.T) {
	m, err := plant.New(10, 10, 100, 0.9, plant.GridOptions{})
	require.NoError(t, err)

	s := plant.NewState()
	err = s.ExecuteSchedule(m, []float64{1, 2}, 0, []float64{1})
	require.Error(t, err)
}
