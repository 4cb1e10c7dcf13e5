package orchestrator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hydro-intrinsic/internal/market"
	"hydro-intrinsic/internal/optimizer"
	"hydro-intrinsic/internal/orchestrator"
	"hydro-intrinsic/internal/plant"
)

func newOneDayOrchestrator(t *testing.T) (*orchestrator.Orchestrator, *market.Ledger, *plant.State) {
	t.Helper()
	m, err := plant.New(1, 1, 1, 1, plant.GridOptions{MinTimestepH: 1})
	require.NoError(t, err)

	ledg := market.New()
	state := plant.NewState()
	orch := orchestrator.New(m, ledg, optimizer.DP{}, state, orchestrator.Config{
		TimehorizonDays: 1,
		EndLevelMWh:     0,
		DayAheadStepH:   1,
		IntradayStepH:   1,
		HoursPerDay:     4,
	})
	return orch, ledg, state
}

func TestSetPricesRejectsMismatchedIntradayLength(t *testing.T) {
	orch, _, _ := newOneDayOrchestrator(t)
	err := orch.SetPrices([]float64{1, 2, 3, 4}, []float64{1, 2, 3}, []float64{1, 2, 3, 4})
	require.Error(t, err)
	require.ErrorIs(t, err, orchestrator.ErrPriceLengthMismatch)
}

func TestOptimiseWithIdenticalMarketsNeverRolls(t *testing.T) {
	orch, ledg, state := newOneDayOrchestrator(t)

	prices := []float64{10, 100, 10, 100}
	require.NoError(t, orch.SetPrices(prices, prices, prices))

	var days []orchestrator.DayResult
	orch.OnDay = func(d orchestrator.DayResult) { days = append(days, d) }

	require.NoError(t, orch.Optimise())
	require.Len(t, days, 1)

	d := days[0]
	require.False(t, d.RolledID1)
	require.False(t, d.RolledID2)
	require.InDelta(t, 0.0, d.ID1RollCashflow, 1e-9)
	require.InDelta(t, 0.0, d.ID2RollCashflow, 1e-9)
	require.InDelta(t, 90.0, ledg.SumDABaseline, 1e-6)
	require.InDelta(t, 0.0, ledg.SumID1OverDA, 1e-9)
	require.InDelta(t, 0.0, ledg.SumID2OverID1, 1e-9)
	require.InDelta(t, 0.0, state.EnergyLevelMWh, 1e-6)
	require.Equal(t, plant.ActionTurbine, state.LastAction)
}

func TestOptimiseRollsWhenIntradayImprovesOnDayAhead(t *testing.T) {
	orch, ledg, _ := newOneDayOrchestrator(t)

	da := []float64{50, 50, 50, 50}
	id1 := []float64{10, 200, 10, 200}
	id2 := id1

	require.NoError(t, orch.SetPrices(da, id1, id2))

	var days []orchestrator.DayResult
	orch.OnDay = func(d orchestrator.DayResult) { days = append(days, d) }

	require.NoError(t, orch.Optimise())
	require.True(t, days[0].RolledID1)
	require.Greater(t, ledg.SumID1OverDA, 0.0)
}
