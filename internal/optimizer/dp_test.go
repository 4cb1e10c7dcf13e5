package optimizer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hydro-intrinsic/internal/optimizer"
	"hydro-intrinsic/internal/plant"
)

func canonicalModel(t *testing.T) *plant.Model {
	t.Helper()
	m, err := plant.New(1, 1, 1, 1, plant.GridOptions{MinTimestepH: 1})
	require.NoError(t, err)
	return m
}

func TestOptimizeArbitragesALowHighPair(t *testing.T) {
	m := canonicalModel(t)
	dp := optimizer.DP{}

	// Pump may not be directly followed by turbine, so the low/high pair is
	// separated by one idle slot.
	res, err := dp.Optimize(m, optimizer.Request{
		Prices:             []float64{10, 50, 100},
		StepHours:          []float64{1, 1, 1},
		InitialLevelMWh:    0,
		FinalLevelMWh:      0,
		PreviousLastAction: plant.ActionIdle,
	})
	require.NoError(t, err)
	require.InDelta(t, 90.0, res.ProfitEUR, 1e-6)
	require.InDelta(t, 1.0, res.BuyMWh[0], 1e-6)
	require.InDelta(t, 1.0, res.SellMWh[2], 1e-6)
}

func TestOptimizeIdlesWhenNoArbitrage(t *testing.T) {
	m := canonicalModel(t)
	dp := optimizer.DP{}

	res, err := dp.Optimize(m, optimizer.Request{
		Prices:             []float64{50, 50, 50},
		StepHours:          []float64{1, 1, 1},
		InitialLevelMWh:    0,
		FinalLevelMWh:      0,
		PreviousLastAction: plant.ActionIdle,
	})
	require.NoError(t, err)
	require.InDelta(t, 0.0, res.ProfitEUR, 1e-6)
	for i := range res.SellMWh {
		require.InDelta(t, 0.0, res.SellMWh[i], 1e-9)
		require.InDelta(t, 0.0, res.BuyMWh[i], 1e-9)
	}
}

func TestOptimizeForbidsInfeasibleBoundary(t *testing.T) {
	// Reaching 2 MWh from empty takes two 1 MWh pump slots; one is not enough.
	m, err := plant.New(1, 1, 2, 1, plant.GridOptions{MinTimestepH: 1})
	require.NoError(t, err)
	dp := optimizer.DP{}

	_, err = dp.Optimize(m, optimizer.Request{
		Prices:             []float64{1},
		StepHours:          []float64{1},
		InitialLevelMWh:    0,
		FinalLevelMWh:      2,
		PreviousLastAction: plant.ActionIdle,
	})
	require.Error(t, err)
	require.ErrorIs(t, err, optimizer.ErrInfeasibleHorizon)
}

func TestOptimizeForbidsRepeatingPreviousActionAtSlotZero(t *testing.T) {
	m := canonicalModel(t)
	dp := optimizer.DP{}

	// Previous last action was pump; a strict price incentive to pump again
	// immediately (buy at 1, idle, sell at 100) must still be refused in
	// slot 0.
	res, err := dp.Optimize(m, optimizer.Request{
		Prices:             []float64{1, 50, 100},
		StepHours:          []float64{1, 1, 1},
		InitialLevelMWh:    0,
		FinalLevelMWh:      0,
		PreviousLastAction: plant.ActionPump,
	})
	require.NoError(t, err)
	require.InDelta(t, 0.0, res.BuyMWh[0], 1e-9)
}

func TestOptimizeRejectsMismatchedStepLength(t *testing.T) {
	m := canonicalModel(t)
	dp := optimizer.DP{}

	_, err := dp.Optimize(m, optimizer.Request{
		Prices:    []float64{1, 2},
		StepHours: []float64{1},
	})
	require.Error(t, err)
}

func TestOptimizeConcurrentMatchesSequential(t *testing.T) {
	// 200 MWh at a 0.25 MWh quantum gives 801 levels, enough for 8
	// goroutines to take the parallel path.
	m, err := plant.New(10, 10, 200, 0.9, plant.GridOptions{MinTimestepH: 0.25})
	require.NoError(t, err)

	prices := make([]float64, 200)
	steps := make([]float64, 200)
	for i := range prices {
		steps[i] = 0.25
		prices[i] = float64((i*37)%23) - 5
	}

	req := optimizer.Request{
		Prices:             prices,
		StepHours:          steps,
		InitialLevelMWh:    0,
		FinalLevelMWh:      0,
		PreviousLastAction: plant.ActionIdle,
	}

	seq, err := optimizer.DP{Concurrency: 1}.Optimize(m, req)
	require.NoError(t, err)
	par, err := optimizer.DP{Concurrency: 8}.Optimize(m, req)
	require.NoError(t, err)

	require.InDelta(t, seq.ProfitEUR, par.ProfitEUR, 1e-6)
}
