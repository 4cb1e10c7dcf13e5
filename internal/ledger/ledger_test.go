package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hydro-intrinsic/internal/ledger"
	"hydro-intrinsic/internal/plant"
)

func TestBuildAnnotatesDayAndSlotAndRunningLevel(t *testing.T) {
	m, err := plant.New(1, 1, 10, 1, plant.GridOptions{MinTimestepH: 1})
	require.NoError(t, err)

	s := plant.NewState()
	require.NoError(t, s.ExecuteSchedule(m, []float64{10, 10}, 0, []float64{-1, 0}))
	require.NoError(t, s.ExecuteSchedule(m, []float64{20, 20}, 1, []float64{1, 0}))

	rows := ledger.Build(s, 2)
	require.Len(t, rows, 4)

	require.Equal(t, 0, rows[0].Day)
	require.Equal(t, 0, rows[0].Slot)
	require.Equal(t, 1, rows[1].Slot)
	require.Equal(t, 1, rows[2].Day)
	require.Equal(t, 0, rows[2].Slot)

	require.InDelta(t, 1.0, rows[0].LevelMWh, 1e-9)
	require.InDelta(t, 1.0, rows[1].LevelMWh, 1e-9)
	require.InDelta(t, 0.0, rows[2].LevelMWh, 1e-9)

	require.Equal(t, plant.ActionPump, rows[0].Action)
	require.Equal(t, plant.ActionIdle, rows[1].Action)
	require.Equal(t, plant.ActionTurbine, rows[2].Action)
}

func TestValidateRejectsOutOfBoundsLevel(t *testing.T) {
	rows := []ledger.Row{{LevelMWh: -1}}
	require.Error(t, ledger.Validate(rows, 10))

	rows = []ledger.Row{{LevelMWh: 11}}
	require.Error(t, ledger.Validate(rows, 10))

	rows = []ledger.Row{{LevelMWh: 5}}
	require.NoError(t, ledger.Validate(rows, 10))
}
