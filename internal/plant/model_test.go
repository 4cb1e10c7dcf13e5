package plant_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hydro-intrinsic/internal/plant"
)

func TestNewDerivesIntegerGrid(t *testing.T) {
	m, err := plant.New(1000, 1000, 38670, 0.85, plant.GridOptions{})
	require.NoError(t, err)
	require.Greater(t, m.QuantumMWh(), 0.0)
	require.Greater(t, m.NumLevels(), 1)

	pumpDelta, err := m.PumpLevelDelta(0.25)
	require.NoError(t, err)
	require.Greater(t, pumpDelta, 0)

	turbDelta, err := m.TurbineLevelDelta(0.25)
	require.NoError(t, err)
	require.Greater(t, turbDelta, 0)
}

func TestNewRejectsInvalidParameters(t *testing.T) {
	cases := []struct {
		name                                                     string
		turb, pump, level, eff                                   float64
	}{
		{"zero turbine power", 0, 100, 100, 0.9},
		{"zero pump power", 100, 0, 100, 0.9},
		{"zero level", 100, 100, 0, 0.9},
		{"efficiency above one", 100, 100, 100, 1.5},
		{"efficiency zero", 100, 100, 100, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := plant.New(c.turb, c.pump, c.level, c.eff, plant.GridOptions{})
			require.Error(t, err)
		})
	}
}

func TestLevelIndexRoundTripClampsToGrid(t *testing.T) {
	m, err := plant.New(10, 10, 100, 0.9, plant.GridOptions{})
	require.NoError(t, err)

	require.Equal(t, 0, m.LevelIndex(-5))
	require.Equal(t, m.NumLevels()-1, m.LevelIndex(1e9))

	idx := m.LevelIndex(50)
	require.InDelta(t, 50, m.LevelMWh(idx), m.QuantumMWh())
}

func TestExactDeltaRejectsNonIntegerSteps(t *testing.T) {
	m, err := plant.New(10, 10, 100, 0.9, plant.GridOptions{})
	require.NoError(t, err)

	_, err = m.PumpLevelDelta(0.123456789)
	require.Error(t, err)
	require.ErrorIs(t, err, plant.ErrGridDerivation)
}
