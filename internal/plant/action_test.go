package plant_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hydro-intrinsic/internal/plant"
)

func TestActionFromSignedMWh(t *testing.T) {
	require.Equal(t, plant.ActionTurbine, plant.ActionFromSignedMWh(3.5))
	require.Equal(t, plant.ActionPump, plant.ActionFromSignedMWh(-1.2))
	require.Equal(t, plant.ActionIdle, plant.ActionFromSignedMWh(0))
}

func TestActionString(t *testing.T) {
	require.Equal(t, "PUMP", plant.ActionPump.String())
	require.Equal(t, "TURBINE", plant.ActionTurbine.String())
	require.Equal(t, "IDLE", plant.ActionIdle.String())
}
