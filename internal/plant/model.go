// Package plant implements the physical description and mutable simulation
// state of a pump-storage plant, including the integer energy-level grid the
// schedule optimizer operates on.
package plant

import (
	"errors"
	"fmt"
	"math"
)

const (
	defaultMinTimestepH         = 0.25
	defaultPrecisionDenominator = 100000

	// deltaTolerance bounds the rounding error tolerated when checking that
	// a pump/turbine level delta for a given step duration is an exact grid
	// step. Construction of the grid quantum guarantees this for the two
	// supported durations (0.25h and 1h); this only guards against a
	// caller-supplied duration that was never validated at construction.
	deltaTolerance = 1e-6
)

// ErrGridDerivation is returned when the pump/turbine level quanta are
// degenerate (their GCD collapses to zero) for the given parameters, or when
// a requested level delta is not an exact number of grid steps.
var ErrGridDerivation = errors.New("plant: grid derivation failed")

// Model is the immutable physical description of a pump-storage plant:
// max turbine/pump power, reservoir capacity, and round-trip pump
// efficiency. It also derives and owns the integer energy-level grid the
// optimizer works on.
type Model struct {
	MaxTurbPowerMW float64
	MaxPumpPowerMW float64
	MaxLevelMWh    float64
	PumpEfficiency float64

	quantumMWh   float64
	numLevels    int
	minTimestepH float64
	precision    int64
}

// GridOptions configures grid derivation. Zero values fall back to the
// spec defaults (min_timestep_h=0.25, precision_denominator=100000).
type GridOptions struct {
	MinTimestepH         float64
	PrecisionDenominator int64
}

// New validates the physical parameters and derives the energy-level grid.
func New(maxTurbPowerMW, maxPumpPowerMW, maxLevelMWh, pumpEfficiency float64, opts GridOptions) (*Model, error) {
	if maxTurbPowerMW <= 0 {
		return nil, fmt.Errorf("plant: max turbine power must be > 0")
	}
	if maxPumpPowerMW <= 0 {
		return nil, fmt.Errorf("plant: max pump power must be > 0")
	}
	if maxLevelMWh <= 0 {
		return nil, fmt.Errorf("plant: max level must be > 0")
	}
	if pumpEfficiency <= 0 || pumpEfficiency > 1 {
		return nil, fmt.Errorf("plant: pump efficiency must be in (0, 1]")
	}

	minStep := opts.MinTimestepH
	if minStep <= 0 {
		minStep = defaultMinTimestepH
	}
	precision := opts.PrecisionDenominator
	if precision <= 0 {
		precision = defaultPrecisionDenominator
	}

	pumpQuantum := int64(math.Floor(maxPumpPowerMW * minStep * pumpEfficiency * float64(precision)))
	turbQuantum := int64(math.Floor(maxTurbPowerMW * minStep * float64(precision)))
	g := gcd(pumpQuantum, turbQuantum)
	if g <= 0 {
		return nil, fmt.Errorf("%w: degenerate pump/turbine quanta for the given parameters", ErrGridDerivation)
	}
	quantum := float64(g) / float64(precision)

	m := &Model{
		MaxTurbPowerMW: maxTurbPowerMW,
		MaxPumpPowerMW: maxPumpPowerMW,
		MaxLevelMWh:    maxLevelMWh,
		PumpEfficiency: pumpEfficiency,
		quantumMWh:     quantum,
		minTimestepH:   minStep,
		precision:      precision,
	}
	m.numLevels = int(math.Floor(maxLevelMWh/quantum)) + 1
	if m.numLevels < 1 {
		return nil, fmt.Errorf("%w: derived grid has no levels", ErrGridDerivation)
	}
	return m, nil
}

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// QuantumMWh is the atomic energy-level step q.
func (m *Model) QuantumMWh() float64 { return m.quantumMWh }

// NumLevels is the number of grid points N.
func (m *Model) NumLevels() int { return m.numLevels }

// LevelIndex snaps an energy level in MWh to the nearest grid index, clamped
// to [0, NumLevels-1].
func (m *Model) LevelIndex(levelMWh float64) int {
	idx := int(math.Round(levelMWh / m.quantumMWh))
	if idx < 0 {
		idx = 0
	}
	if idx > m.numLevels-1 {
		idx = m.numLevels - 1
	}
	return idx
}

// LevelMWh converts a grid index back to MWh.
func (m *Model) LevelMWh(index int) float64 {
	return float64(index) * m.quantumMWh
}

// PumpLevelDelta returns the number of grid steps a pump action over
// durationH raises the level index by. Returns ErrGridDerivation if the
// delta is not an exact integer number of grid steps.
func (m *Model) PumpLevelDelta(durationH float64) (int, error) {
	return m.exactDelta(m.MaxPumpPowerMW*m.PumpEfficiency, durationH)
}

// TurbineLevelDelta returns the number of grid steps a turbine action over
// durationH lowers the level index by.
func (m *Model) TurbineLevelDelta(durationH float64) (int, error) {
	return m.exactDelta(m.MaxTurbPowerMW, durationH)
}

func (m *Model) exactDelta(powerMW, durationH float64) (int, error) {
	raw := powerMW * durationH / m.quantumMWh
	rounded := math.Round(raw)
	if math.Abs(raw-rounded) > deltaTolerance {
		return 0, fmt.Errorf("%w: non-integer level delta (power=%.6f duration=%.6fh -> %.6f grid steps)", ErrGridDerivation, powerMW, durationH, raw)
	}
	return int(rounded), nil
}
