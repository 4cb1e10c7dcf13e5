package data

import (
	"encoding/json"
	"fmt"
	"os"

	"hydro-intrinsic/internal/config"
)

// Fixture bundles everything one rolling-intrinsic run needs: the plant and
// orchestrator configuration plus the three market price timeseries,
// replacing the teacher's single-node Grid Status JSON response shape.
type Fixture struct {
	Plant        config.PlantConfig        `json:"plant"`
	Orchestrator config.OrchestratorConfig `json:"orchestrator"`

	// DayAheadPrices is hourly, length a multiple of HoursPerDay.
	DayAheadPrices []float64 `json:"day_ahead_prices"`
	// Intraday1Prices and Intraday2Prices are quarter-hourly, each exactly
	// (HoursPerDay/IntradayStepH)*D long for D = len(DayAheadPrices)/HoursPerDay.
	Intraday1Prices []float64 `json:"intraday_1_prices"`
	Intraday2Prices []float64 `json:"intraday_2_prices"`
}

// LoadFixture reads a price/config fixture from a JSON file.
func LoadFixture(path string) (*Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("data: read fixture: %w", err)
	}
	var f Fixture
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("data: parse fixture: %w", err)
	}
	if f.Orchestrator.TimehorizonDays == 0 {
		f.Orchestrator.TimehorizonDays = 7
	}
	if f.Orchestrator.DayAheadStepH == 0 {
		f.Orchestrator.DayAheadStepH = 1.0
	}
	if f.Orchestrator.IntradayStepH == 0 {
		f.Orchestrator.IntradayStepH = 0.25
	}
	if f.Orchestrator.HoursPerDay == 0 {
		f.Orchestrator.HoursPerDay = 24
	}
	return &f, nil
}
