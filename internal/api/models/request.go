package models

import "hydro-intrinsic/internal/config"

// OptimiseRequest drives one rolling-intrinsic valuation run. Either
// PlantName (a catalog preset) or Plant (an inline override) must resolve to
// a usable plant.Model; Plant fields, when set, override the named preset
// field-by-field.
type OptimiseRequest struct {
	PlantName string             `json:"plant_name"`
	Plant     config.PlantConfig `json:"plant"`

	Orchestrator config.OrchestratorConfig `json:"orchestrator"`

	DayAheadPrices  []float64 `json:"day_ahead_prices" binding:"required"`
	Intraday1Prices []float64 `json:"intraday_1_prices" binding:"required"`
	Intraday2Prices []float64 `json:"intraday_2_prices" binding:"required"`
}

// RankRequest ranks a batch of named day-ahead price series by arbitrage
// potential.
type RankRequest struct {
	StepHours float64              `json:"step_hours"`
	Series    map[string][]float64 `json:"series" binding:"required"`
}
