// Package config loads the YAML configuration for a rolling-intrinsic run:
// the plant's physical parameters and the orchestrator's construction-time
// options, following the teacher's battery_file-indirection pattern for
// plant presets.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"hydro-intrinsic/internal/orchestrator"
	"hydro-intrinsic/internal/plant"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// PlantFile, if set, names a YAML file holding a named plant preset
	// (see internal/data.Preset). Fields set directly on Plant override the
	// loaded preset.
	PlantFile    string             `yaml:"plant_file"`
	Plant        PlantConfig        `yaml:"plant"`
	Orchestrator OrchestratorConfig `yaml:"orchestrator"`
}

// PlantConfig mirrors plant.Model's constructor parameters.
type PlantConfig struct {
	Name           string  `yaml:"name" json:"name"`
	MaxTurbPowerMW float64 `yaml:"max_turb_power_mw" json:"max_turb_power_mw"`
	MaxPumpPowerMW float64 `yaml:"max_pump_power_mw" json:"max_pump_power_mw"`
	MaxLevelMWh    float64 `yaml:"max_level_mwh" json:"max_level_mwh"`
	PumpEfficiency float64 `yaml:"pump_efficiency" json:"pump_efficiency"`
}

// OrchestratorConfig mirrors orchestrator.Config.
type OrchestratorConfig struct {
	TimehorizonDays int     `yaml:"timehorizon_days" json:"timehorizon_days"`
	EndLevelMWh     float64 `yaml:"end_level_mwh" json:"end_level_mwh"`
	DayAheadStepH   float64 `yaml:"day_ahead_step_h" json:"day_ahead_step_h"`
	IntradayStepH   float64 `yaml:"intraday_step_h" json:"intraday_step_h"`
	HoursPerDay     int     `yaml:"hours_per_day" json:"hours_per_day"`
	// MinTimestepH and PrecisionDenominator feed plant.GridOptions; both
	// default to the spec constants when zero.
	MinTimestepH         float64 `yaml:"min_timestep_h" json:"min_timestep_h"`
	PrecisionDenominator int64   `yaml:"precision_denominator" json:"precision_denominator"`
}

// Load reads, merges and validates a config file.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it. Useful
// for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}

	if c.PlantFile != "" {
		plantPath := c.PlantFile
		if !filepath.IsAbs(plantPath) {
			cand := filepath.Join(filepath.Dir(path), plantPath)
			if _, err := os.Stat(cand); err == nil {
				plantPath = cand
			}
		}
		loaded, err := loadPlantFile(plantPath)
		if err != nil {
			return nil, err
		}
		c.Plant = MergePlant(loaded, c.Plant)
	}

	if c.Orchestrator.TimehorizonDays == 0 {
		c.Orchestrator.TimehorizonDays = 7
	}
	if c.Orchestrator.DayAheadStepH == 0 {
		c.Orchestrator.DayAheadStepH = 1.0
	}
	if c.Orchestrator.IntradayStepH == 0 {
		c.Orchestrator.IntradayStepH = 0.25
	}
	if c.Orchestrator.HoursPerDay == 0 {
		c.Orchestrator.HoursPerDay = 24
	}

	return &c, nil
}

// Validate builds a plant.Model from the plant section (with default grid
// options) and checks that end_level_mwh is non-negative, to surface invalid
// parameters before a run starts. Other orchestrator options are not checked.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if _, err := c.Plant.ToModel(); err != nil {
		return fmt.Errorf("plant config invalid: %w", err)
	}
	if c.Orchestrator.EndLevelMWh < 0 {
		return errors.New("orchestrator.end_level_mwh must be >= 0")
	}
	return nil
}

// ToModel constructs a plant.Model from the config, deriving the grid from
// the orchestrator's step-size options.
func (c *Config) ToModel() (*plant.Model, error) {
	return c.Plant.ToModelWithGrid(plant.GridOptions{
		MinTimestepH:         c.Orchestrator.MinTimestepH,
		PrecisionDenominator: c.Orchestrator.PrecisionDenominator,
	})
}

// ToOrchestratorConfig builds an orchestrator.Config from the YAML shape.
func (c *Config) ToOrchestratorConfig() orchestrator.Config {
	return orchestrator.Config{
		TimehorizonDays: c.Orchestrator.TimehorizonDays,
		EndLevelMWh:     c.Orchestrator.EndLevelMWh,
		DayAheadStepH:   c.Orchestrator.DayAheadStepH,
		IntradayStepH:   c.Orchestrator.IntradayStepH,
		HoursPerDay:     c.Orchestrator.HoursPerDay,
	}
}

// ToModel constructs a plant.Model using default grid options.
func (p PlantConfig) ToModel() (*plant.Model, error) {
	return p.ToModelWithGrid(plant.GridOptions{})
}

func (p PlantConfig) ToModelWithGrid(opts plant.GridOptions) (*plant.Model, error) {
	return plant.New(p.MaxTurbPowerMW, p.MaxPumpPowerMW, p.MaxLevelMWh, p.PumpEfficiency, opts)
}

type plantFileWrapper struct {
	Plant PlantConfig `yaml:"plant"`
}

func loadPlantFile(path string) (PlantConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return PlantConfig{}, err
	}
	var w plantFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return PlantConfig{}, err
	}
	return w.Plant, nil
}

// MergePlant overlays non-zero fields from override onto base. Used when
// loading a plant preset file and then applying request-level overrides.
func MergePlant(base, override PlantConfig) PlantConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.MaxTurbPowerMW != 0 {
		out.MaxTurbPowerMW = override.MaxTurbPowerMW
	}
	if override.MaxPumpPowerMW != 0 {
		out.MaxPumpPowerMW = override.MaxPumpPowerMW
	}
	if override.MaxLevelMWh != 0 {
		out.MaxLevelMWh = override.MaxLevelMWh
	}
	if override.PumpEfficiency != 0 {
		out.PumpEfficiency = override.PumpEfficiency
	}
	return out
}
