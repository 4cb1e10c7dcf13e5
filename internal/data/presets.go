// Package data loads the collaborator-facing inputs around the core: named
// plant presets, price/config fixtures, and a down-sampling helper for
// coarser day-ahead series.
package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"hydro-intrinsic/internal/config"
)

// Preset is a named, real-world pump-storage plant. The three defaults
// below are recovered from original_source/powerplant.py, which the
// distilled spec calls out only as "preset examples in scope as fixtures
// only".
type Preset struct {
	Name        string            `json:"name"`
	Country     string            `json:"country"`
	Description string            `json:"description"`
	Plant       config.PlantConfig `json:"plant"`
}

// PresetList is the on-disk catalog shape.
type PresetList struct {
	UpdatedAt string   `json:"updated_at"`
	Presets   []Preset `json:"presets"`
}

// DefaultPresets is the hardcoded known-plant table, seeded from the
// original Python powerplant.py module's PSWLimmern, Hongrin and
// PSWGoldisthal constants.
func DefaultPresets() []Preset {
	return []Preset{
		{
			Name:        "PSWLimmern",
			Country:     "Switzerland",
			Description: "Linth-Limmern pumped storage, Glarus Alps",
			Plant: config.PlantConfig{
				Name:           "PSWLimmern",
				MaxTurbPowerMW: 1000,
				MaxPumpPowerMW: 1000,
				MaxLevelMWh:    38670,
				PumpEfficiency: 0.85,
			},
		},
		{
			Name:        "Hongrin",
			Country:     "Switzerland",
			Description: "Hongrin-Léman pumped storage, Vaud Alps",
			Plant: config.PlantConfig{
				Name:           "Hongrin",
				MaxTurbPowerMW: 480,
				MaxPumpPowerMW: 480,
				MaxLevelMWh:    125121,
				PumpEfficiency: 0.75,
			},
		},
		{
			Name:        "PSWGoldisthal",
			Country:     "Germany",
			Description: "Goldisthal pumped storage, Thuringia",
			Plant: config.PlantConfig{
				Name:           "PSWGoldisthal",
				MaxTurbPowerMW: 1060,
				MaxPumpPowerMW: 1060,
				MaxLevelMWh:    10698,
				PumpEfficiency: 0.8,
			},
		},
	}
}

// LoadPresets loads a preset catalog from a JSON file.
func LoadPresets(path string) (*PresetList, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("data: read preset catalog: %w", err)
	}
	var list PresetList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("data: parse preset catalog: %w", err)
	}
	return &list, nil
}

// SavePresets writes a preset catalog to a JSON file, creating parent
// directories as needed.
func SavePresets(list *PresetList, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("data: create preset catalog directory: %w", err)
	}
	raw, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("data: marshal preset catalog: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("data: write preset catalog: %w", err)
	}
	return nil
}

// DefaultPresetsPath returns the default on-disk location of the preset
// catalog, overridable via the PLANT_PRESETS_FILE environment variable.
func DefaultPresetsPath() string {
	if path := os.Getenv("PLANT_PRESETS_FILE"); path != "" {
		return path
	}
	return "./data/presets.json"
}

// FindPreset looks up a preset by name (case-sensitive, matching the name
// used in the catalog).
func (l *PresetList) FindPreset(name string) (Preset, bool) {
	for _, p := range l.Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}
