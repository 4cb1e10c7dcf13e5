package config

import "testing"

func TestMergePlantOverlaysOnlyNonZeroFields(t *testing.T) {
	base := PlantConfig{
		Name:           "Base",
		MaxTurbPowerMW: 100,
		MaxPumpPowerMW: 100,
		MaxLevelMWh:    1000,
		PumpEfficiency: 0.8,
	}
	override := PlantConfig{MaxLevelMWh: 2000}

	merged := MergePlant(base, override)
	if merged.Name != "Base" {
		t.Errorf("Name = %q, want %q", merged.Name, "Base")
	}
	if merged.MaxLevelMWh != 2000 {
		t.Errorf("MaxLevelMWh = %v, want 2000", merged.MaxLevelMWh)
	}
	if merged.MaxTurbPowerMW != 100 {
		t.Errorf("MaxTurbPowerMW = %v, want 100", merged.MaxTurbPowerMW)
	}
}

func TestValidateRejectsInvalidPlant(t *testing.T) {
	c := &Config{Plant: PlantConfig{MaxTurbPowerMW: 0, MaxPumpPowerMW: 10, MaxLevelMWh: 10, PumpEfficiency: 0.9}}
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for zero max turbine power")
	}
}

func TestValidateRejectsNegativeEndLevel(t *testing.T) {
	c := &Config{
		Plant:        PlantConfig{MaxTurbPowerMW: 10, MaxPumpPowerMW: 10, MaxLevelMWh: 10, PumpEfficiency: 0.9},
		Orchestrator: OrchestratorConfig{EndLevelMWh: -1},
	}
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for negative end level")
	}
}

func TestToModelDerivesGridFromOrchestratorOptions(t *testing.T) {
	c := &Config{
		Plant: PlantConfig{MaxTurbPowerMW: 10, MaxPumpPowerMW: 10, MaxLevelMWh: 10, PumpEfficiency: 0.9},
	}
	m, err := c.ToModel()
	if err != nil {
		t.Fatalf("ToModel() error = %v", err)
	}
	if m.NumLevels() < 2 {
		t.Errorf("NumLevels() = %d, want >= 2", m.NumLevels())
	}
}
