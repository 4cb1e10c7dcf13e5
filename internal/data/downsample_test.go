package data

import "testing"

func TestBlockMeanDownsampleAveragesBlocks(t *testing.T) {
	out, err := BlockMeanDownsample([]float64{1, 2, 3, 4}, 2)
	if err != nil {
		t.Fatalf("BlockMeanDownsample() error = %v", err)
	}
	want := []float64{1.5, 3.5}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
}

func TestBlockMeanDownsampleRejectsNonDivisibleLength(t *testing.T) {
	if _, err := BlockMeanDownsample([]float64{1, 2, 3}, 2); err == nil {
		t.Fatal("expected error for non-divisible length")
	}
}

func TestBlockMeanDownsampleRejectsNonPositiveFactor(t *testing.T) {
	if _, err := BlockMeanDownsample([]float64{1, 2}, 0); err == nil {
		t.Fatal("expected error for zero factor")
	}
}

func TestFindPresetLooksUpByName(t *testing.T) {
	list := &PresetList{Presets: DefaultPresets()}
	p, ok := list.FindPreset("PSWLimmern")
	if !ok {
		t.Fatal("expected PSWLimmern preset to be found")
	}
	if p.Plant.MaxLevelMWh != 38670 {
		t.Errorf("MaxLevelMWh = %v, want 38670", p.Plant.MaxLevelMWh)
	}

	if _, ok := list.FindPreset("Nonexistent"); ok {
		t.Fatal("expected Nonexistent preset to be absent")
	}
}
