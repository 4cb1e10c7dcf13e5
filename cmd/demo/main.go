package main

import (
	"flag"
	"fmt"

	"hydro-intrinsic/internal/data"
	"hydro-intrinsic/internal/market"
	"hydro-intrinsic/internal/optimizer"
	"hydro-intrinsic/internal/orchestrator"
	"hydro-intrinsic/internal/plant"
)

// Demo walks through a short rolling-intrinsic run over a fixture's price
// series, using the fixture's plant or, with -preset, a named bundled preset,
// printing each simulated day as it commits.
func main() {
	fixturePath := flag.String("fixture", "sample_fixture.json", "Path to a price/config fixture")
	presetName := flag.String("preset", "", "Optional: use a named preset plant instead of the fixture's plant config")
	n := flag.Int("n", 5, "Number of days to print in detail")
	flag.Parse()

	fixture, err := data.LoadFixture(*fixturePath)
	if err != nil {
		panic(err)
	}

	plantCfg := fixture.Plant
	if *presetName != "" {
		presets := data.DefaultPresets()
		found := false
		for _, p := range presets {
			if p.Name == *presetName {
				plantCfg = p.Plant
				found = true
				break
			}
		}
		if !found {
			panic(fmt.Errorf("unknown preset %q", *presetName))
		}
	}

	model, err := plantCfg.ToModelWithGrid(plant.GridOptions{})
	if err != nil {
		panic(err)
	}

	ledg := market.New()
	state := plant.NewState()
	orch := orchestrator.New(model, ledg, optimizer.DP{}, state, orchestrator.Config{
		TimehorizonDays: fixture.Orchestrator.TimehorizonDays,
		EndLevelMWh:     fixture.Orchestrator.EndLevelMWh,
		DayAheadStepH:   fixture.Orchestrator.DayAheadStepH,
		IntradayStepH:   fixture.Orchestrator.IntradayStepH,
		HoursPerDay:     fixture.Orchestrator.HoursPerDay,
	})

	printed := 0
	orch.OnDay = func(d orchestrator.DayResult) {
		if printed >= *n {
			return
		}
		fmt.Printf(
			"day %2d  level=%9.2f MWh  last=%-8s  rolled(id1=%-5v id2=%-5v)  da=%10.2f  id1=%10.2f  id2=%10.2f\n",
			d.Day, d.EnergyLevelMWh, d.LastAction, d.RolledID1, d.RolledID2, d.SumDABaseline, d.SumID1OverDA, d.SumID2OverID1,
		)
		printed++
	}

	if err := orch.SetPrices(fixture.DayAheadPrices, fixture.Intraday1Prices, fixture.Intraday2Prices); err != nil {
		panic(err)
	}

	fmt.Printf("Plant=%s turb=%.0fMW pump=%.0fMW cap=%.0fMWh eff=%.2f\n",
		plantCfg.Name, model.MaxTurbPowerMW, model.MaxPumpPowerMW, model.MaxLevelMWh, model.PumpEfficiency)

	if err := orch.Optimise(); err != nil {
		panic(err)
	}

	fmt.Printf("\nDone. Total value=%.2f (da=%.2f id1=%.2f id2=%.2f) final level=%.2f MWh\n",
		ledg.TotalValue(), ledg.SumDABaseline, ledg.SumID1OverDA, ledg.SumID2OverID1, state.EnergyLevelMWh)
}
