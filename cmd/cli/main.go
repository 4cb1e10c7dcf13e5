package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"hydro-intrinsic/internal/analysis"
	"hydro-intrinsic/internal/config"
	"hydro-intrinsic/internal/data"
	"hydro-intrinsic/internal/ledger"
	"hydro-intrinsic/internal/market"
	"hydro-intrinsic/internal/optimizer"
	"hydro-intrinsic/internal/orchestrator"
	"hydro-intrinsic/internal/plant"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "optimise":
		cmdOptimise(os.Args[2:])
	case "rank":
		cmdRank(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli optimise --fixture fixture.json --config examples/config.yaml --out results/ledger.csv")
	fmt.Println("  cli rank --fixture fixture.json")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - optimise runs the rolling-intrinsic valuation day by day and writes a CSV ledger")
	fmt.Println("  - rank computes an 'arbitrage potential' oracle score per named price series")
}

func cmdOptimise(args []string) {
	fs := flag.NewFlagSet("optimise", flag.ExitOnError)
	fixturePath := fs.String("fixture", "sample_fixture.json", "Path to a price/config fixture (see internal/data.Fixture)")
	cfgPath := fs.String("config", "", "Optional YAML config overriding the fixture's plant/orchestrator settings")
	outPath := fs.String("out", "results/ledger.csv", "Output CSV path")
	_ = fs.Parse(args)

	fixture, err := data.LoadFixture(*fixturePath)
	if err != nil {
		panic(err)
	}

	plantCfg := fixture.Plant
	orchCfg := fixture.Orchestrator
	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
		plantCfg = config.MergePlant(plantCfg, cfg.Plant)
		orchCfg = cfg.Orchestrator
	}

	model, err := plantCfg.ToModelWithGrid(plant.GridOptions{
		MinTimestepH:         orchCfg.MinTimestepH,
		PrecisionDenominator: orchCfg.PrecisionDenominator,
	})
	if err != nil {
		panic(err)
	}

	ledg := market.New()
	state := plant.NewState()
	orch := orchestrator.New(model, ledg, optimizer.DP{}, state, orchestrator.Config{
		TimehorizonDays: orchCfg.TimehorizonDays,
		EndLevelMWh:     orchCfg.EndLevelMWh,
		DayAheadStepH:   orchCfg.DayAheadStepH,
		IntradayStepH:   orchCfg.IntradayStepH,
		HoursPerDay:     orchCfg.HoursPerDay,
	})
	orch.OnDay = func(d orchestrator.DayResult) {
		fmt.Printf("day %3d  level=%10.2f MWh  last=%-8s  da=%12.2f  id1=%12.2f  id2=%12.2f\n",
			d.Day, d.EnergyLevelMWh, d.LastAction, d.SumDABaseline, d.SumID1OverDA, d.SumID2OverID1)
	}

	if err := orch.SetPrices(fixture.DayAheadPrices, fixture.Intraday1Prices, fixture.Intraday2Prices); err != nil {
		panic(err)
	}
	if err := orch.Optimise(); err != nil {
		panic(err)
	}

	stepsPerDay := int(float64(orchCfg.HoursPerDay) / orchCfg.IntradayStepH)
	rows := ledger.Build(state, stepsPerDay)
	if err := ledger.Validate(rows, model.MaxLevelMWh); err != nil {
		panic(err)
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	if err := ledger.WriteCSV(*outPath, rows); err != nil {
		panic(err)
	}

	fmt.Printf("Wrote %d rows to %s\n", len(rows), *outPath)
	fmt.Printf("Total value=%.2f (da=%.2f id1=%.2f id2=%.2f) final level=%.2f MWh\n",
		ledg.TotalValue(), ledg.SumDABaseline, ledg.SumID1OverDA, ledg.SumID2OverID1, state.EnergyLevelMWh)
}

func cmdRank(args []string) {
	fs := flag.NewFlagSet("rank", flag.ExitOnError)
	fixturePath := fs.String("fixture", "sample_fixture.json", "Path to a fixture whose day-ahead series is ranked alongside its intraday series")
	_ = fs.Parse(args)

	fixture, err := data.LoadFixture(*fixturePath)
	if err != nil {
		panic(err)
	}

	series := map[string][]float64{
		"day_ahead":  fixture.DayAheadPrices,
		"intraday_1": fixture.Intraday1Prices,
		"intraday_2": fixture.Intraday2Prices,
	}
	ranked, err := analysis.RankByOracleProfit(series, fixture.Orchestrator.DayAheadStepH)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%-4s %-12s %-8s %-10s %-10s %-12s\n", "rank", "series", "count", "p95-p05", "min/max", "oracle")
	for i, r := range ranked {
		fmt.Printf("%-4d %-12s %-8d %-10.2f %-5.1f/%-5.1f %-12.2f\n",
			i+1, r.Name, r.Count, r.SpreadP95P05, r.MinPrice, r.MaxPrice, r.OracleProfit)
	}
}
