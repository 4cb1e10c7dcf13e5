// Package analysis ranks candidate day-ahead price fixtures by arbitrage
// potential, independent of any specific plant's size, adapted from the
// teacher's canonical-battery oracle profit.
package analysis

import (
	"math"
	"sort"

	"hydro-intrinsic/internal/optimizer"
	"hydro-intrinsic/internal/plant"
)

// ArbitragePotential is a price-series-level summary usable for ranking.
type ArbitragePotential struct {
	Name string

	Count int

	MinPrice  float64
	MaxPrice  float64
	MeanPrice float64
	P05Price  float64
	P95Price  float64

	SpreadP95P05 float64

	// OracleProfit is the round-trip profit from a canonical 1 MW / 1 MWh,
	// 100%-efficient plant dispatched optimally over the series at the
	// given step duration, starting and ending at zero level.
	OracleProfit float64
}

// ComputePotential summarizes one named price series at the given step
// duration in hours.
func ComputePotential(name string, prices []float64, stepH float64) (ArbitragePotential, error) {
	p := ArbitragePotential{Name: name}
	if len(prices) == 0 {
		return p, nil
	}
	p.Count = len(prices)

	sum := 0.0
	minv := math.Inf(1)
	maxv := math.Inf(-1)
	vals := make([]float64, len(prices))
	copy(vals, prices)
	for _, v := range prices {
		sum += v
		if v < minv {
			minv = v
		}
		if v > maxv {
			maxv = v
		}
	}
	sort.Float64s(vals)
	p.MinPrice = minv
	p.MaxPrice = maxv
	p.MeanPrice = sum / float64(len(vals))
	p.P05Price = percentileSorted(vals, 0.05)
	p.P95Price = percentileSorted(vals, 0.95)
	p.SpreadP95P05 = p.P95Price - p.P05Price

	profit, err := oracleProfitCanonical(prices, stepH)
	if err != nil {
		return ArbitragePotential{}, err
	}
	p.OracleProfit = profit
	return p, nil
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// oracleProfitCanonical dispatches a canonical 1 MW / 1 MWh, 100%-efficient
// plant optimally over the series, round-tripping from and to zero level.
func oracleProfitCanonical(prices []float64, stepH float64) (float64, error) {
	canonical, err := plant.New(1, 1, 1, 1, plant.GridOptions{MinTimestepH: stepH})
	if err != nil {
		return 0, err
	}
	steps := make([]float64, len(prices))
	for i := range steps {
		steps[i] = stepH
	}
	dp := optimizer.DP{}
	res, err := dp.Optimize(canonical, optimizer.Request{
		Prices:             prices,
		StepHours:          steps,
		InitialLevelMWh:    0,
		FinalLevelMWh:      0,
		PreviousLastAction: plant.ActionIdle,
	})
	if err != nil {
		return 0, err
	}
	return res.ProfitEUR, nil
}
