package analysis

import "sort"

// RankedPotential is exported separately from ArbitragePotential so the API
// layer can attach ranking-specific fields without reshaping the base
// summary.
type RankedPotential struct {
	ArbitragePotential
}

// RankByOracleProfit computes potentials for each named series and sorts
// them descending by OracleProfit.
func RankByOracleProfit(series map[string][]float64, stepH float64) ([]RankedPotential, error) {
	out := make([]RankedPotential, 0, len(series))
	for name, prices := range series {
		p, err := ComputePotential(name, prices, stepH)
		if err != nil {
			return nil, err
		}
		out = append(out, RankedPotential{ArbitragePotential: p})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].OracleProfit > out[j].OracleProfit
	})
	return out, nil
}
