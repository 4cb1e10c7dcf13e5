package data

import "fmt"

// BlockMeanDownsample averages consecutive, non-overlapping blocks of
// `factor` samples, grounded on original_source/util.py's
// mean_every_i_element_in_list. Used to turn a finer-resolution day-ahead
// series into the hourly series the orchestrator expects (spec.md §6:
// "acceptable to down-sample... as the harness does with factor 4").
func BlockMeanDownsample(series []float64, factor int) ([]float64, error) {
	if factor <= 0 {
		return nil, fmt.Errorf("data: downsample factor must be > 0")
	}
	if len(series)%factor != 0 {
		return nil, fmt.Errorf("data: series length %d is not a multiple of factor %d", len(series), factor)
	}
	out := make([]float64, len(series)/factor)
	for i := range out {
		var sum float64
		for k := 0; k < factor; k++ {
			sum += series[i*factor+k]
		}
		out[i] = sum / float64(factor)
	}
	return out, nil
}
