package optimizer

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"hydro-intrinsic/internal/plant"
)

// DP is the backward-induction, terminal-pinned dynamic programming
// optimizer. It is the sole supported strategy; the documented-nonfunctional
// MILP path from the source repository is not reproduced here.
//
// V[i, l] is the maximum achievable cashflow from slot i through the end of
// the horizon, given the plant sits at grid level l at the start of slot i.
// The pass runs backward from the terminal boundary (V[T, final level] = 0,
// everywhere else -inf) down to i=0, then a forward walk over the recorded
// per-slot decisions reconstructs the schedule from the initial level.
type DP struct {
	// Concurrency controls how many goroutines relax each idle/pump/turbine
	// pass across the level dimension. 0 or 1 run the sequential path, as
	// does any grid with fewer than 64 levels per goroutine; the
	// parallel path is safe because within a single pass the source-level
	// to target-level mapping is an injective constant shift, so no two
	// goroutines ever write the same index.
	Concurrency int
}

const negInf = -math.MaxFloat64 / 4

func (o DP) Optimize(model *plant.Model, req Request) (Result, error) {
	T := len(req.Prices)
	if T == 0 {
		return Result{}, fmt.Errorf("optimizer: empty price vector")
	}
	if len(req.StepHours) != T {
		return Result{}, fmt.Errorf("optimizer: step-hours length %d does not match price length %d", len(req.StepHours), T)
	}

	N := model.NumLevels()
	finalIdx := model.LevelIndex(req.FinalLevelMWh)
	initIdx := model.LevelIndex(req.InitialLevelMWh)

	// decisions[j][l] is the action taken during slot j assuming the plant
	// enters slot j at level l (i.e. it is indexed the same way V[j,.] is).
	decisions := make([][]int8, T+1)
	for t := range decisions {
		decisions[t] = make([]int8, N)
	}

	v := make([]float64, N)
	next := make([]float64, N)
	for l := range v {
		v[l] = negInf
	}
	v[finalIdx] = 0

	for i := T; i >= 1; i-- {
		j := i - 1
		for l := range next {
			next[l] = negInf
		}

		dt := req.StepHours[j]
		price := req.Prices[j]

		deltaPump, err := model.PumpLevelDelta(dt)
		if err != nil {
			return Result{}, err
		}
		deltaTurb, err := model.TurbineLevelDelta(dt)
		if err != nil {
			return Result{}, err
		}

		cashPump := model.MaxPumpPowerMW * dt * price
		cashTurb := model.MaxTurbPowerMW * dt * price

		decisionsJ := decisions[j]
		decisionsI := decisions[i]

		allowPumpAtJ0 := !(j == 0 && req.PreviousLastAction == plant.ActionPump)
		allowTurbAtJ0 := !(j == 0 && req.PreviousLastAction == plant.ActionTurbine)

		// Pass 1: idle. l -> l, bijective, no intra-pass races.
		relax(o.Concurrency, N, func(l int) {
			if v[l] > next[l] {
				next[l] = v[l]
				decisionsJ[l] = int8(plant.ActionIdle)
			}
		})

		// Pass 2: pump. l is the post-pump (future, already-solved) level;
		// its source is l-deltaPump. l -> l-deltaPump is a constant shift,
		// bijective, no intra-pass races.
		relax(o.Concurrency, N, func(l int) {
			if v[l] <= negInf/2 {
				return
			}
			start := l - deltaPump
			if start < 0 || start >= N {
				return
			}
			if decisionsI[l] == int8(plant.ActionTurbine) {
				return
			}
			if !allowPumpAtJ0 {
				return
			}
			cand := v[l] - cashPump
			if cand > next[start] {
				next[start] = cand
				decisionsJ[start] = int8(plant.ActionPump)
			}
		})

		// Pass 3: turbine. l is the post-turbine level; its source is
		// l+deltaTurb.
		relax(o.Concurrency, N, func(l int) {
			if v[l] <= negInf/2 {
				return
			}
			start := l + deltaTurb
			if start < 0 || start >= N {
				return
			}
			if decisionsI[l] == int8(plant.ActionPump) {
				return
			}
			if !allowTurbAtJ0 {
				return
			}
			cand := v[l] + cashTurb
			if cand > next[start] {
				next[start] = cand
				decisionsJ[start] = int8(plant.ActionTurbine)
			}
		})

		v, next = next, v
	}

	if v[initIdx] <= negInf/2 {
		return Result{}, fmt.Errorf("%w (initial level %.3f MWh, required final level %.3f MWh)", ErrInfeasibleHorizon, req.InitialLevelMWh, req.FinalLevelMWh)
	}

	return reconstruct(model, req, decisions, initIdx, v[initIdx])
}

// relax applies f to every level index, either sequentially or split across
// goroutines. Safe to parallelize within one pass: see the DP doc comment.
func relax(concurrency, n int, f func(int)) {
	if concurrency <= 1 || n < concurrency*64 {
		for l := 0; l < n; l++ {
			f(l)
		}
		return
	}

	var g errgroup.Group
	chunk := (n + concurrency - 1) / concurrency
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		start, end := start, end
		g.Go(func() error {
			for l := start; l < end; l++ {
				f(l)
			}
			return nil
		})
	}
	_ = g.Wait()
}

func reconstruct(model *plant.Model, req Request, decisions [][]int8, initIdx int, profit float64) (Result, error) {
	T := len(req.Prices)
	N := model.NumLevels()
	sell := make([]float64, T)
	buy := make([]float64, T)
	levels := make([]float64, T)

	cur := initIdx
	for t := 0; t < T; t++ {
		action := plant.Action(decisions[t][cur])
		dt := req.StepHours[t]

		switch action {
		case plant.ActionIdle:
			levels[t] = model.LevelMWh(cur)

		case plant.ActionPump:
			delta, err := model.PumpLevelDelta(dt)
			if err != nil {
				return Result{}, err
			}
			nextLvl := cur + delta
			if nextLvl < 0 || nextLvl >= N {
				return Result{}, fmt.Errorf("%w: pump reconstruction left the grid at slot %d", ErrInvariantViolation, t)
			}
			buy[t] = model.MaxPumpPowerMW * dt
			cur = nextLvl
			levels[t] = model.LevelMWh(cur)

		case plant.ActionTurbine:
			delta, err := model.TurbineLevelDelta(dt)
			if err != nil {
				return Result{}, err
			}
			nextLvl := cur - delta
			if nextLvl < 0 || nextLvl >= N {
				return Result{}, fmt.Errorf("%w: turbine reconstruction left the grid at slot %d", ErrInvariantViolation, t)
			}
			sell[t] = model.MaxTurbPowerMW * dt
			cur = nextLvl
			levels[t] = model.LevelMWh(cur)

		default:
			return Result{}, fmt.Errorf("%w: unknown decision %d at slot %d", ErrInvariantViolation, action, t)
		}
	}

	return Result{SellMWh: sell, BuyMWh: buy, LevelMWh: levels, ProfitEUR: profit}, nil
}
