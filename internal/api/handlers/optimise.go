package handlers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hydro-intrinsic/internal/api/models"
	"hydro-intrinsic/internal/config"
	"hydro-intrinsic/internal/data"
	"hydro-intrinsic/internal/ledger"
	"hydro-intrinsic/internal/market"
	"hydro-intrinsic/internal/metrics"
	"hydro-intrinsic/internal/optimizer"
	"hydro-intrinsic/internal/orchestrator"
	"hydro-intrinsic/internal/plant"
)

// run holds one completed rolling-intrinsic run, keyed by ID so its ledger
// can be fetched afterwards.
type run struct {
	resp  models.OptimiseResponse
	rows  []ledger.Row
	steps int
}

// OptimiseHandler runs rolling-intrinsic valuations and serves their
// ledgers, grounded on the teacher's BacktestHandler.
type OptimiseHandler struct {
	presets *data.PresetList
	live    *LiveFeedHandler

	mu   sync.Mutex
	runs map[string]run
}

// NewOptimiseHandler loads the preset catalog (best-effort; falls back to
// the hardcoded defaults if no catalog file is present). live may be nil, in
// which case no per-day events are broadcast.
func NewOptimiseHandler(live *LiveFeedHandler) *OptimiseHandler {
	list, err := data.LoadPresets(data.DefaultPresetsPath())
	if err != nil {
		list = &data.PresetList{Presets: data.DefaultPresets()}
	}
	return &OptimiseHandler{presets: list, live: live, runs: map[string]run{}}
}

// RunOptimise handles POST /api/v1/optimise.
func (h *OptimiseHandler) RunOptimise(c *gin.Context) {
	var req models.OptimiseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	plantCfg := req.Plant
	if req.PlantName != "" {
		preset, ok := h.presets.FindPreset(req.PlantName)
		if !ok {
			writeError(c, http.StatusNotFound, "UNKNOWN_PLANT", "no preset named "+req.PlantName)
			return
		}
		plantCfg = config.MergePlant(preset.Plant, req.Plant)
	}

	orchCfg := req.Orchestrator
	if orchCfg.TimehorizonDays == 0 {
		orchCfg.TimehorizonDays = 7
	}
	if orchCfg.DayAheadStepH == 0 {
		orchCfg.DayAheadStepH = 1.0
	}
	if orchCfg.IntradayStepH == 0 {
		orchCfg.IntradayStepH = 0.25
	}
	if orchCfg.HoursPerDay == 0 {
		orchCfg.HoursPerDay = 24
	}

	model, err := plantCfg.ToModelWithGrid(plant.GridOptions{
		MinTimestepH:         orchCfg.MinTimestepH,
		PrecisionDenominator: orchCfg.PrecisionDenominator,
	})
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_PLANT", err.Error())
		return
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

	var days []models.DayResponse
	orch.OnDay = func(d orchestrator.DayResult) {
		metrics.DaysSimulated.Inc()
		metrics.EnergyLevel.Set(d.EnergyLevelMWh)
		metrics.IntrinsicValue.Set(d.SumDABaseline + d.SumID1OverDA + d.SumID2OverID1)
		for bucket, rolled := range map[string]bool{"id1_over_da": d.RolledID1, "id2_over_id1": d.RolledID2} {
			outcome := "rejected"
			if rolled {
				outcome = "accepted"
			}
			metrics.RecordRoll(bucket, outcome)
		}
		if h.live != nil {
			h.live.Publish(d)
		}
		days = append(days, models.DayResponse{
			Day:             d.Day,
			RolledID1:       d.RolledID1,
			RolledID2:       d.RolledID2,
			ID1RollCashflow: d.ID1RollCashflow,
			ID2RollCashflow: d.ID2RollCashflow,
			SumDABaseline:   d.SumDABaseline,
			SumID1OverDA:    d.SumID1OverDA,
			SumID2OverID1:   d.SumID2OverID1,
			EnergyLevelMWh:  d.EnergyLevelMWh,
			LastAction:      d.LastAction.String(),
		})
	}

	if err := orch.SetPrices(req.DayAheadPrices, req.Intraday1Prices, req.Intraday2Prices); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_PRICES", err.Error())
		return
	}

	if err := orch.Optimise(); err != nil {
		writeError(c, http.StatusUnprocessableEntity, "OPTIMISE_FAILED", err.Error())
		return
	}

	stepsPerDay := int(float64(orchCfg.HoursPerDay) / orchCfg.IntradayStepH)
	rows := ledger.Build(state, stepsPerDay)
	if err := ledger.Validate(rows, model.MaxLevelMWh); err != nil {
		writeError(c, http.StatusUnprocessableEntity, "LEDGER_INVALID", err.Error())
		return
	}

	id := uuid.NewString()
	resp := models.OptimiseResponse{
		ID:             id,
		Days:           days,
		SumDABaseline:  ledg.SumDABaseline,
		SumID1OverDA:   ledg.SumID1OverDA,
		SumID2OverID1:  ledg.SumID2OverID1,
		TotalValue:     ledg.TotalValue(),
		EnergyLevelMWh: state.EnergyLevelMWh,
	}

	h.mu.Lock()
	h.runs[id] = run{resp: resp, rows: rows, steps: stepsPerDay}
	h.mu.Unlock()

	c.JSON(http.StatusOK, resp)
}

// GetLedger handles GET /api/v1/optimise/:id/ledger.
func (h *OptimiseHandler) GetLedger(c *gin.Context) {
	id := c.Param("id")

	h.mu.Lock()
	r, ok := h.runs[id]
	h.mu.Unlock()
	if !ok {
		writeError(c, http.StatusNotFound, "UNKNOWN_RUN", "no run with id "+id)
		return
	}

	rows := make([]models.LedgerRow, len(r.rows))
	for i, row := range r.rows {
		rows[i] = models.LedgerRow{
			Day:      row.Day,
			Slot:     row.Slot,
			Price:    row.Price,
			Action:   row.Action.String(),
			NetMWh:   row.NetMWh,
			Cashflow: row.Cashflow,
			LevelMWh: row.LevelMWh,
		}
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "rows": rows})
}

func writeError(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.ErrorResponse{Error: models.ErrorDetail{Code: code, Message: message}})
}
