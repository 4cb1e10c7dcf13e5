package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hydro-intrinsic/internal/analysis"
	"hydro-intrinsic/internal/api/models"
)

// RankHandler ranks posted price series by arbitrage potential, grounded on
// the teacher's RankHandler.RankNodes, but over request-supplied fixtures
// rather than a queried dataset.
type RankHandler struct{}

func NewRankHandler() *RankHandler { return &RankHandler{} }

// RankSeries handles POST /api/v1/rank.
func (h *RankHandler) RankSeries(c *gin.Context) {
	var req models.RankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	stepH := req.StepHours
	if stepH <= 0 {
		stepH = 1.0
	}

	ranked, err := analysis.RankByOracleProfit(req.Series, stepH)
	if err != nil {
		writeError(c, http.StatusUnprocessableEntity, "RANK_FAILED", err.Error())
		return
	}

	out := make([]models.Ranking, len(ranked))
	for i, r := range ranked {
		out[i] = models.Ranking{
			Name:         r.Name,
			Count:        r.Count,
			MinPrice:     r.MinPrice,
			MaxPrice:     r.MaxPrice,
			MeanPrice:    r.MeanPrice,
			SpreadP95P05: r.SpreadP95P05,
			OracleProfit: r.OracleProfit,
		}
	}
	c.JSON(http.StatusOK, models.RankResponse{Rankings: out})
}
