package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hydro-intrinsic/internal/api/models"
)

// StrategyHandler describes the rolling-intrinsic strategy and its
// configurable knobs, grounded on the teacher's StrategyHandler.ListStrategies.
type StrategyHandler struct{}

func NewStrategyHandler() *StrategyHandler { return &StrategyHandler{} }

// ListStrategies handles GET /api/v1/strategies.
func (h *StrategyHandler) ListStrategies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"strategies": []models.StrategyInfo{
			{
				Name:        "rolling_intrinsic",
				Description: "Re-optimises the full dispatch schedule as each successive market (day-ahead, intraday-1, intraday-2) discloses, adopting a roll only when it strictly increases realized cash.",
				Parameters: []models.ParameterInfo{
					{Name: "timehorizon_days", Description: "Day-ahead lookahead window size, in days, seen by each optimisation call.", Default: "7"},
					{Name: "end_level_mwh", Description: "Required plant energy level at the end of every optimisation horizon.", Default: "0"},
					{Name: "day_ahead_step_h", Description: "Day-ahead slot duration in hours.", Default: "1.0"},
					{Name: "intraday_step_h", Description: "Intraday-1/intraday-2 slot duration in hours.", Default: "0.25"},
					{Name: "hours_per_day", Description: "Number of hours simulated per day.", Default: "24"},
				},
			},
		},
	})
}
