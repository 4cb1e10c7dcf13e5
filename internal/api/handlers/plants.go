package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hydro-intrinsic/internal/api/models"
	"hydro-intrinsic/internal/data"
)

// PlantHandler serves the catalog of named plant presets, grounded on the
// teacher's BatteryHandler.ListBatteries.
type PlantHandler struct {
	presets *data.PresetList
}

// NewPlantHandler loads the preset catalog (falling back to hardcoded
// defaults, as OptimiseHandler does).
func NewPlantHandler() *PlantHandler {
	list, err := data.LoadPresets(data.DefaultPresetsPath())
	if err != nil {
		list = &data.PresetList{Presets: data.DefaultPresets()}
	}
	return &PlantHandler{presets: list}
}

// ListPlants handles GET /api/v1/plants.
func (h *PlantHandler) ListPlants(c *gin.Context) {
	out := make([]models.PlantInfo, 0, len(h.presets.Presets))
	for _, p := range h.presets.Presets {
		out = append(out, models.PlantInfo{
			Name:           p.Name,
			Country:        p.Country,
			Description:    p.Description,
			MaxTurbPowerMW: p.Plant.MaxTurbPowerMW,
			MaxPumpPowerMW: p.Plant.MaxPumpPowerMW,
			MaxLevelMWh:    p.Plant.MaxLevelMWh,
			PumpEfficiency: p.Plant.PumpEfficiency,
		})
	}
	c.JSON(http.StatusOK, gin.H{"plants": out})
}
