package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jengzang/solar-explorer-go/internal/models"
	"github.com/jengzang/solar-explorer-go/internal/service"
	"github.com/jengzang/solar-explorer-go/pkg/response"
)

// HeatmapHandler handles HTTP requests for heatmap overlays
type HeatmapHandler struct {
	heatmap *service.HeatmapService
}

// NewHeatmapHandler creates a new heatmap handler
func NewHeatmapHandler(heatmap *service.HeatmapService) *HeatmapHandler {
	return &HeatmapHandler{heatmap: heatmap}
}

// GetActive handles GET /api/v1/heatmap
func (h *HeatmapHandler) GetActive(c *gin.Context) {
	response.Success(c, h.active())
}

// Toggle handles POST /api/v1/heatmap/:type/toggle
func (h *HeatmapHandler) Toggle(c *gin.Context) {
	t, err := models.ParseHeatmapType(c.Param("type"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if _, err := h.heatmap.Toggle(t); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Success(c, h.active())
}

// GetNormalized handles GET /api/v1/heatmap/:type
func (h *HeatmapHandler) GetNormalized(c *gin.Context) {
	t, err := models.ParseHeatmapType(c.Param("type"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	points, err := h.heatmap.Normalize(t)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	cfg := service.HeatmapConfigs[t]
	response.Success(c, models.HeatmapResponse{
		Active: h.heatmap.Active(),
		Points: points,
		Count:  len(points),
		Config: &cfg,
	})
}

func (h *HeatmapHandler) active() models.HeatmapResponse {
	active := h.heatmap.Active()
	points := h.heatmap.Points()
	resp := models.HeatmapResponse{
		Active: active,
		Points: points,
		Count:  len(points),
	}
	if cfg, ok := service.HeatmapConfigs[active]; ok {
		resp.Config = &cfg
	}
	return resp
}
