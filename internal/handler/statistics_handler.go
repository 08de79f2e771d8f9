package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jengzang/solar-explorer-go/internal/service"
	"github.com/jengzang/solar-explorer-go/pkg/response"
)

// StatisticsHandler handles HTTP requests for search statistics
type StatisticsHandler struct {
	statsService *service.StatisticsService
}

// NewStatisticsHandler creates a new statistics handler
func NewStatisticsHandler(statsService *service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statsService: statsService}
}

// GetStatistics handles GET /api/v1/statistics.
// data is null when there is nothing to summarize.
func (h *StatisticsHandler) GetStatistics(c *gin.Context) {
	response.Success(c, h.statsService.Current())
}
