package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/solar-explorer-go/internal/models"
	"github.com/jengzang/solar-explorer-go/internal/service"
	"github.com/jengzang/solar-explorer-go/internal/spatial"
	"github.com/jengzang/solar-explorer-go/pkg/response"
)

// SearchHandler handles HTTP requests for radius searches
type SearchHandler struct {
	search *service.RadiusSearch
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(search *service.RadiusSearch) *SearchHandler {
	return &SearchHandler{search: search}
}

// SearchQuery is the query string of a radius search
type SearchQuery struct {
	Lat    *float64 `form:"lat" binding:"required"`
	Lng    *float64 `form:"lng" binding:"required"`
	Radius *float64 `form:"radius"` // km, defaults to the current radius
}

// RadiusRequest changes the search radius
type RadiusRequest struct {
	RadiusKm *float64 `json:"radius_km" binding:"required"`
}

// SearchResponse is the result of a radius search
type SearchResponse struct {
	Center   models.Coordinates       `json:"center"`
	RadiusKm float64                  `json:"radius_km"`
	Count    int                      `json:"count"`
	Projects []models.ProjectDistance `json:"projects"`
}

// Search handles GET /api/v1/search
func (h *SearchHandler) Search(c *gin.Context) {
	var q SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "lat and lng are required numeric parameters")
		return
	}

	radius := h.search.Radius()
	if q.Radius != nil {
		radius = *q.Radius
	}

	center := models.Coordinates{Lat: *q.Lat, Lng: *q.Lng}
	results, err := h.search.Search(center, radius)
	if err != nil {
		writeValidationError(c, err)
		return
	}

	response.Success(c, SearchResponse{
		Center:   center,
		RadiusKm: radius,
		Count:    len(results),
		Projects: results,
	})
}

// CurrentResults handles GET /api/v1/search/results
func (h *SearchHandler) CurrentResults(c *gin.Context) {
	results, ok := h.search.Results()
	if !ok {
		response.Success(c, nil)
		return
	}

	center, _ := h.search.Center()
	response.Success(c, SearchResponse{
		Center:   center,
		RadiusKm: h.search.Radius(),
		Count:    len(results),
		Projects: results,
	})
}

// UpdateRadius handles PUT /api/v1/search/radius
func (h *SearchHandler) UpdateRadius(c *gin.Context) {
	var req RadiusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: radius_km is required")
		return
	}

	if err := h.search.UpdateRadius(*req.RadiusKm); err != nil {
		writeValidationError(c, err)
		return
	}
	response.Success(c, gin.H{"radius_km": h.search.Radius()})
}

// Clear handles DELETE /api/v1/search
func (h *SearchHandler) Clear(c *gin.Context) {
	h.search.Clear()
	response.Success(c, nil)
}

func writeValidationError(c *gin.Context, err error) {
	if errors.Is(err, spatial.ErrInvalidCoordinates) || errors.Is(err, service.ErrInvalidRadius) {
		response.BadRequest(c, err.Error())
		return
	}
	response.InternalError(c, err.Error())
}
