package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jengzang/solar-explorer-go/internal/mapview"
	"github.com/jengzang/solar-explorer-go/internal/models"
	"github.com/jengzang/solar-explorer-go/pkg/response"
	"github.com/paulmach/orb/geojson"
)

// MapHandler serves the map configuration and the rendered scene
type MapHandler struct {
	scene  *mapview.Scene
	config models.MapConfig
}

// NewMapHandler creates a new map handler
func NewMapHandler(scene *mapview.Scene, config models.MapConfig) *MapHandler {
	return &MapHandler{scene: scene, config: config}
}

// SceneResponse is everything a front-end needs to draw the map
type SceneResponse struct {
	View     mapview.View               `json:"view"`
	Layers   []mapview.LayerInfo        `json:"layers"`
	Features *geojson.FeatureCollection `json:"features"`
}

// GetConfig handles GET /api/v1/map/config
func (h *MapHandler) GetConfig(c *gin.Context) {
	response.Success(c, h.config)
}

// GetScene handles GET /api/v1/map/scene
func (h *MapHandler) GetScene(c *gin.Context) {
	response.Success(c, SceneResponse{
		View:     h.scene.View(),
		Layers:   h.scene.Layers(),
		Features: h.scene.FeatureCollection(),
	})
}

// GetGeoJSON handles GET /api/v1/map/scene.geojson
func (h *MapHandler) GetGeoJSON(c *gin.Context) {
	data, err := h.scene.FeatureCollection().MarshalJSON()
	if err != nil {
		response.InternalError(c, "Failed to encode scene")
		return
	}
	c.Data(200, "application/geo+json", data)
}
