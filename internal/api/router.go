package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/solar-explorer-go/internal/handler"
	"github.com/jengzang/solar-explorer-go/internal/mapview"
	"github.com/jengzang/solar-explorer-go/internal/middleware"
	"github.com/jengzang/solar-explorer-go/internal/models"
	"github.com/jengzang/solar-explorer-go/internal/repository"
	"github.com/jengzang/solar-explorer-go/internal/service"
	"go.uber.org/zap"
)

// Deps are the components the router exposes
type Deps struct {
	Repo       *repository.ProjectRepository
	Search     *service.RadiusSearch
	Statistics *service.StatisticsService
	Heatmap    *service.HeatmapService
	Scene      *mapview.Scene
	MapConfig  models.MapConfig

	ReloadLimiter  *middleware.RateLimiter
	AllowedOrigins []string
	Log            *zap.Logger
}

// SetupRouter 设置路由
func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(d.Log))
	r.Use(middleware.CORS(d.AllowedOrigins))

	projects := handler.NewProjectHandler(d.Repo)
	search := handler.NewSearchHandler(d.Search)
	statistics := handler.NewStatisticsHandler(d.Statistics)
	heatmap := handler.NewHeatmapHandler(d.Heatmap)
	mapHandler := handler.NewMapHandler(d.Scene, d.MapConfig)

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Solar Explorer API is running",
			"load":    d.Repo.Status(),
		})
	})

	api := r.Group("/api/v1")
	{
		m := api.Group("/map")
		{
			m.GET("/config", mapHandler.GetConfig)
			m.GET("/scene", mapHandler.GetScene)
			m.GET("/scene.geojson", mapHandler.GetGeoJSON)
		}

		p := api.Group("/projects")
		{
			p.GET("", projects.ListProjects)
			reload := []gin.HandlerFunc{projects.ReloadProjects}
			if d.ReloadLimiter != nil {
				reload = append([]gin.HandlerFunc{middleware.RateLimit(d.ReloadLimiter)}, reload...)
			}
			p.POST("/reload", reload...)
			p.PUT("/visibility", projects.SetVisibility)
			p.POST("/:id/detail", projects.OpenDetail)
		}

		s := api.Group("/search")
		{
			s.GET("", search.Search)
			s.GET("/results", search.CurrentResults)
			s.PUT("/radius", search.UpdateRadius)
			s.DELETE("", search.Clear)
		}

		api.GET("/statistics", statistics.GetStatistics)

		h := api.Group("/heatmap")
		{
			h.GET("", heatmap.GetActive)
			h.GET("/:type", heatmap.GetNormalized)
			h.POST("/:type/toggle", heatmap.Toggle)
		}
	}

	return r
}
