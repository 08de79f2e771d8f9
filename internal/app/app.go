// Package app wires the explorer components together
package app

import (
	"context"
	"math/rand"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/solar-explorer-go/internal/api"
	"github.com/jengzang/solar-explorer-go/internal/client"
	"github.com/jengzang/solar-explorer-go/internal/config"
	"github.com/jengzang/solar-explorer-go/internal/mapview"
	"github.com/jengzang/solar-explorer-go/internal/middleware"
	"github.com/jengzang/solar-explorer-go/internal/models"
	"github.com/jengzang/solar-explorer-go/internal/repository"
	"github.com/jengzang/solar-explorer-go/internal/service"
	"go.uber.org/zap"
)

// App is one explorer session
type App struct {
	Repo       *repository.ProjectRepository
	Search     *service.RadiusSearch
	Statistics *service.StatisticsService
	Heatmap    *service.HeatmapService
	Scene      *mapview.Scene
	Router     *gin.Engine
}

// New builds an App from configuration. loader may be nil, in which case
// one is chosen from cfg.DataSource.
func New(cfg *config.Config, loader client.ProjectLoader, log *zap.Logger) *App {
	if loader == nil {
		loader = NewLoader(cfg, log)
	}

	scene := mapview.NewScene(cfg.MapCenter, cfg.MapZoom)
	repo := repository.NewProjectRepository(loader, scene, log.Named("projects"), repository.Options{
		Visible: cfg.ShowProjects,
	})
	search := service.NewRadiusSearch(repo, scene, log.Named("search"), cfg.SearchRadiusKm)
	heatmap := service.NewHeatmapService(repo, scene, log.Named("heatmap"),
		rand.New(rand.NewSource(time.Now().UnixNano())))
	repo.OnChange(heatmap.Invalidate)
	search.OnAreaChange(repo.SetSearchArea)

	a := &App{
		Repo:       repo,
		Search:     search,
		Statistics: service.NewStatisticsService(repo, search),
		Heatmap:    heatmap,
		Scene:      scene,
	}

	a.Router = api.SetupRouter(api.Deps{
		Repo:       repo,
		Search:     search,
		Statistics: a.Statistics,
		Heatmap:    heatmap,
		Scene:      scene,
		MapConfig: models.MapConfig{
			APIKey: cfg.MapsAPIKey,
			Center: cfg.MapCenter,
			Zoom:   cfg.MapZoom,
		},
		ReloadLimiter:  middleware.NewRateLimiter(cfg.ReloadLimit, cfg.ReloadWindow),
		AllowedOrigins: cfg.AllowedOrigins,
		Log:            log.Named("http"),
	})
	return a
}

// NewLoader picks the project source named by cfg.DataSource
func NewLoader(cfg *config.Config, log *zap.Logger) client.ProjectLoader {
	if cfg.DataSource == config.DataSourceSample {
		l := client.DefaultSampleLoader()
		l.Center = cfg.MapCenter
		return l
	}
	return client.NewAPIClient(client.APIClientOptions{
		Endpoint: cfg.APIEndpoint,
		APIKey:   cfg.APIKey,
		Timeout:  cfg.HTTPTimeout,
	}, log.Named("api"))
}

// Start performs the initial project load
func (a *App) Start(ctx context.Context) {
	a.Repo.Load(ctx)
}
