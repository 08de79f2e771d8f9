package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jengzang/solar-explorer-go/internal/mapview"
	"github.com/jengzang/solar-explorer-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type stubLoader struct {
	projects []models.Project
	err      error
}

func (s *stubLoader) GetProjects(ctx context.Context) ([]models.Project, error) {
	return s.projects, s.err
}

// gatedLoader returns results in the order the test releases them
type gatedLoader struct {
	mu      sync.Mutex
	calls   int
	gates   []chan struct{}
	results [][]models.Project
	started chan int
}

func (g *gatedLoader) GetProjects(ctx context.Context) ([]models.Project, error) {
	g.mu.Lock()
	i := g.calls
	g.calls++
	g.mu.Unlock()

	g.started <- i
	<-g.gates[i]
	return g.results[i], nil
}

func fixture() []models.Project {
	return []models.Project{
		{ID: "1", Name: "Alpha", Location: models.Coordinates{Lat: 6.2, Lng: -75.5}, Price: 100, Radiation: 4},
		{ID: "2", Name: "Beta", Location: models.Coordinates{Lat: 6.3, Lng: -75.6}, Price: 200, Radiation: 5},
		{ID: "3", Name: "Unknown", Price: 300},
	}
}

func newScene() *mapview.Scene {
	return mapview.NewScene(models.Coordinates{}, 6)
}

func TestLoadRendersMarkersForLocatedProjects(t *testing.T) {
	scene := newScene()
	repo := NewProjectRepository(&stubLoader{projects: fixture()}, scene, zap.NewNop(), Options{Visible: true})

	var notified []models.Project
	repo.OnChange(func(p []models.Project) { notified = p })

	got := repo.Load(context.Background())
	assert.Len(t, got, 3)
	assert.Len(t, notified, 3)
	assert.Equal(t, models.RequestSucceeded, repo.Status())
	assert.False(t, repo.IsLoading())
	assert.NoError(t, repo.LastError())
	assert.Equal(t, 2, scene.MarkerCount("project"))
	assert.Equal(t, 2, repo.MarkerCount())
	assert.Equal(t, uint64(1), repo.Generation())

	p, ok := repo.Project("2")
	require.True(t, ok)
	assert.Equal(t, "Beta", p.Name)
}

func TestLoadFailureLeavesEmptyCollection(t *testing.T) {
	scene := newScene()
	loader := &stubLoader{projects: fixture()}
	core, logs := observer.New(zap.ErrorLevel)
	repo := NewProjectRepository(loader, scene, zap.New(core), Options{Visible: true})

	repo.Load(context.Background())
	require.Equal(t, 2, scene.MarkerCount(""))

	loader.projects, loader.err = nil, errors.New("connection refused")
	calls := 0
	var notified []models.Project
	repo.OnChange(func(p []models.Project) {
		calls++
		notified = p
	})

	got := repo.Load(context.Background())
	assert.Empty(t, got)
	assert.Empty(t, repo.Projects())
	assert.Equal(t, 1, calls)
	assert.Empty(t, notified)
	assert.Equal(t, models.RequestFailed, repo.Status())
	assert.EqualError(t, repo.LastError(), "connection refused")
	assert.Equal(t, 0, scene.MarkerCount(""))
	assert.Equal(t, 1, logs.FilterMessage("failed to load projects").Len())
}

func TestClearMarkersIsIdempotent(t *testing.T) {
	scene := newScene()
	repo := NewProjectRepository(&stubLoader{projects: fixture()}, scene, nil, Options{Visible: true})
	repo.Load(context.Background())

	require.NoError(t, repo.OpenDetail("1"))
	repo.ClearMarkers()
	repo.ClearMarkers()

	assert.Equal(t, 0, scene.MarkerCount(""))
	_, open := scene.OpenMarker()
	assert.False(t, open)
	assert.Len(t, repo.Projects(), 3)
}

func TestShowMarkersDoesNotDuplicate(t *testing.T) {
	scene := newScene()
	repo := NewProjectRepository(&stubLoader{projects: fixture()}, scene, nil, Options{Visible: true})
	repo.Load(context.Background())

	repo.ShowMarkers()
	repo.ShowMarkers()
	assert.Equal(t, 2, scene.MarkerCount(""))
}

func TestToggleVisibility(t *testing.T) {
	scene := newScene()
	repo := NewProjectRepository(&stubLoader{projects: fixture()}, scene, nil, Options{Visible: false})
	repo.Load(context.Background())
	assert.Equal(t, 0, scene.MarkerCount(""))

	repo.ToggleVisibility(true)
	assert.True(t, repo.Visible())
	assert.Equal(t, 2, scene.MarkerCount(""))

	repo.ToggleVisibility(false)
	assert.Equal(t, 0, scene.MarkerCount(""))
	assert.Len(t, repo.Projects(), 3)
}

func TestOpenDetail(t *testing.T) {
	scene := newScene()
	repo := NewProjectRepository(&stubLoader{projects: fixture()}, scene, nil, Options{Visible: true})
	repo.Load(context.Background())

	require.NoError(t, repo.OpenDetail("1"))
	first, _ := scene.OpenMarker()
	require.NoError(t, repo.OpenDetail("2"))
	second, _ := scene.OpenMarker()
	assert.NotEqual(t, first, second)

	assert.ErrorIs(t, repo.OpenDetail("3"), ErrNoMarker)
	assert.ErrorIs(t, repo.OpenDetail("404"), ErrProjectNotFound)
}

func TestDetailText(t *testing.T) {
	scene := newScene()
	repo := NewProjectRepository(&stubLoader{projects: fixture()}, scene, nil, Options{Visible: true})
	repo.Load(context.Background())

	fc := scene.FeatureCollection()
	require.NotEmpty(t, fc.Features)
	detail, _ := fc.Features[0].Properties["detail"].(string)
	assert.Contains(t, detail, "Alpha")
	assert.Contains(t, detail, "kWh/kWp")
	assert.Contains(t, detail, "COP")
}

func markerDetails(scene *mapview.Scene) map[string]string {
	out := make(map[string]string)
	for _, f := range scene.FeatureCollection().Features {
		id, _ := f.Properties["ref_id"].(string)
		detail, _ := f.Properties["detail"].(string)
		out[id] = detail
	}
	return out
}

func TestDetailShowsDistanceInsideSearchArea(t *testing.T) {
	scene := newScene()
	repo := NewProjectRepository(&stubLoader{projects: fixture()}, scene, nil, Options{Visible: true})
	repo.Load(context.Background())

	assert.NotContains(t, markerDetails(scene)["1"], "Distancia")

	center := models.Coordinates{Lat: 6.21, Lng: -75.5}
	repo.SetSearchArea(&center, 5)

	details := markerDetails(scene)
	assert.Contains(t, details["1"], "Distancia:")
	assert.Contains(t, details["1"], " km")
	assert.NotContains(t, details["2"], "Distancia")
	assert.Equal(t, 2, repo.MarkerCount())

	repo.SetSearchArea(nil, 0)
	assert.NotContains(t, markerDetails(scene)["1"], "Distancia")
}

func TestOverlappingLoadsKeepNewestResult(t *testing.T) {
	loader := &gatedLoader{
		gates:   []chan struct{}{make(chan struct{}), make(chan struct{})},
		results: [][]models.Project{fixture()[:1], fixture()[:2]},
		started: make(chan int, 2),
	}
	repo := NewProjectRepository(loader, newScene(), nil, Options{Visible: true})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		repo.Load(context.Background())
	}()
	<-loader.started

	wg.Add(1)
	go func() {
		defer wg.Done()
		repo.Load(context.Background())
	}()
	<-loader.started
	assert.True(t, repo.IsLoading())

	// newer load finishes first
	close(loader.gates[1])
	require.Eventually(t, func() bool { return repo.Generation() == 2 }, timeout, tick)

	// older load finishes late and must not overwrite
	close(loader.gates[0])
	wg.Wait()

	assert.Len(t, repo.Projects(), 2)
	assert.Equal(t, uint64(2), repo.Generation())
	assert.Equal(t, models.RequestSucceeded, repo.Status())
}

const (
	timeout = 2 * time.Second
	tick    = 5 * time.Millisecond
)
