package service

import (
	"math/rand"
	"testing"

	"github.com/jengzang/solar-explorer-go/internal/models"
	"github.com/jengzang/solar-explorer-go/internal/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeProjects(t *testing.T) {
	points := NormalizeProjects(fixtureProjects(), models.HeatmapPrice)
	require.Len(t, points, 3)

	byLat := map[float64]float64{}
	for _, p := range points {
		byLat[p.Location.Lat] = p.Weight
	}
	assert.Equal(t, 1.0, byLat[7.2442])
	assert.Equal(t, 0.0, byLat[6.2442])
	assert.Equal(t, 0.5, byLat[6.3442])

	for _, p := range NormalizeProjects(fixtureProjects(), models.HeatmapRadiation) {
		assert.GreaterOrEqual(t, p.Weight, 0.0)
		assert.LessOrEqual(t, p.Weight, 1.0)
	}
}

func TestNormalizeProjectsUniform(t *testing.T) {
	projects := []models.Project{
		{ID: "a", Location: models.Coordinates{Lat: 1, Lng: 1}, Price: 50},
		{ID: "b", Location: models.Coordinates{Lat: 2, Lng: 2}, Price: 50},
	}
	for _, p := range NormalizeProjects(projects, models.HeatmapPrice) {
		assert.Equal(t, UniformWeight, p.Weight)
	}

	assert.Empty(t, NormalizeProjects(nil, models.HeatmapPrice))
	assert.Empty(t, NormalizeProjects([]models.Project{{ID: "x", Price: 1}}, models.HeatmapPrice))
}

func TestToggleStateMachine(t *testing.T) {
	scene := newScene()
	h := NewHeatmapService(&staticSource{projects: fixtureProjects()}, scene, nil, nil)

	active, err := h.Toggle(models.HeatmapPrice)
	require.NoError(t, err)
	assert.Equal(t, models.HeatmapPrice, active)
	require.Len(t, scene.Layers(), 1)
	assert.Equal(t, HeatmapConfigs[models.HeatmapPrice].Gradient, scene.Layers()[0].Config.Gradient)
	assert.Len(t, h.Points(), 3)

	active, err = h.Toggle(models.HeatmapRadiation)
	require.NoError(t, err)
	assert.Equal(t, models.HeatmapRadiation, active)
	require.Len(t, scene.Layers(), 1)
	assert.Equal(t, HeatmapConfigs[models.HeatmapRadiation].Gradient, scene.Layers()[0].Config.Gradient)

	active, err = h.Toggle(models.HeatmapRadiation)
	require.NoError(t, err)
	assert.Equal(t, models.HeatmapNone, active)
	assert.Empty(t, scene.Layers())
	assert.Empty(t, h.Points())
}

func TestToggleSameTypeTwiceLeavesNoOverlay(t *testing.T) {
	scene := newScene()
	h := NewHeatmapService(&staticSource{projects: fixtureProjects()}, scene, nil, rand.New(rand.NewSource(7)))

	_, err := h.Toggle(models.HeatmapPrice)
	require.NoError(t, err)
	_, err = h.Toggle(models.HeatmapPrice)
	require.NoError(t, err)

	assert.Equal(t, models.HeatmapNone, h.Active())
	assert.Empty(t, scene.Layers())
	for _, f := range scene.FeatureCollection().Features {
		assert.NotEqual(t, "heatmap", f.Properties["kind"])
	}
}

func TestToggleUnknownType(t *testing.T) {
	h := NewHeatmapService(&staticSource{}, newScene(), nil, nil)
	_, err := h.Toggle(models.HeatmapType("elevation"))
	assert.ErrorIs(t, err, ErrUnknownHeatmapType)
	assert.Equal(t, models.HeatmapNone, h.Active())

	_, err = h.Render(models.HeatmapNone)
	assert.ErrorIs(t, err, ErrUnknownHeatmapType)
}

func TestRenderSynthesizesHotspots(t *testing.T) {
	source := &staticSource{projects: fixtureProjects()}
	h := NewHeatmapService(source, newScene(), nil, rand.New(rand.NewSource(42)))

	canonical, err := h.Normalize(models.HeatmapPrice)
	require.NoError(t, err)
	rendered, err := h.Render(models.HeatmapPrice)
	require.NoError(t, err)

	require.Greater(t, len(rendered), len(canonical))
	assert.LessOrEqual(t, len(rendered), len(canonical)+HotspotMaxExtra)
	assert.Equal(t, canonical, rendered[:len(canonical)])

	hot := models.Coordinates{Lat: 7.2442, Lng: -75.5812}
	for _, p := range rendered[len(canonical):] {
		assert.InDelta(t, HotspotWeightFactor, p.Weight, 1e-12)
		assert.LessOrEqual(t, spatial.DistanceKm(hot, p.Location), HotspotJitterMeters/1000+1e-9)
	}

	again, err := h.Normalize(models.HeatmapPrice)
	require.NoError(t, err)
	assert.Equal(t, canonical, again)
}

func TestRenderWithoutJitterIsDeterministic(t *testing.T) {
	h := NewHeatmapService(&staticSource{projects: fixtureProjects()}, newScene(), nil, nil)

	a, err := h.Render(models.HeatmapPrice)
	require.NoError(t, err)
	b, err := h.Render(models.HeatmapPrice)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 3)
}

func TestInvalidateRecomputes(t *testing.T) {
	source := &staticSource{projects: fixtureProjects()}
	scene := newScene()
	h := NewHeatmapService(source, scene, nil, nil)

	_, err := h.Toggle(models.HeatmapPrice)
	require.NoError(t, err)
	first := scene.Layers()[0].ID

	source.projects = fixtureProjects()[:2]
	cached, _ := h.Normalize(models.HeatmapPrice)
	assert.Len(t, cached, 3)

	h.Invalidate(source.projects)
	fresh, _ := h.Normalize(models.HeatmapPrice)
	assert.Len(t, fresh, 2)

	require.Len(t, scene.Layers(), 1)
	assert.NotEqual(t, first, scene.Layers()[0].ID)
	assert.Equal(t, 2, scene.Layers()[0].Count)

	source.projects = nil
	h.Invalidate(nil)
	assert.Empty(t, scene.Layers())
	assert.Equal(t, models.HeatmapPrice, h.Active())
}
