package service

import (
	"testing"

	"github.com/jengzang/solar-explorer-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeAbsent(t *testing.T) {
	assert.Nil(t, Summarize(nil, &medellin, 10))
	assert.Nil(t, Summarize([]models.Project{}, &medellin, 10))
	assert.Nil(t, Summarize(fixtureProjects(), nil, 10))

	farAway := models.Coordinates{Lat: -33.87, Lng: 151.21}
	assert.Nil(t, Summarize(fixtureProjects(), &farAway, 10))
}

func TestSummarize(t *testing.T) {
	got := Summarize(fixtureProjects(), &medellin, 200)
	require.NotNil(t, got)

	assert.Equal(t, 3, got.Count)
	assert.Equal(t, 200.0, got.AveragePrice)
	assert.Equal(t, 100.0, got.MinPrice)
	assert.Equal(t, 300.0, got.MaxPrice)
	assert.Equal(t, 5.0, got.AverageRadiation)
	assert.Equal(t, 4.0, got.MinRadiation)
	assert.Equal(t, 6.0, got.MaxRadiation)
	assert.Equal(t, 0.0, got.MinDistance)
	assert.InDelta(t, 111.2, got.MaxDistance, 0.1)
}

func TestSummarizeOnlyCountsRadius(t *testing.T) {
	got := Summarize(fixtureProjects(), &medellin, 20)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.Count)
	assert.Equal(t, 150.0, got.AveragePrice)
}

func TestStatisticsServiceCurrent(t *testing.T) {
	source := &staticSource{projects: fixtureProjects()}
	search := NewRadiusSearch(source, newScene(), nil, 5)
	svc := NewStatisticsService(source, search)

	assert.Nil(t, svc.Current())

	_, err := search.Search(medellin, 200)
	require.NoError(t, err)
	got := svc.Current()
	require.NotNil(t, got)
	assert.Equal(t, 3, got.Count)

	require.NoError(t, search.UpdateRadius(1))
	got = svc.Current()
	require.NotNil(t, got)
	assert.Equal(t, 1, got.Count)
}
