package spatial

import (
	"testing"

	"github.com/jengzang/solar-explorer-go/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestBoundingBox(t *testing.T) {
	_, ok := BoundingBox(nil)
	assert.False(t, ok)

	b, ok := BoundingBox([]models.Coordinates{{Lat: 1, Lng: -3}, {Lat: -2, Lng: 4}, {Lat: 0.5, Lng: 0}})
	assert.True(t, ok)
	assert.Equal(t, Bounds{MinLat: -2, MinLng: -3, MaxLat: 1, MaxLng: 4}, b)
}

func TestCentroidAndLocations(t *testing.T) {
	projects := []models.Project{
		{ID: "a", Location: models.Coordinates{Lat: 2, Lng: 2}},
		{ID: "b"},
		{ID: "c", Location: models.Coordinates{Lat: 4, Lng: 6}},
	}

	locs := Locations(projects)
	assert.Len(t, locs, 2)
	assert.Equal(t, models.Coordinates{Lat: 3, Lng: 4}, Centroid(locs))
	assert.Equal(t, models.Coordinates{}, Centroid(nil))
}
