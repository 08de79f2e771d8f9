package spatial

import (
	"math"

	"github.com/jengzang/solar-explorer-go/internal/models"
)

// Centroid calculates the arithmetic centroid of a set of points
func Centroid(points []models.Coordinates) models.Coordinates {
	if len(points) == 0 {
		return models.Coordinates{}
	}

	var sumLat, sumLng float64
	for _, p := range points {
		sumLat += p.Lat
		sumLng += p.Lng
	}

	return models.Coordinates{
		Lat: sumLat / float64(len(points)),
		Lng: sumLng / float64(len(points)),
	}
}

// Bounds is an axis-aligned lat/lng box
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLng float64 `json:"max_lng"`
}

// BoundingBox calculates the bounding box of a set of points.
// ok is false when points is empty.
func BoundingBox(points []models.Coordinates) (b Bounds, ok bool) {
	if len(points) == 0 {
		return Bounds{}, false
	}

	b = Bounds{
		MinLat: math.Inf(1),
		MinLng: math.Inf(1),
		MaxLat: math.Inf(-1),
		MaxLng: math.Inf(-1),
	}
	for _, p := range points {
		b.MinLat = math.Min(b.MinLat, p.Lat)
		b.MaxLat = math.Max(b.MaxLat, p.Lat)
		b.MinLng = math.Min(b.MinLng, p.Lng)
		b.MaxLng = math.Max(b.MaxLng, p.Lng)
	}

	return b, true
}

// Locations returns the locations of projects that can be placed on a map
func Locations(projects []models.Project) []models.Coordinates {
	out := make([]models.Coordinates, 0, len(projects))
	for _, p := range projects {
		if p.HasLocation() {
			out = append(out, p.Location)
		}
	}
	return out
}
