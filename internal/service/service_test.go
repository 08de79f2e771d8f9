package service

import (
	"github.com/jengzang/solar-explorer-go/internal/mapview"
	"github.com/jengzang/solar-explorer-go/internal/models"
)

type staticSource struct {
	projects []models.Project
}

func (s *staticSource) Projects() []models.Project {
	out := make([]models.Project, len(s.projects))
	copy(out, s.projects)
	return out
}

var medellin = models.Coordinates{Lat: 6.2442, Lng: -75.5812}

// fixtureProjects are roughly 0, 11 and 111 km north of medellin plus one
// project without a location
func fixtureProjects() []models.Project {
	return []models.Project{
		{ID: "far", Name: "Far", Location: models.Coordinates{Lat: 7.2442, Lng: -75.5812}, Price: 300, Radiation: 6},
		{ID: "here", Name: "Here", Location: medellin, Price: 100, Radiation: 4},
		{ID: "near", Name: "Near", Location: models.Coordinates{Lat: 6.3442, Lng: -75.5812}, Price: 200, Radiation: 5},
		{ID: "none", Name: "Nowhere", Price: 999, Radiation: 9},
	}
}

func newScene() *mapview.Scene {
	return mapview.NewScene(models.Coordinates{}, 6)
}
