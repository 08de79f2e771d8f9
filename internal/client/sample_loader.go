package client

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/jengzang/solar-explorer-go/internal/models"
)

// SampleLoader generates synthetic projects scattered around a center.
// Output is deterministic for a given seed.
type SampleLoader struct {
	Center models.Coordinates
	Count  int
	Seed   int64
}

// DefaultSampleLoader returns 20 projects around Medellín
func DefaultSampleLoader() *SampleLoader {
	return &SampleLoader{
		Center: models.Coordinates{Lat: 6.2442, Lng: -75.5812},
		Count:  20,
		Seed:   1,
	}
}

// GetProjects implements ProjectLoader
func (l *SampleLoader) GetProjects(ctx context.Context) ([]models.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(l.Seed))
	projects := make([]models.Project, 0, l.Count)

	for i := 0; i < l.Count; i++ {
		// ±0.1 degrees, roughly 11 km
		loc := models.Coordinates{
			Lat: l.Center.Lat + (rng.Float64()-0.5)*0.2,
			Lng: l.Center.Lng + (rng.Float64()-0.5)*0.2,
		}
		radiation := 3 + rng.Float64()*5 // 3-8 kWh/kWp

		projects = append(projects, models.Project{
			ID:          fmt.Sprintf("sample-%d", i),
			Name:        fmt.Sprintf("Proyecto Solar %d", i+1),
			Coordinates: loc.String(),
			Location:    loc,
			Price:       float64(100000 + rng.Intn(900000)), // 100k - 1M COP
			Solargis:    fmt.Sprintf("%.2f", radiation),
			Radiation:   radiation,
		})
	}

	return projects, nil
}
