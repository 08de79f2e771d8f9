package client

import (
	"context"

	"github.com/jengzang/solar-explorer-go/internal/models"
	"github.com/jengzang/solar-explorer-go/internal/spatial"
	"go.uber.org/zap"
)

// ProjectLoader is a source of enriched projects
type ProjectLoader interface {
	GetProjects(ctx context.Context) ([]models.Project, error)
}

// Enrich converts a raw API record into a Project with parsed location,
// price and radiation. Malformed fields are logged and fall back to their
// zero value; the record itself is always kept.
func Enrich(raw models.RawProject, log *zap.Logger) models.Project {
	price, err := raw.Price.Float()
	if err != nil && log != nil {
		log.Warn("failed to parse price", zap.String("raw", string(raw.Price)), zap.Error(err))
	}
	return models.Project{
		ID:          string(raw.ID),
		Name:        string(raw.Name),
		Coordinates: string(raw.Coordinates),
		Location:    spatial.ParseCoordinatesLogged(string(raw.Coordinates), log),
		Price:       price,
		Solargis:    string(raw.Solargis),
		Radiation:   spatial.ParseRadiationLogged(string(raw.Solargis), log),
		Agreement:   string(raw.Agreement),
	}
}
