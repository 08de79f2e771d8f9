package service

import (
	"github.com/jengzang/solar-explorer-go/internal/models"
	"github.com/jengzang/solar-explorer-go/internal/stats"
)

// Summarize computes statistics over the projects within radiusKm of center.
// It returns nil when there is no center, no projects or no match.
func Summarize(projects []models.Project, center *models.Coordinates, radiusKm float64) *models.StatisticsResult {
	if center == nil || len(projects) == 0 {
		return nil
	}

	matches := WithinRadius(projects, *center, radiusKm)
	if len(matches) == 0 {
		return nil
	}

	prices := make([]float64, len(matches))
	radiations := make([]float64, len(matches))
	distances := make([]float64, len(matches))
	for i, m := range matches {
		prices[i] = m.Price
		radiations[i] = m.Radiation
		distances[i] = m.DistanceKm
	}

	price := stats.Summarize(prices)
	radiation := stats.Summarize(radiations)

	return &models.StatisticsResult{
		Count:            len(matches),
		AveragePrice:     price.Mean,
		MinPrice:         price.Min,
		MaxPrice:         price.Max,
		AverageRadiation: radiation.Mean,
		MinRadiation:     radiation.Min,
		MaxRadiation:     radiation.Max,
		MinDistance:      stats.Min(distances),
		MaxDistance:      stats.Max(distances),
	}
}

// StatisticsService summarizes the collection around the current search
type StatisticsService struct {
	source ProjectSource
	search *RadiusSearch
}

// NewStatisticsService creates a new statistics service
func NewStatisticsService(source ProjectSource, search *RadiusSearch) *StatisticsService {
	return &StatisticsService{source: source, search: search}
}

// Current returns statistics for the current search center and radius
func (s *StatisticsService) Current() *models.StatisticsResult {
	center, radius, ok := s.search.state()
	if !ok {
		return nil
	}
	return Summarize(s.source.Projects(), &center, radius)
}
