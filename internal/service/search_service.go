package service

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/jengzang/solar-explorer-go/internal/mapview"
	"github.com/jengzang/solar-explorer-go/internal/models"
	"github.com/jengzang/solar-explorer-go/internal/spatial"
	"go.uber.org/zap"
)

// ErrInvalidRadius is returned for a negative or non-finite search radius
var ErrInvalidRadius = errors.New("invalid radius")

// SearchZoom is the zoom level applied when a search centers the map
const SearchZoom = 12

// ProjectSource provides the current project collection
type ProjectSource interface {
	Projects() []models.Project
}

// WithinRadius returns the projects within radiusKm of center, nearest first.
// Projects without a known location are skipped. The input is not modified.
func WithinRadius(projects []models.Project, center models.Coordinates, radiusKm float64) []models.ProjectDistance {
	out := make([]models.ProjectDistance, 0)
	for _, p := range projects {
		if !p.HasLocation() {
			continue
		}
		d := spatial.DistanceKm(center, p.Location)
		if d <= radiusKm {
			out = append(out, models.ProjectDistance{Project: p, DistanceKm: d})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	return out
}

// AreaListener is called when the search area changes. center is nil once
// the search is cleared.
type AreaListener func(center *models.Coordinates, radiusKm float64)

// RadiusSearch runs proximity searches and owns the search marker and circle
type RadiusSearch struct {
	source   ProjectSource
	provider mapview.Provider
	log      *zap.Logger

	mu        sync.Mutex
	center    models.Coordinates
	hasCenter bool
	radiusKm  float64
	marker    mapview.Handle
	circle    mapview.Handle
	listeners []AreaListener
}

// NewRadiusSearch creates a search with the given initial radius
func NewRadiusSearch(source ProjectSource, provider mapview.Provider, log *zap.Logger, radiusKm float64) *RadiusSearch {
	if log == nil {
		log = zap.NewNop()
	}
	return &RadiusSearch{
		source:   source,
		provider: provider,
		log:      log,
		radiusKm: radiusKm,
	}
}

// OnAreaChange registers a listener for search area changes
func (s *RadiusSearch) OnAreaChange(l AreaListener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
}

// Search validates center, filters the collection and moves the overlay.
// On a validation error nothing changes.
func (s *RadiusSearch) Search(center models.Coordinates, radiusKm float64) ([]models.ProjectDistance, error) {
	if err := spatial.ValidateCenter(center); err != nil {
		return nil, err
	}
	if err := validateRadius(radiusKm); err != nil {
		return nil, err
	}

	results := WithinRadius(s.source.Projects(), center, radiusKm)

	s.mu.Lock()
	s.center = center
	s.hasCenter = true
	s.radiusKm = radiusKm

	s.provider.PanTo(center)
	s.provider.SetZoom(SearchZoom)

	if s.marker != "" {
		s.provider.RemoveMarker(s.marker)
	}
	s.marker = s.provider.CreateMarker(center, mapview.SearchMarkerStyle)

	if s.circle != "" {
		s.provider.RemoveCircle(s.circle)
	}
	s.circle = s.provider.CreateCircle(center, radiusKm, mapview.SearchCircleStyle)
	listeners := s.listeners
	s.mu.Unlock()

	notifyArea(listeners, &center, radiusKm)

	s.log.Debug("radius search",
		zap.Float64("lat", center.Lat),
		zap.Float64("lng", center.Lng),
		zap.Float64("radius_km", radiusKm),
		zap.Int("matches", len(results)),
	)
	return results, nil
}

// Results re-runs the last search against the current collection
func (s *RadiusSearch) Results() ([]models.ProjectDistance, bool) {
	center, radius, ok := s.state()
	if !ok {
		return nil, false
	}
	return WithinRadius(s.source.Projects(), center, radius), true
}

// Annotate returns every located project with its distance from center,
// in collection order
func (s *RadiusSearch) Annotate(center models.Coordinates) ([]models.ProjectDistance, error) {
	if err := spatial.ValidateCenter(center); err != nil {
		return nil, err
	}

	projects := s.source.Projects()
	out := make([]models.ProjectDistance, 0, len(projects))
	for _, p := range projects {
		if !p.HasLocation() {
			continue
		}
		out = append(out, models.ProjectDistance{Project: p, DistanceKm: spatial.DistanceKm(center, p.Location)})
	}
	return out, nil
}

// UpdateRadius changes the radius; an existing circle is resized in place
func (s *RadiusSearch) UpdateRadius(radiusKm float64) error {
	if err := validateRadius(radiusKm); err != nil {
		return err
	}

	s.mu.Lock()
	s.radiusKm = radiusKm
	switch {
	case s.circle != "":
		s.provider.SetCircleRadius(s.circle, radiusKm)
	case s.hasCenter:
		s.circle = s.provider.CreateCircle(s.center, radiusKm, mapview.SearchCircleStyle)
	}
	center, hasCenter, listeners := s.center, s.hasCenter, s.listeners
	s.mu.Unlock()

	if hasCenter {
		notifyArea(listeners, &center, radiusKm)
	}
	return nil
}

// Center returns the last search center
func (s *RadiusSearch) Center() (models.Coordinates, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.center, s.hasCenter
}

// Radius returns the current radius in km
func (s *RadiusSearch) Radius() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.radiusKm
}

// Clear removes the search marker and circle and forgets the center
func (s *RadiusSearch) Clear() {
	s.mu.Lock()
	if s.marker != "" {
		s.provider.RemoveMarker(s.marker)
		s.marker = ""
	}
	if s.circle != "" {
		s.provider.RemoveCircle(s.circle)
		s.circle = ""
	}
	hadCenter := s.hasCenter
	s.center = models.Coordinates{}
	s.hasCenter = false
	listeners := s.listeners
	s.mu.Unlock()

	if hadCenter {
		notifyArea(listeners, nil, 0)
	}
}

func (s *RadiusSearch) state() (models.Coordinates, float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.center, s.radiusKm, s.hasCenter
}

func notifyArea(listeners []AreaListener, center *models.Coordinates, radiusKm float64) {
	for _, l := range listeners {
		l(center, radiusKm)
	}
}

func validateRadius(km float64) error {
	if math.IsNaN(km) || math.IsInf(km, 0) || km < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidRadius, km)
	}
	return nil
}
