package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jengzang/solar-explorer-go/internal/client"
	"github.com/jengzang/solar-explorer-go/internal/mapview"
	"github.com/jengzang/solar-explorer-go/internal/models"
	"github.com/jengzang/solar-explorer-go/internal/spatial"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Errors returned by ProjectRepository
var (
	ErrProjectNotFound = errors.New("project not found")
	ErrNoMarker        = errors.New("project has no marker")
)

// ChangeListener is called with the new collection after every applied load
type ChangeListener func(projects []models.Project)

// Options configures a ProjectRepository
type Options struct {
	Visible bool // render markers after each load
}

// ProjectRepository holds the working project collection and owns the
// project markers on the map
type ProjectRepository struct {
	loader   client.ProjectLoader
	provider mapview.Provider
	log      *zap.Logger
	printer  *message.Printer

	mu        sync.RWMutex
	projects  []models.Project
	status    models.RequestStatus
	lastErr   error
	visible   bool
	handles   []mapview.Handle
	markers   map[string]mapview.Handle // project ID -> marker
	issued    uint64
	applied   uint64
	inFlight  int
	listeners []ChangeListener

	area       *models.Coordinates // active search center
	areaRadius float64
}

// NewProjectRepository creates a repository with an empty collection
func NewProjectRepository(loader client.ProjectLoader, provider mapview.Provider, log *zap.Logger, opts Options) *ProjectRepository {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProjectRepository{
		loader:   loader,
		provider: provider,
		log:      log,
		printer:  message.NewPrinter(language.LatinAmericanSpanish),
		status:   models.RequestIdle,
		visible:  opts.Visible,
		markers:  make(map[string]mapview.Handle),
	}
}

// OnChange registers a listener for collection replacement
func (r *ProjectRepository) OnChange(l ChangeListener) {
	r.mu.Lock()
	r.listeners = append(r.listeners, l)
	r.mu.Unlock()
}

// Load fetches the collection and replaces the current one. A failed fetch
// leaves an empty collection; the error is logged and recorded, never returned.
// When loads overlap, the result of the most recently started load wins and
// older results arriving later are discarded.
func (r *ProjectRepository) Load(ctx context.Context) []models.Project {
	r.mu.Lock()
	r.issued++
	gen := r.issued
	r.inFlight++
	r.mu.Unlock()

	projects, err := r.loader.GetProjects(ctx)

	r.mu.Lock()
	r.inFlight--

	if gen < r.applied {
		r.log.Info("discarding stale project load",
			zap.Uint64("generation", gen),
			zap.Uint64("applied", r.applied),
		)
		current := cloneProjects(r.projects)
		r.mu.Unlock()
		return current
	}
	r.applied = gen

	if err != nil {
		r.log.Error("failed to load projects", zap.Error(err), zap.Uint64("generation", gen))
		r.projects = nil
		r.status = models.RequestFailed
		r.lastErr = err
	} else {
		r.projects = cloneProjects(projects)
		r.status = models.RequestSucceeded
		r.lastErr = nil
		r.log.Info("projects loaded", zap.Int("count", len(projects)), zap.Uint64("generation", gen))
	}

	if r.visible {
		r.renderLocked()
	} else {
		r.clearLocked()
	}

	snapshot := cloneProjects(r.projects)
	listeners := append([]ChangeListener(nil), r.listeners...)
	r.mu.Unlock()

	for _, l := range listeners {
		l(cloneProjects(snapshot))
	}

	return snapshot
}

// Projects returns a copy of the current collection
func (r *ProjectRepository) Projects() []models.Project {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneProjects(r.projects)
}

// Project returns the project with the given ID
func (r *ProjectRepository) Project(id string) (models.Project, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.projects {
		if p.ID == id {
			return p, true
		}
	}
	return models.Project{}, false
}

// Status returns in_flight while any load is running, otherwise the outcome
// of the last applied load
func (r *ProjectRepository) Status() models.RequestStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.inFlight > 0 {
		return models.RequestInFlight
	}
	return r.status
}

// IsLoading reports whether a load is in flight
func (r *ProjectRepository) IsLoading() bool {
	return r.Status().IsLoading()
}

// LastError returns the error of the last applied load, if it failed
func (r *ProjectRepository) LastError() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastErr
}

// Generation returns the generation of the last applied load
func (r *ProjectRepository) Generation() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.applied
}

// Visible reports whether project markers are shown
func (r *ProjectRepository) Visible() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.visible
}

// ShowMarkers re-renders one marker per project with a known location
func (r *ProjectRepository) ShowMarkers() {
	r.mu.Lock()
	r.renderLocked()
	r.mu.Unlock()
}

// ClearMarkers removes every project marker and closes open details
func (r *ProjectRepository) ClearMarkers() {
	r.mu.Lock()
	r.clearLocked()
	r.mu.Unlock()
}

// ToggleVisibility shows or hides markers without discarding the collection
func (r *ProjectRepository) ToggleVisibility(visible bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.visible = visible
	if visible {
		r.renderLocked()
	} else {
		r.clearLocked()
	}
}

// OpenDetail opens the detail overlay of one project, closing any other
func (r *ProjectRepository) OpenDetail(projectID string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.markers[projectID]
	if !ok {
		for _, p := range r.projects {
			if p.ID == projectID {
				return fmt.Errorf("%w: %s", ErrNoMarker, projectID)
			}
		}
		return fmt.Errorf("%w: %s", ErrProjectNotFound, projectID)
	}

	r.provider.CloseDetails()
	r.provider.OpenDetail(h)
	return nil
}

// SetSearchArea records the active search area. Markers of projects inside
// it show their distance from the center; a nil center removes the distances.
// Visible markers are re-rendered.
func (r *ProjectRepository) SetSearchArea(center *models.Coordinates, radiusKm float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if center == nil {
		r.area = nil
	} else {
		c := *center
		r.area = &c
	}
	r.areaRadius = radiusKm

	if r.visible && len(r.projects) > 0 {
		r.renderLocked()
	}
}

// MarkerCount returns the number of rendered project markers
func (r *ProjectRepository) MarkerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handles)
}

func (r *ProjectRepository) renderLocked() {
	r.clearLocked()

	skipped := 0
	for _, p := range r.projects {
		if !p.HasLocation() {
			skipped++
			continue
		}
		style := mapview.ProjectMarkerStyle
		style.Title = p.Name
		style.Detail = r.detail(p)
		style.RefID = p.ID
		h := r.provider.CreateMarker(p.Location, style)
		r.handles = append(r.handles, h)
		r.markers[p.ID] = h
	}

	if skipped > 0 {
		r.log.Debug("skipped projects without location", zap.Int("count", skipped))
	}
}

func (r *ProjectRepository) clearLocked() {
	r.provider.CloseDetails()
	for _, h := range r.handles {
		r.provider.RemoveMarker(h)
	}
	r.handles = nil
	clear(r.markers)
}

func (r *ProjectRepository) detail(p models.Project) string {
	text := r.printer.Sprintf("%s\nPrecio: %d COP\nRadiación: %.2f kWh/kWp", p.Name, int64(p.Price), p.Radiation)
	if r.area == nil {
		return text
	}
	if d := spatial.DistanceKm(*r.area, p.Location); d <= r.areaRadius {
		text += r.printer.Sprintf("\nDistancia: %.2f km", d)
	}
	return text
}

func cloneProjects(in []models.Project) []models.Project {
	out := make([]models.Project, len(in))
	copy(out, in)
	return out
}
