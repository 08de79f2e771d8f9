package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/jengzang/solar-explorer-go/internal/mapview"
	"github.com/jengzang/solar-explorer-go/internal/models"
	"github.com/jengzang/solar-explorer-go/internal/spatial"
	"github.com/jengzang/solar-explorer-go/internal/stats"
	"go.uber.org/zap"
)

// ErrUnknownHeatmapType is returned for a type other than price or radiation
var ErrUnknownHeatmapType = errors.New("unknown heatmap type")

// Normalization and hot-spot synthesis parameters
const (
	WeightEpsilon = 1e-9
	UniformWeight = 0.5 // weight of every point when all values are equal

	HotspotThreshold    = 0.7
	HotspotMaxExtra     = 3
	HotspotWeightFactor = 0.6
	HotspotJitterMeters = 1000.0
)

// HeatmapConfigs holds the visual parameters per heatmap type
var HeatmapConfigs = map[models.HeatmapType]models.HeatmapConfig{
	models.HeatmapPrice: {
		Radius:      25,
		Opacity:     0.8,
		Dissipating: true,
		Gradient: []string{
			"rgba(0, 255, 255, 0)",
			"rgba(0, 255, 255, 1)",
			"rgba(0, 191, 255, 1)",
			"rgba(0, 127, 255, 1)",
			"rgba(0, 63, 255, 1)",
			"rgba(0, 0, 255, 1)",
		},
	},
	models.HeatmapRadiation: {
		Radius:      25,
		Opacity:     0.8,
		Dissipating: true,
		Gradient: []string{
			"rgba(0, 255, 0, 0)",
			"rgba(0, 255, 0, 1)",
			"rgba(128, 255, 0, 1)",
			"rgba(255, 255, 0, 1)",
			"rgba(255, 128, 0, 1)",
			"rgba(255, 0, 0, 1)",
		},
	},
}

// JitterSource supplies uniform values in [0, 1). *rand.Rand satisfies it.
type JitterSource interface {
	Float64() float64
}

// HeatmapService builds weighted heatmap layers from the project collection
// and owns the single active overlay
type HeatmapService struct {
	source   ProjectSource
	provider mapview.Provider
	log      *zap.Logger
	jitter   JitterSource // nil disables hot-spot synthesis

	mu       sync.Mutex
	active   models.HeatmapType
	layer    mapview.Handle
	rendered []models.HeatmapPoint
	cache    map[models.HeatmapType][]models.HeatmapPoint
}

// NewHeatmapService creates a heatmap service with no active overlay
func NewHeatmapService(source ProjectSource, provider mapview.Provider, log *zap.Logger, jitter JitterSource) *HeatmapService {
	if log == nil {
		log = zap.NewNop()
	}
	return &HeatmapService{
		source:   source,
		provider: provider,
		log:      log,
		jitter:   jitter,
		active:   models.HeatmapNone,
		cache:    make(map[models.HeatmapType][]models.HeatmapPoint),
	}
}

// Toggle turns heatmap t off when it is active, otherwise makes it the
// active overlay. It returns the resulting active type.
func (h *HeatmapService) Toggle(t models.HeatmapType) (models.HeatmapType, error) {
	if err := checkType(t); err != nil {
		return h.Active(), err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.active == t {
		h.removeLayerLocked()
		h.active = models.HeatmapNone
		h.log.Debug("heatmap disabled", zap.String("type", string(t)))
		return h.active, nil
	}

	h.active = t
	h.installLocked()
	h.log.Debug("heatmap enabled", zap.String("type", string(t)), zap.Int("points", len(h.rendered)))
	return h.active, nil
}

// Active returns the active heatmap type
func (h *HeatmapService) Active() models.HeatmapType {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.active
}

// Points returns the points of the installed overlay
func (h *HeatmapService) Points() []models.HeatmapPoint {
	h.mu.Lock()
	defer h.mu.Unlock()
	return clonePoints(h.rendered)
}

// Normalize returns one weighted point per located project
func (h *HeatmapService) Normalize(t models.HeatmapType) ([]models.HeatmapPoint, error) {
	if err := checkType(t); err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	return clonePoints(h.normalizedLocked(t)), nil
}

// Render returns the normalized points plus synthesized hot-spot points
func (h *HeatmapService) Render(t models.HeatmapType) ([]models.HeatmapPoint, error) {
	if err := checkType(t); err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.renderLocked(t), nil
}

// Invalidate drops cached points. An active overlay is rebuilt from the new
// collection. It is registered as a repository change listener.
func (h *HeatmapService) Invalidate(_ []models.Project) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clear(h.cache)
	if h.active != models.HeatmapNone {
		h.installLocked()
	}
}

func (h *HeatmapService) installLocked() {
	h.removeLayerLocked()

	points := h.renderLocked(h.active)
	h.rendered = points
	if len(points) == 0 {
		return
	}
	h.layer = h.provider.CreateOverlayLayer(points, HeatmapConfigs[h.active])
}

func (h *HeatmapService) removeLayerLocked() {
	if h.layer != "" {
		h.provider.RemoveLayer(h.layer)
		h.layer = ""
	}
	h.rendered = nil
}

func (h *HeatmapService) normalizedLocked(t models.HeatmapType) []models.HeatmapPoint {
	if points, ok := h.cache[t]; ok {
		return points
	}
	points := NormalizeProjects(h.source.Projects(), t)
	h.cache[t] = points
	return points
}

func (h *HeatmapService) renderLocked(t models.HeatmapType) []models.HeatmapPoint {
	base := h.normalizedLocked(t)
	out := clonePoints(base)
	if h.jitter == nil {
		return out
	}

	for _, p := range base {
		if p.Weight < HotspotThreshold {
			continue
		}
		extra := 1 + int(h.jitter.Float64()*HotspotMaxExtra)
		if extra > HotspotMaxExtra {
			extra = HotspotMaxExtra
		}
		for i := 0; i < extra; i++ {
			bearing := h.jitter.Float64() * 360
			dist := h.jitter.Float64() * HotspotJitterMeters
			out = append(out, models.HeatmapPoint{
				Location: spatial.Offset(p.Location, bearing, dist),
				Weight:   p.Weight * HotspotWeightFactor,
			})
		}
	}
	return out
}

// NormalizeProjects weights located projects by the field selected by t.
// Weights span [0, 1]; with a collapsed range every weight is UniformWeight.
func NormalizeProjects(projects []models.Project, t models.HeatmapType) []models.HeatmapPoint {
	located := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if p.HasLocation() {
			located = append(located, p)
		}
	}
	if len(located) == 0 {
		return []models.HeatmapPoint{}
	}

	values := make([]float64, len(located))
	for i, p := range located {
		values[i] = fieldValue(p, t)
	}
	weights := stats.Normalize(values, WeightEpsilon, UniformWeight)

	points := make([]models.HeatmapPoint, len(located))
	for i, p := range located {
		points[i] = models.HeatmapPoint{Location: p.Location, Weight: weights[i]}
	}
	return points
}

func fieldValue(p models.Project, t models.HeatmapType) float64 {
	if t == models.HeatmapRadiation {
		return p.Radiation
	}
	return p.Price
}

func checkType(t models.HeatmapType) error {
	if _, ok := HeatmapConfigs[t]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownHeatmapType, t)
	}
	return nil
}

func clonePoints(in []models.HeatmapPoint) []models.HeatmapPoint {
	if in == nil {
		return []models.HeatmapPoint{}
	}
	out := make([]models.HeatmapPoint, len(in))
	copy(out, in)
	return out
}
