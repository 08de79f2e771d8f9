package mapview

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jengzang/solar-explorer-go/internal/models"
	"github.com/jengzang/solar-explorer-go/internal/spatial"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// circleVertices is the polygon resolution used to export circles
const circleVertices = 64

type marker struct {
	id       Handle
	position models.Coordinates
	style    MarkerStyle
	seq      int
}

type circle struct {
	id       Handle
	center   models.Coordinates
	radiusKm float64
	style    CircleStyle
	seq      int
}

type layer struct {
	id     Handle
	points []models.HeatmapPoint
	style  models.HeatmapConfig
	seq    int
}

// View is the camera state of the scene
type View struct {
	Center models.Coordinates `json:"center"`
	Zoom   int                `json:"zoom"`
}

// LayerInfo describes an installed overlay layer
type LayerInfo struct {
	ID     Handle               `json:"id"`
	Count  int                  `json:"count"`
	Config models.HeatmapConfig `json:"config"`
}

// Scene is a Provider that keeps every map object in memory
type Scene struct {
	mu      sync.RWMutex
	view    View
	markers map[Handle]*marker
	circles map[Handle]*circle
	layers  map[Handle]*layer
	open    Handle
	seq     int
}

// NewScene creates an empty scene with the given initial camera
func NewScene(center models.Coordinates, zoom int) *Scene {
	return &Scene{
		view:    View{Center: center, Zoom: zoom},
		markers: make(map[Handle]*marker),
		circles: make(map[Handle]*circle),
		layers:  make(map[Handle]*layer),
	}
}

func (s *Scene) next() (Handle, int) {
	s.seq++
	return Handle(uuid.NewString()), s.seq
}

// CreateMarker implements Provider
func (s *Scene) CreateMarker(position models.Coordinates, style MarkerStyle) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, seq := s.next()
	s.markers[id] = &marker{id: id, position: position, style: style, seq: seq}
	return id
}

// RemoveMarker implements Provider
func (s *Scene) RemoveMarker(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.markers, h)
	if s.open == h {
		s.open = ""
	}
}

// OpenDetail implements Provider. Only one detail overlay is open at a time.
func (s *Scene) OpenDetail(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.markers[h]; ok {
		s.open = h
	}
}

// CloseDetails implements Provider
func (s *Scene) CloseDetails() {
	s.mu.Lock()
	s.open = ""
	s.mu.Unlock()
}

// CreateCircle implements Provider
func (s *Scene) CreateCircle(center models.Coordinates, radiusKm float64, style CircleStyle) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, seq := s.next()
	s.circles[id] = &circle{id: id, center: center, radiusKm: radiusKm, style: style, seq: seq}
	return id
}

// SetCircleRadius implements Provider
func (s *Scene) SetCircleRadius(h Handle, radiusKm float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.circles[h]; ok {
		c.radiusKm = radiusKm
	}
}

// RemoveCircle implements Provider
func (s *Scene) RemoveCircle(h Handle) {
	s.mu.Lock()
	delete(s.circles, h)
	s.mu.Unlock()
}

// CreateOverlayLayer implements Provider
func (s *Scene) CreateOverlayLayer(points []models.HeatmapPoint, style models.HeatmapConfig) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, seq := s.next()
	cp := make([]models.HeatmapPoint, len(points))
	copy(cp, points)
	s.layers[id] = &layer{id: id, points: cp, style: style, seq: seq}
	return id
}

// RemoveLayer implements Provider
func (s *Scene) RemoveLayer(h Handle) {
	s.mu.Lock()
	delete(s.layers, h)
	s.mu.Unlock()
}

// PanTo implements Provider
func (s *Scene) PanTo(point models.Coordinates) {
	s.mu.Lock()
	s.view.Center = point
	s.mu.Unlock()
}

// SetZoom implements Provider
func (s *Scene) SetZoom(level int) {
	s.mu.Lock()
	s.view.Zoom = level
	s.mu.Unlock()
}

// View returns the current camera
func (s *Scene) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// MarkerCount returns the number of markers in group, or all markers when group is empty
func (s *Scene) MarkerCount(group string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if group == "" {
		return len(s.markers)
	}
	n := 0
	for _, m := range s.markers {
		if m.style.Group == group {
			n++
		}
	}
	return n
}

// CircleCount returns the number of circles
func (s *Scene) CircleCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.circles)
}

// CircleRadius returns the radius of circle h
func (s *Scene) CircleRadius(h Handle) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.circles[h]
	if !ok {
		return 0, false
	}
	return c.radiusKm, true
}

// OpenMarker returns the marker whose detail overlay is open
func (s *Scene) OpenMarker() (Handle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.open, s.open != ""
}

// Layers returns the installed overlay layers in creation order
func (s *Scene) Layers() []LayerInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*layer, 0, len(s.layers))
	for _, l := range s.layers {
		list = append(list, l)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].seq < list[j].seq })

	out := make([]LayerInfo, len(list))
	for i, l := range list {
		out[i] = LayerInfo{ID: l.id, Count: len(l.points), Config: l.style}
	}
	return out
}

// FeatureCollection exports markers, circles and layer points as GeoJSON.
// Circles are approximated by polygons.
func (s *Scene) FeatureCollection() *geojson.FeatureCollection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fc := geojson.NewFeatureCollection()

	markers := make([]*marker, 0, len(s.markers))
	for _, m := range s.markers {
		markers = append(markers, m)
	}
	sort.Slice(markers, func(i, j int) bool { return markers[i].seq < markers[j].seq })

	for _, m := range markers {
		f := geojson.NewFeature(toPoint(m.position))
		f.ID = string(m.id)
		f.Properties["kind"] = "marker"
		f.Properties["group"] = m.style.Group
		f.Properties["title"] = m.style.Title
		f.Properties["detail"] = m.style.Detail
		f.Properties["fill_color"] = m.style.FillColor
		f.Properties["fill_opacity"] = m.style.FillOpacity
		f.Properties["scale"] = m.style.Scale
		f.Properties["open"] = m.id == s.open
		if m.style.RefID != "" {
			f.Properties["ref_id"] = m.style.RefID
		}
		fc.Append(f)
	}

	circles := make([]*circle, 0, len(s.circles))
	for _, c := range s.circles {
		circles = append(circles, c)
	}
	sort.Slice(circles, func(i, j int) bool { return circles[i].seq < circles[j].seq })

	for _, c := range circles {
		f := geojson.NewFeature(circlePolygon(c.center, c.radiusKm))
		f.ID = string(c.id)
		f.Properties["kind"] = "circle"
		f.Properties["center"] = []float64{c.center.Lng, c.center.Lat}
		f.Properties["radius_km"] = c.radiusKm
		f.Properties["stroke_color"] = c.style.StrokeColor
		f.Properties["fill_color"] = c.style.FillColor
		f.Properties["fill_opacity"] = c.style.FillOpacity
		fc.Append(f)
	}

	layers := make([]*layer, 0, len(s.layers))
	for _, l := range s.layers {
		layers = append(layers, l)
	}
	sort.Slice(layers, func(i, j int) bool { return layers[i].seq < layers[j].seq })

	for _, l := range layers {
		for _, p := range l.points {
			f := geojson.NewFeature(toPoint(p.Location))
			f.Properties["kind"] = "heatmap"
			f.Properties["layer"] = string(l.id)
			f.Properties["weight"] = p.Weight
			fc.Append(f)
		}
	}

	return fc
}

func toPoint(c models.Coordinates) orb.Point {
	return orb.Point{c.Lng, c.Lat}
}

func circlePolygon(center models.Coordinates, radiusKm float64) orb.Polygon {
	ring := make(orb.Ring, 0, circleVertices+1)
	for i := 0; i < circleVertices; i++ {
		bearing := float64(i) * 360 / circleVertices
		ring = append(ring, toPoint(spatial.Offset(center, bearing, radiusKm*1000)))
	}
	ring = append(ring, ring[0])
	return orb.Polygon{ring}
}

var _ Provider = (*Scene)(nil)
