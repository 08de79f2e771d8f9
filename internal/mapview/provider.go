// Package mapview defines the capabilities the explorer needs from a map and
// an in-memory Scene that records them for a front-end to draw.
package mapview

import "github.com/jengzang/solar-explorer-go/internal/models"

// Handle identifies an object created on the map
type Handle string

// MarkerStyle describes how a marker is drawn
type MarkerStyle struct {
	Title       string  `json:"title,omitempty"`
	Detail      string  `json:"detail,omitempty"` // info window body
	FillColor   string  `json:"fill_color"`
	FillOpacity float64 `json:"fill_opacity"`
	StrokeColor string  `json:"stroke_color,omitempty"`
	StrokeWidth int     `json:"stroke_weight"`
	Scale       int     `json:"scale"`
	Group       string  `json:"group"` // "project" or "search"
	RefID       string  `json:"ref_id,omitempty"`
}

// CircleStyle describes how a radius circle is drawn
type CircleStyle struct {
	StrokeColor string  `json:"stroke_color"`
	FillColor   string  `json:"fill_color"`
	FillOpacity float64 `json:"fill_opacity"`
}

// Provider is the map capability surface the explorer depends on.
// Removing an unknown handle is a no-op.
type Provider interface {
	CreateMarker(position models.Coordinates, style MarkerStyle) Handle
	RemoveMarker(h Handle)
	OpenDetail(h Handle)
	CloseDetails()

	CreateCircle(center models.Coordinates, radiusKm float64, style CircleStyle) Handle
	SetCircleRadius(h Handle, radiusKm float64)
	RemoveCircle(h Handle)

	CreateOverlayLayer(points []models.HeatmapPoint, style models.HeatmapConfig) Handle
	RemoveLayer(h Handle)

	PanTo(point models.Coordinates)
	SetZoom(level int)
}

// Marker styles used by the explorer
var (
	ProjectMarkerStyle = MarkerStyle{
		FillColor:   "#9c27b0",
		FillOpacity: 0.8,
		StrokeColor: "#FFFFFF",
		StrokeWidth: 1,
		Scale:       7,
		Group:       "project",
	}

	SearchMarkerStyle = MarkerStyle{
		FillColor:   "#4285F4",
		FillOpacity: 1,
		StrokeWidth: 2,
		Scale:       7,
		Group:       "search",
	}

	SearchCircleStyle = CircleStyle{
		StrokeColor: "#4285F4",
		FillColor:   "#4285F4",
		FillOpacity: 0.1,
	}
)
