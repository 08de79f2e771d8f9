package models

import "fmt"

// HeatmapType selects the project field a heatmap is built from
type HeatmapType string

// HeatmapType constants
const (
	HeatmapNone      HeatmapType = ""
	HeatmapPrice     HeatmapType = "price"
	HeatmapRadiation HeatmapType = "radiation"
)

// ParseHeatmapType converts a path/query value into a HeatmapType
func ParseHeatmapType(s string) (HeatmapType, error) {
	switch HeatmapType(s) {
	case HeatmapPrice, HeatmapRadiation:
		return HeatmapType(s), nil
	}
	return HeatmapNone, fmt.Errorf("unknown heatmap type %q", s)
}

// HeatmapPoint represents a single weighted point in the heatmap
type HeatmapPoint struct {
	Location Coordinates `json:"location"`
	Weight   float64     `json:"weight"` // Normalized 0-1
}

// HeatmapConfig holds the visual parameters of a heatmap layer
type HeatmapConfig struct {
	Radius       int      `json:"radius"`
	Opacity      float64  `json:"opacity"`
	Dissipating  bool     `json:"dissipating"`
	MaxIntensity float64  `json:"max_intensity,omitempty"`
	Gradient     []string `json:"gradient"`
}

// HeatmapResponse represents the heatmap API response
type HeatmapResponse struct {
	Active HeatmapType    `json:"active"`
	Points []HeatmapPoint `json:"points"`
	Count  int            `json:"count"`
	Config *HeatmapConfig `json:"config,omitempty"`
}
