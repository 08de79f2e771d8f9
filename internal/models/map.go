package models

// MapConfig is what a front-end needs before initializing its map
type MapConfig struct {
	APIKey string      `json:"api_key"`
	Center Coordinates `json:"center"`
	Zoom   int         `json:"zoom"`
}
