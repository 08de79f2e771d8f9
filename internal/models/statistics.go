package models

// StatisticsResult summarizes the projects inside a search radius.
// It is a snapshot; nothing updates it incrementally.
type StatisticsResult struct {
	Count int `json:"count"`

	// Price
	AveragePrice float64 `json:"average_price"`
	MinPrice     float64 `json:"min_price"`
	MaxPrice     float64 `json:"max_price"`

	// Radiation, kWh/kWp
	AverageRadiation float64 `json:"average_radiation"`
	MinRadiation     float64 `json:"min_radiation"`
	MaxRadiation     float64 `json:"max_radiation"`

	// Distance from the search center, km
	MinDistance float64 `json:"min_distance"`
	MaxDistance float64 `json:"max_distance"`
}
