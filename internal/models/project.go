package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Coordinates is a point in decimal degrees. (0,0) doubles as the
// "unknown location" sentinel.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// IsSentinel reports whether c is the (0,0) unknown-location value.
// A project genuinely located at (0,0) cannot be told apart from a parse failure.
func (c Coordinates) IsSentinel() bool {
	return c.Lat == 0 && c.Lng == 0
}

// String formats c the way the upstream API delivers coordinates
func (c Coordinates) String() string {
	return fmt.Sprintf("(%g, %g)", c.Lat, c.Lng)
}

// RawProject is a project record as returned by the projects API.
// Every field is decoded leniently so one malformed value never fails the batch.
type RawProject struct {
	ID          FlexString `json:"id"`
	Name        FlexString `json:"name"`
	Coordinates FlexString `json:"coordinates"` // e.g. "(6.24, -75.58)"
	Solargis    FlexString `json:"solargis"`    // radiation, kWh/kWp
	Agreement   FlexString `json:"agreement"`
	Price       FlexString `json:"price"`
}

// Project is an enriched project held in the working collection
type Project struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Coordinates string      `json:"coordinates"`
	Location    Coordinates `json:"location"` // sentinel when unparseable
	Price       float64     `json:"price"`
	Solargis    string      `json:"solargis"`
	Radiation   float64     `json:"radiation"`
	Agreement   string      `json:"agreement,omitempty"`
}

// HasLocation reports whether the project can be placed on the map
func (p Project) HasLocation() bool {
	return !p.Location.IsSentinel()
}

// ProjectDistance is a project annotated with its distance from a search center
type ProjectDistance struct {
	Project
	DistanceKm float64 `json:"distance_km"`
}

// FlexString accepts any JSON value. Strings keep their content, null is
// empty and anything else keeps its compact JSON text.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler
func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return err
	}
	*s = FlexString(buf.String())
	return nil
}

// Float parses s as a number. Empty text is 0 without error.
func (s FlexString) Float() (float64, error) {
	v := strings.TrimSpace(string(s))
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid number %q", v)
	}
	return f, nil
}
