package spatial

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/jengzang/solar-explorer-go/internal/models"
	"go.uber.org/zap"
)

// ErrInvalidCoordinates is returned for a latitude/longitude outside the valid range
var ErrInvalidCoordinates = errors.New("invalid coordinates")

// Sentinel is the value returned for unparseable coordinates
var Sentinel = models.Coordinates{}

var coordinateStripper = strings.NewReplacer("(", "", ")", "", " ", "", "\t", "", "\n", "", "\r", "")

// ParseCoordinates converts "(lat, lng)" into Coordinates.
// Any malformed input yields the (0,0) sentinel.
func ParseCoordinates(raw string) models.Coordinates {
	c, _ := parseCoordinates(raw)
	return c
}

// ParseCoordinatesLogged is ParseCoordinates with a warning for malformed input
func ParseCoordinatesLogged(raw string, log *zap.Logger) models.Coordinates {
	c, err := parseCoordinates(raw)
	if err != nil && log != nil {
		log.Warn("failed to parse coordinates", zap.String("raw", raw), zap.Error(err))
	}
	return c
}

func parseCoordinates(raw string) (models.Coordinates, error) {
	if raw == "" {
		return Sentinel, errors.New("empty coordinates")
	}

	parts := strings.Split(coordinateStripper.Replace(raw), ",")
	if len(parts) != 2 {
		return Sentinel, fmt.Errorf("expected 2 components, got %d", len(parts))
	}

	lat, err := parseFinite(parts[0])
	if err != nil {
		return Sentinel, fmt.Errorf("latitude: %w", err)
	}
	lng, err := parseFinite(parts[1])
	if err != nil {
		return Sentinel, fmt.Errorf("longitude: %w", err)
	}

	return models.Coordinates{Lat: lat, Lng: lng}, nil
}

// ParseRadiation parses the solargis radiation field. A leading number
// followed by other text ("5.2 kWh/kWp") yields that number; anything
// else unparseable defaults to 0.
func ParseRadiation(raw string) float64 {
	v, _ := parseRadiation(raw)
	return v
}

// ParseRadiationLogged is ParseRadiation with a warning for malformed input
func ParseRadiationLogged(raw string, log *zap.Logger) float64 {
	v, err := parseRadiation(raw)
	if err != nil && log != nil {
		log.Warn("failed to parse radiation", zap.String("raw", raw), zap.Float64("radiation", v), zap.Error(err))
	}
	return v
}

var leadingNumber = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?`)

func parseRadiation(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	if v, err := parseFinite(s); err == nil {
		return v, nil
	}
	prefix := leadingNumber.FindString(s)
	if prefix == "" {
		return 0, fmt.Errorf("no numeric value in %q", s)
	}
	v, err := parseFinite(prefix)
	if err != nil {
		return 0, err
	}
	return v, fmt.Errorf("ignored trailing text after %q", prefix)
}

func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", s)
	}
	return v, nil
}

// ValidateCenter checks that c is a usable search center
func ValidateCenter(c models.Coordinates) error {
	if !isValidCoordinate(c.Lat, 90) {
		return fmt.Errorf("%w: latitude %v out of range [-90, 90]", ErrInvalidCoordinates, c.Lat)
	}
	if !isValidCoordinate(c.Lng, 180) {
		return fmt.Errorf("%w: longitude %v out of range [-180, 180]", ErrInvalidCoordinates, c.Lng)
	}
	return nil
}

func isValidCoordinate(v, max float64) bool {
	return !math.IsNaN(v) && math.Abs(v) <= max
}
