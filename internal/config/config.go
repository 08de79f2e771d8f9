package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/jengzang/solar-explorer-go/internal/models"
)

// Data sources
const (
	DataSourceAPI    = "api"
	DataSourceSample = "sample"
)

// Config 应用配置
type Config struct {
	Port        string
	Environment string

	// Projects API
	DataSource  string
	APIEndpoint string
	APIKey      string
	HTTPTimeout time.Duration // 0 disables the client timeout

	// Map
	MapsAPIKey string
	MapCenter  models.Coordinates
	MapZoom    int

	// Session defaults
	SearchRadiusKm float64
	ShowProjects   bool

	// Reload endpoint rate limit
	ReloadLimit  int
	ReloadWindow time.Duration

	AllowedOrigins []string
}

// Load 加载配置
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:        normalizePort(getEnv("PORT", ":8080")),
		Environment: getEnv("ENVIRONMENT", "development"),

		DataSource:  strings.ToLower(getEnv("DATA_SOURCE", DataSourceAPI)),
		APIEndpoint: getEnv("API_ENDPOINT", ""),
		APIKey:      getEnv("API_KEY", ""),
		HTTPTimeout: time.Duration(getEnvAsInt("HTTP_TIMEOUT_SECONDS", 0)) * time.Second,

		MapsAPIKey: getEnv("GOOGLE_MAPS_API_KEY", ""),
		MapCenter: models.Coordinates{
			Lat: getEnvAsFloat("MAP_CENTER_LAT", 6.2442),
			Lng: getEnvAsFloat("MAP_CENTER_LNG", -75.5812),
		},
		MapZoom: getEnvAsInt("MAP_ZOOM", 6),

		SearchRadiusKm: getEnvAsFloat("SEARCH_RADIUS_KM", 5),
		ShowProjects:   getEnvAsBool("SHOW_PROJECTS", true),

		ReloadLimit:  getEnvAsInt("RELOAD_RATE_LIMIT", 10),
		ReloadWindow: time.Minute,

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

// Validate checks the settings that must be present before the map and
// project loader are initialized
func (c *Config) Validate() error {
	var errs []error

	switch c.DataSource {
	case DataSourceAPI:
		if c.APIEndpoint == "" {
			errs = append(errs, errors.New("API_ENDPOINT is required for the api data source"))
		}
		if c.APIKey == "" {
			errs = append(errs, errors.New("API_KEY is required for the api data source"))
		}
	case DataSourceSample:
	default:
		errs = append(errs, errors.New("DATA_SOURCE must be \"api\" or \"sample\""))
	}

	if c.MapsAPIKey == "" {
		errs = append(errs, errors.New("GOOGLE_MAPS_API_KEY is required before map initialization"))
	}
	if c.SearchRadiusKm < 0 {
		errs = append(errs, errors.New("SEARCH_RADIUS_KM must not be negative"))
	}

	return errors.Join(errs...)
}

func normalizePort(port string) string {
	if !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valStr := os.Getenv(key)
	if valStr == "" {
		return fallback
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("invalid bool for %s, defaulting to %v\n", key, fallback)
		return fallback
	}
	return val
}

func getEnvAsInt(key string, fallback int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return fallback
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("invalid int for %s, defaulting to %v\n", key, fallback)
		return fallback
	}
	return val
}

func getEnvAsFloat(key string, fallback float64) float64 {
	valStr := os.Getenv(key)
	if valStr == "" {
		return fallback
	}
	val, err := strconv.ParseFloat(valStr, 64)
	if err != nil {
		log.Printf("invalid float for %s, defaulting to %v\n", key, fallback)
		return fallback
	}
	return val
}
