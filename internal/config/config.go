// Package config loads runtime configuration from the environment (with an
// optional .env file for local runs). Every policy constant of the engine is
// named and overridable here; none are hard-coded at use sites.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/sinja33/RouteOptimize/internal/domain"
	"github.com/sinja33/RouteOptimize/internal/geo"
	"github.com/sinja33/RouteOptimize/internal/services"
)

type Config struct {
	Port string

	// Engine policy.
	Depot                     domain.Coordinates
	AvgSpeedKMH               float64
	RoadCircuityFactor        float64
	ShiftStartMin             int
	ServiceTimeMin            int
	DistanceFirstToleranceMin int
	TimeFirstToleranceMin     int
	RangeByType               map[string]float64
	FallbackEmissionGPerKM    float64

	// External services.
	OSRMBaseURL      string
	OSRMTimeout      time.Duration
	OSRMConcurrency  int
	OSRMRatePerSec   float64
	NominatimBaseURL string

	// Optional geocode cache backings; empty means in-memory.
	RedisURL    string
	DatabaseURL string
}

// Load reads the environment, applying defaults for anything unset.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	return Config{
		Port: Get("PORT", "8080"),

		Depot: domain.Coordinates{
			Lat: getFloat("DEPOT_LAT", 46.0569),
			Lng: getFloat("DEPOT_LNG", 14.5058),
		},
		AvgSpeedKMH:               getFloat("AVG_SPEED_KMH", geo.DefaultAvgSpeedKMH),
		RoadCircuityFactor:        getFloat("ROAD_CIRCUITY_FACTOR", geo.DefaultCircuityFactor),
		ShiftStartMin:             getInt("SHIFT_START_MIN", 480),
		ServiceTimeMin:            getInt("SERVICE_TIME_MIN", 0),
		DistanceFirstToleranceMin: getInt("DISTANCE_FIRST_TOLERANCE_MIN", services.DefaultDistanceFirstToleranceMin),
		TimeFirstToleranceMin:     getInt("TIME_FIRST_TOLERANCE_MIN", services.DefaultTimeFirstToleranceMin),
		RangeByType:               getRangeMap("VEHICLE_RANGE_KM", "bike=15,van=50"),
		FallbackEmissionGPerKM:    getFloat("FALLBACK_EMISSION_G_PER_KM", services.DefaultFallbackEmissionGPerKM),

		OSRMBaseURL:      Get("OSRM_BASE_URL", "https://router.project-osrm.org"),
		OSRMTimeout:      getDuration("OSRM_TIMEOUT", 5*time.Second),
		OSRMConcurrency:  getInt("OSRM_CONCURRENCY", services.DefaultRefineConcurrency),
		OSRMRatePerSec:   getFloat("OSRM_RATE_PER_SEC", 20),
		NominatimBaseURL: Get("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),

		RedisURL:    os.Getenv("REDIS_URL"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}
}

func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("config: invalid %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return f
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: invalid %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("config: invalid %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return d
}

// getRangeMap parses "type=km,type=km" pairs, e.g. "bike=15,van=50".
func getRangeMap(key, fallback string) map[string]float64 {
	raw := Get(key, fallback)
	out := make(map[string]float64)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			log.Printf("config: invalid %s entry %q", key, pair)
			continue
		}
		km, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			log.Printf("config: invalid %s entry %q", key, pair)
			continue
		}
		out[strings.ToLower(strings.TrimSpace(k))] = km
	}
	return out
}
