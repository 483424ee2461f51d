package main

import (
	"log"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"github.com/sinja33/RouteOptimize/internal/adapters/cache"
	"github.com/sinja33/RouteOptimize/internal/adapters/geocode"
	"github.com/sinja33/RouteOptimize/internal/adapters/osrm"
	"github.com/sinja33/RouteOptimize/internal/api"
	"github.com/sinja33/RouteOptimize/internal/config"
	"github.com/sinja33/RouteOptimize/internal/geo"
	"github.com/sinja33/RouteOptimize/internal/importer"
	"github.com/sinja33/RouteOptimize/internal/metrics"
	"github.com/sinja33/RouteOptimize/internal/platform/db"
	"github.com/sinja33/RouteOptimize/internal/ports"
	"github.com/sinja33/RouteOptimize/internal/publish"
	"github.com/sinja33/RouteOptimize/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (OSRM, Nominatim, cache backings) behind ports
// and starts the HTTP server.
func main() {
	cfg := config.Load()
	metrics.RegisterDefault()

	params := services.Params{
		Depot:          cfg.Depot,
		Model:          geo.NewModel(cfg.RoadCircuityFactor, cfg.AvgSpeedKMH),
		ShiftStartMin:  cfg.ShiftStartMin,
		ServiceTimeMin: cfg.ServiceTimeMin,
		RangeByType:    cfg.RangeByType,
	}

	engine := &services.Optimizer{
		Assigners: []services.Assigner{
			services.NewDistanceFirst(params, cfg.DistanceFirstToleranceMin),
			services.NewTimeFirst(params, cfg.TimeFirstToleranceMin),
		},
		Params:                 params,
		FallbackEmissionGPerKM: cfg.FallbackEmissionGPerKM,
	}

	refiner := &services.Refiner{
		Router:         osrm.NewClient(cfg.OSRMBaseURL, cfg.OSRMTimeout, cfg.OSRMRatePerSec),
		Model:          params.Model,
		Depot:          cfg.Depot,
		ShiftStartMin:  cfg.ShiftStartMin,
		ServiceTimeMin: cfg.ServiceTimeMin,
		Concurrency:    cfg.OSRMConcurrency,
	}

	geocodeCache, cleanup := newGeocodeCache(cfg)
	defer cleanup()
	geocoder := geocode.NewCached(geocode.NewNominatim(cfg.NominatimBaseURL), geocodeCache)
	imp := importer.NewOrderImporter(geocoder)

	router := api.NewRouter(engine, refiner, imp, publish.NewHolder())

	log.Printf("Server listening addr=:%s depot=%.4f,%.4f", cfg.Port, cfg.Depot.Lat, cfg.Depot.Lng)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// newGeocodeCache picks the cache backing from configuration: Redis when
// REDIS_URL is set, Postgres when DATABASE_URL is set, in-memory otherwise.
func newGeocodeCache(cfg config.Config) (ports.GeocodeCache, func()) {
	switch {
	case cfg.RedisURL != "":
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		client := redis.NewClient(opts)
		log.Printf("Geocode cache backing=redis addr=%s", opts.Addr)
		return cache.NewRedisGeocodeCache(client), func() { client.Close() }

	case cfg.DatabaseURL != "":
		sqlDB, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		if err := cache.InitSchema(sqlDB); err != nil {
			log.Fatal(err)
		}
		log.Println("Geocode cache backing=postgres")
		return cache.NewSQLGeocodeCache(sqlDB), func() { sqlDB.Close() }

	default:
		log.Println("Geocode cache backing=memory")
		return cache.NewMemoryGeocodeCache(), func() {}
	}
}
