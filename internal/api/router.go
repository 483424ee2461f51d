package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sinja33/RouteOptimize/internal/api/handlers"
	"github.com/sinja33/RouteOptimize/internal/importer"
	"github.com/sinja33/RouteOptimize/internal/metrics"
	"github.com/sinja33/RouteOptimize/internal/publish"
	"github.com/sinja33/RouteOptimize/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	engine *services.Optimizer,
	refiner *services.Refiner,
	imp *importer.OrderImporter,
	published *publish.Holder,
) http.Handler {
	mux := http.NewServeMux()

	optimizeHandler := &handlers.OptimizeHandler{Engine: engine}
	refineHandler := &handlers.RefineHandler{
		Refiner:                refiner,
		FallbackEmissionGPerKM: engine.FallbackEmissionGPerKM,
	}
	importHandler := &handlers.ImportHandler{Importer: imp}
	driverHandler := &handlers.DriverHandler{Published: published}

	mux.HandleFunc("/api/health", handlers.Health)
	mux.HandleFunc("POST /api/optimize", optimizeHandler.Optimize)
	mux.HandleFunc("POST /api/recalculate-with-osrm", refineHandler.Recalculate)
	mux.HandleFunc("POST /api/import/orders", importHandler.Orders)
	mux.HandleFunc("GET /api/driver/vehicles", driverHandler.Vehicles)
	mux.HandleFunc("GET /api/driver/route/{vehicleId}", driverHandler.Route)
	mux.HandleFunc("POST /api/driver/set-routes", driverHandler.SetRoutes)

	mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return loggingMiddleware(mux)
}
