package handlers

import (
	"net/http"

	"github.com/sinja33/RouteOptimize/internal/api/dto"
	"github.com/sinja33/RouteOptimize/internal/domain"
	"github.com/sinja33/RouteOptimize/internal/publish"
)

// DriverHandler serves the driver-facing view of the currently published
// route set. The set lives in memory only; nothing survives a restart.
type DriverHandler struct {
	Published *publish.Holder
}

// Vehicles lists one summary per vehicle with an active route.
func (h *DriverHandler) Vehicles(w http.ResponseWriter, r *http.Request) {
	routes, _, ok := h.Published.Snapshot()
	if !ok {
		writeJSON(w, r, http.StatusOK, []dto.DriverVehicleResponse{})
		return
	}

	out := make([]dto.DriverVehicleResponse, 0, len(routes))
	for _, rt := range routes {
		if rt.StopCount() == 0 {
			continue
		}
		out = append(out, dto.DriverVehicleResponse{
			ID:       rt.Vehicle.ID,
			Stops:    rt.StopCount(),
			Distance: rt.TotalDistanceKM,
			Color:    rt.Color,
		})
	}
	writeJSON(w, r, http.StatusOK, out)
}

// Route returns the full published route for one vehicle.
func (h *DriverHandler) Route(w http.ResponseWriter, r *http.Request) {
	vehicleID := r.PathValue("vehicleId")
	if vehicleID == "" {
		writeError(w, r, http.StatusBadRequest, "missing vehicle id")
		return
	}

	rt, ok := h.Published.RouteForVehicle(vehicleID)
	if !ok {
		writeError(w, r, http.StatusNotFound, "no published route for vehicle")
		return
	}
	writeJSON(w, r, http.StatusOK, dto.FromRoute(rt))
}

// SetRoutes replaces the published route set with the posted one.
func (h *DriverHandler) SetRoutes(w http.ResponseWriter, r *http.Request) {
	var req dto.SetRoutesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Routes) == 0 {
		writeError(w, r, http.StatusBadRequest, "no routes provided")
		return
	}

	routes := make([]domain.Route, len(req.Routes))
	for i, rt := range req.Routes {
		routes[i] = rt.ToDomain()
	}
	h.Published.Replace(routes, req.Stats.ToDomain())

	writeJSON(w, r, http.StatusOK, map[string]any{
		"published": len(routes),
	})
}
