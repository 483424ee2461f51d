package handlers

import (
	"net/http"

	"github.com/sinja33/RouteOptimize/internal/api/dto"
	"github.com/sinja33/RouteOptimize/internal/domain"
	"github.com/sinja33/RouteOptimize/internal/platform/obs"
	"github.com/sinja33/RouteOptimize/internal/services"
)

type OptimizeHandler struct {
	Engine *services.Optimizer
}

// Optimize runs every registered strategy over the posted orders and vehicles
// and returns the per-strategy results side by side.
func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	var err error
	defer obs.Time(r.Context(), "optimize")(&err)

	var req dto.OptimizeRequest
	if err = decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Orders) == 0 || len(req.Vehicles) == 0 {
		writeError(w, r, http.StatusBadRequest, "missing orders or vehicles")
		return
	}

	orders := make([]domain.Order, len(req.Orders))
	for i, o := range req.Orders {
		orders[i] = o.ToDomain()
	}
	vehicles := make([]domain.Vehicle, len(req.Vehicles))
	for i, v := range req.Vehicles {
		vehicles[i] = v.ToDomain()
	}

	out, optErr := h.Engine.Optimize(r.Context(), orders, vehicles)
	if optErr != nil {
		err = optErr
		writeError(w, r, http.StatusInternalServerError, "optimization failed")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromOptimizeOutput(*out))
}
