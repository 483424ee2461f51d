package handlers

import (
	"math"
	"net/http"

	"github.com/sinja33/RouteOptimize/internal/api/dto"
	"github.com/sinja33/RouteOptimize/internal/domain"
	"github.com/sinja33/RouteOptimize/internal/platform/obs"
	"github.com/sinja33/RouteOptimize/internal/services"
)

type RefineHandler struct {
	Refiner                *services.Refiner
	FallbackEmissionGPerKM float64
}

// Recalculate replaces the estimated distances of the posted routes with real
// road distances. Legs the road router cannot serve keep their estimates and
// stay flagged as such.
func (h *RefineHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	var err error
	defer obs.Time(r.Context(), "recalculate")(&err)

	var req dto.RecalculateRequest
	if err = decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Routes) == 0 {
		writeError(w, r, http.StatusBadRequest, "no routes provided")
		return
	}

	routes := make([]domain.Route, len(req.Routes))
	totalOrders := 0
	for i, rt := range req.Routes {
		routes[i] = rt.ToDomain()
		totalOrders += len(routes[i].Stops)
	}

	refined := h.Refiner.RefineRoutes(r.Context(), routes)

	out := make([]dto.RouteResponse, len(refined))
	requests, failed := 0, 0
	for i, rt := range refined {
		out[i] = dto.FromRoute(rt)
		for _, seg := range rt.Segments {
			requests++
			if seg.Estimated {
				failed++
			}
		}
	}

	resp := dto.RecalculateResponse{
		Routes: out,
		Stats:  dto.FromStats(services.ComputeStats(refined, totalOrders, h.FallbackEmissionGPerKM)),
		OSRMStats: dto.OSRMStatsResponse{
			TotalRequests:  requests,
			FailedRequests: failed,
		},
	}
	if requests > 0 {
		resp.OSRMStats.SuccessRate = math.Round(float64(requests-failed)/float64(requests)*1000) / 10
	}

	writeJSON(w, r, http.StatusOK, resp)
}
