package dto

import (
	"github.com/sinja33/RouteOptimize/internal/domain"
	"github.com/sinja33/RouteOptimize/internal/services"
)

type OptimizeRequest struct {
	Orders   []OrderRequest   `json:"orders"`
	Vehicles []VehicleRequest `json:"vehicles"`
}

type AlgorithmResponse struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Routes      []RouteResponse `json:"routes"`
	Unassigned  []string        `json:"unassigned"`
	Stats       StatsResponse   `json:"stats"`
}

func FromResult(r domain.OptimizationResult) AlgorithmResponse {
	routes := make([]RouteResponse, len(r.Routes))
	for i, rt := range r.Routes {
		routes[i] = FromRoute(rt)
	}
	unassigned := r.Unassigned
	if unassigned == nil {
		unassigned = []string{}
	}
	return AlgorithmResponse{
		Name:        r.Strategy,
		Description: r.Description,
		Routes:      routes,
		Unassigned:  unassigned,
		Stats:       FromStats(r.Stats),
	}
}

type RejectedResponse struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

type OptimizeResponse struct {
	Algorithms       map[string]AlgorithmResponse `json:"algorithms"`
	TotalOrders      int                          `json:"totalOrders"`
	TotalVehicles    int                          `json:"totalVehicles"`
	RejectedOrders   []RejectedResponse           `json:"rejectedOrders,omitempty"`
	RejectedVehicles []RejectedResponse           `json:"rejectedVehicles,omitempty"`
}

func FromOptimizeOutput(out services.OptimizeOutput) OptimizeResponse {
	algos := make(map[string]AlgorithmResponse, len(out.Results))
	for name, res := range out.Results {
		algos[name] = FromResult(res)
	}
	return OptimizeResponse{
		Algorithms:       algos,
		TotalOrders:      out.TotalOrders,
		TotalVehicles:    out.TotalVehicles,
		RejectedOrders:   fromRejected(out.RejectedOrders),
		RejectedVehicles: fromRejected(out.RejectedVehicles),
	}
}

func fromRejected(rs []services.RejectedRecord) []RejectedResponse {
	if len(rs) == 0 {
		return nil
	}
	out := make([]RejectedResponse, len(rs))
	for i, r := range rs {
		out[i] = RejectedResponse{ID: r.ID, Reason: r.Reason}
	}
	return out
}

type RecalculateRequest struct {
	Routes []RouteResponse `json:"routes"`
}

type RecalculateResponse struct {
	Routes    []RouteResponse   `json:"routes"`
	Stats     StatsResponse     `json:"stats"`
	OSRMStats OSRMStatsResponse `json:"osrmStats"`
}

// OSRMStatsResponse summarizes how many legs came back from the road router
// versus falling back to the straight-line estimate.
type OSRMStatsResponse struct {
	TotalRequests  int     `json:"totalRequests"`
	FailedRequests int     `json:"failedRequests"`
	SuccessRate    float64 `json:"successRate"`
}

type SetRoutesRequest struct {
	Routes []RouteResponse `json:"routes"`
	Stats  StatsResponse   `json:"stats"`
}

type DriverVehicleResponse struct {
	ID       string  `json:"id"`
	Stops    int     `json:"stops"`
	Distance float64 `json:"distance"`
	Color    string  `json:"color"`
}

type ImportOrdersResponse struct {
	Orders   []OrderRequest `json:"orders"`
	Imported int            `json:"imported"`
	Rejected []RejectedRow  `json:"rejected,omitempty"`
}

type RejectedRow struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}
