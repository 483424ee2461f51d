package dto

import "github.com/sinja33/RouteOptimize/internal/domain"

type SegmentResponse struct {
	From          []float64   `json:"from"`
	To            []float64   `json:"to"`
	Geometry      [][]float64 `json:"geometry"`
	Distance      float64     `json:"distance"`
	Fallback      bool        `json:"fallback,omitempty"`
	ReturnToDepot bool        `json:"returnToDepot,omitempty"`
}

func FromSegment(s domain.Segment) SegmentResponse {
	geom := make([][]float64, len(s.Geometry))
	for i, p := range s.Geometry {
		geom[i] = p.LatLng()
	}
	return SegmentResponse{
		From:          s.From.LatLng(),
		To:            s.To.LatLng(),
		Geometry:      geom,
		Distance:      s.DistanceKM,
		Fallback:      s.Estimated,
		ReturnToDepot: s.ReturnToDepot,
	}
}

type RouteResponse struct {
	Vehicle       VehicleRequest    `json:"vehicle"`
	Orders        []StopResponse    `json:"orders"`
	TotalWeight   float64           `json:"totalWeight"`
	TotalDistance float64           `json:"totalDistance"`
	Color         string            `json:"color"`
	DistanceType  string            `json:"distanceType"`
	RouteSegments []SegmentResponse `json:"routeSegments,omitempty"`
}

func FromRoute(r domain.Route) RouteResponse {
	stops := make([]StopResponse, len(r.Stops))
	for i, s := range r.Stops {
		stops[i] = FromStop(s)
	}
	segs := make([]SegmentResponse, len(r.Segments))
	for i, s := range r.Segments {
		segs[i] = FromSegment(s)
	}
	return RouteResponse{
		Vehicle:       FromVehicle(r.Vehicle),
		Orders:        stops,
		TotalWeight:   r.TotalWeightKG,
		TotalDistance: r.TotalDistanceKM,
		Color:         r.Color,
		DistanceType:  r.DistanceSource,
		RouteSegments: segs,
	}
}

func (s SegmentResponse) ToDomain() domain.Segment {
	geom := make([]domain.Coordinates, len(s.Geometry))
	for i, p := range s.Geometry {
		if len(p) >= 2 {
			geom[i] = domain.Coordinates{Lat: p[0], Lng: p[1]}
		}
	}
	return domain.Segment{
		From:          coordFromPair(s.From),
		To:            coordFromPair(s.To),
		Geometry:      geom,
		DistanceKM:    s.Distance,
		Estimated:     s.Fallback,
		ReturnToDepot: s.ReturnToDepot,
	}
}

func coordFromPair(p []float64) domain.Coordinates {
	if len(p) < 2 {
		return domain.Coordinates{}
	}
	return domain.Coordinates{Lat: p[0], Lng: p[1]}
}

func (r RouteResponse) ToDomain() domain.Route {
	stops := make([]domain.Stop, len(r.Orders))
	for i, s := range r.Orders {
		stops[i] = s.ToDomain()
	}
	segs := make([]domain.Segment, len(r.RouteSegments))
	for i, s := range r.RouteSegments {
		segs[i] = s.ToDomain()
	}
	src := r.DistanceType
	if src == "" {
		src = domain.DistanceSourceEstimated
	}
	return domain.Route{
		Vehicle:         r.Vehicle.ToDomain(),
		Stops:           stops,
		TotalDistanceKM: r.TotalDistance,
		TotalWeightKG:   r.TotalWeight,
		Color:           r.Color,
		DistanceSource:  src,
		Segments:        segs,
	}
}

type StatsResponse struct {
	TotalDistance    float64 `json:"totalDistance"`
	AvgDistance      float64 `json:"avgDistance"`
	AssignedOrders   int     `json:"assignedOrders"`
	UnassignedOrders int     `json:"unassignedOrders"`
	VehiclesUsed     int     `json:"vehiclesUsed"`
	OnTimeDeliveries int     `json:"onTimeDeliveries"`
	LateDeliveries   int     `json:"lateDeliveries"`
	AvgLateness      float64 `json:"avgLateness"`
	AvgUtilization   float64 `json:"avgUtilization"`
	CO2Emissions     float64 `json:"co2Emissions"`
}

func (s StatsResponse) ToDomain() domain.Stats {
	return domain.Stats{
		TotalDistanceKM:   s.TotalDistance,
		AvgDistanceKM:     s.AvgDistance,
		AssignedOrders:    s.AssignedOrders,
		UnassignedOrders:  s.UnassignedOrders,
		VehiclesUsed:      s.VehiclesUsed,
		OnTimeDeliveries:  s.OnTimeDeliveries,
		LateDeliveries:    s.LateDeliveries,
		AvgLatenessMin:    s.AvgLateness,
		AvgUtilizationPct: s.AvgUtilization,
		CO2EmissionsG:     s.CO2Emissions,
	}
}

func FromStats(s domain.Stats) StatsResponse {
	return StatsResponse{
		TotalDistance:    s.TotalDistanceKM,
		AvgDistance:      s.AvgDistanceKM,
		AssignedOrders:   s.AssignedOrders,
		UnassignedOrders: s.UnassignedOrders,
		VehiclesUsed:     s.VehiclesUsed,
		OnTimeDeliveries: s.OnTimeDeliveries,
		LateDeliveries:   s.LateDeliveries,
		AvgLateness:      s.AvgLatenessMin,
		AvgUtilization:   s.AvgUtilizationPct,
		CO2Emissions:     s.CO2EmissionsG,
	}
}
