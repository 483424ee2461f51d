package services

import (
	"testing"

	"github.com/sinja33/RouteOptimize/internal/domain"
)

func TestComputeStats(t *testing.T) {
	diesel := domain.Vehicle{ID: "V1", Type: "van", FuelType: "diesel", MaxCapacityKG: 100}
	electric := domain.Vehicle{ID: "V2", Type: "van", FuelType: "electric", MaxCapacityKG: 50}

	routes := []domain.Route{
		{
			Vehicle:         diesel,
			TotalDistanceKM: 10,
			TotalWeightKG:   50,
			Stops: []domain.Stop{
				{Order: domain.Order{ID: "O1"}, ArrivalTime: 500, OnTime: true},
				{Order: domain.Order{ID: "O2"}, ArrivalTime: 640, OnTime: false, LatenessMin: 30},
			},
		},
		{
			Vehicle:         electric,
			TotalDistanceKM: 5,
			TotalWeightKG:   25,
			Stops: []domain.Stop{
				{Order: domain.Order{ID: "O3"}, ArrivalTime: 520, OnTime: true},
			},
		},
	}

	s := ComputeStats(routes, 4, 150)

	if s.TotalDistanceKM != 15 {
		t.Fatalf("totalDistance = %v, want 15", s.TotalDistanceKM)
	}
	if s.AvgDistanceKM != 7.5 {
		t.Fatalf("avgDistance = %v, want 7.5", s.AvgDistanceKM)
	}
	if s.AssignedOrders != 3 || s.UnassignedOrders != 1 {
		t.Fatalf("assigned/unassigned = %d/%d, want 3/1", s.AssignedOrders, s.UnassignedOrders)
	}
	if s.VehiclesUsed != 2 {
		t.Fatalf("vehiclesUsed = %d, want 2", s.VehiclesUsed)
	}
	if s.OnTimeDeliveries != 2 || s.LateDeliveries != 1 {
		t.Fatalf("onTime/late = %d/%d, want 2/1", s.OnTimeDeliveries, s.LateDeliveries)
	}
	if s.AvgLatenessMin != 30 {
		t.Fatalf("avgLateness = %v, want 30", s.AvgLatenessMin)
	}
	// Both vehicles at 50% load.
	if s.AvgUtilizationPct != 50 {
		t.Fatalf("avgUtilization = %v, want 50", s.AvgUtilizationPct)
	}
	// Only the diesel vehicle emits: 10 km at the 150 g/km fallback.
	if s.CO2EmissionsG != 1500 {
		t.Fatalf("co2 = %v, want 1500", s.CO2EmissionsG)
	}
}

func TestComputeStatsExplicitEmissionFactor(t *testing.T) {
	routes := []domain.Route{{
		Vehicle:         domain.Vehicle{ID: "V1", MaxCapacityKG: 100, EmissionGPerKM: 120},
		TotalDistanceKM: 10,
		Stops:           []domain.Stop{{Order: domain.Order{ID: "O1"}, OnTime: true}},
	}}

	s := ComputeStats(routes, 1, 150)
	if s.CO2EmissionsG != 1200 {
		t.Fatalf("co2 = %v, want 1200 (explicit factor wins)", s.CO2EmissionsG)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	s := ComputeStats(nil, 5, 150)
	if s.VehiclesUsed != 0 || s.AssignedOrders != 0 {
		t.Fatalf("empty run: %+v", s)
	}
	if s.UnassignedOrders != 5 {
		t.Fatalf("unassigned = %d, want 5", s.UnassignedOrders)
	}
	if s.AvgDistanceKM != 0 || s.AvgLatenessMin != 0 || s.AvgUtilizationPct != 0 {
		t.Fatalf("averages must stay zero on an empty run: %+v", s)
	}
}

func TestComputeStatsSkipsEmptyRoutes(t *testing.T) {
	routes := []domain.Route{
		{Vehicle: domain.Vehicle{ID: "V1", MaxCapacityKG: 100}, TotalDistanceKM: 99},
		{
			Vehicle:         domain.Vehicle{ID: "V2", MaxCapacityKG: 100},
			TotalDistanceKM: 10,
			Stops:           []domain.Stop{{Order: domain.Order{ID: "O1"}, OnTime: true}},
		},
	}

	s := ComputeStats(routes, 1, 150)
	if s.VehiclesUsed != 1 {
		t.Fatalf("vehiclesUsed = %d, want 1 (empty routes do not count)", s.VehiclesUsed)
	}
	if s.TotalDistanceKM != 10 {
		t.Fatalf("totalDistance = %v, want 10", s.TotalDistanceKM)
	}
}
