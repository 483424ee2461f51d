package dto

import "github.com/sinja33/RouteOptimize/internal/domain"

type VehicleRequest struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	MaxCapacity float64 `json:"maxCapacity"`
	MaxRange    float64 `json:"maxRange,omitempty"`
	FuelType    string  `json:"fuelType,omitempty"`
	Emissions   float64 `json:"emissions,omitempty"`
}

func (v VehicleRequest) ToDomain() domain.Vehicle {
	return domain.Vehicle{
		ID:             v.ID,
		Type:           v.Type,
		MaxCapacityKG:  v.MaxCapacity,
		MaxRangeKM:     v.MaxRange,
		FuelType:       v.FuelType,
		EmissionGPerKM: v.Emissions,
	}
}

func FromVehicle(v domain.Vehicle) VehicleRequest {
	return VehicleRequest{
		ID:          v.ID,
		Type:        v.Type,
		MaxCapacity: v.MaxCapacityKG,
		MaxRange:    v.MaxRangeKM,
		FuelType:    v.FuelType,
		Emissions:   v.EmissionGPerKM,
	}
}
