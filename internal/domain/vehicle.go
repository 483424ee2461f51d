package domain

import "strings"

// Known vehicle types. The type influences the default operating range when
// the record carries no explicit one.
const (
	VehicleTypeBike     = "bike"
	VehicleTypeVan      = "van"
	VehicleTypeTruck    = "truck"
	VehicleTypeElectric = "electric"
)

// Represents a fleet vehicle. Immutable input.
type Vehicle struct {
	ID             string
	Type           string
	MaxCapacityKG  float64
	MaxRangeKM     float64 // 0 means unset; a type default may apply
	FuelType       string
	EmissionGPerKM float64 // grams CO2 per km; 0 means unknown
}

// NormalizedType returns the lowercased vehicle type for comparisons.
func (v Vehicle) NormalizedType() string {
	return strings.ToLower(strings.TrimSpace(v.Type))
}

// IsElectric reports whether the vehicle runs on electricity, either by fuel
// type or by vehicle type.
func (v Vehicle) IsElectric() bool {
	if strings.EqualFold(strings.TrimSpace(v.FuelType), "electric") {
		return true
	}
	return v.NormalizedType() == VehicleTypeElectric
}
