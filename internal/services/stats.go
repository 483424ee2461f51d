package services

import "github.com/sinja33/RouteOptimize/internal/domain"

// DefaultFallbackEmissionGPerKM is charged per km for vehicles with no
// configured emission factor. Electric vehicles default to zero instead.
const DefaultFallbackEmissionGPerKM = 150

// ComputeStats derives summary metrics from a completed assignment.
// totalOrders is the size of the engine's input so the unassigned count
// balances: assigned + unassigned = totalOrders.
func ComputeStats(routes []domain.Route, totalOrders int, fallbackEmissionGPerKM float64) domain.Stats {
	if fallbackEmissionGPerKM <= 0 {
		fallbackEmissionGPerKM = DefaultFallbackEmissionGPerKM
	}

	var s domain.Stats
	var totalLateness int
	var utilizationSum float64
	var co2 float64

	for _, r := range routes {
		if r.StopCount() == 0 {
			continue
		}
		s.VehiclesUsed++
		s.TotalDistanceKM += r.TotalDistanceKM
		s.AssignedOrders += r.StopCount()

		for _, stop := range r.Stops {
			if stop.LatenessMin > 0 {
				s.LateDeliveries++
				totalLateness += stop.LatenessMin
			} else {
				s.OnTimeDeliveries++
			}
		}

		if r.Vehicle.MaxCapacityKG > 0 {
			utilizationSum += r.TotalWeightKG / r.Vehicle.MaxCapacityKG * 100
		}
		co2 += r.TotalDistanceKM * emissionFactor(r.Vehicle, fallbackEmissionGPerKM)
	}

	s.UnassignedOrders = totalOrders - s.AssignedOrders
	if s.VehiclesUsed > 0 {
		s.AvgDistanceKM = round1(s.TotalDistanceKM / float64(s.VehiclesUsed))
		s.AvgUtilizationPct = round1(utilizationSum / float64(s.VehiclesUsed))
	}
	if s.LateDeliveries > 0 {
		s.AvgLatenessMin = round1(float64(totalLateness) / float64(s.LateDeliveries))
	}
	s.TotalDistanceKM = round1(s.TotalDistanceKM)
	s.CO2EmissionsG = round1(co2)
	return s
}

func emissionFactor(v domain.Vehicle, fallback float64) float64 {
	if v.EmissionGPerKM > 0 {
		return v.EmissionGPerKM
	}
	if v.IsElectric() {
		return 0
	}
	return fallback
}
