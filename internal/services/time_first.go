package services

import (
	"slices"
	"strings"

	"github.com/sinja33/RouteOptimize/internal/domain"
)

// TimeFirst is the time-window-priority strategy: it maximizes on-time
// deliveries by serving orders in window order and sending each to the
// closest vehicle that can still make it, under a tolerance stricter than
// the distance-first one.
type TimeFirst struct {
	Params       Params
	ToleranceMin int
}

func NewTimeFirst(p Params, toleranceMin int) *TimeFirst {
	if toleranceMin <= 0 {
		toleranceMin = DefaultTimeFirstToleranceMin
	}
	return &TimeFirst{Params: p, ToleranceMin: toleranceMin}
}

func (a *TimeFirst) Name() string        { return "timeFirst" }
func (a *TimeFirst) Description() string { return "Maximizes on-time deliveries" }

// vehicleState tracks one vehicle's mutable position, clock, and load while
// orders are placed. The order loop is strictly sequential: each placement
// depends on the state left by prior ones.
type vehicleState struct {
	vehicle domain.Vehicle
	rangeKM float64
	pos     domain.Coordinates
	clock   int
	weight  float64
	dist    float64
	stops   []domain.Stop
}

// Assign sorts orders by window start (ties by ID), then places each on the
// vehicle whose current position is closest among those with capacity,
// range, and an acceptable projected arrival. Equal distances break ties by
// more remaining capacity, then lower vehicle ID. Orders no vehicle can
// serve become unassigned; that is a normal outcome, not an error.
func (a *TimeFirst) Assign(orders []domain.Order, vehicles []domain.Vehicle) ([]domain.Route, []string) {
	p := a.Params

	sorted := make([]domain.Order, len(orders))
	copy(sorted, orders)
	slices.SortStableFunc(sorted, func(x, y domain.Order) int {
		if d := x.EffectiveWindowStart() - y.EffectiveWindowStart(); d != 0 {
			return d
		}
		return strings.Compare(x.ID, y.ID)
	})

	states := make([]*vehicleState, 0, len(vehicles))
	for _, v := range vehicles {
		states = append(states, &vehicleState{
			vehicle: v,
			rangeKM: p.effectiveRangeKM(v),
			pos:     p.Depot,
			clock:   p.ShiftStartMin,
		})
	}

	unassigned := make([]string, 0)

	for _, o := range sorted {
		best := -1
		var bestLeg float64

		for si, st := range states {
			if st.weight+o.WeightKG > st.vehicle.MaxCapacityKG {
				continue
			}

			leg := p.Model.RoadKM(st.pos, o.Location)
			if st.rangeKM > 0 && st.dist+leg+p.Model.RoadKM(o.Location, p.Depot) > st.rangeKM {
				continue
			}

			arrival := st.clock + p.Model.TravelMinutes(leg) + p.ServiceTimeMin
			if !withinWindow(o, arrival, a.ToleranceMin) {
				continue
			}

			switch {
			case best < 0 || leg < bestLeg-distanceTieEpsilonKM:
				best, bestLeg = si, leg
			case leg <= bestLeg+distanceTieEpsilonKM && preferVehicle(st, states[best]):
				best, bestLeg = si, leg
			}
		}

		if best < 0 {
			unassigned = append(unassigned, o.ID)
			continue
		}

		st := states[best]
		arrival := st.clock + p.Model.TravelMinutes(bestLeg) + p.ServiceTimeMin
		st.stops = append(st.stops, newStop(o, arrival))
		st.weight += o.WeightKG
		st.dist += bestLeg
		st.pos = o.Location
		st.clock = arrival
	}

	routes := make([]domain.Route, 0, len(states))
	for _, st := range states {
		if len(st.stops) == 0 {
			continue
		}
		st.dist += p.Model.RoadKM(st.pos, p.Depot)
		routes = append(routes, domain.Route{
			Vehicle:         st.vehicle,
			Stops:           st.stops,
			TotalDistanceKM: round1(st.dist),
			TotalWeightKG:   st.weight,
			Color:           colorFor(len(routes)),
			DistanceSource:  domain.DistanceSourceEstimated,
		})
	}
	return routes, unassigned
}

// preferVehicle decides ties between equally close vehicles: more remaining
// capacity first, then lower identifier.
func preferVehicle(cand, cur *vehicleState) bool {
	cr := cand.vehicle.MaxCapacityKG - cand.weight
	br := cur.vehicle.MaxCapacityKG - cur.weight
	if cr != br {
		return cr > br
	}
	return cand.vehicle.ID < cur.vehicle.ID
}
