package services

import "github.com/sinja33/RouteOptimize/internal/domain"

// DistanceFirst is the greedy nearest-neighbor strategy: it minimizes total
// driven distance by always extending the current vehicle's route with the
// closest eligible order.
//
// The strategy is deterministic. It does not attempt global optimization
// (no VRP solver); determinism and simplicity win over optimality.
type DistanceFirst struct {
	Params       Params
	ToleranceMin int // max acceptable lateness when considering an order
}

func NewDistanceFirst(p Params, toleranceMin int) *DistanceFirst {
	if toleranceMin <= 0 {
		toleranceMin = DefaultDistanceFirstToleranceMin
	}
	return &DistanceFirst{Params: p, ToleranceMin: toleranceMin}
}

func (a *DistanceFirst) Name() string        { return "distanceFirst" }
func (a *DistanceFirst) Description() string { return "Minimizes total kilometers driven" }

// Assign walks vehicles in input order. Each vehicle starts at the depot and
// repeatedly picks the nearest unassigned order it can still serve: enough
// remaining capacity, enough remaining range to also make it back to the
// depot, and a projected arrival no later than the order's window end plus
// the lateness tolerance. Equidistant candidates break ties by earlier
// window end, then lower order ID.
func (a *DistanceFirst) Assign(orders []domain.Order, vehicles []domain.Vehicle) ([]domain.Route, []string) {
	p := a.Params
	assigned := make(map[string]bool, len(orders))
	routes := make([]domain.Route, 0, len(vehicles))

	for _, v := range vehicles {
		rangeKM := p.effectiveRangeKM(v)
		pos := p.Depot
		clock := p.ShiftStartMin
		var stops []domain.Stop
		var weight, dist float64

		for {
			bestIdx := -1
			var bestLeg float64

			for i, o := range orders {
				if assigned[o.ID] {
					continue
				}
				if weight+o.WeightKG > v.MaxCapacityKG {
					continue
				}

				leg := p.Model.RoadKM(pos, o.Location)
				if rangeKM > 0 && dist+leg+p.Model.RoadKM(o.Location, p.Depot) > rangeKM {
					continue
				}

				arrival := clock + p.Model.TravelMinutes(leg) + p.ServiceTimeMin
				if !withinWindow(o, arrival, a.ToleranceMin) {
					continue
				}

				switch {
				case bestIdx < 0 || leg < bestLeg-distanceTieEpsilonKM:
					bestIdx, bestLeg = i, leg
				case leg <= bestLeg+distanceTieEpsilonKM && preferOrder(o, orders[bestIdx]):
					bestIdx, bestLeg = i, leg
				}
			}

			if bestIdx < 0 {
				break
			}

			o := orders[bestIdx]
			arrival := clock + p.Model.TravelMinutes(bestLeg) + p.ServiceTimeMin
			stops = append(stops, newStop(o, arrival))
			weight += o.WeightKG
			dist += bestLeg
			pos = o.Location
			clock = arrival
			assigned[o.ID] = true
		}

		if len(stops) == 0 {
			continue
		}

		dist += p.Model.RoadKM(pos, p.Depot)
		routes = append(routes, domain.Route{
			Vehicle:         v,
			Stops:           stops,
			TotalDistanceKM: round1(dist),
			TotalWeightKG:   weight,
			Color:           colorFor(len(routes)),
			DistanceSource:  domain.DistanceSourceEstimated,
		})
	}

	unassigned := make([]string, 0)
	for _, o := range orders {
		if !assigned[o.ID] {
			unassigned = append(unassigned, o.ID)
		}
	}
	return routes, unassigned
}

// preferOrder decides ties between equidistant candidates: earlier window
// end first, then lower identifier.
func preferOrder(cand, cur domain.Order) bool {
	ce, be := windowEndOrMax(cand), windowEndOrMax(cur)
	if ce != be {
		return ce < be
	}
	return cand.ID < cur.ID
}
