package services

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/sinja33/RouteOptimize/internal/domain"
	"github.com/sinja33/RouteOptimize/internal/geo"
	"github.com/sinja33/RouteOptimize/internal/ports"
)

// DefaultRefineConcurrency bounds in-flight road-routing requests so the
// downstream service's rate limits are respected.
const DefaultRefineConcurrency = 4

// Refiner replaces a route's estimated leg distances and geometry with real
// road data from an external routing service. A failed leg falls back to the
// model estimate and is flagged estimated; the batch never fails as a whole.
type Refiner struct {
	Router         ports.RoadRouter
	Model          geo.Model
	Depot          domain.Coordinates
	ShiftStartMin  int
	ServiceTimeMin int
	Concurrency    int
}

// RefineRoutes refines every route in the batch. Leg requests across routes
// run concurrently up to the configured limit; the per-route rebuild is
// sequential because arrival times accumulate along the stop sequence.
//
// The operation is idempotent: with unchanged responses from the routing
// service, refining twice yields numerically equal output.
func (rf *Refiner) RefineRoutes(ctx context.Context, routes []domain.Route) []domain.Route {
	limit := rf.Concurrency
	if limit <= 0 {
		limit = DefaultRefineConcurrency
	}

	legs := make([][]domain.Segment, len(routes))
	for ri, r := range routes {
		if len(r.Stops) > 0 {
			legs[ri] = make([]domain.Segment, len(r.Stops)+1)
		}
	}

	var fallbacks, total int
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for ri, r := range routes {
		points := legPoints(rf.Depot, r)
		for li := 0; li < len(points)-1; li++ {
			ri, li := ri, li
			from, to := points[li], points[li+1]
			total++
			g.Go(func() error {
				legs[ri][li] = rf.fetchLeg(gctx, from, to, li == len(points)-2)
				return nil
			})
		}
	}
	_ = g.Wait()

	out := make([]domain.Route, len(routes))
	for ri, r := range routes {
		if len(r.Stops) == 0 {
			out[ri] = r
			continue
		}
		out[ri] = rf.rebuildRoute(r, legs[ri])
		for _, seg := range legs[ri] {
			if seg.Estimated {
				fallbacks++
			}
		}
	}

	log.Printf("refine complete: routes=%d legs=%d fallbacks=%d", len(routes), total, fallbacks)
	return out
}

// fetchLeg queries the road router for one leg, falling back to the straight
// model estimate on any failure. The quality flag always reflects the source
// actually used.
func (rf *Refiner) fetchLeg(ctx context.Context, from, to domain.Coordinates, returnLeg bool) domain.Segment {
	leg, err := rf.Router.RouteLeg(ctx, from, to)
	if err != nil {
		return estimatedSegment(rf.Model, from, to, returnLeg)
	}
	geometry := leg.Geometry
	if len(geometry) < 2 {
		geometry = []domain.Coordinates{from, to}
	}
	return domain.Segment{
		From:          from,
		To:            to,
		Geometry:      geometry,
		DistanceKM:    leg.DistanceKM,
		ReturnToDepot: returnLeg,
	}
}

// rebuildRoute recomputes totals, per-stop arrival times, and the
// distance-source flag from refined legs. Stops are copied; the input route
// is left untouched.
func (rf *Refiner) rebuildRoute(r domain.Route, segs []domain.Segment) domain.Route {
	stops := make([]domain.Stop, len(r.Stops))
	clock := rf.ShiftStartMin
	var totalKM float64
	estimated := 0

	for i, seg := range segs {
		totalKM += seg.DistanceKM
		if seg.Estimated {
			estimated++
		}
		if i < len(stops) {
			arrival := clock + rf.Model.TravelMinutes(seg.DistanceKM) + rf.ServiceTimeMin
			stops[i] = newStop(r.Stops[i].Order, arrival)
			clock = arrival
		}
	}

	source := domain.DistanceSourceRoad
	switch {
	case estimated == len(segs):
		source = domain.DistanceSourceEstimated
	case estimated > 0:
		source = domain.DistanceSourceMixed
	}

	refined := r
	refined.Stops = stops
	refined.Segments = segs
	refined.TotalDistanceKM = round1(totalKM)
	refined.DistanceSource = source
	return refined
}

// legPoints lists the route's waypoints: depot, each stop, depot again.
func legPoints(depot domain.Coordinates, r domain.Route) []domain.Coordinates {
	if len(r.Stops) == 0 {
		return nil
	}
	points := make([]domain.Coordinates, 0, len(r.Stops)+2)
	points = append(points, depot)
	for _, s := range r.Stops {
		points = append(points, s.Order.Location)
	}
	return append(points, depot)
}
