package services

import (
	"github.com/sinja33/RouteOptimize/internal/domain"
	"github.com/sinja33/RouteOptimize/internal/geo"
)

// BuildSegments converts a route's ordered stops into drawable polyline
// segments. Refined routes already carry road geometry and keep it;
// otherwise each leg is a straight line with the model's distance estimate.
// The final leg back to the depot is flagged so it can be rendered dashed.
func BuildSegments(depot domain.Coordinates, r domain.Route, m geo.Model) []domain.Segment {
	if len(r.Segments) > 0 {
		return r.Segments
	}
	if len(r.Stops) == 0 {
		return nil
	}

	segments := make([]domain.Segment, 0, len(r.Stops)+1)
	pos := depot
	for _, stop := range r.Stops {
		segments = append(segments, estimatedSegment(m, pos, stop.Order.Location, false))
		pos = stop.Order.Location
	}
	segments = append(segments, estimatedSegment(m, pos, depot, true))
	return segments
}

func estimatedSegment(m geo.Model, from, to domain.Coordinates, returnLeg bool) domain.Segment {
	return domain.Segment{
		From:          from,
		To:            to,
		Geometry:      []domain.Coordinates{from, to},
		DistanceKM:    m.RoadKM(from, to),
		Estimated:     true,
		ReturnToDepot: returnLeg,
	}
}
