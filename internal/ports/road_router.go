package ports

import (
	"context"

	"github.com/sinja33/RouteOptimize/internal/domain"
)

// Real road distance and path geometry for one leg of a route.
type RoadLeg struct {
	DistanceKM float64
	Geometry   []domain.Coordinates // path points as lat/lng
}

// Contract for retrieving real road routing for a single leg from an
// external routing service. Implementations must bound every call with a
// timeout; callers treat any error as "fall back to the estimate".
type RoadRouter interface {
	// RouteLeg returns road distance and geometry from one point to another.
	RouteLeg(ctx context.Context, from, to domain.Coordinates) (RoadLeg, error)
}
