package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/sinja33/RouteOptimize/internal/domain"
)

// Optimizer runs every registered strategy over the same input and collects
// per-strategy results keyed by strategy name.
type Optimizer struct {
	Assigners              []Assigner
	Params                 Params
	FallbackEmissionGPerKM float64
}

// OptimizeOutput is one full run: per-strategy results plus the records the
// boundary validation dropped.
type OptimizeOutput struct {
	Results          map[string]domain.OptimizationResult
	RejectedOrders   []RejectedRecord
	RejectedVehicles []RejectedRecord
	TotalOrders      int
	TotalVehicles    int
}

// Optimize validates the input, then runs all strategies in parallel. The
// strategies are independent pure computations over read-only input, so
// parallelism is safe; each result owns its own routes and stats.
func (o *Optimizer) Optimize(ctx context.Context, orders []domain.Order, vehicles []domain.Vehicle) (*OptimizeOutput, error) {
	if len(o.Assigners) == 0 {
		return nil, errors.New("optimize: no strategies registered")
	}

	validOrders, rejectedOrders := ValidateOrders(orders)
	validVehicles, rejectedVehicles := ValidateVehicles(vehicles)

	results := make([]domain.OptimizationResult, len(o.Assigners))

	g, _ := errgroup.WithContext(ctx)
	for i, a := range o.Assigners {
		i, a := i, a
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("optimize: strategy %s: %w", a.Name(), err)
			}
			routes, unassigned := a.Assign(validOrders, validVehicles)
			for ri := range routes {
				routes[ri].Segments = BuildSegments(o.Params.Depot, routes[ri], o.Params.Model)
			}
			results[i] = domain.OptimizationResult{
				Strategy:    a.Name(),
				Description: a.Description(),
				Routes:      routes,
				Unassigned:  unassigned,
				Stats:       ComputeStats(routes, len(validOrders), o.FallbackEmissionGPerKM),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &OptimizeOutput{
		Results:          make(map[string]domain.OptimizationResult, len(results)),
		RejectedOrders:   rejectedOrders,
		RejectedVehicles: rejectedVehicles,
		TotalOrders:      len(validOrders),
		TotalVehicles:    len(validVehicles),
	}
	for _, res := range results {
		out.Results[res.Strategy] = res
		log.Printf("strategy=%s routes=%d assigned=%d unassigned=%d distance=%.1fkm",
			res.Strategy, len(res.Routes), res.Stats.AssignedOrders, len(res.Unassigned), res.Stats.TotalDistanceKM)
	}
	return out, nil
}
