package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sinja33/RouteOptimize/internal/domain"
	"github.com/sinja33/RouteOptimize/internal/ports"
)

// stubRouter serves a fixed distance per leg and can be told to fail legs
// ending at a given point. Leg requests run concurrently, so it locks.
type stubRouter struct {
	mu       sync.Mutex
	calls    int
	legKM    float64
	failDest *domain.Coordinates
}

func (s *stubRouter) RouteLeg(ctx context.Context, from, to domain.Coordinates) (ports.RoadLeg, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if s.failDest != nil && to == *s.failDest {
		return ports.RoadLeg{}, errors.New("stub: leg unavailable")
	}
	return ports.RoadLeg{
		DistanceKM: s.legKM,
		Geometry:   []domain.Coordinates{from, {Lat: (from.Lat + to.Lat) / 2, Lng: (from.Lng + to.Lng) / 2}, to},
	}, nil
}

func testRefiner(router ports.RoadRouter) *Refiner {
	p := testParams()
	return &Refiner{
		Router:        router,
		Model:         p.Model,
		Depot:         p.Depot,
		ShiftStartMin: p.ShiftStartMin,
		Concurrency:   2,
	}
}

func twoStopRoute() domain.Route {
	return domain.Route{
		Vehicle: testVehicle("V1", 100),
		Stops: []domain.Stop{
			newStop(testOrder("O1", northOf(0.01), 5, domain.NoWindow), 485),
			newStop(testOrder("O2", northOf(0.02), 5, domain.NoWindow), 490),
		},
		TotalDistanceKM: 5.8,
		TotalWeightKG:   10,
		Color:           "#ff3b4a",
		DistanceSource:  domain.DistanceSourceEstimated,
	}
}

func TestRefineRoutesAllLegsSucceed(t *testing.T) {
	router := &stubRouter{legKM: 2}
	refined := testRefiner(router).RefineRoutes(context.Background(), []domain.Route{twoStopRoute()})

	if len(refined) != 1 {
		t.Fatalf("expected 1 route, got %d", len(refined))
	}
	r := refined[0]

	// Two stops means three legs: depot->O1->O2->depot.
	if router.calls != 3 {
		t.Fatalf("router calls = %d, want 3", router.calls)
	}
	if len(r.Segments) != 3 {
		t.Fatalf("segments = %d, want 3", len(r.Segments))
	}
	if r.TotalDistanceKM != 6 {
		t.Fatalf("total distance = %v, want 6", r.TotalDistanceKM)
	}
	if r.DistanceSource != domain.DistanceSourceRoad {
		t.Fatalf("distance source = %q, want road", r.DistanceSource)
	}
	for i, seg := range r.Segments {
		if seg.Estimated {
			t.Fatalf("segment %d flagged estimated after a successful fetch", i)
		}
		if len(seg.Geometry) != 3 {
			t.Fatalf("segment %d geometry length = %d, want 3", i, len(seg.Geometry))
		}
	}
	if !r.Segments[2].ReturnToDepot {
		t.Fatal("last segment must be flagged as the return leg")
	}

	// Arrival times recomputed from road distances: 2 km at 40 km/h is 3 min.
	if r.Stops[0].ArrivalTime != 483 {
		t.Fatalf("first arrival = %d, want 483", r.Stops[0].ArrivalTime)
	}
	if r.Stops[1].ArrivalTime != 486 {
		t.Fatalf("second arrival = %d, want 486", r.Stops[1].ArrivalTime)
	}
}

func TestRefineRoutesLegFallback(t *testing.T) {
	// The leg to O2 fails; only that leg keeps the model estimate and the
	// route is flagged mixed. The batch itself never fails.
	dest := northOf(0.02)
	router := &stubRouter{legKM: 2, failDest: &dest}
	p := testParams()

	refined := testRefiner(router).RefineRoutes(context.Background(), []domain.Route{twoStopRoute()})
	r := refined[0]

	if r.DistanceSource != domain.DistanceSourceMixed {
		t.Fatalf("distance source = %q, want mixed", r.DistanceSource)
	}
	if !r.Segments[1].Estimated {
		t.Fatal("failed leg must be flagged estimated")
	}
	if r.Segments[0].Estimated || r.Segments[2].Estimated {
		t.Fatal("successful legs must not be flagged estimated")
	}

	wantLeg := p.Model.RoadKM(northOf(0.01), dest)
	if got := r.Segments[1].DistanceKM; got != wantLeg {
		t.Fatalf("fallback leg distance = %v, want model estimate %v", got, wantLeg)
	}
}

type failingRouter struct{}

func (failingRouter) RouteLeg(ctx context.Context, from, to domain.Coordinates) (ports.RoadLeg, error) {
	return ports.RoadLeg{}, errors.New("down")
}

func TestRefineRoutesAllLegsFail(t *testing.T) {
	refined := testRefiner(failingRouter{}).RefineRoutes(context.Background(), []domain.Route{twoStopRoute()})

	if refined[0].DistanceSource != domain.DistanceSourceEstimated {
		t.Fatalf("distance source = %q, want estimated when every leg fell back", refined[0].DistanceSource)
	}
}

func TestRefineRoutesIdempotent(t *testing.T) {
	router := &stubRouter{legKM: 2}
	rf := testRefiner(router)

	once := rf.RefineRoutes(context.Background(), []domain.Route{twoStopRoute()})
	twice := rf.RefineRoutes(context.Background(), once)

	if once[0].TotalDistanceKM != twice[0].TotalDistanceKM {
		t.Fatalf("refining twice changed the total: %v vs %v",
			once[0].TotalDistanceKM, twice[0].TotalDistanceKM)
	}
	if once[0].Stops[1].ArrivalTime != twice[0].Stops[1].ArrivalTime {
		t.Fatal("refining twice changed arrival times")
	}
}

func TestRefineRoutesEmptyRoutePassthrough(t *testing.T) {
	empty := domain.Route{Vehicle: testVehicle("V1", 100)}
	router := &stubRouter{legKM: 2}

	refined := testRefiner(router).RefineRoutes(context.Background(), []domain.Route{empty})

	if router.calls != 0 {
		t.Fatalf("router calls = %d, want 0 for a route without stops", router.calls)
	}
	if len(refined) != 1 || len(refined[0].Segments) != 0 {
		t.Fatalf("empty route must pass through unchanged: %+v", refined)
	}
}
