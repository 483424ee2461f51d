package services

import (
	"testing"

	"github.com/sinja33/RouteOptimize/internal/domain"
)

func TestBuildSegments(t *testing.T) {
	p := testParams()
	r := domain.Route{
		Vehicle: testVehicle("V1", 100),
		Stops: []domain.Stop{
			newStop(testOrder("O1", northOf(0.01), 5, domain.NoWindow), 485),
			newStop(testOrder("O2", northOf(0.02), 5, domain.NoWindow), 490),
		},
	}

	segs := BuildSegments(p.Depot, r, p.Model)

	if len(segs) != 3 {
		t.Fatalf("segments = %d, want 3 (two stops plus the return leg)", len(segs))
	}
	if segs[0].From != p.Depot || segs[0].To != northOf(0.01) {
		t.Fatalf("first segment endpoints wrong: %+v", segs[0])
	}
	if segs[2].To != p.Depot || !segs[2].ReturnToDepot {
		t.Fatalf("last segment must return to the depot: %+v", segs[2])
	}
	for i, seg := range segs {
		if !seg.Estimated {
			t.Fatalf("segment %d must be flagged estimated", i)
		}
		if len(seg.Geometry) != 2 {
			t.Fatalf("segment %d: straight-line geometry has %d points", i, len(seg.Geometry))
		}
		if want := p.Model.RoadKM(seg.From, seg.To); seg.DistanceKM != want {
			t.Fatalf("segment %d distance = %v, want %v", i, seg.DistanceKM, want)
		}
	}
}

func TestBuildSegmentsKeepsExisting(t *testing.T) {
	p := testParams()
	existing := []domain.Segment{{From: p.Depot, To: northOf(0.01), DistanceKM: 9.9}}
	r := domain.Route{
		Stops:    []domain.Stop{newStop(testOrder("O1", northOf(0.01), 5, domain.NoWindow), 485)},
		Segments: existing,
	}

	segs := BuildSegments(p.Depot, r, p.Model)
	if len(segs) != 1 || segs[0].DistanceKM != 9.9 {
		t.Fatalf("existing segments must be kept, got %+v", segs)
	}
}

func TestBuildSegmentsEmptyRoute(t *testing.T) {
	p := testParams()
	if segs := BuildSegments(p.Depot, domain.Route{}, p.Model); segs != nil {
		t.Fatalf("empty route must produce no segments, got %+v", segs)
	}
}
