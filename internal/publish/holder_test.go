package publish

import (
	"fmt"
	"sync"
	"testing"

	"github.com/sinja33/RouteOptimize/internal/domain"
)

func TestHolderLifecycle(t *testing.T) {
	h := NewHolder()

	if _, _, ok := h.Snapshot(); ok {
		t.Fatal("fresh holder must report nothing published")
	}
	if _, ok := h.PublishedAt(); ok {
		t.Fatal("fresh holder must have no publish time")
	}

	first := []domain.Route{{Vehicle: domain.Vehicle{ID: "V1"}, TotalDistanceKM: 10}}
	h.Replace(first, domain.Stats{TotalDistanceKM: 10})

	routes, stats, ok := h.Snapshot()
	if !ok || len(routes) != 1 || stats.TotalDistanceKM != 10 {
		t.Fatalf("snapshot after publish: ok=%v routes=%d stats=%+v", ok, len(routes), stats)
	}

	r, ok := h.RouteForVehicle("V1")
	if !ok || r.TotalDistanceKM != 10 {
		t.Fatalf("route lookup: ok=%v route=%+v", ok, r)
	}
	if _, ok := h.RouteForVehicle("V9"); ok {
		t.Fatal("unknown vehicle must not resolve")
	}

	// A second publish fully replaces the first set.
	second := []domain.Route{{Vehicle: domain.Vehicle{ID: "V2"}, TotalDistanceKM: 20}}
	h.Replace(second, domain.Stats{TotalDistanceKM: 20})

	if _, ok := h.RouteForVehicle("V1"); ok {
		t.Fatal("replaced route must be gone")
	}
	if _, ok := h.RouteForVehicle("V2"); !ok {
		t.Fatal("new route must be visible")
	}
}

func TestHolderConcurrentAccess(t *testing.T) {
	h := NewHolder()
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(2)
		i := i
		go func() {
			defer wg.Done()
			id := fmt.Sprintf("V%d", i)
			h.Replace([]domain.Route{{Vehicle: domain.Vehicle{ID: id}}}, domain.Stats{})
		}()
		go func() {
			defer wg.Done()
			routes, _, ok := h.Snapshot()
			if ok && len(routes) != 1 {
				t.Error("reader observed a torn snapshot")
			}
		}()
	}
	wg.Wait()
}
