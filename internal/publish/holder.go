// Package publish holds the process-wide "currently published" route set
// consumed by the driver endpoints. The holder replaces the original
// implicit global: it has an explicit replace/read contract, lives only in
// memory, and resets on restart.
package publish

import (
	"sync"
	"time"

	"github.com/sinja33/RouteOptimize/internal/domain"
)

// Holder is safe for concurrent use. Replace swaps the entire set
// atomically; readers always observe a consistent routes+stats pair.
type Holder struct {
	mu          sync.RWMutex
	routes      []domain.Route
	stats       domain.Stats
	publishedAt time.Time
	published   bool
}

func NewHolder() *Holder {
	return &Holder{}
}

// Replace publishes a new route set, discarding the previous one.
func (h *Holder) Replace(routes []domain.Route, stats domain.Stats) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = routes
	h.stats = stats
	h.publishedAt = time.Now()
	h.published = true
}

// Snapshot returns the published set, or ok=false when nothing has been
// published since the process started.
func (h *Holder) Snapshot() (routes []domain.Route, stats domain.Stats, ok bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if !h.published {
		return nil, domain.Stats{}, false
	}
	return h.routes, h.stats, true
}

// RouteForVehicle finds the published route for one vehicle.
func (h *Holder) RouteForVehicle(vehicleID string) (domain.Route, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, r := range h.routes {
		if r.Vehicle.ID == vehicleID {
			return r, true
		}
	}
	return domain.Route{}, false
}

// PublishedAt returns when the current set was published.
func (h *Holder) PublishedAt() (time.Time, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.publishedAt, h.published
}
