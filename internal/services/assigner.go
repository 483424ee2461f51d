package services

import (
	"math"

	"github.com/sinja33/RouteOptimize/internal/domain"
	"github.com/sinja33/RouteOptimize/internal/geo"
)

// Lateness tolerances are policy constants, not derived values. They differ
// per strategy: distance-first tolerates more lateness in exchange for
// shorter routes.
const (
	DefaultDistanceFirstToleranceMin = 240
	DefaultTimeFirstToleranceMin     = 120
)

// distanceTieEpsilonKM bounds the float comparison that decides whether two
// candidate legs count as equidistant for tie-breaking purposes.
const distanceTieEpsilonKM = 1e-9

// routeColors is the display palette assigned round-robin by route index.
var routeColors = []string{
	"#ff3b4a", "#00d4ff", "#7c3aed", "#f59e0b", "#10b981",
	"#ec4899", "#3b82f6", "#8b5cf6", "#f97316", "#14b8a6",
	"#ef4444", "#06b6d4", "#a855f7", "#eab308", "#22c55e",
	"#db2777", "#6366f1", "#d946ef", "#fb923c", "#2dd4bf",
}

// Assigner is one assignment strategy. Both strategies consume identical
// read-only input and may run in parallel; neither mutates the caller's
// slices.
type Assigner interface {
	Name() string
	Description() string
	// Assign produces per-vehicle routes and the IDs of orders no vehicle
	// could serve within capacity, range, and lateness constraints.
	Assign(orders []domain.Order, vehicles []domain.Vehicle) ([]domain.Route, []string)
}

// Params carries the shared policy knobs both strategies evaluate
// constraints with.
type Params struct {
	Depot          domain.Coordinates
	Model          geo.Model
	ShiftStartMin  int // clock value at which vehicles leave the depot
	ServiceTimeMin int // fixed handling time charged per stop
	RangeByType    map[string]float64
}

// effectiveRangeKM resolves a vehicle's operating range: an explicit range
// wins, otherwise the type default applies. 0 means unlimited.
func (p Params) effectiveRangeKM(v domain.Vehicle) float64 {
	if v.MaxRangeKM > 0 {
		return v.MaxRangeKM
	}
	return p.RangeByType[v.NormalizedType()]
}

func colorFor(routeIdx int) string {
	return routeColors[routeIdx%len(routeColors)]
}

// newStop tags a copy of the order with its assignment outcome.
func newStop(o domain.Order, arrival int) domain.Stop {
	s := domain.Stop{Order: o, ArrivalTime: arrival, OnTime: true}
	if o.HasWindowEnd() && arrival > o.WindowEnd {
		s.OnTime = false
		s.LatenessMin = arrival - o.WindowEnd
	}
	return s
}

// withinWindow reports whether an arrival is acceptable for the order under
// the given lateness tolerance. Orders without a window end never constrain.
func withinWindow(o domain.Order, arrival, toleranceMin int) bool {
	if !o.HasWindowEnd() {
		return true
	}
	return arrival <= o.WindowEnd+toleranceMin
}

// windowEndOrMax orders absent window ends after every real one.
func windowEndOrMax(o domain.Order) int {
	if !o.HasWindowEnd() {
		return 1 << 30
	}
	return o.WindowEnd
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
