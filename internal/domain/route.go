package domain

// Distance-source flags for a Route and its legs. Estimated distances come
// from the haversine model with the road-circuity factor applied; road
// distances come from the external routing service. A route whose legs mix
// both sources is marked mixed so degraded quality is never hidden.
const (
	DistanceSourceEstimated = "estimated"
	DistanceSourceRoad      = "road"
	DistanceSourceMixed     = "mixed"
)

// Represents one delivery stop: an order tagged with its assignment outcome.
// The embedded Order is a copy; the caller's input is never mutated.
type Stop struct {
	Order       Order
	ArrivalTime int  // minutes since midnight
	OnTime      bool // arrival within the window end (or no window set)
	LatenessMin int  // minutes past the window end, 0 when on time
}

// Segment is one drawable leg of a route: either real road geometry from the
// routing service or a straight line between the endpoints.
type Segment struct {
	From          Coordinates
	To            Coordinates
	Geometry      []Coordinates
	DistanceKM    float64
	Estimated     bool // distance/geometry fell back to the model estimate
	ReturnToDepot bool // final leg back to the depot, rendered dashed
}

// Represents one vehicle's ordered stop sequence for a single optimization
// run. Built once per run; only the road refiner replaces distance and
// geometry fields afterwards.
type Route struct {
	Vehicle         Vehicle
	Stops           []Stop
	TotalDistanceKM float64
	TotalWeightKG   float64
	Color           string
	DistanceSource  string // estimated | road | mixed
	Segments        []Segment
}

// StopCount returns the number of delivery stops (the return leg excluded).
func (r Route) StopCount() int { return len(r.Stops) }

// OrderIDs lists the assigned order identifiers in stop order.
func (r Route) OrderIDs() []string {
	ids := make([]string, 0, len(r.Stops))
	for _, s := range r.Stops {
		ids = append(ids, s.Order.ID)
	}
	return ids
}
