package services

import (
	"fmt"

	"github.com/sinja33/RouteOptimize/internal/domain"
)

// RejectedRecord reports one input record dropped at the boundary, with the
// reason. A bad record never fails the batch; the rest keeps processing.
type RejectedRecord struct {
	ID     string
	Reason string
}

// ValidateOrders splits input orders into usable ones and per-record
// rejections. Orders without an identifier get a generated ORD#### one that
// does not collide with caller-supplied IDs.
func ValidateOrders(orders []domain.Order) ([]domain.Order, []RejectedRecord) {
	valid := make([]domain.Order, 0, len(orders))
	var rejected []RejectedRecord

	supplied := make(map[string]bool, len(orders))
	for _, o := range orders {
		if o.ID != "" {
			supplied[o.ID] = true
		}
	}

	accepted := make(map[string]bool, len(orders))
	next := 1
	for _, o := range orders {
		if o.ID == "" {
			o.ID = nextGeneratedID(supplied, &next)
		} else if accepted[o.ID] {
			rejected = append(rejected, RejectedRecord{ID: o.ID, Reason: "duplicate order id"})
			continue
		}

		switch {
		case !o.Location.Valid():
			rejected = append(rejected, RejectedRecord{ID: o.ID, Reason: "malformed coordinate"})
		case o.WeightKG < 0:
			rejected = append(rejected, RejectedRecord{ID: o.ID, Reason: "negative weight"})
		default:
			o.Priority = domain.NormalizePriority(string(o.Priority))
			accepted[o.ID] = true
			valid = append(valid, o)
		}
	}
	return valid, rejected
}

// ValidateVehicles drops vehicles the engine cannot use (zero or negative
// capacity, duplicate or missing identifiers).
func ValidateVehicles(vehicles []domain.Vehicle) ([]domain.Vehicle, []RejectedRecord) {
	valid := make([]domain.Vehicle, 0, len(vehicles))
	var rejected []RejectedRecord
	seen := make(map[string]bool, len(vehicles))

	for i, v := range vehicles {
		switch {
		case v.ID == "":
			rejected = append(rejected, RejectedRecord{ID: fmt.Sprintf("#%d", i+1), Reason: "missing vehicle id"})
		case seen[v.ID]:
			rejected = append(rejected, RejectedRecord{ID: v.ID, Reason: "duplicate vehicle id"})
		case v.MaxCapacityKG <= 0:
			rejected = append(rejected, RejectedRecord{ID: v.ID, Reason: "zero capacity"})
		default:
			seen[v.ID] = true
			valid = append(valid, v)
		}
	}
	return valid, rejected
}

func nextGeneratedID(seen map[string]bool, next *int) string {
	for {
		id := fmt.Sprintf("ORD%04d", *next)
		*next++
		if !seen[id] {
			seen[id] = true
			return id
		}
	}
}
