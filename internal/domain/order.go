package domain

import "strings"

// Delivery priority classes, in increasing urgency.
type Priority string

const (
	PriorityStandard Priority = "standard"
	PriorityUrgent   Priority = "urgent"
	PriorityExpress  Priority = "express"
)

// NormalizePriority maps free-form priority labels onto the known enum.
// Unknown or empty values fall back to standard.
func NormalizePriority(s string) Priority {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityUrgent:
		return PriorityUrgent
	case PriorityExpress:
		return PriorityExpress
	default:
		return PriorityStandard
	}
}

// NoWindow marks an absent time-window bound. Valid bounds live in
// [0, 1440) minutes since midnight, so -1 is unambiguous.
const NoWindow = -1

// Represents a single delivery order handled by the system.
// An Order is immutable input: the engine never mutates it and only tags a
// copy with the assignment outcome (see Stop).
type Order struct {
	ID          string
	Address     string
	Location    Coordinates
	WeightKG    float64
	Priority    Priority
	WindowStart int // minutes since midnight, NoWindow when absent
	WindowEnd   int // minutes since midnight, NoWindow when absent
}

func (o Order) HasWindowEnd() bool { return o.WindowEnd != NoWindow }

// EffectiveWindowStart returns the window start, treating an absent bound as
// the start of the day so orders without windows sort first.
func (o Order) EffectiveWindowStart() int {
	if o.WindowStart == NoWindow {
		return 0
	}
	return o.WindowStart
}
