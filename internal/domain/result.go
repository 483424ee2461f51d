package domain

// Stats summarizes one strategy's assignment outcome.
type Stats struct {
	TotalDistanceKM   float64
	AvgDistanceKM     float64
	AssignedOrders    int
	UnassignedOrders  int
	VehiclesUsed      int
	OnTimeDeliveries  int
	LateDeliveries    int
	AvgLatenessMin    float64 // mean lateness over late stops only
	AvgUtilizationPct float64 // mean capacity utilization over used vehicles
	CO2EmissionsG     float64
}

// OptimizationResult is one strategy's complete output: the routes it built,
// the orders it could not serve, and the derived summary metrics. Results for
// different strategies share no mutable state.
type OptimizationResult struct {
	Strategy    string
	Description string
	Routes      []Route
	Unassigned  []string // order IDs no vehicle could serve
	Stats       Stats
}
