package dto

import "github.com/sinja33/RouteOptimize/internal/domain"

type OrderRequest struct {
	ID          string   `json:"id"`
	Address     string   `json:"address,omitempty"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	Weight      float64  `json:"weight"`
	Priority    string   `json:"priority,omitempty"`
	WindowStart *int     `json:"windowStart,omitempty"`
	WindowEnd   *int     `json:"windowEnd,omitempty"`
}

func (o OrderRequest) ToDomain() domain.Order {
	return domain.Order{
		ID:          o.ID,
		Address:     o.Address,
		Location:    domain.Coordinates{Lat: o.Lat, Lng: o.Lng},
		WeightKG:    o.Weight,
		Priority:    domain.NormalizePriority(o.Priority),
		WindowStart: windowFromPtr(o.WindowStart),
		WindowEnd:   windowFromPtr(o.WindowEnd),
	}
}

func FromOrder(o domain.Order) OrderRequest {
	return OrderRequest{
		ID:          o.ID,
		Address:     o.Address,
		Lat:         o.Location.Lat,
		Lng:         o.Location.Lng,
		Weight:      o.WeightKG,
		Priority:    string(o.Priority),
		WindowStart: windowToPtr(o.WindowStart),
		WindowEnd:   windowToPtr(o.WindowEnd),
	}
}

func windowFromPtr(p *int) int {
	if p == nil {
		return domain.NoWindow
	}
	return *p
}

func windowToPtr(v int) *int {
	if v == domain.NoWindow {
		return nil
	}
	return &v
}

// StopResponse is an order enriched with the arrival info computed for it
// on a route.
type StopResponse struct {
	ID          string  `json:"id"`
	Address     string  `json:"address,omitempty"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Weight      float64 `json:"weight"`
	Priority    string  `json:"priority"`
	WindowStart *int    `json:"windowStart,omitempty"`
	WindowEnd   *int    `json:"windowEnd,omitempty"`
	ArrivalTime int     `json:"arrivalTime"`
	OnTime      bool    `json:"onTime"`
	Lateness    int     `json:"lateness"`
}

func FromStop(s domain.Stop) StopResponse {
	return StopResponse{
		ID:          s.Order.ID,
		Address:     s.Order.Address,
		Lat:         s.Order.Location.Lat,
		Lng:         s.Order.Location.Lng,
		Weight:      s.Order.WeightKG,
		Priority:    string(s.Order.Priority),
		WindowStart: windowToPtr(s.Order.WindowStart),
		WindowEnd:   windowToPtr(s.Order.WindowEnd),
		ArrivalTime: s.ArrivalTime,
		OnTime:      s.OnTime,
		Lateness:    s.LatenessMin,
	}
}

func (s StopResponse) ToDomain() domain.Stop {
	return domain.Stop{
		Order: domain.Order{
			ID:          s.ID,
			Address:     s.Address,
			Location:    domain.Coordinates{Lat: s.Lat, Lng: s.Lng},
			WeightKG:    s.Weight,
			Priority:    domain.NormalizePriority(s.Priority),
			WindowStart: windowFromPtr(s.WindowStart),
			WindowEnd:   windowFromPtr(s.WindowEnd),
		},
		ArrivalTime: s.ArrivalTime,
		OnTime:      s.OnTime,
		LatenessMin: s.Lateness,
	}
}
