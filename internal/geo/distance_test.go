package geo

import (
	"math"
	"testing"

	"github.com/sinja33/RouteOptimize/internal/domain"
)

func TestHaversineKnownDistance(t *testing.T) {
	// Ljubljana center to Maribor center, roughly 106 km great-circle.
	lj := domain.Coordinates{Lat: 46.0569, Lng: 14.5058}
	mb := domain.Coordinates{Lat: 46.5547, Lng: 15.6459}

	got := Haversine(lj, mb)
	if got < 100 || got > 112 {
		t.Fatalf("Haversine(lj, mb) = %.2f km, want ~106 km", got)
	}
}

func TestHaversineZeroForSamePoint(t *testing.T) {
	p := domain.Coordinates{Lat: 46.0569, Lng: 14.5058}
	if d := Haversine(p, p); d != 0 {
		t.Fatalf("Haversine(p, p) = %v, want 0", d)
	}
}

func TestHaversineSymmetric(t *testing.T) {
	a := domain.Coordinates{Lat: 46.05, Lng: 14.50}
	b := domain.Coordinates{Lat: 46.10, Lng: 14.60}
	if d1, d2 := Haversine(a, b), Haversine(b, a); math.Abs(d1-d2) > 1e-9 {
		t.Fatalf("Haversine not symmetric: %v vs %v", d1, d2)
	}
}

func TestRoadKMAppliesCircuity(t *testing.T) {
	m := NewModel(1.3, 40)
	a := domain.Coordinates{Lat: 46.0569, Lng: 14.5058}
	b := domain.Coordinates{Lat: 46.0644, Lng: 14.5119}

	straight := Haversine(a, b)
	road := m.RoadKM(a, b)
	if math.Abs(road-straight*1.3) > 1e-9 {
		t.Fatalf("RoadKM = %v, want %v", road, straight*1.3)
	}
}

func TestTravelMinutesRoundsToWholeMinutes(t *testing.T) {
	m := NewModel(1.3, 40)

	tests := []struct {
		km   float64
		want int
	}{
		{0, 0},
		{40, 60},
		{10, 15},
		{1, 2},   // 1.5 min rounds up
		{0.3, 0}, // 0.45 min rounds down
	}
	for _, tt := range tests {
		if got := m.TravelMinutes(tt.km); got != tt.want {
			t.Errorf("TravelMinutes(%v) = %d, want %d", tt.km, got, tt.want)
		}
	}
}

func TestNewModelDefaults(t *testing.T) {
	m := NewModel(0, 0)
	if m.CircuityFactor != DefaultCircuityFactor || m.AvgSpeedKMH != DefaultAvgSpeedKMH {
		t.Fatalf("NewModel(0, 0) = %+v, want defaults", m)
	}
}
