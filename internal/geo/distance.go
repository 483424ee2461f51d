// Package geo implements the estimated distance model: haversine great-circle
// distance scaled by a road-circuity factor, and travel time at a configured
// average speed. All functions are pure and total for valid coordinates.
package geo

import (
	"math"

	"github.com/sinja33/RouteOptimize/internal/domain"
)

const (
	earthRadiusKM = 6371

	// Policy defaults; product-tunable, not derived. Override via config.
	DefaultCircuityFactor = 1.3
	DefaultAvgSpeedKMH    = 40
)

// Model converts straight-line geometry into road-distance and travel-time
// estimates. The zero value is unusable; use NewModel.
type Model struct {
	CircuityFactor float64
	AvgSpeedKMH    float64
}

func NewModel(circuity, speedKMH float64) Model {
	if circuity <= 0 {
		circuity = DefaultCircuityFactor
	}
	if speedKMH <= 0 {
		speedKMH = DefaultAvgSpeedKMH
	}
	return Model{CircuityFactor: circuity, AvgSpeedKMH: speedKMH}
}

// Haversine returns the great-circle distance between two points in km.
func Haversine(a, b domain.Coordinates) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKM * c
}

// RoadKM estimates road distance in km between two points by applying the
// circuity factor to the great-circle distance.
func (m Model) RoadKM(a, b domain.Coordinates) float64 {
	return Haversine(a, b) * m.CircuityFactor
}

// TravelMinutes converts a distance to whole minutes of driving at the
// configured average speed.
func (m Model) TravelMinutes(distanceKM float64) int {
	return int(math.Round(distanceKM / m.AvgSpeedKMH * 60))
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
