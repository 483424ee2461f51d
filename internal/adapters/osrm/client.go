// Package osrm implements the RoadRouter port against an OSRM routing
// server (the public demo server by default).
package osrm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/sinja33/RouteOptimize/internal/domain"
	"github.com/sinja33/RouteOptimize/internal/metrics"
	"github.com/sinja33/RouteOptimize/internal/ports"
)

const (
	DefaultBaseURL = "https://router.project-osrm.org"
	DefaultTimeout = 5 * time.Second

	// The public OSRM server tolerates roughly one request per 50ms.
	DefaultRatePerSec = 20
)

// ErrNoRoute is returned when OSRM answers but finds no road route between
// the two points. Callers fall back to the estimated distance.
var ErrNoRoute = errors.New("osrm: no route found")

// Client queries the OSRM /route endpoint for single legs.
//
// It coordinates request pacing against the server's rate limits, a
// per-request timeout, retry on transient failures, and an in-memory leg
// cache keyed by coordinate pair. Safe for concurrent use.
type Client struct {
	session *http.Client
	baseURL string
	profile string
	timeout time.Duration
	limiter *rate.Limiter

	mu   sync.RWMutex
	legs map[string]ports.RoadLeg
}

func NewClient(baseURL string, timeout time.Duration, ratePerSec float64) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if ratePerSec <= 0 {
		ratePerSec = DefaultRatePerSec
	}
	return &Client{
		session: &http.Client{Timeout: timeout},
		baseURL: baseURL,
		profile: "driving",
		timeout: timeout,
		limiter: rate.NewLimiter(rate.Limit(ratePerSec), 1),
		legs:    make(map[string]ports.RoadLeg),
	}
}

type routeResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"` // meters
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"` // [lng, lat]
		} `json:"geometry"`
	} `json:"routes"`
}

// RouteLeg returns real road distance and path geometry for one leg.
// Identical legs are served from the in-memory cache, which also keeps
// refinement idempotent across calls within one process lifetime.
func (c *Client) RouteLeg(ctx context.Context, from, to domain.Coordinates) (ports.RoadLeg, error) {
	key := legKey(from, to)

	c.mu.RLock()
	leg, ok := c.legs[key]
	c.mu.RUnlock()
	if ok {
		metrics.RoadLegRequests.WithLabelValues("cache_hit").Inc()
		return leg, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		metrics.RoadLegRequests.WithLabelValues("error").Inc()
		return ports.RoadLeg{}, fmt.Errorf("osrm: wait for rate limiter: %w", err)
	}

	// OSRM expects longitude,latitude pairs.
	endpoint := fmt.Sprintf("%s/route/v1/%s/%s,%s;%s,%s?overview=full&geometries=geojson",
		c.baseURL, c.profile,
		coord(from.Lng), coord(from.Lat),
		coord(to.Lng), coord(to.Lat),
	)

	resp, err := c.doWithRetry(ctx, endpoint)
	if err != nil {
		metrics.RoadLegRequests.WithLabelValues("error").Inc()
		return ports.RoadLeg{}, fmt.Errorf("osrm: route request: %w", err)
	}
	defer resp.Body.Close()

	var decoded routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		metrics.RoadLegRequests.WithLabelValues("error").Inc()
		return ports.RoadLeg{}, fmt.Errorf("osrm: decode route response: %w", err)
	}

	if decoded.Code != "Ok" || len(decoded.Routes) == 0 {
		metrics.RoadLegRequests.WithLabelValues("error").Inc()
		return ports.RoadLeg{}, ErrNoRoute
	}

	route := decoded.Routes[0]
	geometry := make([]domain.Coordinates, 0, len(route.Geometry.Coordinates))
	for _, pt := range route.Geometry.Coordinates {
		if len(pt) != 2 {
			metrics.RoadLegRequests.WithLabelValues("error").Inc()
			return ports.RoadLeg{}, fmt.Errorf("osrm: invalid geometry point of length %d", len(pt))
		}
		geometry = append(geometry, domain.Coordinates{Lat: pt[1], Lng: pt[0]})
	}

	leg = ports.RoadLeg{DistanceKM: route.Distance / 1000, Geometry: geometry}

	c.mu.Lock()
	c.legs[key] = leg
	c.mu.Unlock()

	metrics.RoadLegRequests.WithLabelValues("ok").Inc()
	return leg, nil
}

func legKey(from, to domain.Coordinates) string {
	return coord(from.Lat) + "," + coord(from.Lng) + "|" + coord(to.Lat) + "," + coord(to.Lng)
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
