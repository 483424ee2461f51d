// Package geocode implements the Geocoder port against the Nominatim
// search API, with a caching decorator so repeated imports never re-resolve
// the same address.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/sinja33/RouteOptimize/internal/domain"
	"github.com/sinja33/RouteOptimize/internal/metrics"
	"github.com/sinja33/RouteOptimize/internal/ports"
)

const DefaultNominatimBaseURL = "https://nominatim.openstreetmap.org"

// Nominatim resolves addresses via the public Nominatim instance. The usage
// policy allows at most one request per second, enforced by the limiter.
type Nominatim struct {
	session *http.Client
	baseURL string
	limiter *rate.Limiter
}

func NewNominatim(baseURL string) *Nominatim {
	if baseURL == "" {
		baseURL = DefaultNominatimBaseURL
	}
	return &Nominatim{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
		limiter: rate.NewLimiter(rate.Limit(1), 1),
	}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (n *Nominatim) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	if err := n.limiter.Wait(ctx); err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode: wait for rate limiter: %w", err)
	}

	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")
	endpoint := n.baseURL + "/search?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode: create request: %w", err)
	}
	// Nominatim requires an identifying User-Agent.
	req.Header.Set("User-Agent", "RouteOptimize/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := n.session.Do(req)
	if err != nil {
		metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return domain.Coordinates{}, fmt.Errorf("geocode: execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return domain.Coordinates{}, fmt.Errorf("geocode: unexpected status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return domain.Coordinates{}, fmt.Errorf("geocode: decode response: %w", err)
	}

	if len(results) == 0 {
		metrics.GeocodeRequests.WithLabelValues("miss").Inc()
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", address, ports.ErrAddressNotFound)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode: parse lat %q: %w", results[0].Lat, err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode: parse lon %q: %w", results[0].Lon, err)
	}

	metrics.GeocodeRequests.WithLabelValues("ok").Inc()
	return domain.Coordinates{Lat: lat, Lng: lng}, nil
}
