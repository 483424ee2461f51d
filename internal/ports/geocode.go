package ports

import (
	"context"
	"errors"

	"github.com/sinja33/RouteOptimize/internal/domain"
)

// ErrAddressNotFound is returned when the geocoding service has no result
// for an address. Callers reject the single affected record and continue.
var ErrAddressNotFound = errors.New("address not found")

// Contract for resolving a street address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}

// Port: an explicit address -> coordinate key-value store with injectable
// backing (memory, Redis, SQL). A miss is not an error: missing addresses
// are simply absent from the returned map.
type GeocodeCache interface {
	// Fetch cached coordinates for the given addresses.
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
	// Store address -> coordinate mappings in the cache.
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}
