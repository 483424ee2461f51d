package geocode

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/sinja33/RouteOptimize/internal/domain"
	"github.com/sinja33/RouteOptimize/internal/ports"
)

// Cached wraps a Geocoder with an injectable address -> coordinate cache.
// Cache read failures fall through to the inner geocoder; cache write
// failures are logged and never fail the lookup.
type Cached struct {
	Inner ports.Geocoder
	Cache ports.GeocodeCache
}

func NewCached(inner ports.Geocoder, cache ports.GeocodeCache) *Cached {
	return &Cached{Inner: inner, Cache: cache}
}

// normalize collapses whitespace so cache keys stay consistent.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (c *Cached) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	norm := normalize(address)
	if norm == "" {
		return domain.Coordinates{}, fmt.Errorf("geocode: address must be non-empty")
	}

	if c.Cache != nil {
		hits, err := c.Cache.GetMany(ctx, []string{norm})
		if err != nil {
			log.Printf("geocode cache read failed: %v", err)
		} else if coords, ok := hits[norm]; ok {
			return coords, nil
		}
	}

	coords, err := c.Inner.Geocode(ctx, norm)
	if err != nil {
		return domain.Coordinates{}, err
	}

	if c.Cache != nil {
		if err := c.Cache.PutMany(ctx, map[string]domain.Coordinates{norm: coords}); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}
	return coords, nil
}
