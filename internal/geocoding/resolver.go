// Package geocoding resolves coordinates to human-readable place names.
//
// Resolution walks an ordered list of providers: an offline coarse lookup
// first, then the Nominatim reverse-geocoding API. Results are memoized
// per 4-decimal coordinate bucket (~11m) in memory and persisted across
// sessions, so repeat lookups cost no I/O and the network provider is
// called at most once per bucket.
package geocoding

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/fishit/fishit/internal/kvcache"
)

// Resolver is a single reverse-geocoding strategy. Implementations return
// an empty string when they have no answer for the coordinate; errors are
// treated the same way by the service.
type Resolver interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (string, error)
}

// CacheKey buckets a coordinate pair to 4 decimal places. This is the
// dedup granularity for all lookups.
func CacheKey(lat, lon float64) string {
	return fmt.Sprintf("%.4f,%.4f", lat, lon)
}

// Service coordinates the resolver chain and both cache layers.
type Service struct {
	resolvers []Resolver
	cache     *kvcache.Cache

	mu     sync.Mutex
	memory map[string]string
	flight singleflight.Group
}

// NewService builds a geocoding service over the given resolver chain,
// warmed from any previously persisted results.
func NewService(cache *kvcache.Cache, resolvers ...Resolver) *Service {
	s := &Service{
		resolvers: resolvers,
		cache:     cache,
		memory:    make(map[string]string),
	}
	if cache != nil {
		var persisted map[string]string
		if cache.Get(kvcache.KeyGeocodeMap, &persisted) {
			s.memory = persisted
		}
	}
	return s
}

// Resolve maps a coordinate to a place name. Failure at every stage
// degrades to an empty string; callers supply their own fallback label.
func (s *Service) Resolve(ctx context.Context, lat, lon float64) string {
	key := CacheKey(lat, lon)

	s.mu.Lock()
	if name, ok := s.memory[key]; ok {
		s.mu.Unlock()
		return name
	}
	s.mu.Unlock()

	// Concurrent misses of the same bucket share one chain walk, so the
	// network provider sees at most one call per bucket.
	name, _, _ := s.flight.Do(key, func() (any, error) {
		s.mu.Lock()
		if name, ok := s.memory[key]; ok {
			s.mu.Unlock()
			return name, nil
		}
		s.mu.Unlock()

		for _, r := range s.resolvers {
			name, err := r.ReverseGeocode(ctx, lat, lon)
			if err != nil {
				slog.Debug("reverse geocode attempt failed", "key", key, "error", err)
				continue
			}
			if name == "" {
				continue
			}
			s.store(key, name)
			return name, nil
		}

		return "", nil
	})

	return name.(string)
}

// store writes a resolved name through to the in-memory map and merges it
// into the persisted map. The read-modify-write is not atomic across
// concurrent writers; last write wins, which the read-through cache
// tolerates.
func (s *Service) store(key, name string) {
	s.mu.Lock()
	s.memory[key] = name
	s.mu.Unlock()

	if s.cache == nil {
		return
	}
	persisted := make(map[string]string)
	s.cache.Get(kvcache.KeyGeocodeMap, &persisted)
	persisted[key] = name
	s.cache.Set(kvcache.KeyGeocodeMap, persisted)
}
