// Package location produces the user's current position and resolves it
// to a city label.
//
// The mobile original reads device GPS behind a permission prompt; here a
// position comes from an ordered pair of sources: explicitly configured
// coordinates (the grant analog) or an IP-geolocation lookup. When no
// source can answer, the caller gets ErrPermissionDenied and renders its
// placeholder.
package location

import (
	"context"
	"errors"
	"time"

	"github.com/fishit/fishit/internal/geocoding"
	"github.com/fishit/fishit/internal/kvcache"
	"github.com/fishit/fishit/internal/models"
)

// ErrPermissionDenied is returned when no position source is available.
// Recoverable by user action (configuring a position), never retried
// automatically.
var ErrPermissionDenied = errors.New("location access unavailable")

// PositionSource supplies a current position.
type PositionSource interface {
	Current(ctx context.Context) (models.Coordinates, error)
}

// StaticSource is a fixed, user-configured position.
type StaticSource struct {
	Coordinates models.Coordinates
}

func (s StaticSource) Current(_ context.Context) (models.Coordinates, error) {
	return s.Coordinates, nil
}

// Provider acquires a UserLocation using the first source that answers.
type Provider struct {
	sources []PositionSource
	geo     *geocoding.Service
	cache   *kvcache.Cache
	now     func() time.Time
}

// NewProvider builds a provider over the given sources, tried in order.
func NewProvider(geo *geocoding.Service, cache *kvcache.Cache, sources ...PositionSource) *Provider {
	return &Provider{
		sources: sources,
		geo:     geo,
		cache:   cache,
		now:     time.Now,
	}
}

// Cached returns the persisted UserLocation if one exists and is still
// fresh at the given time.
func (p *Provider) Cached(now time.Time) *models.UserLocation {
	if p.cache == nil {
		return nil
	}
	var loc models.UserLocation
	if !p.cache.Get(kvcache.KeyUserLocation, &loc) {
		return nil
	}
	if !loc.Valid(now) {
		return nil
	}
	return &loc
}

// Acquire reads the current position, resolves its city label, persists
// the result, and returns it. Geocode failure degrades to the unknown-city
// label rather than failing the acquisition; only the absence of any
// position source is an error.
func (p *Provider) Acquire(ctx context.Context) (*models.UserLocation, error) {
	coords, err := p.currentPosition(ctx)
	if err != nil {
		return nil, err
	}

	city := p.geo.Resolve(ctx, coords.Latitude, coords.Longitude)
	if city == "" {
		city = models.UnknownCity
	}

	loc := &models.UserLocation{
		Coordinates: coords,
		CityLabel:   city,
		ResolvedAt:  p.now().UnixMilli(),
	}

	if p.cache != nil {
		p.cache.Set(kvcache.KeyUserLocation, loc)
	}
	return loc, nil
}

func (p *Provider) currentPosition(ctx context.Context) (models.Coordinates, error) {
	var lastErr error
	for _, src := range p.sources {
		coords, err := src.Current(ctx)
		if err != nil {
			lastErr = err
			continue
		}
		return coords, nil
	}
	if lastErr != nil {
		return models.Coordinates{}, lastErr
	}
	return models.Coordinates{}, ErrPermissionDenied
}
