// Package spatial provides great-circle distance math for spot/user pairings.
package spatial

import (
	"github.com/golang/geo/s2"

	"github.com/fishit/fishit/internal/models"
)

// EarthRadiusKm is Earth's mean radius in kilometers.
const EarthRadiusKm = 6371.0

// RouteFactor inflates straight-line distance to approximate a walking
// route. Heuristic carried over from the mobile app.
const RouteFactor = 1.3

// HaversineKm calculates the great-circle distance between two points in
// kilometers.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}

// Estimate derives the distance estimate between a user position and a
// station position.
func Estimate(from, to models.Coordinates) models.DistanceEstimate {
	straight := HaversineKm(from.Latitude, from.Longitude, to.Latitude, to.Longitude)
	return models.DistanceEstimate{
		StraightLineKm:   straight,
		EstimatedRouteKm: straight * RouteFactor,
	}
}
