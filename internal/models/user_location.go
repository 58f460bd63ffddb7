package models

import "time"

// UnknownCity is the placeholder label shown when reverse geocoding fails.
// The product copy is French, matching the upstream data source.
const UnknownCity = "Ville inconnue"

// UserLocation is the device holder's last known position with its
// resolved city label. One instance per device, overwritten on refresh.
type UserLocation struct {
	Coordinates Coordinates `json:"coordinates"`
	CityLabel   string      `json:"city_label"`
	ResolvedAt  int64       `json:"resolved_at"` // Epoch milliseconds
}

// Valid reports whether the cached location is still fresh at the given time.
// Expiry policy is identical to StationDetail.
func (u *UserLocation) Valid(now time.Time) bool {
	if u == nil {
		return false
	}
	return now.UnixMilli()-u.ResolvedAt < CacheExpiry.Milliseconds()
}

// DistanceEstimate is derived from a UserLocation/StationDetail pairing.
// It is session state only and never persisted.
type DistanceEstimate struct {
	StraightLineKm   float64
	EstimatedRouteKm float64
}
