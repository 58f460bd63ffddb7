package models

import "time"

// CacheExpiry is how long a persisted StationDetail or UserLocation stays
// valid before a refetch is required.
const CacheExpiry = time.Hour

// Coordinates is a WGS84 latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Species is one taxon observed at a station during a sampling operation.
type Species struct {
	Name       string `json:"name"`        // Common name (e.g. "Brochet")
	CountFound int    `json:"count_found"` // Abundance count, always > 0
}

// StationDetail is the full record for one fishing/sampling station,
// keyed by the operation code of its most recent sampling operation.
// A refetch produces a new instance; instances are never mutated.
type StationDetail struct {
	OperationCode    string      `json:"operation_code"`
	StationLabel     string      `json:"station_label"`
	CommuneLabel     string      `json:"commune_label"`
	DepartementLabel string      `json:"departement_label"`
	CommuneCode      string      `json:"commune_code"`
	Coordinates      Coordinates `json:"coordinates"`
	DepthMeters      float64     `json:"depth_meters"`
	SpeciesFound     []Species   `json:"species_found"` // Filtered to CountFound > 0, order preserved
	FetchedAt        int64       `json:"fetched_at"`    // Epoch milliseconds
}

// Valid reports whether the cached detail is still fresh at the given time.
func (s *StationDetail) Valid(now time.Time) bool {
	if s == nil {
		return false
	}
	return now.UnixMilli()-s.FetchedAt < CacheExpiry.Milliseconds()
}
