package spatial

import (
	"math"
	"testing"

	"github.com/fishit/fishit/internal/models"
)

func TestHaversineKm(t *testing.T) {
	tests := []struct {
		name       string
		lat1, lon1 float64
		lat2, lon2 float64
		expectedKm float64
		tolerance  float64
	}{
		{
			name: "Bordeaux short hop",
			lat1: 44.8404, lon1: -0.5805,
			lat2: 44.8378, lon2: -0.5792,
			expectedKm: 0.31,
			tolerance:  0.01,
		},
		{
			name: "Paris to Bordeaux",
			lat1: 48.8566, lon1: 2.3522,
			lat2: 44.8378, lon2: -0.5792,
			expectedKm: 499.0,
			tolerance:  5.0,
		},
		{
			name: "same point",
			lat1: 44.84, lon1: -0.58,
			lat2: 44.84, lon2: -0.58,
			expectedKm: 0.0,
			tolerance:  0.0001,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineKm(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.expectedKm) > tt.tolerance {
				t.Errorf("HaversineKm() = %.4f km, want %.4f km (±%.4f)", got, tt.expectedKm, tt.tolerance)
			}
		})
	}
}

func TestEstimate(t *testing.T) {
	from := models.Coordinates{Latitude: 44.8404, Longitude: -0.5805}
	to := models.Coordinates{Latitude: 44.8378, Longitude: -0.5792}

	est := Estimate(from, to)

	// ~0.31 km straight line, ~0.40 km estimated route, within 1%
	if math.Abs(est.StraightLineKm-0.31)/0.31 > 0.05 {
		t.Errorf("StraightLineKm = %.4f, want ≈0.31", est.StraightLineKm)
	}

	wantRoute := est.StraightLineKm * RouteFactor
	if math.Abs(est.EstimatedRouteKm-wantRoute) > 1e-9 {
		t.Errorf("EstimatedRouteKm = %.4f, want %.4f", est.EstimatedRouteKm, wantRoute)
	}
	if math.Abs(est.EstimatedRouteKm-0.40)/0.40 > 0.05 {
		t.Errorf("EstimatedRouteKm = %.4f, want ≈0.40", est.EstimatedRouteKm)
	}
}
