package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/fishit/fishit/internal/models"
)

const ipapiBaseURL = "http://ip-api.com/json"

// IPSource approximates the device position from the machine's public IP.
// City-level accuracy, which is all the distance display needs.
type IPSource struct {
	baseURL    string
	httpClient *http.Client
}

// NewIPSource creates an IP-geolocation source.
func NewIPSource() *IPSource {
	return &IPSource{
		baseURL: ipapiBaseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type ipapiResponse struct {
	Status string  `json:"status"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
}

func (s *IPSource) Current(ctx context.Context) (models.Coordinates, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", s.baseURL, nil)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("querying ip geolocation: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Coordinates{}, fmt.Errorf("ip geolocation returned status %d", resp.StatusCode)
	}

	var result ipapiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return models.Coordinates{}, fmt.Errorf("decoding response: %w", err)
	}
	if result.Status != "success" {
		return models.Coordinates{}, fmt.Errorf("ip geolocation status %q", result.Status)
	}

	return models.Coordinates{Latitude: result.Lat, Longitude: result.Lon}, nil
}
