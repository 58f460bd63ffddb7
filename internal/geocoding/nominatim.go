package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"
)

const (
	nominatimBaseURL = "https://nominatim.openstreetmap.org"
	userAgent        = "FishIt/1.0 (github.com/fishit/fishit)" // Required by Nominatim ToS

	// fallbackTimeout bounds a single reverse call, separate from the
	// timeouts used for data fetches.
	fallbackTimeout = 3 * time.Second

	// throttleInterval is the minimum spacing between network calls.
	// Global, not per-key, so queued lookups don't burst the service.
	throttleInterval = 500 * time.Millisecond
)

// NominatimResolver reverse-geocodes through the Nominatim API. It is the
// network fallback behind the offline resolver.
type NominatimResolver struct {
	baseURL    string
	httpClient *http.Client

	mu       sync.Mutex
	lastCall time.Time
}

// NewNominatimResolver creates a resolver against the public Nominatim
// endpoint.
func NewNominatimResolver() *NominatimResolver {
	return &NominatimResolver{
		baseURL: nominatimBaseURL,
		httpClient: &http.Client{
			Timeout: fallbackTimeout,
		},
	}
}

// NewNominatimResolverWithBaseURL creates a resolver against an alternate
// endpoint, keeping the public one when the override is empty.
func NewNominatimResolverWithBaseURL(baseURL string) *NominatimResolver {
	r := NewNominatimResolver()
	if baseURL != "" {
		r.baseURL = baseURL
	}
	return r
}

// reverseResponse is the subset of the Nominatim /reverse payload we read.
type reverseResponse struct {
	Name    string `json:"name"`
	Address struct {
		City         string `json:"city"`
		Town         string `json:"town"`
		Village      string `json:"village"`
		Municipality string `json:"municipality"`
		District     string `json:"district"`
		Suburb       string `json:"suburb"`
		Hamlet       string `json:"hamlet"`
		State        string `json:"state"`
		County       string `json:"county"`
	} `json:"address"`
}

// ReverseGeocode resolves a coordinate to a locality label. HTTP failures
// and timeouts return an error the caller degrades on; no result is an
// empty string.
func (r *NominatimResolver) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	r.throttle()

	params := url.Values{}
	params.Add("format", "json")
	params.Add("lat", fmt.Sprintf("%f", lat))
	params.Add("lon", fmt.Sprintf("%f", lon))
	params.Add("zoom", "10")
	params.Add("addressdetails", "1")

	reqURL := fmt.Sprintf("%s/reverse?%s", r.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("nominatim API returned status %d", resp.StatusCode)
	}

	var result reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	return pickLabel(result), nil
}

// throttle sleeps so that at least throttleInterval passes between calls.
// The first call in a process goes through immediately.
func (r *NominatimResolver) throttle() {
	r.mu.Lock()
	if !r.lastCall.IsZero() {
		elapsed := time.Since(r.lastCall)
		if elapsed < throttleInterval {
			time.Sleep(throttleInterval - elapsed)
		}
	}
	r.lastCall = time.Now()
	r.mu.Unlock()
}

// pickLabel extracts the most specific usable place name from a reverse
// response, in fixed priority order.
func pickLabel(result reverseResponse) string {
	a := result.Address
	for _, candidate := range []string{
		a.City, a.Town, a.Village, a.Municipality, a.District, a.Suburb, a.Hamlet,
	} {
		if candidate != "" {
			return candidate
		}
	}
	if a.State != "" && a.County != "" {
		return fmt.Sprintf("%s, %s", a.State, a.County)
	}
	return result.Name
}
