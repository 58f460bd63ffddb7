// Package hubeau is a client for the Hub'Eau etat_piscicole API, the
// ecological dataset behind fishing-spot and species data.
package hubeau

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/fishit/fishit/internal/models"
)

const (
	defaultBaseURL  = "https://hubeau.eaufrance.fr/api/v1/etat_piscicole"
	clientUserAgent = "FishIt/1.0 (github.com/fishit/fishit)"

	fetchTimeout = 8 * time.Second

	// fetchSpacing is the minimum spacing between remote fetches, so a
	// burst of queued screens doesn't hammer the shared API.
	fetchSpacing = 500 * time.Millisecond
)

// ErrNotFound is returned when the API has no record for the requested key.
var ErrNotFound = errors.New("no data for this identifier")

// StationFetcher fetches and normalizes station records.
type StationFetcher interface {
	// FetchStationDetail retrieves a station's full record by operation code.
	FetchStationDetail(ctx context.Context, operationCode string) (*models.StationDetail, error)

	// FetchDepartmentSpots retrieves the consolidated spot/species feed
	// for a department.
	FetchDepartmentSpots(ctx context.Context, departmentCode string) (*models.DepartmentData, error)
}

// Client implements StationFetcher against the Hub'Eau API. It keeps a
// process-wide in-memory cache of station details keyed by operation
// code; the cache is cleared only on process restart, so staleness is
// bounded by session length.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string

	mu       sync.Mutex
	sessions map[string]*models.StationDetail
	lastCall time.Time
}

// NewClient creates a Hub'Eau client with the production endpoint.
func NewClient() *Client {
	return &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: fetchTimeout,
		},
		userAgent: clientUserAgent,
		sessions:  make(map[string]*models.StationDetail),
	}
}

// NewClientWithBaseURL creates a client against an alternate endpoint,
// keeping the production endpoint when the override is empty.
func NewClientWithBaseURL(baseURL string) *Client {
	c := NewClient()
	if baseURL != "" {
		c.baseURL = baseURL
	}
	return c
}

// indicateurRecord is the subset of an /indicateurs record we read.
// Field presence is not guaranteed upstream, so scalar fields are
// pointers and accessed defensively.
type indicateurRecord struct {
	CodeStation        string    `json:"code_station"`
	CodeOperation      string    `json:"code_operation"`
	LibelleStation     string    `json:"libelle_station"`
	LibelleCommune     string    `json:"libelle_commune"`
	LibelleDepartement string    `json:"libelle_departement"`
	CodeCommune        string    `json:"code_commune"`
	Latitude           *float64  `json:"latitude"`
	Longitude          *float64  `json:"longitude"`
	IPRProfondeur      *float64  `json:"ipr_profondeur"`
	IPRNomsCommuns     []string  `json:"ipr_noms_communs_taxon"`
	IPRNomsLatins      []string  `json:"ipr_noms_latins_taxon"`
	IPREffectifs       []float64 `json:"ipr_effectifs_taxon"`
}

type indicateursResponse struct {
	Data []indicateurRecord `json:"data"`
}

// FetchStationDetail fetches one station's record by operation code.
// Returns ErrNotFound when the API has no record for the code; any other
// failure is a network error.
func (c *Client) FetchStationDetail(ctx context.Context, operationCode string) (*models.StationDetail, error) {
	c.mu.Lock()
	if detail, ok := c.sessions[operationCode]; ok {
		c.mu.Unlock()
		return detail, nil
	}
	c.mu.Unlock()

	params := url.Values{}
	params.Add("code_operation", operationCode)
	params.Add("format", "json")

	var resp indicateursResponse
	if err := c.getJSON(ctx, "/indicateurs", params, &resp); err != nil {
		return nil, err
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("operation %s: %w", operationCode, ErrNotFound)
	}

	detail := buildStationDetail(operationCode, resp.Data[0], time.Now())

	c.mu.Lock()
	c.sessions[operationCode] = detail
	c.mu.Unlock()

	return detail, nil
}

// FetchDepartmentSpots fetches every indicator record for a department and
// consolidates unique stations and species.
func (c *Client) FetchDepartmentSpots(ctx context.Context, departmentCode string) (*models.DepartmentData, error) {
	params := url.Values{}
	params.Add("code_departement", departmentCode)
	params.Add("size", "2000")
	params.Add("format", "json")

	var resp indicateursResponse
	if err := c.getJSON(ctx, "/indicateurs", params, &resp); err != nil {
		return nil, err
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("department %s: %w", departmentCode, ErrNotFound)
	}

	dept := &models.DepartmentData{Code: departmentCode}
	seenSpots := make(map[string]bool)
	seenSpecies := make(map[string]bool)

	for _, rec := range resp.Data {
		if rec.CodeStation != "" && !seenSpots[rec.CodeStation] {
			seenSpots[rec.CodeStation] = true
			dept.Spots = append(dept.Spots, buildSpot(rec))
		}

		for i, common := range rec.IPRNomsCommuns {
			if common == "" || seenSpecies[common] {
				continue
			}
			seenSpecies[common] = true
			ref := models.SpeciesRef{CommonName: common}
			if i < len(rec.IPRNomsLatins) {
				ref.ScientificName = rec.IPRNomsLatins[i]
			}
			dept.Species = append(dept.Species, ref)
		}
	}

	return dept, nil
}

// getJSON performs a spaced, timed GET and decodes the JSON body.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	c.space()

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", path, err)
	}
	defer resp.Body.Close()

	// Hub'Eau answers 206 for partial result pages
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// space enforces the minimum interval between consecutive remote fetches.
func (c *Client) space() {
	c.mu.Lock()
	if !c.lastCall.IsZero() {
		elapsed := time.Since(c.lastCall)
		if elapsed < fetchSpacing {
			time.Sleep(fetchSpacing - elapsed)
		}
	}
	c.lastCall = time.Now()
	c.mu.Unlock()
}

// buildStationDetail normalizes one raw record into a StationDetail.
func buildStationDetail(operationCode string, rec indicateurRecord, now time.Time) *models.StationDetail {
	detail := &models.StationDetail{
		OperationCode:    operationCode,
		StationLabel:     rec.LibelleStation,
		CommuneLabel:     rec.LibelleCommune,
		DepartementLabel: rec.LibelleDepartement,
		CommuneCode:      rec.CodeCommune,
		SpeciesFound:     zipSpecies(rec.IPRNomsCommuns, rec.IPREffectifs),
		FetchedAt:        now.UnixMilli(),
	}
	if rec.Latitude != nil {
		detail.Coordinates.Latitude = *rec.Latitude
	}
	if rec.Longitude != nil {
		detail.Coordinates.Longitude = *rec.Longitude
	}
	if rec.IPRProfondeur != nil {
		detail.DepthMeters = *rec.IPRProfondeur
	}
	return detail
}

// zipSpecies pairs the parallel name/abundance arrays by index, keeping
// only positive counts. A count array shorter than the name array yields
// a defaulted abundance of 0, dropping that species; the pairing is
// positional per the upstream data shape.
func zipSpecies(names []string, counts []float64) []models.Species {
	var species []models.Species
	for i, name := range names {
		count := 0
		if i < len(counts) {
			count = int(counts[i])
		}
		if count > 0 {
			species = append(species, models.Species{Name: name, CountFound: count})
		}
	}
	return species
}

// buildSpot derives a department-list spot from a raw record, composing a
// display address from whatever location fields are present.
func buildSpot(rec indicateurRecord) models.Spot {
	spot := models.Spot{
		Code:          rec.CodeStation,
		Name:          rec.LibelleStation,
		Commune:       rec.LibelleCommune,
		OperationCode: rec.CodeOperation,
	}
	if spot.Name == "" {
		spot.Name = "Station " + rec.CodeStation
	}
	if spot.Commune == "" {
		spot.Commune = "Commune inconnue"
	}
	if rec.Latitude != nil {
		spot.Coordinates.Latitude = *rec.Latitude
	}
	if rec.Longitude != nil {
		spot.Coordinates.Longitude = *rec.Longitude
	}

	switch {
	case rec.LibelleCommune != "" && rec.LibelleDepartement != "":
		spot.Address = rec.LibelleCommune + ", " + rec.LibelleDepartement
	case rec.LibelleCommune != "":
		spot.Address = rec.LibelleCommune
	case rec.Latitude != nil && rec.Longitude != nil:
		spot.Address = fmt.Sprintf("%.4f, %.4f", *rec.Latitude, *rec.Longitude)
	default:
		spot.Address = "Adresse non disponible"
	}
	return spot
}
