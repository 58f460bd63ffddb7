package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fishit/fishit/internal/authclient"
	"github.com/fishit/fishit/internal/config"
	"github.com/fishit/fishit/internal/database"
	"github.com/fishit/fishit/internal/geocoding"
	"github.com/fishit/fishit/internal/hubeau"
	"github.com/fishit/fishit/internal/kvcache"
	"github.com/fishit/fishit/internal/location"
	"github.com/fishit/fishit/internal/models"
	"github.com/fishit/fishit/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "Path to a config file (default: $FISHIT_CONFIG or ~/.config/fishit/config.yaml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		fmt.Printf("Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	cache, err := kvcache.New(db)
	if err != nil {
		fmt.Printf("Error initializing cache: %v\n", err)
		os.Exit(1)
	}

	// City names resolve offline first, Nominatim as network fallback
	geo := geocoding.NewService(cache,
		geocoding.NewOfflineResolver(),
		geocoding.NewNominatimResolverWithBaseURL(cfg.NominatimBaseURL),
	)

	var sources []location.PositionSource
	if cfg.HasFixedPosition() {
		sources = append(sources, location.StaticSource{
			Coordinates: models.Coordinates{Latitude: cfg.Latitude, Longitude: cfg.Longitude},
		})
	}
	sources = append(sources, location.NewIPSource())
	provider := location.NewProvider(geo, cache, sources...)

	fetcher := hubeau.NewClientWithBaseURL(cfg.HubeauBaseURL)

	var auth *authclient.Client
	if cfg.BackendURL != "" {
		auth = authclient.New(cfg.BackendURL, cache)
	}

	p := tea.NewProgram(ui.NewModel(cache, fetcher, provider, auth), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running application: %v\n", err)
		os.Exit(1)
	}
}
