package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/fishit/fishit/internal/authserver"
	"github.com/fishit/fishit/internal/config"
	"github.com/fishit/fishit/internal/database"
)

func main() {
	configPath := flag.String("config", "", "Path to a config file (default: $FISHIT_CONFIG or ~/.config/fishit/config.yaml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if cfg.Server.JWTSecret == "" {
		fmt.Println("Error: server.jwt_secret must be set (or FISHIT_SERVER_JWT_SECRET)")
		os.Exit(1)
	}

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		fmt.Printf("Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	store, err := authserver.NewStore(db)
	if err != nil {
		fmt.Printf("Error initializing user store: %v\n", err)
		os.Exit(1)
	}

	srv := authserver.NewServer(store, cfg.Server.JWTSecret)
	router := srv.Router()

	slog.Info("starting server", "addr", cfg.Server.ListenAddr)
	if err := router.Run(cfg.Server.ListenAddr); err != nil {
		fmt.Printf("Error running server: %v\n", err)
		os.Exit(1)
	}
}
