// Package config loads application configuration from environment
// variables and an optional YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level configuration shared by both binaries.
type Config struct {
	DBPath string `mapstructure:"db_path"`

	// Data sources
	HubeauBaseURL    string `mapstructure:"hubeau_base_url"`
	NominatimBaseURL string `mapstructure:"nominatim_base_url"`

	// Credential backend; empty disables the login screen
	BackendURL string `mapstructure:"backend_url"`

	// Fixed user position. Zero values mean "not configured" and the
	// app falls back to IP geolocation.
	Latitude  float64 `mapstructure:"latitude"`
	Longitude float64 `mapstructure:"longitude"`

	Server ServerConfig `mapstructure:"server"`
}

// ServerConfig configures the fishit-server binary.
type ServerConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
	JWTSecret  string `mapstructure:"jwt_secret"`
}

// HasFixedPosition reports whether explicit coordinates were configured.
func (c *Config) HasFixedPosition() bool {
	return c.Latitude != 0 || c.Longitude != 0
}

// Load reads configuration with precedence: explicit path → $FISHIT_CONFIG
// → ~/.config/fishit/config.yaml, with FISHIT_* env vars over everything.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("db_path", filepath.Join("data", "fishit.db"))
	v.SetDefault("hubeau_base_url", "https://hubeau.eaufrance.fr/api/v1/etat_piscicole")
	v.SetDefault("nominatim_base_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("backend_url", "")
	// AutomaticEnv only consults the environment for known keys, so the
	// coordinate pair needs defaults even though zero means "not set".
	v.SetDefault("latitude", 0.0)
	v.SetDefault("longitude", 0.0)
	v.SetDefault("server.listen_addr", ":3000")
	v.SetDefault("server.jwt_secret", "")

	v.SetEnvPrefix("FISHIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else if envPath := os.Getenv("FISHIT_CONFIG"); envPath != "" {
		v.SetConfigFile(envPath)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "fishit"))
		}
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}
