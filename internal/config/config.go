package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// ProviderAPIKey is the OpenWeatherMap credential, held only by the relay.
	ProviderAPIKey string

	// Port the relay listens on.
	Port string

	// HTTPTimeout applies to all outbound requests.
	HTTPTimeout time.Duration

	// RelayBaseURL is where the lookup client finds the relay.
	RelayBaseURL string

	// StorePath is the sqlite file holding persisted client state.
	StorePath string

	// RefreshInterval replays the displayed location periodically; 0 disables.
	RefreshInterval time.Duration
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.ProviderAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.Port = getenvDefault("PORT", "8080")
	cfg.RelayBaseURL = getenvDefault("SKYCAST_RELAY_URL", "http://localhost:8080")
	cfg.StorePath = getenvDefault("SKYCAST_STORE", "skycast.db")

	timeout, err := getenvDuration("HTTP_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	refresh, err := getenvDuration("REFRESH_INTERVAL", "0s")
	if err != nil {
		return nil, err
	}
	cfg.RefreshInterval = refresh

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	s := getenvDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
