package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig bundles everything main needs to wire the service.
type AppConfig struct {
	Port        string
	HTTPTimeout time.Duration

	GeocoderBaseURL string
	GeocoderAPIKey  string

	GridBaseURL    string
	GridServiceKey string

	TextGenBaseURL string
	TextGenAPIKey  string
	TextGenModel   string

	// SweepInterval controls how often expired cache entries are dropped.
	SweepInterval time.Duration

	// Cache bounds. Geocoding and advice barely churn, so they keep long
	// TTLs; the weather feeds change continuously and expire fast.
	PlaceCacheSize   int
	PlaceCacheTTL    time.Duration
	AddressCacheSize int
	AddressCacheTTL  time.Duration
	FeedCacheSize    int
	FeedCacheTTL     time.Duration
	AdviceCacheSize  int
	AdviceCacheTTL   time.Duration
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")

	httpTimeout, err := getenvDuration("HTTP_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = httpTimeout

	cfg.GeocoderBaseURL = getenvDefault("GEOCODER_BASE_URL", "https://dapi.kakao.com")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	cfg.GridBaseURL = getenvDefault("GRID_API_BASE_URL", "https://apis.data.go.kr/1360000/VilageFcstInfoService_2.0")
	cfg.GridServiceKey = os.Getenv("GRID_API_SERVICE_KEY")

	cfg.TextGenBaseURL = getenvDefault("TEXTGEN_BASE_URL", "https://api.openai.com/v1")
	cfg.TextGenAPIKey = os.Getenv("TEXTGEN_API_KEY")
	cfg.TextGenModel = getenvDefault("TEXTGEN_MODEL", "gpt-4o-mini")

	sweep, err := getenvDuration("SWEEP_INTERVAL", "10m")
	if err != nil {
		return nil, err
	}
	cfg.SweepInterval = sweep

	cfg.PlaceCacheSize = getenvInt("PLACE_CACHE_SIZE", 100)
	cfg.PlaceCacheTTL, err = getenvDuration("PLACE_CACHE_TTL", "24h")
	if err != nil {
		return nil, err
	}
	cfg.AddressCacheSize = getenvInt("ADDRESS_CACHE_SIZE", 200)
	cfg.AddressCacheTTL, err = getenvDuration("ADDRESS_CACHE_TTL", "24h")
	if err != nil {
		return nil, err
	}
	cfg.FeedCacheSize = getenvInt("FEED_CACHE_SIZE", 100)
	cfg.FeedCacheTTL, err = getenvDuration("FEED_CACHE_TTL", "5m")
	if err != nil {
		return nil, err
	}
	cfg.AdviceCacheSize = getenvInt("ADVICE_CACHE_SIZE", 100)
	cfg.AdviceCacheTTL, err = getenvDuration("ADVICE_CACHE_TTL", "24h")
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	v := getenvDefault(key, def)
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
