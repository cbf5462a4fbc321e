package config

import (
	"os"
	"path/filepath"
)

// Hardcoded fallbacks mirror the deployed defaults so the tools work with
// no configuration at all.
const (
	DefaultAPIURL       = "https://nrnnywp9u0.execute-api.eu-west-2.amazonaws.com"
	DefaultImageBaseURL = "https://d1qc6fbrksmxtc.cloudfront.net"
	DefaultListenAddr   = ":8000"
)

type Config struct {
	APIBaseURL    string
	ImageBaseURL  string
	CacheDir      string
	ListenAddr    string
	ShowCostPanel bool
}

// Load reads configuration from the environment. It never fails: missing
// or unusable values fall back to the defaults above.
func Load() *Config {
	cfg := &Config{
		APIBaseURL:    getenv("MENUSCAN_API_URL", DefaultAPIURL),
		ImageBaseURL:  getenv("MENUSCAN_IMAGE_BASE_URL", DefaultImageBaseURL),
		ListenAddr:    getenv("MENUSCAN_LISTEN_ADDR", DefaultListenAddr),
		ShowCostPanel: os.Getenv("MENUSCAN_SHOW_COSTS") == "1",
	}

	cfg.CacheDir = os.Getenv("MENUSCAN_CACHE_DIR")
	if cfg.CacheDir == "" {
		if base, err := os.UserCacheDir(); err == nil {
			cfg.CacheDir = filepath.Join(base, "menuscan")
		} else {
			cfg.CacheDir = ".menuscan-cache"
		}
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
