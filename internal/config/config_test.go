package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MENUSCAN_API_URL", "")
	t.Setenv("MENUSCAN_IMAGE_BASE_URL", "")
	t.Setenv("MENUSCAN_SHOW_COSTS", "")

	cfg := Load()

	if cfg.APIBaseURL != DefaultAPIURL {
		t.Errorf("expected default API URL, got %q", cfg.APIBaseURL)
	}
	if cfg.ImageBaseURL != DefaultImageBaseURL {
		t.Errorf("expected default image base URL, got %q", cfg.ImageBaseURL)
	}
	if cfg.ShowCostPanel {
		t.Error("cost panel should be off by default")
	}
	if cfg.CacheDir == "" {
		t.Error("cache dir should never be empty")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MENUSCAN_API_URL", "http://localhost:9999")
	t.Setenv("MENUSCAN_CACHE_DIR", "/tmp/menuscan-test")
	t.Setenv("MENUSCAN_SHOW_COSTS", "1")

	cfg := Load()

	if cfg.APIBaseURL != "http://localhost:9999" {
		t.Errorf("override not applied, got %q", cfg.APIBaseURL)
	}
	if cfg.CacheDir != "/tmp/menuscan-test" {
		t.Errorf("cache dir override not applied, got %q", cfg.CacheDir)
	}
	if !cfg.ShowCostPanel {
		t.Error("expected cost panel enabled")
	}
}
