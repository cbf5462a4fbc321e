package main

import (
	"log"

	"github.com/joho/godotenv"

	"menuscan/internal/api"
	"menuscan/internal/config"
	"menuscan/internal/costs"
	"menuscan/internal/extraction"
	"menuscan/internal/menuitem"
	"menuscan/internal/restaurant"
	"menuscan/internal/review"
	"menuscan/internal/stats"
	"menuscan/internal/todo"
	"menuscan/internal/upload"
	"menuscan/internal/web"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	client := api.NewClient(cfg.APIBaseURL)

	var cache *costs.Cache
	if c, err := costs.OpenCache(cfg.CacheDir); err == nil {
		cache = c
		defer cache.Close()
	} else {
		log.Printf("[main] cost cache unavailable: %v", err)
	}

	extRepo := extraction.NewHTTPRepository(client)
	handler := web.NewHandler(
		upload.NewService(client),
		extraction.NewService(extRepo, cfg.ImageBaseURL),
		extRepo,
		review.NewHTTPValidator(client),
		menuitem.NewService(menuitem.NewHTTPRepository(client), cfg.ImageBaseURL),
		restaurant.NewService(client),
		stats.NewService(client),
		costs.NewService(client, cache),
		todo.NewService(client),
	)

	r := web.NewRouter(handler, cfg.ShowCostPanel)

	log.Printf("dashboard running at http://localhost%s (backend %s)", cfg.ListenAddr, cfg.APIBaseURL)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
