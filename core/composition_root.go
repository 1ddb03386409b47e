package core

import (
	"context"
	"os"

	"github.com/coindash/market-data/api"
	"github.com/coindash/market-data/cache"
	"github.com/coindash/market-data/coingecko"
	"github.com/coindash/market-data/config"
	"github.com/coindash/market-data/fetcher"
)

// Setup creates and registers all services
func Setup(ctx context.Context, cfg *config.Config) (*Registry, error) {
	registry := NewRegistry()

	// Create Cache service
	cacheService := cache.NewService(cfg.Cache)
	registry.Register(cacheService)

	// Create CoinGecko API client
	client := coingecko.NewClient(cfg)

	// Create Fetcher service with cache and client dependencies
	fetcherService := fetcher.NewService(cacheService, cfg, client)
	registry.Register(fetcherService)

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Create HTTP server and register it as a service
	server := api.New(port, fetcherService)
	registry.Register(server)

	return registry, nil
}
