package main

import (
	"log"
	"net/http"

	"pubmedx/api"
	"pubmedx/config"
	"pubmedx/graph"
	"pubmedx/pubmed"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg := config.Load()
	addr := ":" + cfg.Port

	client := pubmed.NewClient(pubmed.ClientConfig{
		BaseURL:        cfg.BaseURL,
		APIKey:         cfg.APIKey,
		Tool:           cfg.Tool,
		Email:          cfg.Email,
		RateLimit:      cfg.RateLimit,
		RetryMax:       cfg.RetryMax,
		RetryBaseDelay: cfg.RetryBaseDelay,
		RetryMaxDelay:  cfg.RetryMaxDelay,
		HTTPTimeout:    cfg.HTTPTimeout,
		Cache:          buildArticleCache(cfg),
	})

	registry := graph.NewRegistry(client, graph.RegistryConfig{
		MaxArticles:  cfg.MaxArticles,
		CrawlTimeout: cfg.CrawlTimeout,
	})

	r := api.NewRouter(registry)
	log.Printf("Starting API server on %s", addr)
	log.Println("API endpoints available:")
	log.Println("  GET  /api/health")
	log.Println("  POST /api/graph")
	log.Println("  GET  /api/graph")
	log.Println("  GET  /api/graph/:id/status")
	log.Println("  GET  /api/graph/:id/data")
	log.Println("  GET  /api/graph/:id/analytics")
	log.Println("  DELETE /api/graph/:id")
	log.Println("  GET  /metrics")

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// buildArticleCache prefers Redis when configured and falls back to the
// in-process cache otherwise.
func buildArticleCache(cfg config.Config) pubmed.Cache {
	if cfg.RedisAddr != "" {
		cache, err := pubmed.NewRedisCache(pubmed.RedisCacheConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
			TTL:      cfg.CacheTTL,
		})
		if err != nil {
			log.Printf("Warning: failed to init Redis cache: %v (using in-process cache)", err)
		} else {
			log.Printf("Article cache backed by Redis at %s", cfg.RedisAddr)
			return cache
		}
	}
	return pubmed.NewMemoryCache(cfg.CacheTTL)
}
