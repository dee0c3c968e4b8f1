package pubmed

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"pubmedx/types"
)

// Cache stores fetched article records for reuse across crawls. Published
// article metadata never changes, so entries only need a TTL, not
// invalidation.
type Cache interface {
	Get(ctx context.Context, pmid string) (*types.Article, bool)
	Put(ctx context.Context, article *types.Article)
}

// MemoryCache is the in-process Cache used when no Redis is configured.
type MemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

type memoryEntry struct {
	article   *types.Article
	expiresAt time.Time
}

// NewMemoryCache creates a MemoryCache whose entries expire after ttl.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

// Get returns the cached article for pmid if present and unexpired.
func (m *MemoryCache) Get(_ context.Context, pmid string) (*types.Article, bool) {
	m.mu.RLock()
	entry, ok := m.entries[pmid]
	m.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.article, true
}

// Put stores article under its PMID.
func (m *MemoryCache) Put(_ context.Context, article *types.Article) {
	if article == nil || article.PMID == "" {
		return
	}
	m.mu.Lock()
	m.entries[article.PMID] = memoryEntry{
		article:   article,
		expiresAt: time.Now().Add(m.ttl),
	}
	m.mu.Unlock()
}

// RedisCacheConfig holds connection settings for a RedisCache.
type RedisCacheConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// RedisCache stores article records in Redis so multiple service instances
// can share one article cache.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a RedisCache and verifies connectivity.
func NewRedisCache(cfg RedisCacheConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Ping to verify
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return &RedisCache{client: client, ttl: cfg.TTL}, nil
}

func cacheKey(pmid string) string {
	return "pubmedx:article:" + pmid
}

// Get returns the cached article for pmid if present. Redis errors are
// treated as misses so the crawl falls through to the API.
func (r *RedisCache) Get(ctx context.Context, pmid string) (*types.Article, bool) {
	data, err := r.client.Get(ctx, cacheKey(pmid)).Bytes()
	if err != nil {
		return nil, false
	}
	var article types.Article
	if err := json.Unmarshal(data, &article); err != nil {
		return nil, false
	}
	return &article, true
}

// Put stores article under its PMID with the configured TTL.
func (r *RedisCache) Put(ctx context.Context, article *types.Article) {
	if article == nil || article.PMID == "" {
		return
	}
	data, err := json.Marshal(article)
	if err != nil {
		return
	}
	r.client.Set(ctx, cacheKey(article.PMID), data, r.ttl)
}

// Close releases the underlying Redis connection.
func (r *RedisCache) Close() error {
	return r.client.Close()
}
