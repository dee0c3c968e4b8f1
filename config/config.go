package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port string

	// PubMed client
	BaseURL        string
	APIKey         string
	Tool           string
	Email          string
	RateLimit      float64
	RetryMax       int
	RetryBaseDelay time.Duration
	RetryMaxDelay  time.Duration
	HTTPTimeout    time.Duration

	// Crawl
	MaxArticles  int
	CrawlTimeout time.Duration

	// Article cache
	CacheTTL  time.Duration
	RedisAddr string
	RedisPass string
	RedisDB   int
}

// Load reads configuration from the environment, falling back to defaults
// for anything unset.
func Load() Config {
	return Config{
		Port:           GetEnv("PORT", "8080"),
		BaseURL:        GetEnv("PUBMED_BASE_URL", DefaultBaseURL),
		APIKey:         GetEnv("PUBMED_API_KEY", ""),
		Tool:           GetEnv("PUBMED_TOOL", DefaultTool),
		Email:          GetEnv("PUBMED_EMAIL", ""),
		RateLimit:      ParseFloat(os.Getenv("PUBMED_RATE_LIMIT"), DefaultRateLimit),
		RetryMax:       ParseInt(os.Getenv("RETRY_MAX"), DefaultRetryMax),
		RetryBaseDelay: ParseDuration(os.Getenv("RETRY_BASE_DELAY"), DefaultRetryBaseDelay),
		RetryMaxDelay:  ParseDuration(os.Getenv("RETRY_MAX_DELAY"), DefaultRetryMaxDelay),
		HTTPTimeout:    ParseDuration(os.Getenv("HTTP_TIMEOUT"), DefaultHTTPTimeout),
		MaxArticles:    ParseInt(os.Getenv("MAX_ARTICLES"), DefaultMaxArticles),
		CrawlTimeout:   ParseDuration(os.Getenv("CRAWL_TIMEOUT"), DefaultCrawlTimeout),
		CacheTTL:       ParseDuration(os.Getenv("CACHE_TTL"), DefaultCacheTTL),
		RedisAddr:      GetEnv("REDIS_ADDR", ""),
		RedisPass:      GetEnv("REDIS_PASS", ""),
		RedisDB:        ParseInt(os.Getenv("REDIS_DB"), 0),
	}
}

// GetEnv returns the environment variable value or a fallback if unset.
func GetEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

// ParseDuration parses a duration string with a fallback.
func ParseDuration(value string, fallback time.Duration) time.Duration {
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// ParseInt parses an int string with a fallback.
func ParseInt(value string, fallback int) int {
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// ParseFloat parses a float string with a fallback.
func ParseFloat(value string, fallback float64) float64 {
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
