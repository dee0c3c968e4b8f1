package pubmed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"pubmedx/config"
	"pubmedx/metrics"
	"pubmedx/types"
)

// elink link names for the two citation directions.
const (
	linkNameReferences = "pubmed_pubmed_refs"
	linkNameCitations  = "pubmed_pubmed_citedin"
)

// ErrUnavailable marks upstream failures that persisted through retries.
var ErrUnavailable = errors.New("pubmed upstream unavailable")

// ClientConfig configures a Client. Zero values fall back to the defaults
// in the config package.
type ClientConfig struct {
	BaseURL        string
	APIKey         string
	Tool           string
	Email          string
	RateLimit      float64
	RetryMax       int
	RetryBaseDelay time.Duration
	RetryMaxDelay  time.Duration
	HTTPTimeout    time.Duration
	Cache          Cache
}

// Client fetches article metadata and citation links from the NCBI
// E-utilities API. Every request passes through a shared rate limiter,
// and transient failures are retried with exponential backoff before an
// error is surfaced.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	tool           string
	email          string
	limiter        *RateLimiter
	cache          Cache
	retryMax       int
	retryBaseDelay time.Duration
	retryMaxDelay  time.Duration
}

// NewClient creates a Client from cfg, applying defaults for unset fields.
func NewClient(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = config.DefaultBaseURL
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = config.DefaultRateLimit
	}
	if cfg.RetryMax <= 0 {
		cfg.RetryMax = config.DefaultRetryMax
	}
	if cfg.RetryBaseDelay <= 0 {
		cfg.RetryBaseDelay = config.DefaultRetryBaseDelay
	}
	if cfg.RetryMaxDelay <= 0 {
		cfg.RetryMaxDelay = config.DefaultRetryMaxDelay
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = config.DefaultHTTPTimeout
	}

	return &Client{
		httpClient:     &http.Client{Timeout: cfg.HTTPTimeout},
		baseURL:        cfg.BaseURL,
		apiKey:         cfg.APIKey,
		tool:           cfg.Tool,
		email:          cfg.Email,
		limiter:        NewRateLimiter(cfg.RateLimit),
		cache:          cfg.Cache,
		retryMax:       cfg.RetryMax,
		retryBaseDelay: cfg.RetryBaseDelay,
		retryMaxDelay:  cfg.RetryMaxDelay,
	}
}

// Summary fetches the metadata record for pmid.
func (c *Client) Summary(ctx context.Context, pmid string) (*types.Article, error) {
	if c.cache != nil {
		if article, ok := c.cache.Get(ctx, pmid); ok {
			metrics.CacheHits.Inc()
			return article, nil
		}
		metrics.CacheMisses.Inc()
	}

	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("id", pmid)
	body, err := c.get(ctx, "esummary.fcgi", params)
	if err != nil {
		return nil, err
	}

	article, err := parseSummary(pmid, body)
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		c.cache.Put(ctx, article)
	}
	return article, nil
}

// Links fetches the reference and citation lists for pmid, querying both
// link directions in parallel. A failed lookup on either side degrades to
// an empty list so one flaky elink call cannot sink a whole crawl; only
// cancellation propagates as an error.
func (c *Client) Links(ctx context.Context, pmid string) (*types.ArticleLinks, error) {
	var references, citations []string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ids, err := c.linksByName(gctx, pmid, linkNameReferences)
		if err != nil {
			if gctx.Err() != nil {
				return err
			}
			log.Printf("elink %s failed for pmid=%s: %v (treating as none)", linkNameReferences, pmid, err)
			ids = nil
		}
		references = ids
		return nil
	})
	g.Go(func() error {
		ids, err := c.linksByName(gctx, pmid, linkNameCitations)
		if err != nil {
			if gctx.Err() != nil {
				return err
			}
			log.Printf("elink %s failed for pmid=%s: %v (treating as none)", linkNameCitations, pmid, err)
			ids = nil
		}
		citations = ids
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &types.ArticleLinks{
		PMID:       pmid,
		References: references,
		Citations:  citations,
	}, nil
}

func (c *Client) linksByName(ctx context.Context, pmid, linkName string) ([]string, error) {
	params := url.Values{}
	params.Set("dbfrom", "pubmed")
	params.Set("db", "pubmed")
	params.Set("id", pmid)
	params.Set("linkname", linkName)
	body, err := c.get(ctx, "elink.fcgi", params)
	if err != nil {
		return nil, err
	}
	return parseLinks(linkName, body)
}

// get performs a rate-limited GET against an E-utilities endpoint and
// retries transient failures with exponential backoff.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	params.Set("retmode", "json")
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}
	if c.tool != "" {
		params.Set("tool", c.tool)
	}
	if c.email != "" {
		params.Set("email", c.email)
	}
	requestURL := c.baseURL + "/" + endpoint + "?" + params.Encode()

	delay := c.retryBaseDelay
	attempts := 0
	for {
		body, retryable, err := c.doRequest(ctx, endpoint, requestURL)
		if err == nil {
			return body, nil
		}
		if ctx.Err() != nil {
			return nil, err
		}
		if !retryable {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		attempts++
		if attempts > c.retryMax {
			return nil, fmt.Errorf("%w: giving up after %d attempts: %v", ErrUnavailable, attempts, err)
		}
		metrics.UpstreamRetries.Inc()
		if delay > c.retryMaxDelay {
			delay = c.retryMaxDelay
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
}

// doRequest performs a single attempt. The boolean reports whether the
// failure is worth retrying.
func (c *Client) doRequest(ctx context.Context, endpoint, requestURL string) ([]byte, bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, false, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(endpoint, "transport_error").Inc()
		return nil, true, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			metrics.UpstreamRequests.WithLabelValues(endpoint, "read_error").Inc()
			return nil, true, err
		}
		metrics.UpstreamRequests.WithLabelValues(endpoint, "ok").Inc()
		return body, false, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		metrics.UpstreamRequests.WithLabelValues(endpoint, "rate_limited").Inc()
		c.limiter.RecordRateLimitError(retryAfter(resp.Header))
		return nil, true, fmt.Errorf("%s returned status %d", endpoint, resp.StatusCode)
	case resp.StatusCode >= 500:
		metrics.UpstreamRequests.WithLabelValues(endpoint, "server_error").Inc()
		return nil, true, fmt.Errorf("%s returned status %d", endpoint, resp.StatusCode)
	default:
		metrics.UpstreamRequests.WithLabelValues(endpoint, "client_error").Inc()
		return nil, false, fmt.Errorf("%s returned status %d", endpoint, resp.StatusCode)
	}
}

// retryAfter reads a Retry-After header expressed in seconds.
func retryAfter(h http.Header) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
