package config

import "time"

// Crawl Constants
const (
	// DefaultMaxArticles caps the number of nodes accumulated per graph
	DefaultMaxArticles = 50

	// DefaultMaxDepth is the crawl depth used when a request omits one
	DefaultMaxDepth = 3

	// DepthCeiling is the largest crawl depth a request may ask for
	DepthCeiling = 3

	// DefaultCrawlTimeout bounds the wall-clock time of a single crawl
	DefaultCrawlTimeout = 10 * time.Minute
)

// PubMed Client Constants
const (
	// DefaultBaseURL is the NCBI E-utilities endpoint
	DefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

	// DefaultRateLimit is the request rate NCBI allows without an API key
	DefaultRateLimit = 3.0

	// DefaultRetryMax is the number of retries after a failed attempt
	DefaultRetryMax = 3

	// DefaultRetryBaseDelay seeds the exponential backoff between retries
	DefaultRetryBaseDelay = 500 * time.Millisecond

	// DefaultRetryMaxDelay caps the backoff between retries
	DefaultRetryMaxDelay = 8 * time.Second

	// DefaultHTTPTimeout bounds a single upstream request
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultTool identifies this client to NCBI
	DefaultTool = "pubmedx"
)

// Cache Constants
const (
	// DefaultCacheTTL is how long fetched article records stay cached
	DefaultCacheTTL = 24 * time.Hour
)

// Analytics Constants
const (
	// InsightListSize is the number of entries reported per insight category
	InsightListSize = 5

	// EmergingMinOutDegree is the citation out-degree an emerging paper must exceed
	EmergingMinOutDegree = 2

	// EmergingMaxInDegree is the citation in-degree an emerging paper may have
	EmergingMaxInDegree = 1

	// HubDegreeFactor is the multiple of the mean degree a node must exceed
	// to be classed as a hub or an authority
	HubDegreeFactor = 1.5

	// WellConnectedMinSize is the node count a component needs to be reported
	// as a well-connected cluster
	WellConnectedMinSize = 3

	// WellConnectedListSize is the number of well-connected clusters reported
	WellConnectedListSize = 3
)

// Placeholder Constants
const (
	// PlaceholderTitlePrefix titles nodes whose metadata could not be fetched
	PlaceholderTitlePrefix = "PMID: "
)
