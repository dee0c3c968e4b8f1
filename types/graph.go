package types

import "time"

// Edge type values. A reference edge points from the citing article to the
// article it cites; a citation edge points from the cited article to the
// article citing it.
const (
	EdgeTypeReference = "reference"
	EdgeTypeCitation  = "citation"
)

// Node is a single article in a citation graph
type Node struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Authors  []string `json:"authors"`
	Journal  string   `json:"journal,omitempty"`
	PubDate  string   `json:"pubdate,omitempty"`
	Abstract string   `json:"abstract,omitempty"`
	IsSeed   bool     `json:"is_seed,omitempty"`
}

// Edge is a directed citation relationship between two nodes
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

// GraphMetadata describes the crawl that produced a graph
type GraphMetadata struct {
	GraphID            string     `json:"graph_id"`
	SeedPMID           string     `json:"seed_pmid"`
	Status             string     `json:"status"`
	MaxDepth           int        `json:"max_depth"`
	TotalArticles      int        `json:"total_articles"`
	TotalRelationships int        `json:"total_relationships"`
	LimitReached       bool       `json:"limit_reached"`
	CreatedAt          time.Time  `json:"created_at"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
}

// GraphData is the full export of a finished citation graph
type GraphData struct {
	Nodes    []Node        `json:"nodes"`
	Edges    []Edge        `json:"edges"`
	Metadata GraphMetadata `json:"metadata"`
}

// StatusResponse is the progress snapshot of a crawl job
type StatusResponse struct {
	GraphID           string     `json:"graph_id"`
	SeedPMID          string     `json:"seed_pmid"`
	Status            string     `json:"status"`
	ProcessedArticles int        `json:"processed_articles"`
	TotalArticles     int        `json:"total_articles"`
	LimitReached      bool       `json:"limit_reached"`
	CreatedAt         time.Time  `json:"created_at"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	Error             string     `json:"error,omitempty"`
}

// JobSummary is the compact listing entry for a crawl job
type JobSummary struct {
	GraphID       string    `json:"graph_id"`
	SeedPMID      string    `json:"seed_pmid"`
	Status        string    `json:"status"`
	MaxDepth      int       `json:"max_depth"`
	TotalArticles int       `json:"total_articles"`
	CreatedAt     time.Time `json:"created_at"`
}
