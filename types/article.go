package types

import "time"

// Article represents the metadata of a single PubMed article
type Article struct {
	PMID      string    `json:"pmid"`
	Title     string    `json:"title"`
	Authors   []string  `json:"authors"`
	Journal   string    `json:"journal"`
	PubDate   string    `json:"pubdate"`
	Abstract  string    `json:"abstract,omitempty"`
	DOI       string    `json:"doi,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
}

// ArticleLinks holds the citation neighbourhood of an article: the PMIDs it
// references and the PMIDs that cite it
type ArticleLinks struct {
	PMID       string   `json:"pmid"`
	References []string `json:"references"`
	Citations  []string `json:"citations"`
}
