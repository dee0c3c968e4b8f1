package graph

import "errors"

var (
	// ErrNotFound means the graph id is unknown to the registry.
	ErrNotFound = errors.New("graph not found")

	// ErrNotReady means the crawl has not produced the requested artifact
	// yet. Graph data and analytics exist only for finished crawls.
	ErrNotReady = errors.New("graph not ready")
)
