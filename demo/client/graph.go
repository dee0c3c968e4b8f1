package client

import (
	"context"
	"net/http"

	"pubmedx/analytics"
	"pubmedx/types"
)

// AnalyticsResponse wraps the analytics report returned by the API.
type AnalyticsResponse struct {
	GraphID   string            `json:"graph_id"`
	Analytics *analytics.Report `json:"analytics"`
}

// CreateGraph starts a crawl for the given seed and returns its graph id.
func (c *Client) CreateGraph(ctx context.Context, pmid string, maxDepth int) (string, error) {
	payload := map[string]interface{}{
		"pmid":      pmid,
		"max_depth": maxDepth,
	}

	var result struct {
		GraphID string `json:"graph_id"`
	}
	if err := c.doJSONRequest(ctx, http.MethodPost, "/api/graph", payload, &result); err != nil {
		return "", err
	}
	return result.GraphID, nil
}

// GetStatus fetches crawl progress for a graph via the API.
func (c *Client) GetStatus(ctx context.Context, graphID string) (*types.StatusResponse, error) {
	var status types.StatusResponse
	if err := c.doJSONRequest(ctx, http.MethodGet, "/api/graph/"+graphID+"/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// GetData fetches the nodes and edges of a finished graph via the API.
func (c *Client) GetData(ctx context.Context, graphID string) (*types.GraphData, error) {
	var data types.GraphData
	if err := c.doJSONRequest(ctx, http.MethodGet, "/api/graph/"+graphID+"/data", nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetAnalytics fetches the analytics report of a finished graph via the API.
func (c *Client) GetAnalytics(ctx context.Context, graphID string) (*AnalyticsResponse, error) {
	var result AnalyticsResponse
	if err := c.doJSONRequest(ctx, http.MethodGet, "/api/graph/"+graphID+"/analytics", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteGraph removes a graph via the API.
func (c *Client) DeleteGraph(ctx context.Context, graphID string) error {
	return c.doJSONRequest(ctx, http.MethodDelete, "/api/graph/"+graphID, nil, nil)
}

// Health checks whether the API is reachable.
func (c *Client) Health(ctx context.Context) error {
	return c.doJSONRequest(ctx, http.MethodGet, "/api/health", nil, nil)
}
