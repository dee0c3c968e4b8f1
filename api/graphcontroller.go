package api

import (
	"errors"
	"fmt"
	"net/http"

	"pubmedx/analytics"
	"pubmedx/graph"

	"github.com/gin-gonic/gin"
)

// GraphController serves the citation graph lifecycle endpoints.
type GraphController struct {
	registry *graph.Registry
}

// RegisterGraphRoutes registers graph endpoints backed by the registry.
func RegisterGraphRoutes(r *gin.Engine, registry *graph.Registry) {
	ctrl := &GraphController{registry: registry}
	g := r.Group("/api/graph")
	g.POST("", ctrl.handleCreateGraph)
	g.GET("", ctrl.handleListGraphs)
	g.GET("/:id/status", ctrl.handleGraphStatus)
	g.GET("/:id/data", ctrl.handleGraphData)
	g.GET("/:id/analytics", ctrl.handleGraphAnalytics)
	g.DELETE("/:id", ctrl.handleDeleteGraph)
}

// CreateGraphRequest represents the request to start a citation crawl
type CreateGraphRequest struct {
	PMID     string `json:"pmid" binding:"required"`
	MaxDepth int    `json:"max_depth"`
}

// handleCreateGraph starts a crawl for the requested seed article.
// It runs asynchronously and returns 202 Accepted immediately.
func (ctrl *GraphController) handleCreateGraph(c *gin.Context) {
	var req CreateGraphRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !validPMID(req.PMID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pmid must be a numeric PubMed identifier"})
		return
	}

	job := ctrl.registry.Create(req.PMID, req.MaxDepth)

	c.JSON(http.StatusAccepted, gin.H{
		"graph_id": job.ID(),
		"status":   "pending",
		"message":  fmt.Sprintf("Graph creation started for PMID %s", req.PMID),
	})
}

// handleListGraphs returns a summary of every known graph.
func (ctrl *GraphController) handleListGraphs(c *gin.Context) {
	graphs := ctrl.registry.List()
	c.JSON(http.StatusOK, gin.H{
		"graphs": graphs,
		"count":  len(graphs),
	})
}

// handleGraphStatus reports crawl progress for one graph.
func (ctrl *GraphController) handleGraphStatus(c *gin.Context) {
	status, err := ctrl.registry.Status(c.Param("id"))
	if err != nil {
		respondRegistryError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// handleGraphData returns the nodes and edges of a finished graph.
func (ctrl *GraphController) handleGraphData(c *gin.Context) {
	data, err := ctrl.registry.Data(c.Param("id"))
	if err != nil {
		respondRegistryError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// handleGraphAnalytics computes the analytics report for a finished graph.
func (ctrl *GraphController) handleGraphAnalytics(c *gin.Context) {
	data, err := ctrl.registry.Data(c.Param("id"))
	if err != nil {
		respondRegistryError(c, err)
		return
	}

	report := analytics.Analyze(data.Nodes, data.Edges)
	c.JSON(http.StatusOK, gin.H{
		"graph_id":  data.Metadata.GraphID,
		"analytics": report,
	})
}

// handleDeleteGraph removes a graph and cancels its crawl if still running.
func (ctrl *GraphController) handleDeleteGraph(c *gin.Context) {
	id := c.Param("id")
	if err := ctrl.registry.Delete(id); err != nil {
		respondRegistryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Graph %s deleted successfully", id),
	})
}

// respondRegistryError maps registry errors onto HTTP statuses.
func respondRegistryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, graph.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Graph not found"})
	case errors.Is(err, graph.ErrNotReady):
		c.JSON(http.StatusConflict, gin.H{"error": "Graph is not ready yet"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// validPMID accepts non-empty strings of ASCII digits.
func validPMID(pmid string) bool {
	if pmid == "" {
		return false
	}
	for _, r := range pmid {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
