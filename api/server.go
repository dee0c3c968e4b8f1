package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pubmedx/graph"
)

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(registry *graph.Registry) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	// Register resource routers
	RegisterGraphRoutes(r, registry)
	RegisterHealthRoutes(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}
