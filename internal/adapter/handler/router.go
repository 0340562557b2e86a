package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dealsense/dealsense/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg      *config.Config
	ingest   *Ingest
	classify *Classify
	clients  *Clients
	meetings *Meetings
	metrics  *Metrics
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	ingest *Ingest,
	classify *Classify,
	clients *Clients,
	meetings *Meetings,
	metrics *Metrics,
) *Router {
	return &Router{
		cfg:      cfg,
		ingest:   ingest,
		classify: classify,
		clients:  clients,
		meetings: meetings,
		metrics:  metrics,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)

	v1 := e.Group("/v1")

	v1.POST("/ingest/csv", rt.ingest.UploadCSV)

	v1.GET("/classify", rt.classify.List)
	v1.POST("/classify/batch", rt.classify.Batch)
	v1.POST("/classify/:id", rt.classify.One)

	v1.GET("/clients", rt.clients.List)
	v1.POST("/clients", rt.clients.Upsert)
	v1.GET("/clients/:id", rt.clients.Get)

	v1.GET("/meetings", rt.meetings.List)
	v1.GET("/meetings/:id", rt.meetings.Get)

	rt.setupMetricsRoutes(v1)
}

// setupMetricsRoutes configures the aggregate endpoints
func (rt *Router) setupMetricsRoutes(g *echo.Group) {
	metrics := g.Group("/metrics")
	metrics.GET("/overview", rt.metrics.Overview)
	metrics.GET("/funnel", rt.metrics.Funnel)
	metrics.GET("/monthly-conversion", rt.metrics.MonthlyConversion)
	metrics.GET("/heatmap", rt.metrics.Heatmap)
	metrics.GET("/use-cases", rt.metrics.UseCases)
	metrics.GET("/pains", rt.metrics.Pains)
	metrics.GET("/pains/available", rt.metrics.AvailablePains)
	metrics.GET("/objections/available", rt.metrics.AvailableObjections)
	metrics.GET("/sentiment", rt.metrics.Sentiment)
	metrics.GET("/sellers", rt.metrics.Sellers)
	metrics.GET("/origins", rt.metrics.Origins)
	metrics.GET("/automatization", rt.metrics.Automatization)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
