package api

import (
	"github.com/Conceptual-Machines/gourmet-api/internal/api/handlers"
	apimiddleware "github.com/Conceptual-Machines/gourmet-api/internal/api/middleware"
	"github.com/Conceptual-Machines/gourmet-api/internal/config"
	"github.com/Conceptual-Machines/gourmet-api/internal/metrics"
	webhandlers "github.com/Conceptual-Machines/gourmet-api/internal/web/handlers"
	"github.com/gin-gonic/gin"
)

// Routes served by the application.
const (
	RouteHealth    = "/health"
	RouteMetrics   = "/api/metrics"
	RouteEdgeKey   = "/api/hotpepper-key"
	RoutePageData  = "/__data.json"
	RoutePageIndex = "/"
)

func SetupRouter(cfg *config.Config, version string, recorders ...metrics.Recorder) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(recorders...))

	// The edge key route answers preflights itself
	router.Use(apimiddleware.CORS(cfg.AllowedOrigins, RouteEdgeKey))

	healthHandler := handlers.NewHealthHandler(cfg)
	router.GET(RouteHealth, healthHandler.HealthCheck)

	metricsHandler := handlers.NewMetricsHandler(cfg, version)
	router.GET(RouteMetrics, metricsHandler.GetMetrics)

	// Edge key responder: every method gets the same body
	edgeKeyHandler := handlers.NewEdgeKeyHandler(cfg)
	router.Any(RouteEdgeKey, edgeKeyHandler.Respond)

	// Page configuration loader
	pageHandler := webhandlers.NewPageHandler(cfg)
	router.GET(RoutePageData, pageHandler.Data)
	router.GET(RoutePageIndex, pageHandler.Page)

	return router
}
