package http

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"go.ngs.io/ewh-api/internal/observability"
	"go.ngs.io/ewh-api/internal/usecase"
)

// SetupRouter creates and configures the Gin router. metrics may be nil, in
// which case no /metrics endpoint is mounted.
func SetupRouter(ewhUC *usecase.EWHUseCase, metrics *observability.Metrics) *gin.Engine {

	router := gin.Default()

	// Setup CORS middleware.
	corsConfig := cors.DefaultConfig()

	// Get allowed origins from environment variable.
	// Default to allow all origins if not specified.
	allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if allowedOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(allowedOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}

	router.Use(cors.New(corsConfig))

	// Create handler.
	handler := NewHandler(ewhUC)

	// API v1 routes.
	v1 := router.Group("/v1")

	// EWH evaluation.
	ewh := v1.Group("/ewh")
	ewh.GET("/grid", handler.GetGrid)
	ewh.GET("/point", handler.GetPoint)

	// Available gravity-field solutions.
	v1.GET("/solutions", handler.GetSolutions)

	// Health check.
	router.GET("/health", handler.HealthCheck)

	// Prometheus metrics.
	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	return router
}
