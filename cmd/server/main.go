// Package main provides the EWH API HTTP server.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"go.ngs.io/ewh-api/internal/adapter/store/gfc"
	httpHandler "go.ngs.io/ewh-api/internal/http"
	"go.ngs.io/ewh-api/internal/observability"
	"go.ngs.io/ewh-api/internal/usecase"
)

const version = "0.1.0"

func main() {
	// Parse command-line flags.
	showHelp := flag.Bool("help", false, "Show usage information")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showHelp {
		printUsage()
		return
	}

	if *showVersion {
		fmt.Printf("ewh-api version %s\n", version)
		return
	}

	// Load configuration from environment.
	port := getEnv("PORT", "8080")
	gfcDir := getEnv("GFC_DIR", "./data")

	log.Printf("Starting EWH API server...")
	log.Printf("Port: %s", port)
	log.Printf("Solution directory: %s", gfcDir)

	// Initialize the solution store.
	store := gfc.NewSolutionStore(gfcDir)
	if solutions, err := store.List(); err != nil {
		log.Printf("Warning: cannot list %s yet: %v", gfcDir, err)
	} else {
		log.Printf("Found %d gravity-field solutions", len(solutions))
	}

	// Initialize metrics.
	metrics, err := observability.NewMetrics(nil)
	if err != nil {
		log.Fatalf("Failed to register metrics: %v", err)
	}

	// Initialize use case.
	ewhUC := usecase.NewEWHUseCase(store, metrics)

	// Setup router.
	router := httpHandler.SetupRouter(ewhUC, metrics)

	// Start server.
	addr := fmt.Sprintf(":%s", port)
	log.Printf("Server listening on %s", addr)
	log.Printf("Health check: http://localhost:%s/health", port)
	log.Printf("API endpoints:")
	log.Printf("  - GET /v1/solutions")
	log.Printf("  - GET /v1/ewh/grid")
	log.Printf("  - GET /v1/ewh/point")
	log.Printf("  - GET /metrics")

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// printUsage prints usage information.
func printUsage() {
	fmt.Printf("EWH API Server v%s\n\n", version)
	fmt.Println("USAGE:")
	fmt.Println("  ewh-api [flags]")
	fmt.Println()
	fmt.Println("FLAGS:")
	fmt.Println("  -help          Show this help message")
	fmt.Println("  -version       Show version information")
	fmt.Println()
	fmt.Println("ENVIRONMENT VARIABLES:")
	fmt.Println("  PORT                    Server port (default: 8080)")
	fmt.Println("  GFC_DIR                 Directory with .gfc solution files (default: ./data)")
	fmt.Println("  CORS_ALLOWED_ORIGINS    Comma-separated list of allowed origins (default: all origins)")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  # Start server with default settings")
	fmt.Println("  ewh-api")
	fmt.Println()
	fmt.Println("  # Compute a Greenland EWH grid between two monthly solutions")
	fmt.Println("  curl 'http://localhost:8080/v1/ewh/grid?file1=ITSG-Grace2016_n120_2002-05.gfc&file2=ITSG-Grace2016_n120_2017-05.gfc&lat_min=60&lat_max=84&lon_min=-75&lon_max=-10&step=1&radius_km=300&max_degree=90&min_degree=2'")
	fmt.Println()
	fmt.Println("API ENDPOINTS:")
	fmt.Println("  GET /health                    Health check")
	fmt.Println("  GET /v1/solutions              List available gravity-field solutions")
	fmt.Println("  GET /v1/ewh/grid               Evaluate an EWH grid between two solutions")
	fmt.Println("  GET /v1/ewh/point              Evaluate EWH at a single point")
	fmt.Println("  GET /metrics                   Prometheus metrics")
	fmt.Println()
}
