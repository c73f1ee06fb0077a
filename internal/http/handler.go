package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"go.ngs.io/ewh-api/internal/adapter/store/gfc"
	"go.ngs.io/ewh-api/internal/domain"
	"go.ngs.io/ewh-api/internal/usecase"
)

// Handler handles HTTP requests for EWH evaluation.
type Handler struct {
	ewhUC *usecase.EWHUseCase
}

// NewHandler creates a new HTTP handler.
func NewHandler(ewhUC *usecase.EWHUseCase) *Handler {
	return &Handler{
		ewhUC: ewhUC,
	}
}

// GetSolutions handles GET /v1/solutions.
func (h *Handler) GetSolutions(c *gin.Context) {
	solutions, err := h.ewhUC.ListSolutions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"solutions": solutions,
		"count":     len(solutions),
	})
}

// GetGrid handles GET /v1/ewh/grid.
func (h *Handler) GetGrid(c *gin.Context) {
	req, err := gridRequestFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.ewhUC.Execute(*req)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetPoint handles GET /v1/ewh/point: a single-point evaluation expressed
// as a degenerate one-by-one grid.
func (h *Handler) GetPoint(c *gin.Context) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" || lonStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lon parameters are required"})
		return
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid latitude: %v", err)})
		return
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid longitude: %v", err)})
		return
	}

	req, err := gridRequestFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.LatMin, req.LatMax = lat, lat
	req.LonMin, req.LonMax = lon, lon
	req.StepDeg = 1.0

	response, err := h.ewhUC.Execute(*req)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"epoch1": response.Epoch1,
		"epoch2": response.Epoch2,
		"lat":    lat,
		"lon":    lon,
		"ewh_m":  response.Values[0][0],
		"meta":   response.Meta,
	})
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// gridRequestFromQuery maps query parameters onto a GridRequest. Semantic
// validation stays in the use case; this only converts tokens.
func gridRequestFromQuery(c *gin.Context) (*usecase.GridRequest, error) {
	req := usecase.GridRequest{
		Solution1: c.Query("file1"),
		Solution2: c.Query("file2"),
		StepDeg:   1.0,
	}

	floats := []struct {
		name string
		dst  *float64
	}{
		{"lat_min", &req.LatMin},
		{"lat_max", &req.LatMax},
		{"lon_min", &req.LonMin},
		{"lon_max", &req.LonMax},
		{"step", &req.StepDeg},
		{"radius_km", &req.RadiusKm},
		{"earth_density", &req.EarthDensity},
		{"water_density", &req.WaterDensity},
	}
	for _, p := range floats {
		s := c.Query(p.name)
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", p.name, err)
		}
		*p.dst = v
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"max_degree", &req.MaxDegree},
		{"min_degree", &req.MinDegree},
	}
	for _, p := range ints {
		s := c.Query(p.name)
		if s == "" {
			continue
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", p.name, err)
		}
		*p.dst = v
	}

	if s := c.Query("love"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("invalid love: %w", err)
		}
		req.UseLoveNumbers = v
	}

	return &req, nil
}

// statusFor maps evaluation failures to HTTP statuses: malformed solution
// files and dimension mismatches are unprocessable input data, everything
// else is a bad request.
func statusFor(err error) int {
	var parseErr *gfc.ParseError
	var dimErr *domain.DimensionError
	if errors.As(err, &parseErr) || errors.As(err, &dimErr) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadRequest
}
