// Package usecase orchestrates EWH grid evaluation: it is the grid driver
// around the pure numerical core in internal/domain.
package usecase

import (
	"fmt"
	"log"
	"time"

	"go.ngs.io/ewh-api/internal/adapter/store/gfc"
	"go.ngs.io/ewh-api/internal/domain"
	"go.ngs.io/ewh-api/internal/observability"
)

// maxGridPoints bounds a single request so one call cannot occupy the
// server indefinitely. A 1°x1° global grid is ~65k points; this allows
// well beyond that.
const maxGridPoints = 1_000_000

// GridRequest describes one EWH grid evaluation between two solutions.
type GridRequest struct {
	// Solution file names, resolved against the store's data directory.
	// Solution1 is the earlier epoch; the result is solution2 - solution1.
	Solution1 string
	Solution2 string

	// Region bounds in degrees and the grid step. Latitude is geographic
	// (north positive); co-latitude conversion happens internally.
	LatMin  float64
	LatMax  float64
	LonMin  float64
	LonMax  float64
	StepDeg float64

	// RadiusKm is the Gaussian smoothing radius; 0 disables filtering.
	RadiusKm float64

	// MaxDegree truncates both solutions before differencing; 0 keeps the
	// full resolution of the files. MinDegree zeroes the difference below
	// the given degree (GRACE solutions are commonly evaluated from
	// degree 2, since the degree-0/1 terms are not observed).
	MaxDegree int
	MinDegree int

	// Densities in kg/m^3; zero selects the defaults (5540, 1000).
	EarthDensity float64
	WaterDensity float64

	// UseLoveNumbers enables the 1/(1+k_l) load Love number factor with
	// the PREM table. Off by default.
	UseLoveNumbers bool
}

// GridResponse is the grid product: axis vectors in degrees and row-major
// EWH values in meters, Values[i][j] at (Lat[i], Lon[j]).
type GridResponse struct {
	Epoch1 string      `json:"epoch1"`
	Epoch2 string      `json:"epoch2"`
	Lat    []float64   `json:"lat"`
	Lon    []float64   `json:"lon"`
	Values [][]float64 `json:"values"`

	MaxDegree int               `json:"max_degree"`
	RadiusKm  float64           `json:"radius_km"`
	Meta      map[string]string `json:"meta,omitempty"`
}

// EWHUseCase computes EWH grids from stored gravity-field solutions.
type EWHUseCase struct {
	store   *gfc.SolutionStore
	metrics *observability.Metrics
}

// NewEWHUseCase creates the use case. metrics may be nil.
func NewEWHUseCase(store *gfc.SolutionStore, metrics *observability.Metrics) *EWHUseCase {
	return &EWHUseCase{store: store, metrics: metrics}
}

// ListSolutions returns the solutions available in the store.
func (uc *EWHUseCase) ListSolutions() ([]gfc.Solution, error) {
	return uc.store.List()
}

// Validate checks the request geometry and parameters.
func (r *GridRequest) Validate() error {
	if r.Solution1 == "" || r.Solution2 == "" {
		return fmt.Errorf("both solution file names must be provided")
	}
	if r.LatMin < -90 || r.LatMax > 90 {
		return fmt.Errorf("latitude bounds must be within [-90, 90]")
	}
	if r.LatMin > r.LatMax {
		return fmt.Errorf("lat_min (%g) must not exceed lat_max (%g)", r.LatMin, r.LatMax)
	}
	if r.LonMin < -180 || r.LonMax > 360 {
		return fmt.Errorf("longitude bounds must be within [-180, 360]")
	}
	if r.LonMin > r.LonMax {
		return fmt.Errorf("lon_min (%g) must not exceed lon_max (%g)", r.LonMin, r.LonMax)
	}
	if r.StepDeg <= 0 {
		return fmt.Errorf("grid step must be positive, got %g", r.StepDeg)
	}
	if r.RadiusKm < 0 {
		return fmt.Errorf("filter radius must be non-negative, got %g", r.RadiusKm)
	}
	if r.MaxDegree < 0 {
		return fmt.Errorf("max degree must be non-negative, got %d", r.MaxDegree)
	}
	if r.MinDegree < 0 {
		return fmt.Errorf("min degree must be non-negative, got %d", r.MinDegree)
	}
	if r.EarthDensity < 0 || r.WaterDensity < 0 {
		return fmt.Errorf("densities must be non-negative")
	}

	nLat := axisLen(r.LatMin, r.LatMax, r.StepDeg)
	nLon := axisLen(r.LonMin, r.LonMax, r.StepDeg)
	if nLat*nLon > maxGridPoints {
		return fmt.Errorf("grid has %d points, limit is %d - reduce the region or increase the step", nLat*nLon, maxGridPoints)
	}
	return nil
}

// Execute evaluates the grid. Any error aborts the whole evaluation; a
// partial grid is never returned.
func (uc *EWHUseCase) Execute(req GridRequest) (*GridResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	start := time.Now()

	set1, err := uc.store.Load(req.Solution1)
	if err != nil {
		return nil, fmt.Errorf("failed to load solution %s: %w", req.Solution1, err)
	}
	set2, err := uc.store.Load(req.Solution2)
	if err != nil {
		return nil, fmt.Errorf("failed to load solution %s: %w", req.Solution2, err)
	}

	resp, err := EvaluateGrid(set1, set2, req)
	if err != nil {
		return nil, err
	}
	resp.Epoch1 = gfc.EpochLabel(req.Solution1)
	resp.Epoch2 = gfc.EpochLabel(req.Solution2)

	if uc.metrics != nil {
		uc.metrics.ObserveGrid(time.Since(start), len(resp.Lat)*len(resp.Lon), resp.Meta["filter_fallback_degree"] != "")
	}
	return resp, nil
}

// EvaluateGrid runs the numerical pipeline over two already-parsed
// coefficient sets: truncate, difference, filter, then one Legendre table
// per co-latitude row reused across every longitude of that row.
func EvaluateGrid(set1, set2 *domain.CoefficientSet, req GridRequest) (*GridResponse, error) {
	if req.MaxDegree > 0 {
		var err error
		if set1, err = set1.Truncate(req.MaxDegree); err != nil {
			return nil, fmt.Errorf("failed to truncate solution 1: %w", err)
		}
		if set2, err = set2.Truncate(req.MaxDegree); err != nil {
			return nil, fmt.Errorf("failed to truncate solution 2: %w", err)
		}
	}

	diff, err := domain.Difference(set1, set2)
	if err != nil {
		return nil, fmt.Errorf("failed to difference solutions: %w", err)
	}
	n := diff.MaxDegree

	// Degrees below MinDegree do not contribute.
	for l := 0; l < req.MinDegree && l <= n; l++ {
		for m := 0; m <= l; m++ {
			diff.C[l][m] = 0
			diff.S[l][m] = 0
		}
	}

	weights, fallback := domain.GaussianWeights(req.RadiusKm, diff.R, n)
	if fallback != domain.NoFallback {
		log.Printf("Gaussian filter recursion unstable from degree %d (radius %.1f km); using closed form", fallback, req.RadiusKm)
	}

	params := domain.EWHParams{
		Weights:          weights,
		EarthDensity:     req.EarthDensity,
		WaterDensity:     req.WaterDensity,
		ReferenceRadiusM: diff.R,
	}
	if req.UseLoveNumbers {
		kn, err := domain.LoveNumbers(n)
		if err != nil {
			return nil, fmt.Errorf("failed to build Love number table: %w", err)
		}
		params.LoveNumbers = kn
	}

	lat := axis(req.LatMin, req.LatMax, req.StepDeg)
	lon := axis(req.LonMin, req.LonMax, req.StepDeg)

	basis := domain.NewLegendreBasis(n)
	values := make([][]float64, len(lat))
	for i, latDeg := range lat {
		theta := domain.Deg2Rad(90.0 - latDeg) // co-latitude
		table := basis.Evaluate(theta)

		row := make([]float64, len(lon))
		for j, lonDeg := range lon {
			ewh, err := domain.EquivalentWaterHeight(diff, table, domain.Deg2Rad(lonDeg), params)
			if err != nil {
				return nil, fmt.Errorf("failed to evaluate EWH at (%g, %g): %w", latDeg, lonDeg, err)
			}
			row[j] = ewh
		}
		values[i] = row
	}

	resp := &GridResponse{
		Lat:       lat,
		Lon:       lon,
		Values:    values,
		MaxDegree: n,
		RadiusKm:  req.RadiusKm,
		Meta:      map[string]string{},
	}
	if fallback != domain.NoFallback {
		resp.Meta["filter_fallback_degree"] = fmt.Sprintf("%d", fallback)
	}
	return resp, nil
}

// axisLen counts the samples of a closed-interval axis with the given step.
// The epsilon keeps spans that are an exact multiple of the step from losing
// their last sample to floating-point division.
func axisLen(min, max, step float64) int {
	return int((max-min)/step+1e-9) + 1
}

// axis builds an inclusive sample axis from min to max.
func axis(min, max, step float64) []float64 {
	n := axisLen(min, max, step)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = min + float64(i)*step
	}
	return out
}
