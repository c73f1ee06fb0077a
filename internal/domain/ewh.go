package domain

import (
	"fmt"
	"math"
)

// Physical constants of the EWH conversion. GM from the solution files is
// carried for reference only; the surface-density formula uses the bulk
// densities and reference radius below.
const (
	DefaultEarthDensity = 5540.0     // Earth mean density (kg/m^3).
	DefaultWaterDensity = 1000.0     // Fresh water density (kg/m^3).
	DefaultEarthRadiusM = 6378136.46 // Reference radius (m).
)

// EWHParams bundles the per-grid inputs of the EWH summation that are fixed
// across all grid points: the Gaussian filter weights, optional load Love
// numbers, and the physical constants of the water-height conversion.
type EWHParams struct {
	// Weights holds one Gaussian smoothing weight per degree
	// (length MaxDegree+1).
	Weights []float64

	// LoveNumbers holds the load Love numbers k_l per degree (length
	// MaxDegree+1). Nil selects the simplified k_l = 0 convention, which
	// omits the 1/(1+k_l) factor entirely.
	LoveNumbers []float64

	EarthDensity     float64 // kg/m^3; zero selects DefaultEarthDensity.
	WaterDensity     float64 // kg/m^3; zero selects DefaultWaterDensity.
	ReferenceRadiusM float64 // m; zero selects DefaultEarthRadiusM.
}

// EquivalentWaterHeight evaluates the equivalent water height in meters at
// one point from a coefficient difference set, following the surface-density
// expansion of Wahr, Molenaar & Bryan (1998):
//
//	           R ρ_e   n    2l+1        l    _
//	EWH(θ,λ) = ----- · Σ   ------ W_l · Σ    P_lm(cosθ) [dC_lm cos mλ + dS_lm sin mλ]
//	           3 ρ_w  l=0  1 + k_l     m=0
//
// table must have been evaluated at the point's co-latitude θ; lambda is the
// longitude in radians. The degree-0 term is part of the sum (P̄_{0,0} = 1,
// no angular dependence).
//
// The function is pure: it is linear in the difference coefficients and
// returns exactly zero for an all-zero difference set.
func EquivalentWaterHeight(diff *CoefficientSet, table *LegendreTable, lambda float64, params EWHParams) (float64, error) {
	n := diff.MaxDegree
	if table.MaxDegree != n {
		return 0, &DimensionError{Msg: fmt.Sprintf("Legendre table max degree %d, coefficient difference max degree %d", table.MaxDegree, n)}
	}
	if len(params.Weights) != n+1 {
		return 0, &DimensionError{Msg: fmt.Sprintf("filter weights length %d, want %d", len(params.Weights), n+1)}
	}
	if params.LoveNumbers != nil && len(params.LoveNumbers) != n+1 {
		return 0, &DimensionError{Msg: fmt.Sprintf("Love numbers length %d, want %d", len(params.LoveNumbers), n+1)}
	}

	earthDensity := params.EarthDensity
	if earthDensity == 0 {
		earthDensity = DefaultEarthDensity
	}
	waterDensity := params.WaterDensity
	if waterDensity == 0 {
		waterDensity = DefaultWaterDensity
	}
	radius := params.ReferenceRadiusM
	if radius == 0 {
		radius = DefaultEarthRadiusM
	}

	sum := 0.0
	for l := 0; l <= n; l++ {
		inner := 0.0
		for m := 0; m <= l; m++ {
			ml := float64(m) * lambda
			inner += table.P[l][m] * (diff.C[l][m]*math.Cos(ml) + diff.S[l][m]*math.Sin(ml))
		}

		degreeFactor := float64(2*l + 1)
		if params.LoveNumbers != nil {
			degreeFactor /= 1.0 + params.LoveNumbers[l]
		}
		sum += degreeFactor * params.Weights[l] * inner
	}

	return radius * earthDensity / (3.0 * waterDensity) * sum, nil
}
