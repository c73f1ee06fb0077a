package domain

import "math"

// NoFallback is returned by GaussianWeights when the three-term recursion
// stayed stable for every degree.
const NoFallback = -1

// GaussianWeights computes the isotropic Gaussian averaging weights W_l used
// to smooth ("destripe") spherical-harmonic coefficient differences, after
// Wahr, Molenaar & Bryan (1998) with Jekeli's recursive form:
//
//	b   = ln 2 / (1 - cos(radiusKm·1000 / referenceRadiusM))
//	W_0 = 1
//	W_1 = (1 + e^{-2b}) / (1 - e^{-2b}) - 1/b
//	W_l = -(2l-1)/b · W_{l-1} + W_{l-2}    for l >= 2
//
// radiusKm is the averaging (half-weight) radius; radiusKm <= 0 selects the
// identity filter, the closed-form limit of the kernel as the averaging
// angle tends to zero (the recursion's b parameter diverges there).
//
// The recursion subtracts nearly equal quantities once the weights are tiny
// and can turn negative or grow where the true coefficients decay
// monotonically to zero. From the first degree where that happens the
// remaining weights are taken from the kernel's spectral closed form
// exp(-l(l+1)/(2b)) instead. The returned fallback degree is the first
// degree served by the closed form, or NoFallback if the recursion held;
// it is diagnostic only, never an error.
func GaussianWeights(radiusKm, referenceRadiusM float64, maxDegree int) (weights []float64, fallbackDegree int) {
	if maxDegree < 0 {
		maxDegree = 0
	}
	w := make([]float64, maxDegree+1)

	if radiusKm <= 0 {
		for l := range w {
			w[l] = 1.0
		}
		return w, NoFallback
	}

	b := math.Ln2 / (1.0 - math.Cos(radiusKm*1000.0/referenceRadiusM))

	w[0] = 1.0
	if maxDegree >= 1 {
		e2b := math.Exp(-2.0 * b)
		w[1] = (1.0+e2b)/(1.0-e2b) - 1.0/b
	}

	fallbackDegree = NoFallback
	for l := 2; l <= maxDegree; l++ {
		w[l] = -(float64(2*l-1)/b)*w[l-1] + w[l-2]
		if w[l] < 0 || w[l] > w[l-1] || math.IsInf(w[l], 0) || math.IsNaN(w[l]) {
			fallbackDegree = l
			for k := l; k <= maxDegree; k++ {
				v := gaussSpectral(k, b)
				// The recursion may have undershot just before losing
				// stability; keep the spliced sequence non-increasing.
				if v > w[k-1] {
					v = w[k-1]
				}
				w[k] = v
			}
			break
		}
	}

	return w, fallbackDegree
}

// gaussSpectral is the per-degree closed-form approximation of the Gaussian
// kernel's Legendre coefficients, exact in the large-b (small radius) limit.
func gaussSpectral(l int, b float64) float64 {
	return math.Exp(-float64(l*(l+1)) / (2.0 * b))
}
