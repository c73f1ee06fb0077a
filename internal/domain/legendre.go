package domain

import "math"

// LegendreTable holds fully normalized associated Legendre function values
// P̄_{l,m}(cos θ) for one co-latitude θ, indexed [degree][order] over the
// triangular domain 0 <= m <= l <= MaxDegree (4π normalization).
type LegendreTable struct {
	MaxDegree int
	P         [][]float64
}

// At returns P̄_{l,m}. Indices outside the triangular domain return zero,
// matching the structurally-absent convention of CoefficientSet.
func (t *LegendreTable) At(l, m int) float64 {
	if l < 0 || m < 0 || m > l || l > t.MaxDegree {
		return 0
	}
	return t.P[l][m]
}

// LegendreBasis evaluates fully normalized associated Legendre functions up
// to a fixed maximum degree. The degree/order-dependent recursion factors do
// not depend on the evaluation point, so they are computed once at
// construction and shared across all co-latitudes of a grid.
//
// The recursion keeps every intermediate fully normalized, which is what
// makes it stable: un-normalized P_{l,m} overflow around degree 150 while
// the normalized values stay of order one.
type LegendreBasis struct {
	maxDegree int
	a         [][]float64 // a[l][m]: factor on cosθ·P̄_{l-1,m}.
	b         [][]float64 // b[l][m]: factor on P̄_{l-2,m}.
	sect      []float64   // sect[m]: sectorial factor sqrt((2m+1)/(2m)).
}

// NewLegendreBasis precomputes recursion factors for degrees 0..maxDegree.
// Negative degrees clamp to zero (a degree-0 basis is still well defined:
// P̄_{0,0} = 1 everywhere).
func NewLegendreBasis(maxDegree int) *LegendreBasis {
	if maxDegree < 0 {
		maxDegree = 0
	}
	n := maxDegree + 1
	lb := &LegendreBasis{
		maxDegree: maxDegree,
		a:         make([][]float64, n),
		b:         make([][]float64, n),
		sect:      make([]float64, n),
	}
	for l := 0; l < n; l++ {
		lb.a[l] = make([]float64, n)
		lb.b[l] = make([]float64, n)
	}
	for m := 1; m <= maxDegree; m++ {
		lb.sect[m] = math.Sqrt(float64(2*m+1) / float64(2*m))
	}
	for m := 0; m < maxDegree; m++ {
		for l := m + 1; l <= maxDegree; l++ {
			f := float64(2*l+1) / float64((l+m)*(l-m))
			lb.a[l][m] = math.Sqrt(f * float64(2*l-1))
			if l >= m+2 {
				lb.b[l][m] = math.Sqrt(f * float64(l-m-1) * float64(l+m-1) / float64(2*l-3))
			}
		}
	}
	return lb
}

// MaxDegree returns the highest degree the basis evaluates.
func (lb *LegendreBasis) MaxDegree() int { return lb.maxDegree }

// Evaluate returns the triangular table of P̄_{l,m}(cos θ) for co-latitude
// theta in radians. At the poles sinθ = 0 zeroes every sectorial value for
// m >= 1 through the recursion itself; no special casing is needed.
func (lb *LegendreBasis) Evaluate(theta float64) *LegendreTable {
	n := lb.maxDegree + 1
	p := make([][]float64, n)
	for l := 0; l < n; l++ {
		p[l] = make([]float64, n)
	}

	cosTheta := math.Cos(theta)
	sinTheta := math.Sin(theta)

	// Sectorial diagonal: P̄_{m,m} = sqrt((2m+1)/(2m)) sinθ P̄_{m-1,m-1}.
	p[0][0] = 1.0
	for m := 1; m <= lb.maxDegree; m++ {
		p[m][m] = lb.sect[m] * sinTheta * p[m-1][m-1]
	}

	// First off-diagonal (l = m+1): single-term recursion, no l-2 predecessor.
	for m := 0; m < lb.maxDegree; m++ {
		p[m+1][m] = lb.a[m+1][m] * cosTheta * p[m][m]
	}

	// Remaining degrees: three-term recursion in l.
	for m := 0; m < lb.maxDegree; m++ {
		for l := m + 2; l <= lb.maxDegree; l++ {
			p[l][m] = lb.a[l][m]*cosTheta*p[l-1][m] - lb.b[l][m]*p[l-2][m]
		}
	}

	return &LegendreTable{MaxDegree: lb.maxDegree, P: p}
}
