// Package domain contains the numerical core for evaluating Equivalent
// Water Height (EWH) from spherical-harmonic gravity-field solutions.
package domain

import (
	"fmt"
	"math"
)

// CoefficientSet holds one epoch's fully normalized spherical-harmonic
// gravity-field coefficients together with the physical constants carried
// in the solution file.
//
// C and S are square matrices of side MaxDegree+1 indexed [degree][order];
// entries with order > degree are structurally unused and held at zero.
type CoefficientSet struct {
	MaxDegree int
	C         [][]float64
	S         [][]float64
	GM        float64 // Gravitational constant times Earth mass (m^3/s^2).
	R         float64 // Reference radius (m).
}

// NewCoefficientSet allocates a zeroed coefficient set for degrees 0..maxDegree.
func NewCoefficientSet(maxDegree int) *CoefficientSet {
	n := maxDegree + 1
	cs := &CoefficientSet{
		MaxDegree: maxDegree,
		C:         make([][]float64, n),
		S:         make([][]float64, n),
	}
	for i := 0; i < n; i++ {
		cs.C[i] = make([]float64, n)
		cs.S[i] = make([]float64, n)
	}
	return cs
}

// ValidIndex reports whether (l, m) lies in the triangular coefficient domain.
func (cs *CoefficientSet) ValidIndex(l, m int) bool {
	return l >= 0 && m >= 0 && m <= l && l <= cs.MaxDegree
}

// At returns C_{l,m} and S_{l,m}.
func (cs *CoefficientSet) At(l, m int) (c, s float64, err error) {
	if !cs.ValidIndex(l, m) {
		return 0, 0, fmt.Errorf("coefficient index (%d,%d) outside 0<=m<=l<=%d", l, m, cs.MaxDegree)
	}
	return cs.C[l][m], cs.S[l][m], nil
}

// Set assigns C_{l,m} and S_{l,m}.
func (cs *CoefficientSet) Set(l, m int, c, s float64) error {
	if !cs.ValidIndex(l, m) {
		return fmt.Errorf("coefficient index (%d,%d) outside 0<=m<=l<=%d", l, m, cs.MaxDegree)
	}
	cs.C[l][m] = c
	cs.S[l][m] = s
	return nil
}

// Truncate returns a copy limited to degrees 0..maxDegree. Truncating beyond
// the stored degree range is an error rather than zero padding, since padded
// degrees would silently bias a later difference.
func (cs *CoefficientSet) Truncate(maxDegree int) (*CoefficientSet, error) {
	if maxDegree < 0 || maxDegree > cs.MaxDegree {
		return nil, fmt.Errorf("truncation degree %d outside [0,%d]", maxDegree, cs.MaxDegree)
	}
	out := NewCoefficientSet(maxDegree)
	out.GM = cs.GM
	out.R = cs.R
	for l := 0; l <= maxDegree; l++ {
		for m := 0; m <= l; m++ {
			out.C[l][m] = cs.C[l][m]
			out.S[l][m] = cs.S[l][m]
		}
	}
	return out, nil
}

// DimensionError reports a degree-range or constant mismatch between
// structures that must agree before they can be combined.
type DimensionError struct {
	Msg string
}

func (e *DimensionError) Error() string {
	return "dimension mismatch: " + e.Msg
}

// relTolerance for comparing the GM and R constants of two solutions.
// Published monthly solutions of one series repeat these verbatim, so the
// tolerance only absorbs formatting differences (e.g. 6378136.3 vs 0.63781363E+07).
const relTolerance = 1e-9

func relEqual(a, b float64) bool {
	if a == b {
		return true
	}
	scale := math.Max(math.Abs(a), math.Abs(b))
	return math.Abs(a-b) <= relTolerance*scale
}

// Difference returns b - a elementwise. Both sets must share MaxDegree, GM
// and R; otherwise the difference is physically ill-defined and a
// DimensionError is returned.
func Difference(a, b *CoefficientSet) (*CoefficientSet, error) {
	if a.MaxDegree != b.MaxDegree {
		return nil, &DimensionError{Msg: fmt.Sprintf("coefficient sets have max degree %d and %d", a.MaxDegree, b.MaxDegree)}
	}
	if !relEqual(a.GM, b.GM) {
		return nil, &DimensionError{Msg: fmt.Sprintf("coefficient sets have GM %g and %g", a.GM, b.GM)}
	}
	if !relEqual(a.R, b.R) {
		return nil, &DimensionError{Msg: fmt.Sprintf("coefficient sets have reference radius %g and %g", a.R, b.R)}
	}

	diff := NewCoefficientSet(a.MaxDegree)
	diff.GM = a.GM
	diff.R = a.R
	for l := 0; l <= a.MaxDegree; l++ {
		for m := 0; m <= l; m++ {
			diff.C[l][m] = b.C[l][m] - a.C[l][m]
			diff.S[l][m] = b.S[l][m] - a.S[l][m]
		}
	}
	return diff, nil
}
