// Package interp provides 1-D piecewise-linear interpolation over a fixed
// sample axis.
package interp

import "fmt"

// Table1D is a sampled function y(x) on a strictly increasing axis.
type Table1D struct {
	X []float64
	Y []float64
}

// Validate checks axis length, matching value count, and strict ordering.
func (t *Table1D) Validate() error {
	if len(t.X) < 2 {
		return fmt.Errorf("table must have at least 2 samples")
	}
	if len(t.Y) != len(t.X) {
		return fmt.Errorf("table has %d values for %d samples", len(t.Y), len(t.X))
	}
	for i := 1; i < len(t.X); i++ {
		if t.X[i] <= t.X[i-1] {
			return fmt.Errorf("sample axis must be strictly increasing (violated at index %d)", i)
		}
	}
	return nil
}

// At evaluates the table at x by linear interpolation between the two
// bracketing samples. Outside the sampled range the nearest end value is
// returned (clamped, not extrapolated).
func (t *Table1D) At(x float64) (float64, error) {
	if err := t.Validate(); err != nil {
		return 0, fmt.Errorf("invalid table: %w", err)
	}

	last := len(t.X) - 1
	if x <= t.X[0] {
		return t.Y[0], nil
	}
	if x >= t.X[last] {
		return t.Y[last], nil
	}

	// Linear scan; tables here are small (tens of samples).
	for i := 0; i < last; i++ {
		if x >= t.X[i] && x <= t.X[i+1] {
			u := (x - t.X[i]) / (t.X[i+1] - t.X[i])
			return (1-u)*t.Y[i] + u*t.Y[i+1], nil
		}
	}

	return 0, fmt.Errorf("x=%g not bracketed by sample axis [%g, %g]", x, t.X[0], t.X[last])
}
