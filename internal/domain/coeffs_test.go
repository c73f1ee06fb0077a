package domain

import (
	"errors"
	"testing"
)

func TestCoefficientSet_IndexGuards(t *testing.T) {
	cs := NewCoefficientSet(4)

	if err := cs.Set(3, 2, 1.5, -0.5); err != nil {
		t.Fatalf("Set(3,2): %v", err)
	}
	c, s, err := cs.At(3, 2)
	if err != nil || c != 1.5 || s != -0.5 {
		t.Errorf("At(3,2) = (%g, %g, %v), want (1.5, -0.5, nil)", c, s, err)
	}

	for _, idx := range [][2]int{{2, 3}, {-1, 0}, {0, -1}, {5, 0}} {
		if err := cs.Set(idx[0], idx[1], 1, 1); err == nil {
			t.Errorf("Set(%d,%d) accepted an index outside the triangle", idx[0], idx[1])
		}
		if _, _, err := cs.At(idx[0], idx[1]); err == nil {
			t.Errorf("At(%d,%d) accepted an index outside the triangle", idx[0], idx[1])
		}
	}
}

func TestCoefficientSet_Truncate(t *testing.T) {
	cs := NewCoefficientSet(5)
	cs.GM = 3.986e14
	cs.R = 6378136.3
	cs.C[4][2] = 7e-9
	cs.C[2][1] = 1e-9
	cs.S[2][2] = -2e-9

	cut, err := cs.Truncate(2)
	if err != nil {
		t.Fatalf("Truncate: %v", err)
	}
	if cut.MaxDegree != 2 || cut.GM != cs.GM || cut.R != cs.R {
		t.Errorf("truncated set header = (%d, %g, %g)", cut.MaxDegree, cut.GM, cut.R)
	}
	if cut.C[2][1] != 1e-9 || cut.S[2][2] != -2e-9 {
		t.Errorf("truncated set lost coefficients")
	}

	if _, err := cs.Truncate(6); err == nil {
		t.Error("Truncate(6) beyond stored degree succeeded, want error")
	}
	if _, err := cs.Truncate(-1); err == nil {
		t.Error("Truncate(-1) succeeded, want error")
	}
}

func TestDifference(t *testing.T) {
	a := NewCoefficientSet(2)
	b := NewCoefficientSet(2)
	a.GM, b.GM = 3.986e14, 3.986e14
	a.R, b.R = 6378136.3, 6378136.3
	a.C[2][0] = 1e-9
	b.C[2][0] = 4e-9
	b.S[1][1] = 5e-10

	diff, err := Difference(a, b)
	if err != nil {
		t.Fatalf("Difference: %v", err)
	}
	if diff.C[2][0] != 3e-9 {
		t.Errorf("dC20 = %g, want 3e-9", diff.C[2][0])
	}
	if diff.S[1][1] != 5e-10 {
		t.Errorf("dS11 = %g, want 5e-10", diff.S[1][1])
	}
	if diff.GM != a.GM || diff.R != a.R {
		t.Errorf("difference set dropped constants")
	}
}

func TestDifference_Mismatch(t *testing.T) {
	base := func() (*CoefficientSet, *CoefficientSet) {
		a := NewCoefficientSet(2)
		b := NewCoefficientSet(2)
		a.GM, b.GM = 3.986e14, 3.986e14
		a.R, b.R = 6378136.3, 6378136.3
		return a, b
	}

	a, _ := base()
	b := NewCoefficientSet(3)
	b.GM, b.R = a.GM, a.R
	if _, err := Difference(a, b); !isDimensionError(err) {
		t.Errorf("degree mismatch: error = %v, want DimensionError", err)
	}

	a, b = base()
	b.GM *= 1.001
	if _, err := Difference(a, b); !isDimensionError(err) {
		t.Errorf("GM mismatch: error = %v, want DimensionError", err)
	}

	a, b = base()
	b.R = 6371000
	if _, err := Difference(a, b); !isDimensionError(err) {
		t.Errorf("radius mismatch: error = %v, want DimensionError", err)
	}

	// Equivalent formatting of the same constant must not be rejected.
	a, b = base()
	b.R = 0.63781363e7
	if _, err := Difference(a, b); err != nil {
		t.Errorf("formatting-equal radius rejected: %v", err)
	}
}

func isDimensionError(err error) bool {
	var dimErr *DimensionError
	return errors.As(err, &dimErr)
}
