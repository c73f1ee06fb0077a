package domain

import (
	"errors"
	"math"
	"testing"
)

func identityWeights(n int) []float64 {
	w := make([]float64, n+1)
	for i := range w {
		w[i] = 1.0
	}
	return w
}

// TestEWH_ZeroDifference: an all-zero difference set evaluates to exactly
// zero, not merely something small.
func TestEWH_ZeroDifference(t *testing.T) {
	const n = 10
	diff := NewCoefficientSet(n)
	table := NewLegendreBasis(n).Evaluate(1.2)

	params := EWHParams{Weights: identityWeights(n)}
	for _, lambda := range []float64{0, 0.5, -2.9} {
		got, err := EquivalentWaterHeight(diff, table, lambda, params)
		if err != nil {
			t.Fatalf("EquivalentWaterHeight: %v", err)
		}
		if got != 0 {
			t.Errorf("EWH(lambda=%g) = %g, want exactly 0", lambda, got)
		}
	}
}

// TestEWH_SingleTermScenario evaluates the degree-0-only scenario: with an
// identity filter, dC00 = 1e-10 and everything else zero, the sum collapses
// to R*rho_e/(3*rho_w) * dC00 regardless of the evaluation point.
func TestEWH_SingleTermScenario(t *testing.T) {
	const n = 2
	diff := NewCoefficientSet(n)
	diff.C[0][0] = 1e-10

	table := NewLegendreBasis(n).Evaluate(Deg2Rad(45))
	params := EWHParams{
		Weights:          identityWeights(n),
		EarthDensity:     5540,
		WaterDensity:     1000,
		ReferenceRadiusM: 6378000,
	}

	got, err := EquivalentWaterHeight(diff, table, 0, params)
	if err != nil {
		t.Fatalf("EquivalentWaterHeight: %v", err)
	}

	want := 6378000.0 * 5540.0 / (3.0 * 1000.0) * 1e-10
	if math.Abs(got-want) > 1e-15 {
		t.Errorf("EWH = %.12e, want %.12e", got, want)
	}
}

// TestEWH_Linearity: scaling the difference coefficients scales the result.
func TestEWH_Linearity(t *testing.T) {
	const n = 8
	diff := NewCoefficientSet(n)
	for l := 0; l <= n; l++ {
		for m := 0; m <= l; m++ {
			diff.C[l][m] = 1e-9 / float64(l+m+1)
			diff.S[l][m] = -3e-10 * float64(l-m)
		}
	}

	scaled := NewCoefficientSet(n)
	const k = -3.75
	for l := 0; l <= n; l++ {
		for m := 0; m <= l; m++ {
			scaled.C[l][m] = k * diff.C[l][m]
			scaled.S[l][m] = k * diff.S[l][m]
		}
	}

	table := NewLegendreBasis(n).Evaluate(0.9)
	weights, _ := GaussianWeights(300, DefaultEarthRadiusM, n)
	params := EWHParams{Weights: weights}

	const lambda = 1.1
	base, err := EquivalentWaterHeight(diff, table, lambda, params)
	if err != nil {
		t.Fatalf("EquivalentWaterHeight(diff): %v", err)
	}
	got, err := EquivalentWaterHeight(scaled, table, lambda, params)
	if err != nil {
		t.Fatalf("EquivalentWaterHeight(scaled): %v", err)
	}

	want := k * base
	if math.Abs(got-want) > 1e-12*math.Abs(want) {
		t.Errorf("EWH(k*diff) = %.15e, want k*EWH(diff) = %.15e", got, want)
	}
}

// TestEWH_DimensionMismatch: weights, Legendre table, and Love numbers must
// all span maxDegree+1 degrees.
func TestEWH_DimensionMismatch(t *testing.T) {
	const n = 5
	diff := NewCoefficientSet(n)
	table := NewLegendreBasis(n).Evaluate(1.0)

	cases := []struct {
		name   string
		params EWHParams
		table  *LegendreTable
	}{
		{"short weights", EWHParams{Weights: identityWeights(n - 1)}, table},
		{"long weights", EWHParams{Weights: identityWeights(n + 1)}, table},
		{"short Love numbers", EWHParams{Weights: identityWeights(n), LoveNumbers: make([]float64, n)}, table},
		{"table degree mismatch", EWHParams{Weights: identityWeights(n)}, NewLegendreBasis(n + 2).Evaluate(1.0)},
	}
	for _, tc := range cases {
		_, err := EquivalentWaterHeight(diff, tc.table, 0, tc.params)
		var dimErr *DimensionError
		if !errors.As(err, &dimErr) {
			t.Errorf("%s: error = %v, want DimensionError", tc.name, err)
		}
	}
}

// TestEWH_LoveNumbersAttenuate: with k_2 < 0 the degree-2 term is divided
// by (1 + k_2), amplifying it relative to the k_l = 0 convention.
func TestEWH_LoveNumbersAttenuate(t *testing.T) {
	const n = 2
	diff := NewCoefficientSet(n)
	diff.C[2][0] = 1e-10

	table := NewLegendreBasis(n).Evaluate(1.0)
	params := EWHParams{Weights: identityWeights(n)}

	plain, err := EquivalentWaterHeight(diff, table, 0, params)
	if err != nil {
		t.Fatalf("EquivalentWaterHeight: %v", err)
	}

	kn, err := LoveNumbers(n)
	if err != nil {
		t.Fatalf("LoveNumbers: %v", err)
	}
	params.LoveNumbers = kn
	withLove, err := EquivalentWaterHeight(diff, table, 0, params)
	if err != nil {
		t.Fatalf("EquivalentWaterHeight with Love numbers: %v", err)
	}

	want := plain / (1.0 - 0.303)
	if math.Abs(withLove-want) > 1e-12*math.Abs(want) {
		t.Errorf("EWH with Love numbers = %.15e, want %.15e", withLove, want)
	}
}
