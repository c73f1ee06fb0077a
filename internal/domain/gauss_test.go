package domain

import (
	"math"
	"testing"
)

// TestGaussianWeights_ZeroRadiusIdentity: no smoothing means W_l = 1 for
// every degree.
func TestGaussianWeights_ZeroRadiusIdentity(t *testing.T) {
	w, fallback := GaussianWeights(0, DefaultEarthRadiusM, 60)
	if fallback != NoFallback {
		t.Errorf("fallback degree = %d, want NoFallback", fallback)
	}
	if len(w) != 61 {
		t.Fatalf("len(weights) = %d, want 61", len(w))
	}
	for l, v := range w {
		if v != 1.0 {
			t.Errorf("W_%d = %g, want 1", l, v)
		}
	}
}

// TestGaussianWeights_DegreeZeroIsOne: W_0 = 1 exactly for any radius.
func TestGaussianWeights_DegreeZeroIsOne(t *testing.T) {
	for _, radius := range []float64{50, 300, 500, 1000} {
		w, _ := GaussianWeights(radius, DefaultEarthRadiusM, 10)
		if w[0] != 1.0 {
			t.Errorf("radius %g: W_0 = %g, want exactly 1", radius, w[0])
		}
	}
}

// TestGaussianWeights_FirstDegree checks W_1 against the closed form
// coth(b) - 1/b.
func TestGaussianWeights_FirstDegree(t *testing.T) {
	const radiusKm, refRadiusM = 500.0, 6378000.0
	b := math.Ln2 / (1 - math.Cos(radiusKm*1000/refRadiusM))
	want := 1/math.Tanh(b) - 1/b

	w, _ := GaussianWeights(radiusKm, refRadiusM, 1)
	if math.Abs(w[1]-want) > 1e-12 {
		t.Errorf("W_1 = %.15f, want %.15f", w[1], want)
	}
}

// TestGaussianWeights_MonotonicDecay: for a 500 km radius the weight
// magnitudes are non-increasing over degrees 1..60 and stay in (0, 1].
func TestGaussianWeights_MonotonicDecay(t *testing.T) {
	w, _ := GaussianWeights(500, 6378000, 60)
	for l := 1; l <= 60; l++ {
		if w[l] <= 0 || w[l] > 1 {
			t.Errorf("W_%d = %g, want within (0, 1]", l, w[l])
		}
		if w[l] > w[l-1] {
			t.Errorf("W_%d = %g exceeds W_%d = %g", l, w[l], l-1, w[l-1])
		}
	}
	// A 500 km filter attenuates degree 60 heavily.
	if w[60] > 0.1 {
		t.Errorf("W_60 = %g, expected strong attenuation", w[60])
	}
}

// TestGaussianWeights_HighDegreeGuard: at degrees where the recursion loses
// precision the closed-form fallback must keep every weight finite,
// non-negative, and non-increasing.
func TestGaussianWeights_HighDegreeGuard(t *testing.T) {
	for _, radius := range []float64{100, 300, 500, 800} {
		w, _ := GaussianWeights(radius, DefaultEarthRadiusM, 300)
		for l := 0; l <= 300; l++ {
			if math.IsNaN(w[l]) || math.IsInf(w[l], 0) {
				t.Fatalf("radius %g: W_%d not finite", radius, l)
			}
			if w[l] < 0 {
				t.Fatalf("radius %g: W_%d = %g, want non-negative", radius, l, w[l])
			}
			if l > 0 && w[l] > w[l-1]*(1+1e-9) {
				t.Fatalf("radius %g: W_%d = %g exceeds W_%d = %g", radius, l, w[l], l-1, w[l-1])
			}
		}
	}
}

// TestGaussianWeights_NegativeDegreeClamped: a negative max degree still
// yields the degree-0 weight.
func TestGaussianWeights_NegativeDegreeClamped(t *testing.T) {
	w, _ := GaussianWeights(300, DefaultEarthRadiusM, -3)
	if len(w) != 1 || w[0] != 1.0 {
		t.Errorf("weights = %v, want [1]", w)
	}
}
