package domain

import (
	"fmt"

	"go.ngs.io/ewh-api/internal/interp"
)

// loadLoveTable holds load Love numbers k_l for the PREM Earth model at
// selected degrees, after Wahr (2007), Treatise on Geophysics Vol. 3.
// Intermediate degrees are obtained by linear interpolation.
var loadLoveTable = interp.Table1D{
	X: []float64{2, 3, 4, 5, 6, 7, 8, 9, 10, 12, 15, 20, 30, 40, 50, 70, 100, 150, 200},
	Y: []float64{-0.303, -0.194, -0.132, -0.104, -0.089, -0.081, -0.076, -0.072, -0.069,
		-0.064, -0.058, -0.051, -0.040, -0.033, -0.027, -0.020, -0.014, -0.010, -0.007},
}

// LoveNumbers returns load Love numbers k_l for degrees 0..maxDegree,
// interpolated from the PREM table. k_0 and k_1 are zero; degrees beyond
// the table hold its last value.
func LoveNumbers(maxDegree int) ([]float64, error) {
	if maxDegree < 0 {
		return nil, fmt.Errorf("max degree must be non-negative, got %d", maxDegree)
	}
	kn := make([]float64, maxDegree+1)
	for l := 2; l <= maxDegree; l++ {
		k, err := loadLoveTable.At(float64(l))
		if err != nil {
			return nil, fmt.Errorf("interpolating Love number for degree %d: %w", l, err)
		}
		kn[l] = k
	}
	return kn, nil
}
