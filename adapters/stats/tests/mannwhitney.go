package tests

import (
	"fmt"
	"math"
)

// MannWhitneyU runs the two-sided Mann-Whitney U rank-sum test using the
// normal approximation with tie and continuity corrections. The reported
// statistic is U for the first sample.
func MannWhitneyU(a, b []float64) (Result, error) {
	n1, n2 := float64(len(a)), float64(len(b))
	if n1 < 1 || n2 < 1 {
		return Result{}, fmt.Errorf("Mann-Whitney U needs non-empty groups, got %d and %d", len(a), len(b))
	}

	combined := make([]float64, 0, len(a)+len(b))
	combined = append(combined, a...)
	combined = append(combined, b...)
	ranks, tieSum := rankAll(combined)

	r1 := 0.0
	for i := range a {
		r1 += ranks[i]
	}

	u1 := r1 - n1*(n1+1)/2
	u2 := n1*n2 - u1
	u := math.Min(u1, u2)

	n := n1 + n2
	mu := n1 * n2 / 2
	sigma2 := n1 * n2 / 12 * ((n + 1) - tieSum/(n*(n-1)))
	if sigma2 <= 0 {
		// Every observation tied: no evidence either way.
		return Result{Statistic: u1, PValue: 1}, nil
	}

	// Continuity correction pulls U half a step toward the mean.
	z := (u - mu + 0.5) / math.Sqrt(sigma2)
	p := clampP(2 * normCDF(z))
	return Result{Statistic: u1, PValue: p}, nil
}
