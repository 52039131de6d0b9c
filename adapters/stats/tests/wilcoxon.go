package tests

import (
	"fmt"
	"math"
)

// WilcoxonSignedRank runs the two-sided Wilcoxon signed-rank test on paired
// observations. Zero differences are discarded before ranking; the p-value
// uses the normal approximation with a tie correction. Both slices must
// have the same length; the caller truncates beforehand.
func WilcoxonSignedRank(a, b []float64) (Result, error) {
	if len(a) != len(b) {
		return Result{}, fmt.Errorf("Wilcoxon signed-rank needs equal-length groups, got %d and %d", len(a), len(b))
	}

	diffs := make([]float64, 0, len(a))
	for i := range a {
		if d := a[i] - b[i]; d != 0 {
			diffs = append(diffs, d)
		}
	}
	if len(diffs) == 0 {
		return Result{}, fmt.Errorf("Wilcoxon signed-rank: all paired differences are zero")
	}

	absDiffs := make([]float64, len(diffs))
	for i, d := range diffs {
		absDiffs[i] = math.Abs(d)
	}
	ranks, tieSum := rankAll(absDiffs)

	var wPlus, wMinus float64
	for i, d := range diffs {
		if d > 0 {
			wPlus += ranks[i]
		} else {
			wMinus += ranks[i]
		}
	}
	w := math.Min(wPlus, wMinus)

	n := float64(len(diffs))
	mu := n * (n + 1) / 4
	sigma2 := n*(n+1)*(2*n+1)/24 - tieSum/48
	if sigma2 <= 0 {
		return Result{Statistic: w, PValue: 1}, nil
	}

	z := (w - mu) / math.Sqrt(sigma2)
	p := clampP(2 * normCDF(z))
	return Result{Statistic: w, PValue: p}, nil
}
