package tests

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"
)

// KruskalWallis computes the rank-based H test across 2+ groups with tie
// correction, evaluated against the chi-squared distribution with k-1
// degrees of freedom. All observations tied is reported as H=0, p=1.
func KruskalWallis(groups [][]float64) (Result, error) {
	k := len(groups)
	if k < 2 {
		return Result{}, fmt.Errorf("Kruskal-Wallis needs at least 2 groups, got %d", k)
	}

	total := 0
	for _, g := range groups {
		if len(g) == 0 {
			return Result{}, fmt.Errorf("Kruskal-Wallis needs non-empty groups")
		}
		total += len(g)
	}

	combined := make([]float64, 0, total)
	for _, g := range groups {
		combined = append(combined, g...)
	}
	ranks, tieSum := rankAll(combined)

	n := float64(total)
	h := 0.0
	offset := 0
	for _, g := range groups {
		ri := 0.0
		for i := 0; i < len(g); i++ {
			ri += ranks[offset+i]
		}
		offset += len(g)
		h += ri * ri / float64(len(g))
	}
	h = 12/(n*(n+1))*h - 3*(n+1)

	correction := 1 - tieSum/(n*n*n-n)
	if correction <= 0 {
		// Every observation tied.
		return Result{Statistic: 0, PValue: 1, DF: float64(k - 1)}, nil
	}
	h /= correction

	chi2 := distuv.ChiSquared{K: float64(k - 1)}
	return Result{Statistic: h, PValue: clampP(chi2.Survival(h)), DF: float64(k - 1)}, nil
}
