package tests

import (
	"fmt"
	"math"
)

// UnpairedTTest runs the independent two-sample t-test assuming equal
// variances (pooled standard deviation).
func UnpairedTTest(a, b []float64) (Result, error) {
	n1, n2 := float64(len(a)), float64(len(b))
	if n1 < 2 || n2 < 2 {
		return Result{}, fmt.Errorf("unpaired t-test needs at least 2 values per group, got %d and %d", len(a), len(b))
	}

	v1, v2 := variance(a), variance(b)
	df := n1 + n2 - 2
	pooled := ((n1-1)*v1 + (n2-1)*v2) / df
	se := math.Sqrt(pooled * (1/n1 + 1/n2))

	diff := mean(a) - mean(b)
	if se == 0 {
		return degenerateT(diff, df), nil
	}
	t := diff / se
	return Result{Statistic: t, PValue: twoSidedTP(t, df), DF: df}, nil
}

// WelchTTest runs the unequal-variance two-sample t-test with the
// Welch-Satterthwaite degrees of freedom.
func WelchTTest(a, b []float64) (Result, error) {
	n1, n2 := float64(len(a)), float64(len(b))
	if n1 < 2 || n2 < 2 {
		return Result{}, fmt.Errorf("Welch's t-test needs at least 2 values per group, got %d and %d", len(a), len(b))
	}

	v1, v2 := variance(a), variance(b)
	se2 := v1/n1 + v2/n2
	diff := mean(a) - mean(b)
	if se2 == 0 {
		return degenerateT(diff, n1+n2-2), nil
	}

	df := se2 * se2 / (v1*v1/(n1*n1*(n1-1)) + v2*v2/(n2*n2*(n2-1)))
	t := diff / math.Sqrt(se2)
	return Result{Statistic: t, PValue: twoSidedTP(t, df), DF: df}, nil
}

// PairedTTest runs the dependent-samples t-test on per-subject differences.
// Both slices must have the same length; the caller truncates beforehand.
func PairedTTest(a, b []float64) (Result, error) {
	if len(a) != len(b) {
		return Result{}, fmt.Errorf("paired t-test needs equal-length groups, got %d and %d", len(a), len(b))
	}
	n := len(a)
	if n < 2 {
		return Result{}, fmt.Errorf("paired t-test needs at least 2 pairs, got %d", n)
	}

	diffs := make([]float64, n)
	for i := range a {
		diffs[i] = a[i] - b[i]
	}

	df := float64(n - 1)
	sd := math.Sqrt(variance(diffs))
	md := mean(diffs)
	if sd == 0 {
		return degenerateT(md, df), nil
	}
	t := md / (sd / math.Sqrt(float64(n)))
	return Result{Statistic: t, PValue: twoSidedTP(t, df), DF: df}, nil
}

// degenerateT handles the zero-standard-error case: identical spreads with
// equal means give t=0, p=1; unequal means give an infinite statistic.
func degenerateT(diff, df float64) Result {
	if diff == 0 {
		return Result{Statistic: 0, PValue: 1, DF: df}
	}
	return Result{Statistic: math.Inf(sign(diff)), PValue: 0, DF: df}
}

func sign(x float64) int {
	if x < 0 {
		return -1
	}
	return 1
}
