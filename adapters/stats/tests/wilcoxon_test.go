package tests

import "testing"

func TestWilcoxonSignedRank_Reference(t *testing.T) {
	a := []float64{125, 115, 130, 140, 140, 115, 140, 125, 140, 135}
	b := []float64{110, 122, 125, 120, 140, 124, 123, 137, 135, 145}
	res, err := WilcoxonSignedRank(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	approx(t, "W", res.Statistic, 18, 1e-12)
	approx(t, "p", res.PValue, 0.5936305914425295, 1e-9)
}

func TestWilcoxonSignedRank_ZeroDifferencesDropped(t *testing.T) {
	// The (140, 140) pair above contributes nothing; an explicit identical
	// pair added to both sides must not change the outcome.
	a := []float64{125, 115, 130, 99, 140, 115, 140, 125, 140, 135}
	b := []float64{110, 122, 125, 99, 140, 124, 123, 137, 135, 145}
	withZero, err := WilcoxonSignedRank(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a2 := []float64{125, 115, 130, 140, 115, 140, 125, 140, 135}
	b2 := []float64{110, 122, 125, 140, 124, 123, 137, 135, 145}
	without, err := WilcoxonSignedRank(a2, b2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	approx(t, "W", withZero.Statistic, without.Statistic, 1e-12)
	approx(t, "p", withZero.PValue, without.PValue, 1e-12)
}

func TestWilcoxonSignedRank_AllZero(t *testing.T) {
	a := []float64{3, 4, 5}
	if _, err := WilcoxonSignedRank(a, a); err == nil {
		t.Error("expected error when all paired differences are zero")
	}
}

func TestWilcoxonSignedRank_LengthMismatch(t *testing.T) {
	if _, err := WilcoxonSignedRank([]float64{1, 2}, []float64{1, 2, 3}); err == nil {
		t.Error("expected error for unequal lengths")
	}
}
