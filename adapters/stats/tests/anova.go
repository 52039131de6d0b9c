package tests

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// AnovaResult holds the one-way ANOVA omnibus outcome. MSWithin is the
// pooled within-group mean square, reused by Tukey's HSD.
type AnovaResult struct {
	F         float64
	PValue    float64
	DFBetween float64
	DFWithin  float64
	MSWithin  float64
}

// OneWayANOVA computes the one-way fixed-effects F test across 2+ groups.
// Zero total variance (all values identical) is reported as F=0, p=1
// rather than a failure.
func OneWayANOVA(groups [][]float64) (AnovaResult, error) {
	k := len(groups)
	if k < 2 {
		return AnovaResult{}, fmt.Errorf("one-way ANOVA needs at least 2 groups, got %d", k)
	}

	total := 0
	grandSum := 0.0
	for _, g := range groups {
		if len(g) < 2 {
			return AnovaResult{}, fmt.Errorf("one-way ANOVA needs at least 2 values per group")
		}
		total += len(g)
		for _, v := range g {
			grandSum += v
		}
	}
	grandMean := grandSum / float64(total)

	var ssBetween, ssWithin float64
	for _, g := range groups {
		m := mean(g)
		d := m - grandMean
		ssBetween += float64(len(g)) * d * d
		for _, v := range g {
			ssWithin += (v - m) * (v - m)
		}
	}

	res := AnovaResult{
		DFBetween: float64(k - 1),
		DFWithin:  float64(total - k),
	}
	res.MSWithin = ssWithin / res.DFWithin

	if ssWithin == 0 {
		if ssBetween == 0 {
			// Degenerate: zero variance everywhere.
			res.F, res.PValue = 0, 1
			return res, nil
		}
		res.F, res.PValue = math.Inf(1), 0
		return res, nil
	}

	res.F = (ssBetween / res.DFBetween) / res.MSWithin
	fDist := distuv.F{D1: res.DFBetween, D2: res.DFWithin}
	res.PValue = clampP(fDist.Survival(res.F))
	return res, nil
}
