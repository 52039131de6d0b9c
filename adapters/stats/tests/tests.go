// Package tests implements the statistical procedures behind the engine:
// the five two-sample tests, the omnibus ANOVA and Kruskal-Wallis tests,
// and the studentized range distribution used by Tukey's HSD.
//
// Every function is a pure computation on its inputs. Distribution tail
// probabilities come from gonum's distuv so the p-values match reference
// statistical implementations.
package tests

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Result holds the statistic and two-sided p-value of a single test.
type Result struct {
	Statistic float64
	PValue    float64
	DF        float64
}

func mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}

// variance is the unbiased sample variance.
func variance(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	m := mean(data)
	sumSq := 0.0
	for _, v := range data {
		d := v - m
		sumSq += d * d
	}
	return sumSq / float64(len(data)-1)
}

// twoSidedTP converts a t statistic with df degrees of freedom into a
// two-sided p-value.
func twoSidedTP(t, df float64) float64 {
	if math.IsInf(t, 0) {
		return 0
	}
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * dist.CDF(-math.Abs(t))
	return clampP(p)
}

func normCDF(z float64) float64 {
	return 0.5 * (1 + math.Erf(z/math.Sqrt2))
}

func clampP(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
