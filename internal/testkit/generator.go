// Package testkit generates deterministic demo datasets for tests and the
// demo commands.
package testkit

import (
	"fmt"
	"math"
	"math/rand"
)

// Generator produces reproducible grouped measurements
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator seeded for reproducibility
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// NormalGroup returns n samples from N(mean, sd²)
func (g *Generator) NormalGroup(n int, mean, sd float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = mean + sd*g.rng.NormFloat64()
	}
	return out
}

// ShiftedGroups returns one group per mean, each with n normal samples and
// a shared standard deviation. Useful for multi-group comparison scenarios.
func (g *Generator) ShiftedGroups(n int, means []float64, sd float64) [][]float64 {
	out := make([][]float64, len(means))
	for i, m := range means {
		out[i] = g.NormalGroup(n, m, sd)
	}
	return out
}

// GroupLabels returns "Group 1".."Group n" labels
func GroupLabels(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("Group %d", i+1)
	}
	return out
}

// DoseResponse returns n noisy points on a 4PL dose-response curve with
// logarithmically spaced doses.
func (g *Generator) DoseResponse(n int, bottom, top, ec50, slope, noise float64) (x, y []float64) {
	x = make([]float64, n)
	y = make([]float64, n)
	logLo, logHi := math.Log10(ec50/100), math.Log10(ec50*100)
	for i := range x {
		x[i] = math.Pow(10, logLo+(logHi-logLo)*float64(i)/float64(n-1))
		y[i] = bottom + (top-bottom)/(1+math.Pow(ec50/x[i], slope)) + noise*g.rng.NormFloat64()
	}
	return x, y
}
