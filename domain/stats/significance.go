package stats

import "fmt"

// pThreshold maps a p-value upper bound to its asterisk code.
type pThreshold struct {
	Bound float64
	Code  string
}

// pThresholds is the GraphPad-style significance ladder, checked in
// ascending-bound order with strict less-than. Never mutated.
var pThresholds = []pThreshold{
	{0.0001, "****"},
	{0.001, "***"},
	{0.01, "**"},
	{0.05, "*"},
}

// Stars converts a p-value to its asterisk code. A p exactly equal to a
// bound does not get that tier: Stars(0.05) is "ns".
func Stars(p float64) string {
	for _, t := range pThresholds {
		if p < t.Bound {
			return t.Code
		}
	}
	return "ns"
}

// DisplayP formats a p-value for on-figure display.
func DisplayP(p float64, mode DisplayMode) string {
	switch mode {
	case DisplayStars:
		return Stars(p)
	case DisplayValue:
		return formatPValue(p)
	default: // both
		return Stars(p) + "\n" + formatPValue(p)
	}
}

func formatPValue(p float64) string {
	if p < 0.0001 {
		return "p<0.0001"
	}
	return fmt.Sprintf("p=%.4f", p)
}
