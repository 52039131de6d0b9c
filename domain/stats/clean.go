package stats

import "math"

// MinGroupSize is the smallest number of valid values a group needs to
// participate in a comparison.
const MinGroupSize = 2

// CleanGroups drops non-finite values from each group, then drops groups
// left with fewer than MinGroupSize values. The second return value holds
// the original index of each surviving group, so downstream results can
// keep referring to caller-side positions. Pure transform.
func CleanGroups(groups [][]float64) ([][]float64, []int) {
	cleaned := make([][]float64, 0, len(groups))
	kept := make([]int, 0, len(groups))

	for i, g := range groups {
		vals := make([]float64, 0, len(g))
		for _, v := range g {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			vals = append(vals, v)
		}
		if len(vals) < MinGroupSize {
			continue
		}
		cleaned = append(cleaned, vals)
		kept = append(kept, i)
	}
	return cleaned, kept
}
