package stats

import "math"

// jsonSafe clamps a float to values encoding/json can represent. Degenerate
// inputs can legitimately produce infinite statistics (for example an F of
// +Inf when within-group variance is zero), but JSON has no encoding for
// them.
func jsonSafe(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case math.IsInf(v, 1):
		return math.MaxFloat64
	case math.IsInf(v, -1):
		return -math.MaxFloat64
	}
	return v
}

// Sanitized returns a copy of the result safe for JSON serialization.
func (r StatsResult) Sanitized() StatsResult {
	out := r
	out.GlobalStatistic = jsonSafe(r.GlobalStatistic)
	out.GlobalP = jsonSafe(r.GlobalP)
	out.Comparisons = make([]ComparisonResult, len(r.Comparisons))
	for i, c := range r.Comparisons {
		c.PValue = jsonSafe(c.PValue)
		c.Statistic = jsonSafe(c.Statistic)
		out.Comparisons[i] = c
	}
	return out
}
