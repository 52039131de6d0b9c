// Package engine is the statistical comparison engine: the single entry
// point that takes grouped measurements, runs the selected hypothesis test,
// applies multiple-comparison correction and returns display-ready ranked
// comparisons.
package engine

import (
	"fmt"

	"gofigure/domain/stats"
)

// Engine runs statistical tests on grouped data. Stateless; every call is
// a pure function of its request.
type Engine struct{}

// NewEngine creates a new statistics engine
func NewEngine() *Engine {
	return &Engine{}
}

// Request describes one analysis invocation. Groups may contain non-finite
// values meaning "missing"; Labels parallels Groups and is used only for
// display.
type Request struct {
	Groups       [][]float64
	Labels       []string
	Test         stats.TestKind
	Posthoc      stats.PosthocMethod
	CompareMode  stats.CompareMode
	ControlIndex int
}

// Run executes the requested analysis. It never returns an error: missing
// data, unknown names and numerical failures all surface as a StatsResult
// with empty comparisons and a human-readable summary.
func (e *Engine) Run(req Request) stats.StatsResult {
	if req.Test == stats.TestNone || req.Test == "" || len(req.Groups) < 2 {
		res := stats.NewStatsResult(string(stats.TestNone))
		res.Summary = "No test selected."
		return res
	}

	cleaned, kept := stats.CleanGroups(req.Groups)
	if len(cleaned) < 2 {
		res := stats.NewStatsResult(string(req.Test))
		res.Summary = "Not enough valid data (n≥2) in each group."
		return res
	}

	switch {
	case req.Test.IsTwoGroup():
		return e.twoGroup(cleaned, kept, req.Labels, req.Test)
	case req.Test == stats.TestOneWayANOVA:
		return e.anova(cleaned, kept, req)
	case req.Test == stats.TestKruskalWallis:
		return e.kruskal(cleaned, kept, req)
	}

	res := stats.NewStatsResult(string(req.Test))
	res.Summary = fmt.Sprintf("Unknown test: %s", req.Test)
	return res
}

// RunNamed is the raw-string boundary for external callers (API, persisted
// project state). Unrecognized names degrade gracefully: an unknown test
// produces an explanatory result, an unknown post-hoc method falls back to
// Tukey HSD and an unknown compare mode to all pairs, matching the
// selection-widget defaults.
func (e *Engine) RunNamed(groups [][]float64, labels []string, test, posthoc, compareMode string, controlIndex int) stats.StatsResult {
	testKind, err := stats.ParseTestKind(test)
	if err != nil {
		res := stats.NewStatsResult(test)
		res.Summary = fmt.Sprintf("Unknown test: %s", test)
		return res
	}

	posthocMethod, err := stats.ParsePosthocMethod(posthoc)
	if err != nil {
		posthocMethod = stats.PosthocTukey
	}

	mode, err := stats.ParseCompareMode(compareMode)
	if err != nil {
		mode = stats.CompareAllPairs
	}

	return e.Run(Request{
		Groups:       groups,
		Labels:       labels,
		Test:         testKind,
		Posthoc:      posthocMethod,
		CompareMode:  mode,
		ControlIndex: controlIndex,
	})
}

// labelFor returns the caller-supplied label for an original group index,
// or a positional fallback.
func labelFor(labels []string, origIdx int) string {
	if origIdx < len(labels) && labels[origIdx] != "" {
		return labels[origIdx]
	}
	return fmt.Sprintf("Group %d", origIdx+1)
}

// controlPosition maps an original control index to its position in the
// cleaned group list. ok is false when the control group was dropped by
// cleaning or the index is out of range.
func controlPosition(kept []int, control int) (int, bool) {
	for pos, orig := range kept {
		if orig == control {
			return pos, true
		}
	}
	return 0, false
}
