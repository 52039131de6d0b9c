package engine

import (
	"fmt"
	"math"
	"strings"

	"gofigure/adapters/stats/tests"
	"gofigure/domain/stats"
)

// anova computes the one-way ANOVA omnibus result, then dispatches to the
// requested post-hoc corrector over the planned pairs.
func (e *Engine) anova(cleaned [][]float64, kept []int, req Request) stats.StatsResult {
	omnibus, err := tests.OneWayANOVA(cleaned)
	if err != nil {
		out := stats.NewStatsResult(string(stats.TestOneWayANOVA))
		out.Summary = fmt.Sprintf("One-way ANOVA failed: %v", err)
		return out
	}

	result := stats.StatsResult{
		TestName:        string(stats.TestOneWayANOVA),
		GlobalStatistic: omnibus.F,
		GlobalP:         omnibus.PValue,
	}

	lines := []string{
		fmt.Sprintf("One-way ANOVA: F=%.4f, p=%.6f (%s)", omnibus.F, omnibus.PValue, stats.Stars(omnibus.PValue)),
		"Groups: " + groupRoster(cleaned, kept, req.Labels),
	}

	// The Dunnett-like option always compares against the control with the
	// simple multiplicative correction, regardless of the requested compare
	// mode. This override is part of the observed contract.
	needControl := req.CompareMode == stats.CompareToControl || req.Posthoc == stats.PosthocDunnett
	controlPos := 0
	if needControl {
		var ok bool
		controlPos, ok = controlPosition(kept, req.ControlIndex)
		if !ok {
			out := stats.NewStatsResult(string(stats.TestOneWayANOVA))
			out.Summary = fmt.Sprintf("Control group %d has no valid data (n≥2 required).", req.ControlIndex)
			return out
		}
	}

	pairs := stats.PlanPairs(len(cleaned), req.CompareMode, controlPos)

	switch req.Posthoc {
	case stats.PosthocBonferroni, stats.PosthocHolm:
		result.Comparisons, err = bonferroniPosthoc(cleaned, kept, req.Labels, pairs, req.Posthoc == stats.PosthocHolm)
	case stats.PosthocDunnett:
		ctrlPairs := stats.PlanPairs(len(cleaned), stats.CompareToControl, controlPos)
		result.Comparisons, err = bonferroniPosthoc(cleaned, kept, req.Labels, ctrlPairs, false)
	default: // Tukey HSD
		result.Comparisons, err = tukeyPosthoc(cleaned, kept, req.Labels, pairs)
		if err != nil {
			result.Comparisons, err = bonferroniPosthoc(cleaned, kept, req.Labels, pairs, false)
		}
	}
	if err != nil {
		out := stats.NewStatsResult(string(stats.TestOneWayANOVA))
		out.Summary = fmt.Sprintf("Post-hoc correction failed: %v", err)
		return out
	}

	for _, c := range result.Comparisons {
		lines = append(lines, fmt.Sprintf("  %s vs %s: p=%.6f (%s)", c.LabelA, c.LabelB, c.PValue, c.Stars))
	}
	result.Summary = strings.Join(lines, "\n")
	return result
}

// kruskal computes the Kruskal-Wallis omnibus result with a Dunn's
// approximation post-hoc: per-pair Mann-Whitney U with a Bonferroni-style
// multiplicative correction. The posthoc selector is deliberately ignored
// on this path.
func (e *Engine) kruskal(cleaned [][]float64, kept []int, req Request) stats.StatsResult {
	omnibus, err := tests.KruskalWallis(cleaned)
	if err != nil {
		out := stats.NewStatsResult(string(stats.TestKruskalWallis))
		out.Summary = fmt.Sprintf("Kruskal-Wallis failed: %v", err)
		return out
	}

	result := stats.StatsResult{
		TestName:        string(stats.TestKruskalWallis),
		GlobalStatistic: omnibus.Statistic,
		GlobalP:         omnibus.PValue,
	}

	lines := []string{
		fmt.Sprintf("Kruskal-Wallis: H=%.4f, p=%.6f (%s)", omnibus.Statistic, omnibus.PValue, stats.Stars(omnibus.PValue)),
	}

	controlPos := 0
	if req.CompareMode == stats.CompareToControl {
		var ok bool
		controlPos, ok = controlPosition(kept, req.ControlIndex)
		if !ok {
			out := stats.NewStatsResult(string(stats.TestKruskalWallis))
			out.Summary = fmt.Sprintf("Control group %d has no valid data (n≥2 required).", req.ControlIndex)
			return out
		}
	}

	pairs := stats.PlanPairs(len(cleaned), req.CompareMode, controlPos)
	m := float64(len(pairs))

	for _, pair := range pairs {
		raw, err := tests.MannWhitneyU(cleaned[pair.A], cleaned[pair.B])
		if err != nil {
			out := stats.NewStatsResult(string(stats.TestKruskalWallis))
			out.Summary = fmt.Sprintf("Dunn's post-hoc failed: %v", err)
			return out
		}
		adj := math.Min(raw.PValue*m, 1.0)

		comp := stats.ComparisonResult{
			GroupA:    kept[pair.A],
			GroupB:    kept[pair.B],
			LabelA:    labelFor(req.Labels, kept[pair.A]),
			LabelB:    labelFor(req.Labels, kept[pair.B]),
			PValue:    adj,
			Stars:     stats.Stars(adj),
			TestName:  "Dunn's (Bonferroni)",
			Statistic: raw.Statistic,
		}
		result.Comparisons = append(result.Comparisons, comp)
		lines = append(lines, fmt.Sprintf("  %s vs %s: p=%.6f (%s)", comp.LabelA, comp.LabelB, adj, comp.Stars))
	}

	result.Summary = strings.Join(lines, "\n")
	return result
}

// groupRoster renders "label(n=...)" for every surviving group.
func groupRoster(cleaned [][]float64, kept []int, labels []string) string {
	parts := make([]string, len(cleaned))
	for pos, g := range cleaned {
		parts[pos] = fmt.Sprintf("%s(n=%d)", labelFor(labels, kept[pos]), len(g))
	}
	return strings.Join(parts, ", ")
}
