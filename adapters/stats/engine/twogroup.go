package engine

import (
	"fmt"
	"strings"

	"gofigure/adapters/stats/tests"
	"gofigure/domain/stats"
)

// twoGroup runs one of the five two-sample tests on the first two cleaned
// groups. Extra groups and paired-test truncation are observed source
// behaviors; both are kept but surfaced as summary notes instead of staying
// fully silent.
func (e *Engine) twoGroup(cleaned [][]float64, kept []int, labels []string, test stats.TestKind) stats.StatsResult {
	a, b := cleaned[0], cleaned[1]
	la, lb := labelFor(labels, kept[0]), labelFor(labels, kept[1])

	var notes []string
	if len(cleaned) > 2 {
		notes = append(notes, fmt.Sprintf("Note: %s compares two groups; %d extra group(s) ignored.", test, len(cleaned)-2))
	}
	if test.IsPaired() && len(a) != len(b) {
		n := min(len(a), len(b))
		notes = append(notes, fmt.Sprintf("Note: groups truncated to %d pairs for paired testing.", n))
		a, b = a[:n], b[:n]
	}

	var (
		res tests.Result
		err error
	)
	switch test {
	case stats.TestUnpairedT:
		res, err = tests.UnpairedTTest(a, b)
	case stats.TestPairedT:
		res, err = tests.PairedTTest(a, b)
	case stats.TestWelchT:
		res, err = tests.WelchTTest(a, b)
	case stats.TestMannWhitney:
		res, err = tests.MannWhitneyU(a, b)
	case stats.TestWilcoxon:
		res, err = tests.WilcoxonSignedRank(a, b)
	default:
		out := stats.NewStatsResult(string(test))
		out.Summary = fmt.Sprintf("Unknown test: %s", test)
		return out
	}
	if err != nil {
		out := stats.NewStatsResult(string(test))
		out.Summary = fmt.Sprintf("%s failed: %v", test, err)
		return out
	}

	comp := stats.ComparisonResult{
		GroupA:    kept[0],
		GroupB:    kept[1],
		LabelA:    la,
		LabelB:    lb,
		PValue:    res.PValue,
		Stars:     stats.Stars(res.PValue),
		TestName:  string(test),
		Statistic: res.Statistic,
	}

	lines := []string{
		fmt.Sprintf("%s: statistic=%.4f, p=%.6f (%s)", test, res.Statistic, res.PValue, comp.Stars),
		fmt.Sprintf("  %s (n=%d) vs %s (n=%d)", la, len(a), lb, len(b)),
	}
	for _, n := range notes {
		lines = append(lines, "  "+n)
	}

	return stats.StatsResult{
		TestName:        string(test),
		GlobalStatistic: res.Statistic,
		GlobalP:         res.PValue,
		Comparisons:     []stats.ComparisonResult{comp},
		Summary:         strings.Join(lines, "\n"),
	}
}
