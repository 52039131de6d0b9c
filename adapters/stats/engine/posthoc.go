package engine

import (
	"math"
	"sort"

	"gofigure/adapters/stats/tests"
	"gofigure/domain/stats"
)

// tukeyPosthoc runs the simultaneous Tukey procedure once across all
// groups, then slices out the planned pairs in planned order. Errors
// (degenerate variance) are returned so the caller can fall back to the
// Bonferroni corrector.
func tukeyPosthoc(groups [][]float64, kept []int, labels []string, pairs []stats.Pair) ([]stats.ComparisonResult, error) {
	res, err := tests.TukeyHSD(groups)
	if err != nil {
		return nil, err
	}

	comps := make([]stats.ComparisonResult, 0, len(pairs))
	for _, pair := range pairs {
		p := res.PValue[pair.A][pair.B]
		comps = append(comps, stats.ComparisonResult{
			GroupA:    kept[pair.A],
			GroupB:    kept[pair.B],
			LabelA:    labelFor(labels, kept[pair.A]),
			LabelB:    labelFor(labels, kept[pair.B]),
			PValue:    p,
			Stars:     stats.Stars(p),
			TestName:  "Tukey HSD",
			Statistic: res.Statistic[pair.A][pair.B],
		})
	}
	return comps, nil
}

// rawPair is one pairwise Welch result prior to correction.
type rawPair struct {
	pair stats.Pair
	stat float64
	p    float64
}

// bonferroniPosthoc runs Welch's t-test on every planned pair, then applies
// either the plain Bonferroni correction (p*m, clipped at 1) or the
// Holm-Bonferroni step-down (sort by raw p, multiply by m-rank). Whatever
// order the correction works in, the output is re-sorted into ascending
// (GroupA, GroupB) index order.
func bonferroniPosthoc(groups [][]float64, kept []int, labels []string, pairs []stats.Pair, holm bool) ([]stats.ComparisonResult, error) {
	raw := make([]rawPair, 0, len(pairs))
	for _, pair := range pairs {
		res, err := tests.WelchTTest(groups[pair.A], groups[pair.B])
		if err != nil {
			return nil, err
		}
		raw = append(raw, rawPair{pair: pair, stat: res.Statistic, p: res.PValue})
	}

	m := float64(len(raw))
	if len(raw) == 0 {
		return nil, nil
	}

	testName := "Bonferroni"
	adjusted := make([]float64, len(raw))
	if holm {
		testName = "Holm-Bonferroni"
		order := make([]int, len(raw))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(i, j int) bool { return raw[order[i]].p < raw[order[j]].p })
		for rank, idx := range order {
			adjusted[idx] = math.Min(raw[idx].p*(m-float64(rank)), 1.0)
		}
	} else {
		for i, r := range raw {
			adjusted[i] = math.Min(r.p*m, 1.0)
		}
	}

	comps := make([]stats.ComparisonResult, 0, len(raw))
	for i, r := range raw {
		comps = append(comps, stats.ComparisonResult{
			GroupA:    kept[r.pair.A],
			GroupB:    kept[r.pair.B],
			LabelA:    labelFor(labels, kept[r.pair.A]),
			LabelB:    labelFor(labels, kept[r.pair.B]),
			PValue:    adjusted[i],
			Stars:     stats.Stars(adjusted[i]),
			TestName:  testName,
			Statistic: r.stat,
		})
	}

	sort.SliceStable(comps, func(i, j int) bool {
		if comps[i].GroupA != comps[j].GroupA {
			return comps[i].GroupA < comps[j].GroupA
		}
		return comps[i].GroupB < comps[j].GroupB
	})
	return comps, nil
}
