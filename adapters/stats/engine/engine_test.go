package engine

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"gofigure/adapters/stats/tests"
	"gofigure/domain/stats"
)

func TestRun_UnpairedTTest(t *testing.T) {
	e := NewEngine()
	res := e.Run(Request{
		Groups: [][]float64{{1, 2, 3}, {4, 5, 6}},
		Labels: []string{"Control", "Treated"},
		Test:   stats.TestUnpairedT,
	})

	if len(res.Comparisons) != 1 {
		t.Fatalf("expected 1 comparison, got %d", len(res.Comparisons))
	}
	c := res.Comparisons[0]
	if c.GroupA != 0 || c.GroupB != 1 {
		t.Errorf("indices = (%d,%d), want (0,1)", c.GroupA, c.GroupB)
	}
	if c.LabelA != "Control" || c.LabelB != "Treated" {
		t.Errorf("labels = (%q,%q)", c.LabelA, c.LabelB)
	}
	if math.Abs(c.PValue-0.02131164112875673) > 1e-9 {
		t.Errorf("p = %.15g, want 0.02131164112875673", c.PValue)
	}
	if c.Stars != "*" {
		t.Errorf("stars = %q, want *", c.Stars)
	}
	if res.GlobalStatistic != c.Statistic || res.GlobalP != c.PValue {
		t.Error("global statistic/p must mirror the single comparison")
	}
	if !strings.Contains(res.Summary, "Unpaired t-test") {
		t.Errorf("summary missing test name: %q", res.Summary)
	}
}

func TestRun_NoTestSelected(t *testing.T) {
	e := NewEngine()

	res := e.Run(Request{Groups: [][]float64{{1, 2}, {3, 4}}, Test: stats.TestNone})
	if !res.Empty() || res.Summary != "No test selected." {
		t.Errorf("TestNone: got %+v", res)
	}

	res = e.Run(Request{Groups: [][]float64{{1, 2, 3}}, Test: stats.TestUnpairedT})
	if !res.Empty() || res.Summary != "No test selected." {
		t.Errorf("single group: got %+v", res)
	}
}

func TestRun_NotEnoughValidData(t *testing.T) {
	e := NewEngine()
	nan := math.NaN()
	res := e.Run(Request{
		Groups: [][]float64{{nan, nan, 1}, {2, 3, 4}},
		Test:   stats.TestUnpairedT,
	})
	if !res.Empty() {
		t.Fatalf("expected empty result, got %d comparisons", len(res.Comparisons))
	}
	if !strings.Contains(res.Summary, "Not enough valid data") {
		t.Errorf("summary = %q", res.Summary)
	}
}

func TestRun_UnknownTestName(t *testing.T) {
	e := NewEngine()
	res := e.RunNamed([][]float64{{1, 2}, {3, 4}}, nil, "Funky test", "Bonferroni", "All pairs", 0)
	if !res.Empty() {
		t.Fatal("expected empty result for unknown test")
	}
	if !strings.Contains(res.Summary, "Unknown test: Funky test") {
		t.Errorf("summary = %q", res.Summary)
	}
}

func TestRun_ANOVAZeroVariance(t *testing.T) {
	e := NewEngine()
	res := e.Run(Request{
		Groups:  [][]float64{{1, 1, 1}, {1, 1, 1}, {1, 1, 1}},
		Test:    stats.TestOneWayANOVA,
		Posthoc: stats.PosthocTukey,
	})

	if res.GlobalP != 1 || res.GlobalStatistic != 0 {
		t.Errorf("degenerate ANOVA: got F=%v p=%v, want F=0 p=1", res.GlobalStatistic, res.GlobalP)
	}
	// Tukey cannot run on zero variance; the Bonferroni fallback still
	// reports every pair as non-significant.
	if len(res.Comparisons) != 3 {
		t.Fatalf("expected 3 comparisons, got %d", len(res.Comparisons))
	}
	for _, c := range res.Comparisons {
		if c.PValue != 1 || c.Stars != "ns" {
			t.Errorf("pair (%d,%d): p=%v stars=%q, want p=1 ns", c.GroupA, c.GroupB, c.PValue, c.Stars)
		}
	}
}

func TestRun_CompareToControlBonferroni(t *testing.T) {
	groups := [][]float64{
		{10, 11, 12, 13},
		{12, 13, 14, 15},
		{14, 15, 16, 17},
		{20, 21, 22, 23},
	}
	e := NewEngine()
	res := e.Run(Request{
		Groups:       groups,
		Labels:       []string{"ctrl", "low", "mid", "high"},
		Test:         stats.TestOneWayANOVA,
		Posthoc:      stats.PosthocBonferroni,
		CompareMode:  stats.CompareToControl,
		ControlIndex: 0,
	})

	if len(res.Comparisons) != 3 {
		t.Fatalf("expected 3 comparisons, got %d", len(res.Comparisons))
	}
	for i, c := range res.Comparisons {
		if c.GroupA != 0 {
			t.Errorf("comparison %d: GroupA = %d, want control 0", i, c.GroupA)
		}
		if c.GroupB != i+1 {
			t.Errorf("comparison %d: GroupB = %d, want %d", i, c.GroupB, i+1)
		}

		raw, err := tests.WelchTTest(groups[0], groups[c.GroupB])
		if err != nil {
			t.Fatalf("reference Welch failed: %v", err)
		}
		want := math.Min(raw.PValue*3, 1.0)
		if math.Abs(c.PValue-want) > 1e-12 {
			t.Errorf("comparison %d: corrected p = %v, want min(raw*3,1) = %v", i, c.PValue, want)
		}
	}
}

func TestRun_BonferroniMultiplicativeProperty(t *testing.T) {
	groups := [][]float64{
		{1, 2, 3, 4, 5},
		{2, 3, 4, 5, 6},
		{6, 7, 8, 9, 10},
	}
	e := NewEngine()
	res := e.Run(Request{
		Groups:  groups,
		Test:    stats.TestOneWayANOVA,
		Posthoc: stats.PosthocBonferroni,
	})

	if len(res.Comparisons) != 3 {
		t.Fatalf("expected 3 comparisons, got %d", len(res.Comparisons))
	}
	for _, c := range res.Comparisons {
		raw, err := tests.WelchTTest(groups[c.GroupA], groups[c.GroupB])
		if err != nil {
			t.Fatalf("reference Welch failed: %v", err)
		}
		want := math.Min(raw.PValue*3, 1.0)
		if math.Abs(c.PValue-want) > 1e-12 {
			t.Errorf("pair (%d,%d): corrected p = %v, want %v", c.GroupA, c.GroupB, c.PValue, want)
		}
		if c.TestName != "Bonferroni" {
			t.Errorf("test name = %q", c.TestName)
		}
	}
}

func TestRun_HolmStepDownAndIndexOrder(t *testing.T) {
	groups := [][]float64{
		{1, 2, 3, 4, 5},
		{2, 3, 4, 5, 6},
		{6, 7, 8, 9, 10},
		{3, 4, 5, 6, 7},
	}
	e := NewEngine()
	res := e.Run(Request{
		Groups:  groups,
		Test:    stats.TestOneWayANOVA,
		Posthoc: stats.PosthocHolm,
	})

	m := 6 // C(4,2)
	if len(res.Comparisons) != m {
		t.Fatalf("expected %d comparisons, got %d", m, len(res.Comparisons))
	}

	// Output order is index order regardless of the p-value order used
	// during correction.
	wantOrder := []stats.Pair{{A: 0, B: 1}, {A: 0, B: 2}, {A: 0, B: 3}, {A: 1, B: 2}, {A: 1, B: 3}, {A: 2, B: 3}}
	for i, c := range res.Comparisons {
		if c.GroupA != wantOrder[i].A || c.GroupB != wantOrder[i].B {
			t.Errorf("position %d: pair (%d,%d), want (%d,%d)", i, c.GroupA, c.GroupB, wantOrder[i].A, wantOrder[i].B)
		}
	}

	// Reconstruct the step-down correction from raw Welch p-values.
	type rawEntry struct {
		idx int
		p   float64
	}
	raws := make([]rawEntry, m)
	for i, c := range res.Comparisons {
		raw, err := tests.WelchTTest(groups[c.GroupA], groups[c.GroupB])
		if err != nil {
			t.Fatalf("reference Welch failed: %v", err)
		}
		raws[i] = rawEntry{idx: i, p: raw.PValue}
	}
	order := make([]rawEntry, m)
	copy(order, raws)
	for i := 0; i < m; i++ {
		for j := i + 1; j < m; j++ {
			if order[j].p < order[i].p {
				order[i], order[j] = order[j], order[i]
			}
		}
	}
	want := make([]float64, m)
	for rank, entry := range order {
		want[entry.idx] = math.Min(entry.p*float64(m-rank), 1.0)
	}
	for i, c := range res.Comparisons {
		if math.Abs(c.PValue-want[i]) > 1e-12 {
			t.Errorf("position %d: corrected p = %v, want %v", i, c.PValue, want[i])
		}
		if c.TestName != "Holm-Bonferroni" {
			t.Errorf("test name = %q", c.TestName)
		}
	}
}

func TestRun_KruskalWallisDunns(t *testing.T) {
	groups := [][]float64{
		{1, 2, 3, 4, 5},
		{2, 3, 4, 5, 6},
		{6, 7, 8, 9, 10},
	}
	e := NewEngine()
	res := e.Run(Request{
		Groups:  groups,
		Test:    stats.TestKruskalWallis,
		Posthoc: stats.PosthocTukey, // ignored on this path
	})

	if len(res.Comparisons) != 3 {
		t.Fatalf("expected 3 comparisons, got %d", len(res.Comparisons))
	}
	for _, c := range res.Comparisons {
		if c.TestName != "Dunn's (Bonferroni)" {
			t.Errorf("test name = %q, want Dunn's (Bonferroni)", c.TestName)
		}
		raw, err := tests.MannWhitneyU(groups[c.GroupA], groups[c.GroupB])
		if err != nil {
			t.Fatalf("reference Mann-Whitney failed: %v", err)
		}
		want := math.Min(raw.PValue*3, 1.0)
		if math.Abs(c.PValue-want) > 1e-12 {
			t.Errorf("pair (%d,%d): corrected p = %v, want %v", c.GroupA, c.GroupB, c.PValue, want)
		}
	}
}

func TestRun_TukeyReference(t *testing.T) {
	e := NewEngine()
	res := e.Run(Request{
		Groups:  [][]float64{{1, 2, 3, 4, 5}, {2, 3, 4, 5, 6}, {6, 7, 8, 9, 10}},
		Labels:  []string{"A", "B", "C"},
		Test:    stats.TestOneWayANOVA,
		Posthoc: stats.PosthocTukey,
	})

	if math.Abs(res.GlobalStatistic-14.0) > 1e-9 {
		t.Errorf("F = %v, want 14", res.GlobalStatistic)
	}
	if len(res.Comparisons) != 3 {
		t.Fatalf("expected 3 comparisons, got %d", len(res.Comparisons))
	}
	wantP := []float64{0.590770608320337, 0.0008342146374804571, 0.004634080571701671}
	for i, c := range res.Comparisons {
		if c.TestName != "Tukey HSD" {
			t.Errorf("test name = %q", c.TestName)
		}
		if math.Abs(c.PValue-wantP[i]) > 1e-6 {
			t.Errorf("pair (%d,%d): p = %v, want %v", c.GroupA, c.GroupB, c.PValue, wantP[i])
		}
	}
}

func TestRun_DunnettOverridesCompareMode(t *testing.T) {
	e := NewEngine()
	res := e.Run(Request{
		Groups:       [][]float64{{1, 2, 3, 4}, {2, 3, 4, 5}, {7, 8, 9, 10}},
		Test:         stats.TestOneWayANOVA,
		Posthoc:      stats.PosthocDunnett,
		CompareMode:  stats.CompareAllPairs, // overridden by the Dunnett-like option
		ControlIndex: 1,
	})

	if len(res.Comparisons) != 2 {
		t.Fatalf("expected 2 control comparisons, got %d", len(res.Comparisons))
	}
	want := []stats.Pair{{A: 1, B: 0}, {A: 1, B: 2}}
	for i, c := range res.Comparisons {
		if c.GroupA != want[i].A || c.GroupB != want[i].B {
			t.Errorf("comparison %d: pair (%d,%d), want (%d,%d)", i, c.GroupA, c.GroupB, want[i].A, want[i].B)
		}
		if c.TestName != "Bonferroni" {
			t.Errorf("test name = %q", c.TestName)
		}
	}
}

func TestRun_IndicesSurviveCleaning(t *testing.T) {
	nan := math.NaN()
	e := NewEngine()
	res := e.Run(Request{
		Groups: [][]float64{{nan, nan}, {1, 2, 3}, {4, 5, 6}},
		Labels: []string{"dropped", "low", "high"},
		Test:   stats.TestUnpairedT,
	})

	if len(res.Comparisons) != 1 {
		t.Fatalf("expected 1 comparison, got %d", len(res.Comparisons))
	}
	c := res.Comparisons[0]
	if c.GroupA != 1 || c.GroupB != 2 {
		t.Errorf("indices = (%d,%d), want original positions (1,2)", c.GroupA, c.GroupB)
	}
	if c.LabelA != "low" || c.LabelB != "high" {
		t.Errorf("labels = (%q,%q), want (low, high)", c.LabelA, c.LabelB)
	}
}

func TestRun_ControlGroupDropped(t *testing.T) {
	nan := math.NaN()
	e := NewEngine()
	res := e.Run(Request{
		Groups:       [][]float64{{nan, nan}, {1, 2, 3}, {4, 5, 6}, {7, 8, 9}},
		Test:         stats.TestOneWayANOVA,
		Posthoc:      stats.PosthocBonferroni,
		CompareMode:  stats.CompareToControl,
		ControlIndex: 0,
	})

	if !res.Empty() {
		t.Fatal("expected empty result when the control group has no valid data")
	}
	if !strings.Contains(res.Summary, "Control group 0") {
		t.Errorf("summary = %q", res.Summary)
	}
}

func TestRun_TwoGroupExtrasAndTruncationNotes(t *testing.T) {
	e := NewEngine()

	res := e.Run(Request{
		Groups: [][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}},
		Test:   stats.TestUnpairedT,
	})
	if !strings.Contains(res.Summary, "extra group(s) ignored") {
		t.Errorf("expected extra-group note in summary: %q", res.Summary)
	}

	res = e.Run(Request{
		Groups: [][]float64{{1, 2, 3, 4}, {2, 3, 5}},
		Test:   stats.TestPairedT,
	})
	if !strings.Contains(res.Summary, "truncated to 3 pairs") {
		t.Errorf("expected truncation note in summary: %q", res.Summary)
	}
}

func TestRun_Idempotent(t *testing.T) {
	req := Request{
		Groups:  [][]float64{{1.5, 2.5, 3.5, 2.0}, {4.1, 5.2, 3.9, 4.4}, {7.7, 8.1, 9.0, 8.4}},
		Labels:  []string{"a", "b", "c"},
		Test:    stats.TestOneWayANOVA,
		Posthoc: stats.PosthocHolm,
	}
	e := NewEngine()
	first := e.Run(req)
	second := e.Run(req)
	if !reflect.DeepEqual(first, second) {
		t.Error("identical requests must produce identical results")
	}
}

func TestRun_WilcoxonAllZeroDiffsFailsGracefully(t *testing.T) {
	e := NewEngine()
	res := e.Run(Request{
		Groups: [][]float64{{1, 2, 3}, {1, 2, 3}},
		Test:   stats.TestWilcoxon,
	})
	if !res.Empty() {
		t.Fatal("expected empty result")
	}
	if !strings.Contains(res.Summary, "failed") {
		t.Errorf("summary = %q", res.Summary)
	}
}
