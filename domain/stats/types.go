package stats

import "fmt"

// TestKind identifies a statistical test. The constant values are the
// display names shown to callers, so parsing and serialization are bijective.
type TestKind string

const (
	TestNone          TestKind = "(None)"
	TestUnpairedT     TestKind = "Unpaired t-test"
	TestPairedT       TestKind = "Paired t-test"
	TestWelchT        TestKind = "Welch's t-test"
	TestMannWhitney   TestKind = "Mann-Whitney U"
	TestWilcoxon      TestKind = "Wilcoxon signed-rank"
	TestOneWayANOVA   TestKind = "One-way ANOVA"
	TestKruskalWallis TestKind = "Kruskal-Wallis"
)

// PosthocMethod identifies a multiple-comparison correction method.
type PosthocMethod string

const (
	PosthocTukey      PosthocMethod = "Tukey HSD"
	PosthocBonferroni PosthocMethod = "Bonferroni"
	PosthocHolm       PosthocMethod = "Holm-Bonferroni"
	PosthocDunnett    PosthocMethod = "Compare to control (Dunnett-like)"
)

// CompareMode selects which group pairs are tested.
type CompareMode string

const (
	CompareAllPairs  CompareMode = "All pairs"
	CompareToControl CompareMode = "Compare to control"
)

// DisplayMode selects how a p-value is rendered on a figure.
type DisplayMode string

const (
	DisplayStars DisplayMode = "stars"
	DisplayValue DisplayMode = "value"
	DisplayBoth  DisplayMode = "both"
)

// Catalogs exposed to caller/UI layers. Order matters: it is the order
// presented in selection widgets.
var (
	StatTests = []TestKind{
		TestNone,
		TestUnpairedT,
		TestPairedT,
		TestWelchT,
		TestMannWhitney,
		TestWilcoxon,
		TestOneWayANOVA,
		TestKruskalWallis,
	}

	PosthocMethods = []PosthocMethod{
		PosthocTukey,
		PosthocBonferroni,
		PosthocHolm,
		PosthocDunnett,
	}

	CompareModes = []CompareMode{
		CompareAllPairs,
		CompareToControl,
	}

	DisplayModes = []DisplayMode{
		DisplayStars,
		DisplayValue,
		DisplayBoth,
	}
)

// ParseTestKind validates a raw test name at the external boundary.
func ParseTestKind(s string) (TestKind, error) {
	for _, t := range StatTests {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown test: %s", s)
}

// ParsePosthocMethod validates a raw post-hoc method name.
func ParsePosthocMethod(s string) (PosthocMethod, error) {
	for _, m := range PosthocMethods {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown post-hoc method: %s", s)
}

// ParseCompareMode validates a raw comparison mode name.
func ParseCompareMode(s string) (CompareMode, error) {
	for _, m := range CompareModes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown compare mode: %s", s)
}

// ParseDisplayMode validates a raw display mode name.
func ParseDisplayMode(s string) (DisplayMode, error) {
	for _, m := range DisplayModes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown display mode: %s", s)
}

// IsTwoGroup reports whether the test compares exactly two groups.
func (t TestKind) IsTwoGroup() bool {
	switch t {
	case TestUnpairedT, TestPairedT, TestWelchT, TestMannWhitney, TestWilcoxon:
		return true
	}
	return false
}

// IsPaired reports whether the test assumes paired observations.
func (t TestKind) IsPaired() bool {
	return t == TestPairedT || t == TestWilcoxon
}

// ComparisonResult is one pairwise test outcome. GroupA and GroupB are
// 0-based positions in the original, uncleaned group list. Never mutated
// after creation.
type ComparisonResult struct {
	GroupA    int     `json:"group_a"`
	GroupB    int     `json:"group_b"`
	LabelA    string  `json:"label_a"`
	LabelB    string  `json:"label_b"`
	PValue    float64 `json:"p_value"`
	Stars     string  `json:"stars"`
	TestName  string  `json:"test_name"`
	Statistic float64 `json:"statistic"`
}

// Display renders the comparison's p-value for bracket annotation.
func (c ComparisonResult) Display(mode DisplayMode) string {
	return DisplayP(c.PValue, mode)
}

// StatsResult is the full outcome of one analysis invocation. Immutable
// once returned. Insufficient data and unknown test names surface here as
// an empty Comparisons list plus an explanatory Summary, never as an error.
type StatsResult struct {
	TestName        string             `json:"test_name"`
	GlobalStatistic float64            `json:"global_statistic"`
	GlobalP         float64            `json:"global_p"`
	Comparisons     []ComparisonResult `json:"comparisons"`
	Summary         string             `json:"summary"`
}

// NewStatsResult creates an empty result for the given test name with the
// neutral global p of 1.
func NewStatsResult(testName string) StatsResult {
	return StatsResult{TestName: testName, GlobalP: 1.0}
}

// Empty reports whether the analysis produced no comparisons.
func (r StatsResult) Empty() bool {
	return len(r.Comparisons) == 0
}
