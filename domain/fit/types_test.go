package fit

import (
	"strings"
	"testing"
)

func TestParseModelKind(t *testing.T) {
	for _, m := range FittingModels {
		got, err := ParseModelKind(string(m))
		if err != nil || got != m {
			t.Errorf("ParseModelKind(%q) = %v, %v", m, got, err)
		}
	}
	if _, err := ParseModelKind("Cubic Spline"); err == nil {
		t.Error("expected error for unknown model name")
	}
}

func TestFitParameterString(t *testing.T) {
	p := FitParameter{Name: "slope", Value: 2.5, StdErr: 0.125}
	if got := p.String(); got != "slope = 2.5 ± 0.125" {
		t.Errorf("String() = %q", got)
	}
	p = FitParameter{Name: "intercept", Value: 1}
	if got := p.String(); got != "intercept = 1" {
		t.Errorf("String() without stderr = %q", got)
	}
}

func TestSummary(t *testing.T) {
	r := Failed("Not enough data points")
	if got := r.Summary(); got != "Fit failed: Not enough data points" {
		t.Errorf("failed summary = %q", got)
	}

	r = FitResult{
		Success:    true,
		ModelName:  "Linear",
		Equation:   "y = slope·x + intercept",
		Parameters: []FitParameter{{Name: "slope", Value: 2}},
		RSquared:   0.998877,
	}
	s := r.Summary()
	for _, want := range []string{"Model: Linear", "slope = 2", "R² = 0.998877"} {
		if !strings.Contains(s, want) {
			t.Errorf("summary missing %q:\n%s", want, s)
		}
	}
}
