package testkit

import (
	"reflect"
	"testing"
)

func TestGeneratorDeterminism(t *testing.T) {
	a := NewGenerator(7).ShiftedGroups(10, []float64{0, 1, 2}, 0.5)
	b := NewGenerator(7).ShiftedGroups(10, []float64{0, 1, 2}, 0.5)
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed must produce identical groups")
	}
	if len(a) != 3 || len(a[0]) != 10 {
		t.Errorf("unexpected shape: %d groups of %d", len(a), len(a[0]))
	}
}

func TestDoseResponseShape(t *testing.T) {
	x, y := NewGenerator(1).DoseResponse(12, 0, 100, 5, 1, 0)
	if len(x) != 12 || len(y) != 12 {
		t.Fatalf("lengths = %d, %d", len(x), len(y))
	}
	for i := 1; i < len(x); i++ {
		if x[i] <= x[i-1] {
			t.Fatal("doses must be strictly increasing")
		}
	}
	// Noise-free curve is monotone from bottom toward top.
	if y[0] > y[len(y)-1] {
		t.Error("response must rise with dose for positive slope")
	}
}

func TestGroupLabels(t *testing.T) {
	got := GroupLabels(3)
	want := []string{"Group 1", "Group 2", "Group 3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("labels = %v", got)
	}
}
