package stats

import (
	"math"
	"reflect"
	"testing"
)

func TestPlanPairs_AllPairs(t *testing.T) {
	got := PlanPairs(4, CompareAllPairs, 0)
	want := []Pair{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PlanPairs(4, all pairs) = %v, want %v", got, want)
	}
}

func TestPlanPairs_CompareToControl(t *testing.T) {
	got := PlanPairs(4, CompareToControl, 1)
	want := []Pair{{1, 0}, {1, 2}, {1, 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PlanPairs(4, control=1) = %v, want %v", got, want)
	}
}

func TestPlanPairs_NoDuplicates(t *testing.T) {
	for n := 2; n <= 8; n++ {
		pairs := PlanPairs(n, CompareAllPairs, 0)
		if len(pairs) != n*(n-1)/2 {
			t.Errorf("n=%d: got %d pairs, want %d", n, len(pairs), n*(n-1)/2)
		}
		seen := map[Pair]bool{}
		for _, p := range pairs {
			if seen[p] {
				t.Errorf("n=%d: duplicate pair %v", n, p)
			}
			seen[p] = true
		}
	}
}

func TestPlanPairs_TooFewGroups(t *testing.T) {
	if got := PlanPairs(1, CompareAllPairs, 0); got != nil {
		t.Errorf("PlanPairs(1) = %v, want nil", got)
	}
	if got := PlanPairs(0, CompareToControl, 0); got != nil {
		t.Errorf("PlanPairs(0) = %v, want nil", got)
	}
}

func TestCleanGroups(t *testing.T) {
	nan := math.NaN()
	groups := [][]float64{
		{1, 2, nan, 3},
		{nan, nan, 5},
		{4, 5, 6},
		{},
	}

	cleaned, kept := CleanGroups(groups)
	if len(cleaned) != 2 {
		t.Fatalf("expected 2 surviving groups, got %d", len(cleaned))
	}
	if !reflect.DeepEqual(kept, []int{0, 2}) {
		t.Errorf("kept = %v, want [0 2]", kept)
	}
	if !reflect.DeepEqual(cleaned[0], []float64{1, 2, 3}) {
		t.Errorf("cleaned[0] = %v, want [1 2 3]", cleaned[0])
	}
	if !reflect.DeepEqual(cleaned[1], []float64{4, 5, 6}) {
		t.Errorf("cleaned[1] = %v, want [4 5 6]", cleaned[1])
	}
}

func TestCleanGroups_DropsInfinities(t *testing.T) {
	cleaned, kept := CleanGroups([][]float64{{1, math.Inf(1), 2}, {3, math.Inf(-1), 4}})
	if len(cleaned) != 2 || len(kept) != 2 {
		t.Fatalf("expected both groups to survive, got %d", len(cleaned))
	}
	for i, g := range cleaned {
		if len(g) != 2 {
			t.Errorf("group %d: expected 2 finite values, got %v", i, g)
		}
	}
}
