package stats

// Pair is one (i, j) group pair scheduled for comparison.
type Pair struct {
	A int
	B int
}

// PlanPairs produces the ordered list of group pairs to test across n
// groups. All-pairs mode yields every i<j pair in lexicographic order;
// compare-to-control yields (control, j) for every j != control in
// ascending j order. No pair is duplicated.
func PlanPairs(n int, mode CompareMode, control int) []Pair {
	if n < 2 {
		return nil
	}
	if mode == CompareToControl {
		pairs := make([]Pair, 0, n-1)
		for j := 0; j < n; j++ {
			if j == control {
				continue
			}
			pairs = append(pairs, Pair{A: control, B: j})
		}
		return pairs
	}

	pairs := make([]Pair, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, Pair{A: i, B: j})
		}
	}
	return pairs
}
