package tests

import "sort"

// rankAll assigns 1-based ranks to vals, averaging tied runs. The second
// return value is the tie term sum(t^3 - t) over tied runs, used in the
// variance corrections of the rank-based tests.
func rankAll(vals []float64) ([]float64, float64) {
	n := len(vals)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return vals[idx[i]] < vals[idx[j]] })

	ranks := make([]float64, n)
	tieSum := 0.0
	for i := 0; i < n; {
		j := i
		for j < n && vals[idx[j]] == vals[idx[i]] {
			j++
		}
		avg := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			ranks[idx[k]] = avg
		}
		if t := float64(j - i); t > 1 {
			tieSum += t*t*t - t
		}
		i = j
	}
	return ranks, tieSum
}
