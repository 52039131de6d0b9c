package tests

import (
	"fmt"
	"math"
)

// TukeyResult holds the full pairwise matrices of a simultaneous Tukey HSD
// procedure. Statistic[i][j] is the studentized range statistic q for
// groups i and j; PValue[i][j] the family-wise adjusted p-value. Both
// matrices are symmetric with zero diagonals (p=1 on the diagonal).
type TukeyResult struct {
	Statistic [][]float64
	PValue    [][]float64
}

// TukeyHSD runs the Tukey-Kramer honestly-significant-difference procedure
// once across all groups. The error variance is the ANOVA pooled
// within-group mean square; zero pooled variance is a failure the caller
// is expected to handle with a fallback correction.
func TukeyHSD(groups [][]float64) (*TukeyResult, error) {
	k := len(groups)
	if k < 2 {
		return nil, fmt.Errorf("Tukey HSD needs at least 2 groups, got %d", k)
	}

	omnibus, err := OneWayANOVA(groups)
	if err != nil {
		return nil, err
	}
	if omnibus.MSWithin == 0 {
		return nil, fmt.Errorf("Tukey HSD: zero within-group variance")
	}

	means := make([]float64, k)
	for i, g := range groups {
		means[i] = mean(g)
	}

	res := &TukeyResult{
		Statistic: make([][]float64, k),
		PValue:    make([][]float64, k),
	}
	for i := range res.Statistic {
		res.Statistic[i] = make([]float64, k)
		res.PValue[i] = make([]float64, k)
		res.PValue[i][i] = 1
	}

	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			ni, nj := float64(len(groups[i])), float64(len(groups[j]))
			// Tukey-Kramer standard error for unequal group sizes.
			se := math.Sqrt(omnibus.MSWithin / 2 * (1/ni + 1/nj))
			q := math.Abs(means[i]-means[j]) / se
			p := clampP(1 - studentizedRangeCDF(q, float64(k), omnibus.DFWithin))

			res.Statistic[i][j], res.Statistic[j][i] = q, q
			res.PValue[i][j], res.PValue[j][i] = p, p
		}
	}
	return res, nil
}

// 64-point Gauss-Legendre nodes and weights on [-1, 1], computed once.
var glNodes, glWeights = gaussLegendre(64)

// gaussLegendre computes quadrature nodes as Legendre polynomial roots by
// Newton iteration.
func gaussLegendre(n int) ([]float64, []float64) {
	nodes := make([]float64, n)
	weights := make([]float64, n)
	for i := 1; i <= n; i++ {
		x := math.Cos(math.Pi * (float64(i) - 0.25) / (float64(n) + 0.5))
		var dp float64
		for iter := 0; iter < 100; iter++ {
			p0, p1 := 1.0, x
			for k := 2; k <= n; k++ {
				p0, p1 = p1, ((2*float64(k)-1)*x*p1-(float64(k)-1)*p0)/float64(k)
			}
			dp = float64(n) * (x*p1 - p0) / (x*x - 1)
			dx := p1 / dp
			x -= dx
			if math.Abs(dx) < 1e-15 {
				break
			}
		}
		nodes[i-1] = x
		weights[i-1] = 2 / ((1 - x*x) * dp * dp)
	}
	return nodes, weights
}

func normPDF(z float64) float64 {
	return math.Exp(-0.5*z*z) / math.Sqrt(2*math.Pi)
}

// rangeCDF is P(range of k independent standard normals < q).
func rangeCDF(q, k float64) float64 {
	if q <= 0 {
		return 0
	}
	const lo, hi = -8.0, 8.0
	halfWidth := (hi - lo) / 2
	mid := (hi + lo) / 2
	sum := 0.0
	for i, x := range glNodes {
		z := mid + halfWidth*x
		sum += glWeights[i] * normPDF(z) * math.Pow(normCDF(z)-normCDF(z-q), k-1)
	}
	return math.Min(1, k*halfWidth*sum)
}

// studentizedRangeCDF is P(Q < q) for the studentized range of k groups
// with df error degrees of freedom, integrating the normal range CDF over
// the scale distribution sqrt(chi2_df/df). Large df collapses to the pure
// normal range.
func studentizedRangeCDF(q, k, df float64) float64 {
	if q <= 0 {
		return 0
	}
	if df > 2000 {
		return rangeCDF(q, k)
	}

	// Scale density: f(s) = c * s^(df-1) * exp(-df*s^2/2), computed in log
	// space to survive large df.
	lg, _ := math.Lgamma(df / 2)
	logC := df/2*math.Log(df) - lg - (df/2-1)*math.Log(2)

	// The scale concentrates around 1 with spread ~1/sqrt(2 df).
	halfSpan := 12 / math.Sqrt(2*df)
	lo := math.Max(0, 1-halfSpan)
	hi := 1 + halfSpan
	halfWidth := (hi - lo) / 2
	mid := (hi + lo) / 2

	sum := 0.0
	for i, x := range glNodes {
		s := mid + halfWidth*x
		density := math.Exp(logC + (df-1)*math.Log(s) - df*s*s/2)
		sum += glWeights[i] * density * rangeCDF(q*s, k)
	}
	return math.Max(0, math.Min(1, halfWidth*sum))
}
