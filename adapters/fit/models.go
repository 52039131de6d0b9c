package fit

import (
	"math"

	"github.com/montanaflynn/stats"

	"gofigure/domain/fit"
)

// modelSpec describes one fitting model: how to evaluate it, how to seed the
// optimizer, and how to present it. Polynomial models carry degree >= 0 and
// are solved by linear least squares instead of the optimizer.
type modelSpec struct {
	name      string
	equation  string
	params    []string
	degree    int
	positiveX bool
	eval      func(x float64, p []float64) float64
	guess     func(x, y []float64) []float64
}

func modelFor(kind fit.ModelKind) (modelSpec, bool) {
	spec, ok := models[kind]
	return spec, ok
}

var models = map[fit.ModelKind]modelSpec{
	fit.ModelLinear: {
		name:     "Linear",
		equation: "y = slope·x + intercept",
		params:   []string{"slope", "intercept"},
		degree:   1,
		eval:     polyEval,
	},
	fit.ModelQuadratic: {
		name:     "Quadratic",
		equation: "y = a·x² + b·x + c",
		params:   []string{"a", "b", "c"},
		degree:   2,
		eval:     polyEval,
	},
	fit.ModelPoly3: {
		name:     "Polynomial (3rd degree)",
		equation: "y = c3·x³ + c2·x² + c1·x + c0",
		params:   []string{"c3", "c2", "c1", "c0"},
		degree:   3,
		eval:     polyEval,
	},
	fit.ModelPoly4: {
		name:     "Polynomial (4th degree)",
		equation: "y = c4·x⁴ + c3·x³ + c2·x² + c1·x + c0",
		params:   []string{"c4", "c3", "c2", "c1", "c0"},
		degree:   4,
		eval:     polyEval,
	},
	fit.ModelExpDecay: {
		name:     "Exponential Decay",
		equation: "y = amplitude · exp(-x/decay)",
		params:   []string{"amplitude", "decay"},
		degree:   -1,
		eval: func(x float64, p []float64) float64 {
			return p[0] * math.Exp(-x/p[1])
		},
		guess: guessExpDecay,
	},
	fit.ModelExpGrowth: {
		name:     "Exponential Growth",
		equation: "y = a · exp(k·x) + c",
		params:   []string{"a", "k", "c"},
		degree:   -1,
		eval: func(x float64, p []float64) float64 {
			return p[0]*math.Exp(p[1]*x) + p[2]
		},
		guess: func(x, y []float64) []float64 {
			lo, _ := stats.Min(y)
			return []float64{math.Max(lo, 1e-9), 0.1, 0}
		},
	},
	fit.ModelGaussian: {
		name:     "Gaussian",
		equation: "y = (amplitude/(σ√(2π))) · exp(-(x-center)²/(2σ²))",
		params:   []string{"amplitude", "center", "sigma"},
		degree:   -1,
		eval: func(x float64, p []float64) float64 {
			amp, center, sigma := p[0], p[1], p[2]
			return amp / (sigma * math.Sqrt(2*math.Pi)) * math.Exp(-(x-center)*(x-center)/(2*sigma*sigma))
		},
		guess: func(x, y []float64) []float64 {
			center, sigma, height := peakGuess(x, y)
			return []float64{height * sigma * math.Sqrt(2*math.Pi), center, sigma}
		},
	},
	fit.ModelLorentzian: {
		name:     "Lorentzian",
		equation: "y = (amplitude/π) · [σ / ((x-center)² + σ²)]",
		params:   []string{"amplitude", "center", "sigma"},
		degree:   -1,
		eval: func(x float64, p []float64) float64 {
			amp, center, sigma := p[0], p[1], p[2]
			return amp / math.Pi * sigma / ((x-center)*(x-center) + sigma*sigma)
		},
		guess: func(x, y []float64) []float64 {
			center, sigma, height := peakGuess(x, y)
			return []float64{height * math.Pi * sigma, center, sigma}
		},
	},
	fit.ModelSigmoid: {
		name:     "Sigmoidal (Logistic)",
		equation: "y = L / (1 + exp(-k·(x-x₀))) + b",
		params:   []string{"L", "k", "x0", "b"},
		degree:   -1,
		eval: func(x float64, p []float64) float64 {
			return p[0]/(1+math.Exp(-p[1]*(x-p[2]))) + p[3]
		},
		guess: func(x, y []float64) []float64 {
			lo, _ := stats.Min(y)
			hi, _ := stats.Max(y)
			return []float64{hi - lo, 1.0, midpoint(x), lo}
		},
	},
	fit.ModelPower: {
		name:      "Power Law",
		equation:  "y = amplitude · x^exponent",
		params:    []string{"amplitude", "exponent"},
		degree:    -1,
		positiveX: true,
		eval: func(x float64, p []float64) float64 {
			return p[0] * math.Pow(x, p[1])
		},
		guess: guessPower,
	},
	fit.ModelLog: {
		name:      "Logarithmic",
		equation:  "y = a · ln(x) + b",
		params:    []string{"a", "b"},
		degree:    -1,
		positiveX: true,
		eval: func(x float64, p []float64) float64 {
			return p[0]*math.Log(x) + p[1]
		},
		guess: func(x, y []float64) []float64 {
			xlo, _ := stats.Min(x)
			xhi, _ := stats.Max(x)
			ylo, _ := stats.Min(y)
			yhi, _ := stats.Max(y)
			a := 1.0
			if xlo > 0 && xhi > xlo {
				a = (yhi - ylo) / math.Log(xhi/xlo)
			}
			return []float64{a, ylo}
		},
	},
	fit.ModelMichaelis: {
		name:     "Michaelis-Menten",
		equation: "y = Vmax · x / (Km + x)",
		params:   []string{"Vmax", "Km"},
		degree:   -1,
		eval: func(x float64, p []float64) float64 {
			return p[0] * x / (p[1] + x)
		},
		guess: func(x, y []float64) []float64 {
			hi, _ := stats.Max(y)
			return []float64{hi, midpoint(x)}
		},
	},
	fit.ModelHill: {
		name:     "Hill Equation",
		equation: "y = Vmax · xⁿ / (Kd^n + xⁿ)",
		params:   []string{"Vmax", "Kd", "n"},
		degree:   -1,
		eval: func(x float64, p []float64) float64 {
			vmax, kd, n := p[0], p[1], p[2]
			xn := math.Pow(x, n)
			return vmax * xn / (math.Pow(kd, n) + xn)
		},
		guess: func(x, y []float64) []float64 {
			hi, _ := stats.Max(y)
			return []float64{hi, midpoint(x), 1}
		},
	},
	fit.Model4PL: {
		name:      "4-Parameter Logistic (Dose-Response)",
		equation:  "y = Bottom + (Top-Bottom) / (1 + (EC50/x)^HillSlope)",
		params:    []string{"bottom", "top", "ec50", "hill_slope"},
		degree:    -1,
		positiveX: true,
		eval: func(x float64, p []float64) float64 {
			bottom, top, ec50, slope := p[0], p[1], p[2], p[3]
			return bottom + (top-bottom)/(1+math.Pow(ec50/x, slope))
		},
		guess: func(x, y []float64) []float64 {
			lo, _ := stats.Min(y)
			hi, _ := stats.Max(y)
			return []float64{lo, hi, midpoint(x), 1}
		},
	},
}

func polyEval(x float64, p []float64) float64 {
	v := 0.0
	for _, c := range p {
		v = v*x + c
	}
	return v
}

func midpoint(x []float64) float64 {
	lo, _ := stats.Min(x)
	hi, _ := stats.Max(x)
	return (lo + hi) / 2
}

// peakGuess estimates (center, width, height) for peak-shaped models from
// the tallest sample.
func peakGuess(x, y []float64) (center, sigma, height float64) {
	maxIdx := 0
	for i := range y {
		if y[i] > y[maxIdx] {
			maxIdx = i
		}
	}
	lo, _ := stats.Min(x)
	hi, _ := stats.Max(x)
	sigma = (hi - lo) / 6
	if sigma <= 0 {
		sigma = 1
	}
	base, _ := stats.Min(y)
	return x[maxIdx], sigma, y[maxIdx] - base
}

// guessExpDecay seeds amplitude and decay from a log-linear regression when
// every y is positive, otherwise falls back to data extents.
func guessExpDecay(x, y []float64) []float64 {
	allPos := true
	for _, v := range y {
		if v <= 0 {
			allPos = false
			break
		}
	}
	if allPos {
		logy := make([]float64, len(y))
		for i, v := range y {
			logy[i] = math.Log(v)
		}
		slope, intercept := simpleRegression(x, logy)
		if slope < 0 {
			return []float64{math.Exp(intercept), -1 / slope}
		}
	}
	hi, _ := stats.Max(y)
	xlo, _ := stats.Min(x)
	xhi, _ := stats.Max(x)
	span := xhi - xlo
	if span <= 0 {
		span = 1
	}
	return []float64{hi, span}
}

func guessPower(x, y []float64) []float64 {
	for i := range x {
		if x[i] <= 0 || y[i] <= 0 {
			return []float64{1, 1}
		}
	}
	logx := make([]float64, len(x))
	logy := make([]float64, len(y))
	for i := range x {
		logx[i] = math.Log(x[i])
		logy[i] = math.Log(y[i])
	}
	slope, intercept := simpleRegression(logx, logy)
	return []float64{math.Exp(intercept), slope}
}

func simpleRegression(x, y []float64) (slope, intercept float64) {
	mx, _ := stats.Mean(x)
	my, _ := stats.Mean(y)
	var num, den float64
	for i := range x {
		num += (x[i] - mx) * (y[i] - my)
		den += (x[i] - mx) * (x[i] - mx)
	}
	if den == 0 {
		return 0, my
	}
	return num / den, my - num/den*mx
}
