// Package fit implements the curve-fitting engine. Polynomial models are
// solved directly by linear least squares; every other model minimizes the
// sum of squared residuals from a data-driven initial guess.
package fit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"

	"gofigure/domain/fit"
)

const curvePoints = 200

// Engine fits curves to (x, y) data. Stateless; every call is a pure
// function of its inputs.
type Engine struct{}

// NewEngine creates a new fitting engine
func NewEngine() *Engine {
	return &Engine{}
}

// Fit fits the data to the given model, sampling the fitted curve over the
// data range extended by a 5% margin on each side.
func (e *Engine) Fit(x, y []float64, model fit.ModelKind) fit.FitResult {
	return e.run(x, y, model, 0, 0, false)
}

// FitRange is Fit with an explicit sampling range for the fitted curve,
// used when the caller wants extrapolation beyond the data.
func (e *Engine) FitRange(x, y []float64, model fit.ModelKind, xMin, xMax float64) fit.FitResult {
	return e.run(x, y, model, xMin, xMax, true)
}

// FitNamed is the raw-string boundary. An unrecognized model name behaves
// like no selection at all.
func (e *Engine) FitNamed(x, y []float64, model string) fit.FitResult {
	kind, err := fit.ParseModelKind(model)
	if err != nil {
		return fit.Failed("No model selected")
	}
	return e.Fit(x, y, kind)
}

func (e *Engine) run(x, y []float64, model fit.ModelKind, xMin, xMax float64, haveRange bool) fit.FitResult {
	x, y = dropInvalidPairs(x, y)
	if len(x) < 2 {
		return fit.Failed("Not enough data points")
	}
	if model == fit.ModelNone {
		return fit.Failed("No model selected")
	}
	spec, ok := modelFor(model)
	if !ok {
		return fit.Failed(fmt.Sprintf("Unknown model: %s", model))
	}
	if spec.positiveX {
		for _, v := range x {
			if v <= 0 {
				return fit.Failed(fmt.Sprintf("%s requires positive x values", spec.name))
			}
		}
	}

	var (
		params []float64
		err    error
	)
	if spec.degree >= 0 {
		params, err = polyFit(x, y, spec.degree)
	} else {
		params, err = minimizeSSE(x, y, spec)
	}
	if err != nil {
		return fit.Failed(err.Error())
	}

	result := fit.FitResult{
		Success:   true,
		ModelName: spec.name,
		Equation:  spec.equation,
	}

	yPred := make([]float64, len(x))
	residuals := make([]float64, len(x))
	var ssRes float64
	for i := range x {
		yPred[i] = spec.eval(x[i], params)
		residuals[i] = y[i] - yPred[i]
		ssRes += residuals[i] * residuals[i]
	}
	var meanY float64
	for _, v := range y {
		meanY += v
	}
	meanY /= float64(len(y))
	var ssTot float64
	for _, v := range y {
		ssTot += (v - meanY) * (v - meanY)
	}

	n := float64(len(y))
	p := float64(len(params))
	if ssTot > 0 {
		result.RSquared = 1 - ssRes/ssTot
	}
	if len(y) > len(params)+1 {
		result.AdjRSquared = 1 - (1-result.RSquared)*(n-1)/(n-p-1)
	}
	result.RMSE = math.Sqrt(ssRes / n)

	// log of the per-point residual variance; floored so an exact fit does
	// not produce -Inf in serialized results.
	logVar := math.Log(math.Max(ssRes/n, 1e-300))
	result.AIC = n*logVar + 2*p
	result.BIC = n*logVar + p*math.Log(n)

	stderr := paramStdErr(x, spec, params, ssRes)
	result.Parameters = make([]fit.FitParameter, len(params))
	for i, name := range spec.params {
		result.Parameters[i] = fit.FitParameter{Name: name, Value: params[i], StdErr: stderr[i]}
	}

	if !haveRange {
		xMin, xMax = x[0], x[0]
		for _, v := range x {
			xMin = math.Min(xMin, v)
			xMax = math.Max(xMax, v)
		}
		margin := (xMax - xMin) * 0.05
		xMin -= margin
		xMax += margin
	}
	if spec.positiveX && xMin <= 0 {
		xMin = smallestPositive(x)
	}
	result.XFit, result.YFit = sampleCurve(spec, params, xMin, xMax)
	result.Residuals = residuals
	return result
}

// dropInvalidPairs removes every (x, y) pair where either value is NaN or
// infinite.
func dropInvalidPairs(x, y []float64) ([]float64, []float64) {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	cx := make([]float64, 0, n)
	cy := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) || math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			continue
		}
		cx = append(cx, x[i])
		cy = append(cy, y[i])
	}
	return cx, cy
}

// polyFit solves the degree-d polynomial least-squares problem, returning
// coefficients ordered from the highest power down.
func polyFit(x, y []float64, degree int) ([]float64, error) {
	cols := degree + 1
	if len(x) < cols {
		return nil, fmt.Errorf("polynomial of degree %d needs at least %d points, have %d", degree, cols, len(x))
	}

	a := mat.NewDense(len(x), cols, nil)
	for i, v := range x {
		pow := 1.0
		for j := cols - 1; j >= 0; j-- {
			a.Set(i, j, pow)
			pow *= v
		}
	}
	b := mat.NewVecDense(len(y), y)

	var qr mat.QR
	qr.Factorize(a)
	var coef mat.VecDense
	if err := qr.SolveVecTo(&coef, false, b); err != nil {
		return nil, fmt.Errorf("least squares solve: %w", err)
	}

	out := make([]float64, cols)
	copy(out, coef.RawVector().Data)
	return out, nil
}

// minimizeSSE fits a nonlinear model by Nelder-Mead minimization of the sum
// of squared residuals, seeded by the model's guess heuristic.
func minimizeSSE(x, y []float64, spec modelSpec) ([]float64, error) {
	problem := optimize.Problem{
		Func: func(p []float64) float64 {
			var sse float64
			for i := range x {
				r := y[i] - spec.eval(x[i], p)
				if math.IsNaN(r) || math.IsInf(r, 0) {
					return math.Inf(1)
				}
				sse += r * r
			}
			return sse
		},
	}

	initial := spec.guess(x, y)
	result, err := optimize.Minimize(problem, initial, nil, &optimize.NelderMead{})
	if err != nil {
		return nil, fmt.Errorf("fit did not converge: %w", err)
	}
	if math.IsNaN(result.F) || math.IsInf(result.F, 0) {
		return nil, fmt.Errorf("fit did not converge")
	}
	return result.X, nil
}

// paramStdErr estimates parameter standard errors from the residual
// variance and a finite-difference Jacobian at the optimum. Returns zeros
// when the normal matrix is singular or there are no residual degrees of
// freedom.
func paramStdErr(x []float64, spec modelSpec, params []float64, ssRes float64) []float64 {
	out := make([]float64, len(params))
	dof := len(x) - len(params)
	if dof <= 0 {
		return out
	}

	jac := mat.NewDense(len(x), len(params), nil)
	for j := range params {
		h := 1e-6 * math.Max(math.Abs(params[j]), 1e-6)
		hi := append([]float64(nil), params...)
		lo := append([]float64(nil), params...)
		hi[j] += h
		lo[j] -= h
		for i, v := range x {
			jac.Set(i, j, (spec.eval(v, hi)-spec.eval(v, lo))/(2*h))
		}
	}

	var jtj mat.Dense
	jtj.Mul(jac.T(), jac)
	var inv mat.Dense
	if err := inv.Inverse(&jtj); err != nil {
		return out
	}

	s2 := ssRes / float64(dof)
	for j := range params {
		v := inv.At(j, j) * s2
		if v > 0 {
			out[j] = math.Sqrt(v)
		}
	}
	return out
}

func smallestPositive(x []float64) float64 {
	best := math.Inf(1)
	for _, v := range x {
		if v > 0 && v < best {
			best = v
		}
	}
	return best
}

// sampleCurve evaluates the fitted model on an even grid for plotting.
func sampleCurve(spec modelSpec, params []float64, xMin, xMax float64) ([]float64, []float64) {
	xs := make([]float64, curvePoints)
	ys := make([]float64, curvePoints)
	step := (xMax - xMin) / float64(curvePoints-1)
	for i := range xs {
		xs[i] = xMin + float64(i)*step
		ys[i] = spec.eval(xs[i], params)
	}
	return xs, ys
}
