// Package fit holds the curve-fitting domain model: the model catalog,
// fitted parameters and the FitResult returned to caller/UI layers.
package fit

import (
	"fmt"
	"math"
	"strings"
)

// ModelKind identifies a fitting model. As with stats.TestKind, the constant
// values are the display names, so parsing and serialization are bijective.
type ModelKind string

const (
	ModelNone       ModelKind = "(None)"
	ModelLinear     ModelKind = "Linear"
	ModelQuadratic  ModelKind = "Quadratic"
	ModelPoly3      ModelKind = "Polynomial (3rd)"
	ModelPoly4      ModelKind = "Polynomial (4th)"
	ModelExpDecay   ModelKind = "Exponential Decay"
	ModelExpGrowth  ModelKind = "Exponential Growth"
	ModelGaussian   ModelKind = "Gaussian"
	ModelLorentzian ModelKind = "Lorentzian"
	ModelSigmoid    ModelKind = "Sigmoidal (Logistic)"
	ModelPower      ModelKind = "Power Law"
	ModelLog        ModelKind = "Logarithmic"
	ModelMichaelis  ModelKind = "Michaelis-Menten"
	ModelHill       ModelKind = "Hill Equation"
	Model4PL        ModelKind = "Dose-Response (4PL)"
)

// FittingModels is the selection-widget catalog, in presentation order.
var FittingModels = []ModelKind{
	ModelNone,
	ModelLinear,
	ModelQuadratic,
	ModelPoly3,
	ModelPoly4,
	ModelExpDecay,
	ModelExpGrowth,
	ModelGaussian,
	ModelLorentzian,
	ModelSigmoid,
	ModelPower,
	ModelLog,
	ModelMichaelis,
	ModelHill,
	Model4PL,
}

// ParseModelKind validates a raw model name at the external boundary.
func ParseModelKind(s string) (ModelKind, error) {
	for _, m := range FittingModels {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown model: %s", s)
}

// FitParameter is a single fitted parameter. StdErr is zero when the
// uncertainty could not be estimated.
type FitParameter struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	StdErr float64 `json:"stderr,omitempty"`
}

func (p FitParameter) String() string {
	if p.StdErr > 0 {
		return fmt.Sprintf("%s = %.6g ± %.3g", p.Name, p.Value, p.StdErr)
	}
	return fmt.Sprintf("%s = %.6g", p.Name, p.Value)
}

// FitResult is the outcome of one curve fit. A failed fit carries
// Success=false and an explanatory Message, never an error at this layer.
type FitResult struct {
	Success     bool           `json:"success"`
	ModelName   string         `json:"model_name"`
	Equation    string         `json:"equation"`
	Parameters  []FitParameter `json:"parameters,omitempty"`
	RSquared    float64        `json:"r_squared"`
	AdjRSquared float64        `json:"adj_r_squared"`
	RMSE        float64        `json:"rmse"`
	AIC         float64        `json:"aic"`
	BIC         float64        `json:"bic"`
	XFit        []float64      `json:"x_fit,omitempty"`
	YFit        []float64      `json:"y_fit,omitempty"`
	Residuals   []float64      `json:"residuals,omitempty"`
	Message     string         `json:"message,omitempty"`
}

// Failed creates an unsuccessful result with the given message.
func Failed(message string) FitResult {
	return FitResult{Message: message}
}

// Sanitized returns a copy safe for JSON serialization. Curve samples can
// hold non-finite values when the model overflows at the margins.
func (r FitResult) Sanitized() FitResult {
	out := r
	out.AIC = jsonSafe(r.AIC)
	out.BIC = jsonSafe(r.BIC)
	out.YFit = make([]float64, len(r.YFit))
	for i, v := range r.YFit {
		out.YFit[i] = jsonSafe(v)
	}
	return out
}

func jsonSafe(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case math.IsInf(v, 1):
		return math.MaxFloat64
	case math.IsInf(v, -1):
		return -math.MaxFloat64
	}
	return v
}

// Summary renders the fit as a text block for report panels.
func (r FitResult) Summary() string {
	if !r.Success {
		return "Fit failed: " + r.Message
	}

	lines := []string{
		"Model: " + r.ModelName,
		"Equation: " + r.Equation,
		"",
		"Parameters:",
	}
	for _, p := range r.Parameters {
		lines = append(lines, "  "+p.String())
	}
	lines = append(lines,
		"",
		fmt.Sprintf("R² = %.6f", r.RSquared),
		fmt.Sprintf("Adjusted R² = %.6f", r.AdjRSquared),
		fmt.Sprintf("RMSE = %.6g", r.RMSE),
		fmt.Sprintf("AIC = %.2f", r.AIC),
		fmt.Sprintf("BIC = %.2f", r.BIC),
	)
	return strings.Join(lines, "\n")
}
