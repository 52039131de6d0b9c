package api

import (
	"encoding/json"
	"net/http"

	"gofigure/internal/errors"
)

// analysisRequest is the POST /api/analyses body
type analysisRequest struct {
	Name         string      `json:"name"`
	Groups       [][]float64 `json:"groups"`
	Labels       []string    `json:"labels"`
	Test         string      `json:"test"`
	Posthoc      string      `json:"posthoc"`
	CompareMode  string      `json:"compare_mode"`
	ControlIndex int         `json:"control_index"`
	FitX         []float64   `json:"fit_x,omitempty"`
	FitY         []float64   `json:"fit_y,omitempty"`
	FitModel     string      `json:"fit_model,omitempty"`
}

// fitRequest is the POST /api/fits body
type fitRequest struct {
	X     []float64 `json:"x"`
	Y     []float64 `json:"y"`
	Model string    `json:"model"`
}

// batchRequest is the POST /api/batch body
type batchRequest struct {
	Items []analysisRequest `json:"items"`
}

// catalogsResponse lists the selection-widget catalogs
type catalogsResponse struct {
	Tests         []string `json:"tests"`
	Posthoc       []string `json:"posthoc"`
	CompareModes  []string `json:"compare_modes"`
	DisplayModes  []string `json:"display_modes"`
	FittingModels []string `json:"fitting_models"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeNotFound:
		status = http.StatusNotFound
	case errors.CodeInvalidInput, errors.CodeValidationError:
		status = http.StatusBadRequest
	}
	respondJSON(w, status, errorResponse{Error: err.Error(), Code: errors.GetCode(err)})
}
