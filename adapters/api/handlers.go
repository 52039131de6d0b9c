package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	statsengine "gofigure/adapters/stats/engine"
	"gofigure/app"
	"gofigure/domain/core"
	"gofigure/domain/fit"
	"gofigure/domain/stats"
	"gofigure/internal/errors"
)

// handleCatalogs returns the selection catalogs for caller/UI layers
func (a *App) handleCatalogs(w http.ResponseWriter, r *http.Request) {
	resp := catalogsResponse{}
	for _, t := range stats.StatTests {
		resp.Tests = append(resp.Tests, string(t))
	}
	for _, m := range stats.PosthocMethods {
		resp.Posthoc = append(resp.Posthoc, string(m))
	}
	for _, m := range stats.CompareModes {
		resp.CompareModes = append(resp.CompareModes, string(m))
	}
	for _, m := range stats.DisplayModes {
		resp.DisplayModes = append(resp.DisplayModes, string(m))
	}
	for _, m := range fit.FittingModels {
		resp.FittingModels = append(resp.FittingModels, string(m))
	}
	respondJSON(w, http.StatusOK, resp)
}

// handleRunAnalysis runs and persists one analysis
func (a *App) handleRunAnalysis(w http.ResponseWriter, r *http.Request) {
	var req analysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.InvalidInput("invalid request body"))
		return
	}

	record, err := a.service.Run(r.Context(), app.AnalysisRequest{
		Name:         req.Name,
		Groups:       req.Groups,
		Labels:       req.Labels,
		Test:         req.Test,
		Posthoc:      req.Posthoc,
		CompareMode:  req.CompareMode,
		ControlIndex: req.ControlIndex,
		FitX:         req.FitX,
		FitY:         req.FitY,
		FitModel:     req.FitModel,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, record)
}

// handleListAnalyses lists saved analyses
func (a *App) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	records, err := a.service.List(r.Context(), 100)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// handleGetAnalysis returns one saved analysis
func (a *App) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	record, err := a.service.Get(r.Context(), core.AnalysisID(chi.URLParam(r, "id")))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, record)
}

// handleDeleteAnalysis removes a saved analysis
func (a *App) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	if err := a.service.Delete(r.Context(), core.AnalysisID(chi.URLParam(r, "id"))); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleReport renders a saved analysis as HTML
func (a *App) handleReport(w http.ResponseWriter, r *http.Request) {
	html, err := a.service.ReportHTML(r.Context(), core.AnalysisID(chi.URLParam(r, "id")))
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(html)
}

// handleExport streams a saved analysis as an xlsx workbook
func (a *App) handleExport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="analysis-`+id+`.xlsx"`)
	if err := a.service.ExportXLSX(r.Context(), core.AnalysisID(id), w); err != nil {
		a.logger.Error("export failed: %v", err)
	}
}

// handleRunFit runs a standalone curve fit without persistence
func (a *App) handleRunFit(w http.ResponseWriter, r *http.Request) {
	var req fitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.InvalidInput("invalid request body"))
		return
	}
	respondJSON(w, http.StatusOK, a.service.Fit(req.X, req.Y, req.Model).Sanitized())
}

// handleBatch runs many datasets through the engine concurrently
func (a *App) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.InvalidInput("invalid request body"))
		return
	}

	items := make([]app.BatchItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = app.BatchItem{
			Name: item.Name,
			Request: statsengine.Request{
				Groups:       item.Groups,
				Labels:       item.Labels,
				Test:         stats.TestKind(item.Test),
				Posthoc:      stats.PosthocMethod(item.Posthoc),
				CompareMode:  stats.CompareMode(item.CompareMode),
				ControlIndex: item.ControlIndex,
			},
		}
	}

	results, err := a.batch.RunAll(r.Context(), items)
	if err != nil {
		respondError(w, err)
		return
	}
	sanitized := make([]stats.StatsResult, len(results))
	for i, res := range results {
		sanitized[i] = res.Sanitized()
	}
	respondJSON(w, http.StatusOK, sanitized)
}
