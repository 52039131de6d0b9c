package app

import (
	"context"
	"io"

	fitengine "gofigure/adapters/fit"
	statsengine "gofigure/adapters/stats/engine"
	"gofigure/domain/analysis"
	"gofigure/domain/core"
	"gofigure/domain/fit"
	"gofigure/internal"
	"gofigure/internal/errors"
	"gofigure/ports"
)

// AnalysisService orchestrates the statistics engine, curve fitting and
// persistence
type AnalysisService struct {
	engine   *statsengine.Engine
	fitter   *fitengine.Engine
	repo     ports.AnalysisRepository
	reporter ports.Reporter
	exporter ports.ResultExporter
	logger   *internal.Logger
}

// AnalysisRequest defines inputs for one saved analysis. Test, Posthoc and
// CompareMode are raw display names; the engine resolves them at its
// boundary. The Fit fields are optional and attach a curve fit to the
// record.
type AnalysisRequest struct {
	Name         string
	Groups       [][]float64
	Labels       []string
	Test         string
	Posthoc      string
	CompareMode  string
	ControlIndex int
	FitX         []float64
	FitY         []float64
	FitModel     string
}

// NewAnalysisService creates an analysis service
func NewAnalysisService(engine *statsengine.Engine, fitter *fitengine.Engine, repo ports.AnalysisRepository, reporter ports.Reporter, exporter ports.ResultExporter, logger *internal.Logger) *AnalysisService {
	return &AnalysisService{
		engine:   engine,
		fitter:   fitter,
		repo:     repo,
		reporter: reporter,
		exporter: exporter,
		logger:   logger,
	}
}

// Run executes the requested analysis and persists the outcome. Statistical
// edge cases (insufficient data, unknown names) come back as a saved result
// with an explanatory summary; only input and persistence failures return
// errors.
func (s *AnalysisService) Run(ctx context.Context, req AnalysisRequest) (*analysis.Analysis, error) {
	if len(req.Groups) == 0 {
		return nil, errors.InvalidInput("at least one data group is required")
	}

	a := analysis.New(req.Name)
	a.Test = req.Test
	a.Posthoc = req.Posthoc
	a.CompareMode = req.CompareMode
	a.ControlIndex = req.ControlIndex
	a.Labels = req.Labels
	a.Result = s.engine.RunNamed(req.Groups, req.Labels, req.Test, req.Posthoc, req.CompareMode, req.ControlIndex).Sanitized()

	if req.FitModel != "" {
		fitRes := s.fitter.FitNamed(req.FitX, req.FitY, req.FitModel).Sanitized()
		a.Fit = &fitRes
	}

	if err := s.repo.Save(ctx, a); err != nil {
		return nil, errors.Wrap(err, "failed to save analysis")
	}

	s.logger.Info("analysis %s saved: test=%q comparisons=%d", a.ID, a.Test, len(a.Result.Comparisons))
	return a, nil
}

// Fit runs a standalone curve fit without persisting it
func (s *AnalysisService) Fit(x, y []float64, model string) fit.FitResult {
	return s.fitter.FitNamed(x, y, model)
}

// Get retrieves a saved analysis
func (s *AnalysisService) Get(ctx context.Context, id core.AnalysisID) (*analysis.Analysis, error) {
	return s.repo.Get(ctx, id)
}

// List returns saved analyses, newest first
func (s *AnalysisService) List(ctx context.Context, limit int) ([]*analysis.Analysis, error) {
	return s.repo.List(ctx, limit)
}

// Delete removes a saved analysis
func (s *AnalysisService) Delete(ctx context.Context, id core.AnalysisID) error {
	return s.repo.Delete(ctx, id)
}

// ReportHTML renders a saved analysis as an HTML report
func (s *AnalysisService) ReportHTML(ctx context.Context, id core.AnalysisID) ([]byte, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.reporter.HTML(a), nil
}

// ReportMarkdown renders a saved analysis as Markdown
func (s *AnalysisService) ReportMarkdown(ctx context.Context, id core.AnalysisID) (string, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return s.reporter.Markdown(a), nil
}

// ExportXLSX writes a saved analysis as an Excel workbook to w
func (s *AnalysisService) ExportXLSX(ctx context.Context, id core.AnalysisID, w io.Writer) error {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.exporter.Export(a, w)
}
