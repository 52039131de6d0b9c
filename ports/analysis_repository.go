package ports

import (
	"context"

	"gofigure/domain/analysis"
	"gofigure/domain/core"
)

// AnalysisRepository defines the interface for analysis persistence
type AnalysisRepository interface {
	// Save persists an analysis record, replacing any existing record with
	// the same ID
	Save(ctx context.Context, a *analysis.Analysis) error

	// Get retrieves an analysis by ID
	Get(ctx context.Context, id core.AnalysisID) (*analysis.Analysis, error)

	// List returns analyses ordered by creation time descending, optionally
	// limited
	List(ctx context.Context, limit int) ([]*analysis.Analysis, error)

	// Delete removes an analysis by ID
	Delete(ctx context.Context, id core.AnalysisID) error
}
