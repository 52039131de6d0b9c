// Package memory provides in-memory adapter implementations, used when no
// database is configured and throughout the test suite.
package memory

import (
	"context"
	"sort"
	"sync"

	"gofigure/domain/analysis"
	"gofigure/domain/core"
	"gofigure/internal/errors"
	"gofigure/ports"
)

// AnalysisRepositoryImpl implements AnalysisRepository in process memory
type AnalysisRepositoryImpl struct {
	mu      sync.RWMutex
	records map[core.AnalysisID]*analysis.Analysis
}

// NewAnalysisRepository creates a new in-memory analysis repository
func NewAnalysisRepository() ports.AnalysisRepository {
	return &AnalysisRepositoryImpl{records: make(map[core.AnalysisID]*analysis.Analysis)}
}

// Save persists an analysis record
func (r *AnalysisRepositoryImpl) Save(_ context.Context, a *analysis.Analysis) error {
	if a.ID.String() == "" {
		return errors.InvalidInput("analysis ID is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *a
	r.records[a.ID] = &stored
	return nil
}

// Get retrieves an analysis by ID
func (r *AnalysisRepositoryImpl) Get(_ context.Context, id core.AnalysisID) (*analysis.Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.records[id]
	if !ok {
		return nil, errors.NotFound("analysis")
	}
	out := *stored
	return &out, nil
}

// List returns analyses ordered by creation time descending
func (r *AnalysisRepositoryImpl) List(_ context.Context, limit int) ([]*analysis.Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*analysis.Analysis, 0, len(r.records))
	for _, stored := range r.records {
		copied := *stored
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[j].CreatedAt.Before(out[i].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Delete removes an analysis by ID
func (r *AnalysisRepositoryImpl) Delete(_ context.Context, id core.AnalysisID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return errors.NotFound("analysis")
	}
	delete(r.records, id)
	return nil
}
