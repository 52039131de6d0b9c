// Package postgres implements repositories over PostgreSQL via sqlx.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"

	"gofigure/domain/analysis"
	"gofigure/domain/core"
	"gofigure/internal/errors"
	"gofigure/ports"
)

// AnalysisRepositoryImpl implements AnalysisRepository for PostgreSQL
type AnalysisRepositoryImpl struct {
	db *sqlx.DB
}

// NewAnalysisRepository creates a new PostgreSQL analysis repository
func NewAnalysisRepository(db *sqlx.DB) ports.AnalysisRepository {
	return &AnalysisRepositoryImpl{db: db}
}

// EnsureSchema creates the analyses table if it does not exist
func (r *AnalysisRepositoryImpl) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS analyses (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			test          TEXT NOT NULL,
			posthoc       TEXT NOT NULL DEFAULT '',
			compare_mode  TEXT NOT NULL DEFAULT '',
			control_index INTEGER NOT NULL DEFAULT 0,
			labels        JSONB NOT NULL DEFAULT '[]',
			result        JSONB NOT NULL,
			fit           JSONB,
			created_at    TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return errors.Wrap(err, "failed to create analyses table")
	}
	return nil
}

// Save persists an analysis record, replacing any existing record with the
// same ID
func (r *AnalysisRepositoryImpl) Save(ctx context.Context, a *analysis.Analysis) error {
	labels, err := json.Marshal(a.Labels)
	if err != nil {
		return errors.Wrap(err, "failed to marshal labels")
	}
	result, err := json.Marshal(a.Result.Sanitized())
	if err != nil {
		return errors.Wrap(err, "failed to marshal result")
	}
	var fitDoc []byte
	if a.Fit != nil {
		fitDoc, err = json.Marshal(a.Fit)
		if err != nil {
			return errors.Wrap(err, "failed to marshal fit result")
		}
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO analyses (id, name, test, posthoc, compare_mode, control_index, labels, result, fit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			test = EXCLUDED.test,
			posthoc = EXCLUDED.posthoc,
			compare_mode = EXCLUDED.compare_mode,
			control_index = EXCLUDED.control_index,
			labels = EXCLUDED.labels,
			result = EXCLUDED.result,
			fit = EXCLUDED.fit
	`, a.ID.String(), a.Name, a.Test, a.Posthoc, a.CompareMode, a.ControlIndex, labels, result, fitDoc, a.CreatedAt.Time())

	if err != nil {
		return errors.Wrap(err, "failed to save analysis")
	}
	return nil
}

// Get retrieves an analysis by ID
func (r *AnalysisRepositoryImpl) Get(ctx context.Context, id core.AnalysisID) (*analysis.Analysis, error) {
	row := r.db.QueryRowxContext(ctx, `
		SELECT id, name, test, posthoc, compare_mode, control_index, labels, result, fit, created_at
		FROM analyses
		WHERE id = $1
	`, id.String())

	a, err := scanAnalysis(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("analysis")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load analysis")
	}
	return a, nil
}

// List returns analyses ordered by creation time descending
func (r *AnalysisRepositoryImpl) List(ctx context.Context, limit int) ([]*analysis.Analysis, error) {
	query := `
		SELECT id, name, test, posthoc, compare_mode, control_index, labels, result, fit, created_at
		FROM analyses
		ORDER BY created_at DESC
	`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list analyses")
	}
	defer rows.Close()

	var out []*analysis.Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan analysis")
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Delete removes an analysis by ID
func (r *AnalysisRepositoryImpl) Delete(ctx context.Context, id core.AnalysisID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM analyses WHERE id = $1`, id.String())
	if err != nil {
		return errors.Wrap(err, "failed to delete analysis")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.NotFound("analysis")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAnalysis(row rowScanner) (*analysis.Analysis, error) {
	var (
		a         analysis.Analysis
		id        string
		labels    []byte
		result    []byte
		fitDoc    []byte
		createdAt time.Time
	)
	err := row.Scan(&id, &a.Name, &a.Test, &a.Posthoc, &a.CompareMode, &a.ControlIndex, &labels, &result, &fitDoc, &createdAt)
	if err != nil {
		return nil, err
	}

	a.ID = core.AnalysisID(id)
	a.CreatedAt = core.NewTimestamp(createdAt)
	if err := json.Unmarshal(labels, &a.Labels); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(result, &a.Result); err != nil {
		return nil, err
	}
	if len(fitDoc) > 0 {
		if err := json.Unmarshal(fitDoc, &a.Fit); err != nil {
			return nil, err
		}
	}
	return &a, nil
}
