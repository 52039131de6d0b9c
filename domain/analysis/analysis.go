// Package analysis holds the persisted analysis record: one engine
// invocation together with its inputs and outcome.
package analysis

import (
	"gofigure/domain/core"
	"gofigure/domain/fit"
	"gofigure/domain/stats"
)

// Analysis is one saved statistical analysis. Fit is non-nil only when a
// curve fit was requested alongside the comparison run.
type Analysis struct {
	ID           core.AnalysisID   `json:"id"`
	Name         string            `json:"name"`
	Test         string            `json:"test"`
	Posthoc      string            `json:"posthoc,omitempty"`
	CompareMode  string            `json:"compare_mode,omitempty"`
	ControlIndex int               `json:"control_index"`
	Labels       []string          `json:"labels,omitempty"`
	Result       stats.StatsResult `json:"result"`
	Fit          *fit.FitResult    `json:"fit,omitempty"`
	CreatedAt    core.Timestamp    `json:"created_at"`
}

// New creates an analysis record with a fresh ID and creation time.
func New(name string) *Analysis {
	return &Analysis{
		ID:        core.NewAnalysisID(),
		Name:      name,
		CreatedAt: core.Now(),
	}
}
