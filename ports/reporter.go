package ports

import "gofigure/domain/analysis"

// Reporter renders an analysis as a human-readable report
type Reporter interface {
	// Markdown renders the analysis as a Markdown document
	Markdown(a *analysis.Analysis) string

	// HTML renders the analysis as a standalone HTML document
	HTML(a *analysis.Analysis) []byte
}
