package ports

import (
	"io"

	"gofigure/domain/analysis"
)

// ResultExporter writes an analysis to an external file format
type ResultExporter interface {
	// Export writes the analysis results workbook to w
	Export(a *analysis.Analysis, w io.Writer) error
}
