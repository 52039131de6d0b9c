// Package excel exports analysis results as an Excel workbook.
package excel

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"gofigure/domain/analysis"
	"gofigure/domain/stats"
	"gofigure/internal/errors"
	"gofigure/ports"
)

// ResultWriter implements ResultExporter for xlsx workbooks
type ResultWriter struct{}

// NewResultWriter creates a new xlsx result exporter
func NewResultWriter() ports.ResultExporter {
	return &ResultWriter{}
}

// Export writes the analysis results workbook to w. The workbook carries a
// Comparisons sheet with the pairwise table and a Summary sheet with the
// engine's text block.
func (e *ResultWriter) Export(a *analysis.Analysis, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	const compSheet = "Comparisons"
	f.SetSheetName("Sheet1", compSheet)

	headers := []string{"Group A", "Group B", "Test", "p-value", "Significance", "Statistic"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(compSheet, cell, h); err != nil {
			return errors.ExportError("xlsx", err)
		}
	}

	res := a.Result.Sanitized()
	for rowIdx, c := range res.Comparisons {
		values := []interface{}{
			c.LabelA,
			c.LabelB,
			c.TestName,
			c.PValue,
			c.Stars,
			c.Statistic,
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(compSheet, cell, v); err != nil {
				return errors.ExportError("xlsx", err)
			}
		}
	}

	if _, err := f.NewSheet("Summary"); err != nil {
		return errors.ExportError("xlsx", err)
	}
	summaryRows := []string{
		fmt.Sprintf("Analysis: %s", a.Name),
		fmt.Sprintf("Test: %s", a.Test),
		fmt.Sprintf("Global p: %s", stats.DisplayP(res.GlobalP, stats.DisplayValue)),
		"",
	}
	summaryRows = append(summaryRows, splitLines(res.Summary)...)
	if a.Fit != nil {
		summaryRows = append(summaryRows, "")
		summaryRows = append(summaryRows, splitLines(a.Fit.Summary())...)
	}
	for i, line := range summaryRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetCellValue("Summary", cell, line); err != nil {
			return errors.ExportError("xlsx", err)
		}
	}

	if err := f.Write(w); err != nil {
		return errors.ExportError("xlsx", err)
	}
	return nil
}

func splitLines(s string) []string {
	return strings.Split(s, "\n")
}
