package excel

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"gofigure/domain/analysis"
	"gofigure/domain/stats"
)

func TestExportWorkbook(t *testing.T) {
	a := analysis.New("exported")
	a.Test = "Unpaired t-test"
	a.Result = stats.StatsResult{
		TestName:        "Unpaired t-test",
		GlobalStatistic: -3.6742,
		GlobalP:         0.0213,
		Comparisons: []stats.ComparisonResult{
			{GroupA: 0, GroupB: 1, LabelA: "Control", LabelB: "Treated", PValue: 0.0213, Stars: "*", TestName: "Unpaired t-test", Statistic: -3.6742},
		},
		Summary: "Unpaired t-test: statistic=-3.6742, p=0.021312 (*)",
	}

	var buf bytes.Buffer
	if err := NewResultWriter().Export(a, &buf); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopening workbook failed: %v", err)
	}
	defer f.Close()

	cells := map[string]string{
		"A1": "Group A",
		"B1": "Group B",
		"E1": "Significance",
		"A2": "Control",
		"B2": "Treated",
		"E2": "*",
	}
	for cell, want := range cells {
		got, err := f.GetCellValue("Comparisons", cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", cell, err)
		}
		if got != want {
			t.Errorf("Comparisons!%s = %q, want %q", cell, got, want)
		}
	}

	summary, err := f.GetCellValue("Summary", "A1")
	if err != nil {
		t.Fatalf("summary read failed: %v", err)
	}
	if summary != "Analysis: exported" {
		t.Errorf("Summary!A1 = %q", summary)
	}
}
