// Command analyze runs a statistical analysis on a JSON dataset file and
// prints the engine summary. It can also write an HTML report and an xlsx
// workbook of the results.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"gofigure/adapters/excel"
	fitengine "gofigure/adapters/fit"
	"gofigure/adapters/report"
	statsengine "gofigure/adapters/stats/engine"
	"gofigure/domain/analysis"
	"gofigure/internal/config"
)

// dataset is the JSON input format: grouped measurements plus the test
// selection, mirroring the API request body.
type dataset struct {
	Name         string      `json:"name"`
	Groups       [][]float64 `json:"groups"`
	Labels       []string    `json:"labels"`
	Test         string      `json:"test"`
	Posthoc      string      `json:"posthoc"`
	CompareMode  string      `json:"compare_mode"`
	ControlIndex int         `json:"control_index"`
	FitX         []float64   `json:"fit_x,omitempty"`
	FitY         []float64   `json:"fit_y,omitempty"`
	FitModel     string      `json:"fit_model,omitempty"`
}

func main() {
	input := flag.String("input", "", "path to JSON dataset file (required)")
	htmlOut := flag.String("html", "", "write an HTML report to this path")
	xlsxOut := flag.String("xlsx", "", "write an xlsx workbook to this path")
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	raw, err := os.ReadFile(*input)
	if err != nil {
		log.Fatalf("Failed to read dataset: %v", err)
	}
	var ds dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		log.Fatalf("Failed to parse dataset: %v", err)
	}

	engine := statsengine.NewEngine()
	a := analysis.New(ds.Name)
	a.Test = ds.Test
	a.Posthoc = ds.Posthoc
	a.CompareMode = ds.CompareMode
	a.ControlIndex = ds.ControlIndex
	a.Labels = ds.Labels
	a.Result = engine.RunNamed(ds.Groups, ds.Labels, ds.Test, ds.Posthoc, ds.CompareMode, ds.ControlIndex).Sanitized()

	if ds.FitModel != "" {
		fitRes := fitengine.NewEngine().FitNamed(ds.FitX, ds.FitY, ds.FitModel).Sanitized()
		a.Fit = &fitRes
	}

	fmt.Println(a.Result.Summary)
	if a.Fit != nil {
		fmt.Println()
		fmt.Println(a.Fit.Summary())
	}

	if *htmlOut != "" {
		reporter := report.NewReporter(appConfig.Export.ReportTitle)
		if err := writeFile(*htmlOut, reporter.HTML(a)); err != nil {
			log.Fatalf("Failed to write HTML report: %v", err)
		}
		fmt.Printf("Report written to %s\n", *htmlOut)
	}

	if *xlsxOut != "" {
		f, err := createFile(*xlsxOut)
		if err != nil {
			log.Fatalf("Failed to create workbook: %v", err)
		}
		defer f.Close()
		if err := excel.NewResultWriter().Export(a, f); err != nil {
			log.Fatalf("Failed to write workbook: %v", err)
		}
		fmt.Printf("Workbook written to %s\n", *xlsxOut)
	}
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func createFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.Create(path)
}
