// Package report renders analyses as Markdown and HTML documents.
package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"gofigure/domain/analysis"
	"gofigure/domain/stats"
	"gofigure/ports"
)

// ReporterImpl implements Reporter with Markdown as the source format
type ReporterImpl struct {
	title string
}

// NewReporter creates a reporter. title is the document title used for HTML
// output.
func NewReporter(title string) ports.Reporter {
	return &ReporterImpl{title: title}
}

// Markdown renders the analysis as a Markdown document
func (r *ReporterImpl) Markdown(a *analysis.Analysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", r.title)
	if a.Name != "" {
		fmt.Fprintf(&b, "## %s\n\n", a.Name)
	}
	fmt.Fprintf(&b, "- **Test:** %s\n", a.Test)
	if a.Posthoc != "" {
		fmt.Fprintf(&b, "- **Post-hoc:** %s\n", a.Posthoc)
	}
	if a.CompareMode != "" {
		fmt.Fprintf(&b, "- **Compare mode:** %s\n", a.CompareMode)
	}
	if !a.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "- **Created:** %s\n", a.CreatedAt.Time().Format("2006-01-02 15:04"))
	}
	b.WriteString("\n")

	res := a.Result
	if res.Empty() {
		fmt.Fprintf(&b, "%s\n", res.Summary)
	} else {
		fmt.Fprintf(&b, "**%s**, global p = %s\n\n", res.TestName, stats.DisplayP(res.GlobalP, stats.DisplayValue))

		b.WriteString("| Comparison | Test | p-value | Significance |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, c := range res.Comparisons {
			fmt.Fprintf(&b, "| %s vs %s | %s | %s | %s |\n",
				c.LabelA, c.LabelB, c.TestName,
				stats.DisplayP(c.PValue, stats.DisplayValue), c.Stars)
		}
		b.WriteString("\n")

		b.WriteString("```\n")
		b.WriteString(res.Summary)
		b.WriteString("\n```\n")
	}

	if a.Fit != nil {
		b.WriteString("\n## Curve Fit\n\n")
		b.WriteString("```\n")
		b.WriteString(a.Fit.Summary())
		b.WriteString("\n```\n")
	}

	return b.String()
}

// HTML renders the analysis as a standalone HTML document
func (r *ReporterImpl) HTML(a *analysis.Analysis) []byte {
	md := []byte(r.Markdown(a))

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse(md)

	renderer := html.NewRenderer(html.RendererOptions{
		Title: r.title,
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.Render(doc, renderer)
}
