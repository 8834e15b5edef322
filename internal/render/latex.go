package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/heliodata/forecast.report/internal/report"
)

// latexEscaper handles the characters LaTeX treats specially in table
// cells and labels.
var latexEscaper = strings.NewReplacer(
	"\\", `\textbackslash{}`,
	"&", `\&`,
	"%", `\%`,
	"$", `\$`,
	"#", `\#`,
	"_", `\_`,
	"{", `\{`,
	"}", `\}`,
	"~", `\textasciitilde{}`,
	"^", `\textasciicircum{}`,
)

func latexEscape(s string) string {
	return latexEscaper.Replace(s)
}

// RenderLaTeX writes the report as a standalone LaTeX document. The cell
// values are byte-identical to the HTML backend's; only markup differs.
func RenderLaTeX(w io.Writer, doc *Document) error {
	var b strings.Builder

	b.WriteString("\\documentclass{article}\n")
	b.WriteString("\\usepackage{booktabs}\n")
	b.WriteString("\\usepackage{graphicx}\n")
	b.WriteString(fmt.Sprintf("\\title{%s}\n", latexEscape(doc.Name)))
	b.WriteString("\\begin{document}\n\\maketitle\n\n")

	b.WriteString(fmt.Sprintf("Run %s generated %s. Period %s to %s (%s), values in %s.\n\n",
		latexEscape(doc.RunID),
		doc.GeneratedAt.Format("2006-01-02 15:04:05 MST"),
		latexEscape(doc.StartDate), latexEscape(doc.EndDate),
		latexEscape(doc.Timezone), latexEscape(doc.Units)))

	if len(doc.Messages) > 0 {
		b.WriteString("\\section*{Messages}\n\\begin{itemize}\n")
		for _, m := range doc.Messages {
			b.WriteString(fmt.Sprintf("\\item[%s] %s\n", latexEscape(m.Level), latexEscape(m.Text)))
		}
		b.WriteString("\\end{itemize}\n\n")
	}

	b.WriteString("\\section*{Metrics}\n")
	writeLatexTable(&b, doc.SummaryTable)

	for _, g := range doc.CategoryTables {
		b.WriteString(fmt.Sprintf("\\subsection*{By %s}\n", latexEscape(g.Title)))
		writeLatexTable(&b, g)
	}

	if len(doc.ValidationTable.RowLabels) > 0 {
		b.WriteString("\\section*{Data Validation}\n")
		writeLatexTable(&b, doc.ValidationTable)
	}
	if len(doc.PreprocessingTable.RowLabels) > 0 {
		b.WriteString("\\section*{Preprocessing}\n")
		writeLatexTable(&b, doc.PreprocessingTable)
	}

	if len(doc.Figures) > 0 {
		b.WriteString("\\section*{Figures}\n")
		for _, f := range doc.Figures {
			b.WriteString("\\begin{figure}[h]\n")
			b.WriteString(fmt.Sprintf("\\includegraphics[width=\\textwidth]{%s}\n", f.Filename))
			b.WriteString(fmt.Sprintf("\\caption{%s}\n", latexEscape(f.Title)))
			b.WriteString("\\end{figure}\n")
		}
	}

	b.WriteString("\\end{document}\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("render latex report: %w", err)
	}
	return nil
}

// writeLatexTable emits one grid as a tabular environment, including the
// grouped header row when the grid has one.
func writeLatexTable(b *strings.Builder, g report.Grid) {
	cols := len(g.ColumnLabels)
	if cols == 0 {
		return
	}

	b.WriteString("\\begin{tabular}{l" + strings.Repeat("r", cols) + "}\n\\toprule\n")

	if len(g.HeaderSpans) > 0 {
		b.WriteString(" ")
		for _, span := range g.HeaderSpans {
			b.WriteString(fmt.Sprintf("& \\multicolumn{%d}{c}{%s} ", span.Span, latexEscape(span.Label)))
		}
		b.WriteString("\\\\\n")
	}

	b.WriteString(" ")
	for _, label := range g.ColumnLabels {
		b.WriteString("& " + latexEscape(label) + " ")
	}
	b.WriteString("\\\\\n\\midrule\n")

	for i, rowLabel := range g.RowLabels {
		b.WriteString(latexEscape(rowLabel) + " ")
		for _, c := range g.Cells[i] {
			if c.OK {
				b.WriteString("& " + latexEscape(c.Text) + " ")
			} else {
				b.WriteString("& ")
			}
		}
		b.WriteString("\\\\\n")
	}

	b.WriteString("\\bottomrule\n\\end{tabular}\n\n")
}
