// Package render turns assembled report grids into presentation output.
//
// Two document backends (HTML and LaTeX) receive identical cell values;
// only markup differs. Figures are written as standalone files and
// referenced from the document, and the raw metric list can be exported
// as CSV for client-side use.
package render

import (
	"time"

	"github.com/heliodata/forecast.report/internal/metrics"
	"github.com/heliodata/forecast.report/internal/report"
)

// Figure references a generated figure file, relative to the run output
// directory.
type Figure struct {
	Title    string `json:"title"`
	Filename string `json:"filename"`
}

// Document is a fully assembled report ready for a presentation backend.
type Document struct {
	Name        string
	RunID       string
	StartDate   string
	EndDate     string
	Timezone    string
	Units       string
	GeneratedAt time.Time

	// SummaryTable is the vertical all-period metric table. CategoryTables
	// hold one horizontal table per indexed category.
	SummaryTable   report.Grid
	CategoryTables []report.Grid

	ValidationTable    report.Grid
	PreprocessingTable report.Grid

	Figures  []Figure
	Messages []report.Message

	// Results carries the raw metric values for CSV export.
	Results []metrics.SeriesResult
}

// AddMessage appends a report-level message. Messages surface in the
// rendered output; they never abort rendering.
func (d *Document) AddMessage(level, text string) {
	d.Messages = append(d.Messages, report.Message{Level: level, Text: text})
}
