// Package report assembles computed metric values into renderable tables.
//
// Assembly is a pure transformation over materialized inputs: it never
// mutates its inputs, touches no shared state and is safe to run
// concurrently across independent report renders.
package report

// Cell is one table cell. OK distinguishes "value found and formatted"
// from "no value for this combination"; a missing value renders blank and
// is never conflated with a legitimate zero.
type Cell struct {
	Text string
	OK   bool
}

// HeaderSpan is one entry of a grouped header row: Label spans Span
// columns. Horizontal metric tables use one span per series.
type HeaderSpan struct {
	Label string
	Span  int
}

// Grid is a rendered table: row labels, column labels, an optional
// grouped header row above the columns, and a dense cell matrix of
// len(RowLabels) rows by len(ColumnLabels) columns. Cell text is final;
// presentation backends add markup only.
type Grid struct {
	Title        string
	RowLabels    []string
	ColumnLabels []string
	HeaderSpans  []HeaderSpan
	Cells        [][]Cell
}

// Message is a report-level notice surfaced in the rendered output, such
// as a figure that could not be generated. Messages accumulate on the
// report; they are never raised as errors during assembly.
type Message struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

// Message levels.
const (
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)
