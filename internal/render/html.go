package render

import (
	"fmt"
	"html/template"
	"io"
)

// reportTemplate is the HTML document backend. Cell text arrives fully
// formatted; the template adds markup only.
const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Name}}</title>
<style>
body { font-family: sans-serif; margin: 2em; color: #222; }
h1 { border-bottom: 2px solid #444; padding-bottom: 0.2em; }
table { border-collapse: collapse; margin: 1em 0; }
th, td { border: 1px solid #999; padding: 4px 10px; text-align: right; }
th { background: #eee; }
td.blank { background: #fafafa; }
.messages li.warning { color: #a06000; }
.messages li.error { color: #a00000; }
figure { margin: 1.5em 0; }
</style>
</head>
<body>
<h1>{{.Name}}</h1>
<p>
Run {{.RunID}} generated {{.GeneratedAt.Format "2006-01-02 15:04:05 MST"}}.<br>
Period {{.StartDate}} to {{.EndDate}} ({{.Timezone}}), values in {{.Units}}.
</p>

{{if .Messages}}
<h2>Messages</h2>
<ul class="messages">
{{range .Messages}}<li class="{{.Level}}">{{.Text}}</li>
{{end}}</ul>
{{end}}

<h2>Metrics</h2>
{{template "verticalTable" .SummaryTable}}

{{range .CategoryTables}}
<h3>By {{.Title}}</h3>
{{template "horizontalTable" .}}
{{end}}

{{if .ValidationTable.RowLabels}}
<h2>Data Validation</h2>
{{template "verticalishTable" .ValidationTable}}
{{end}}

{{if .PreprocessingTable.RowLabels}}
<h2>Preprocessing</h2>
{{template "verticalishTable" .PreprocessingTable}}
{{end}}

{{if .Figures}}
<h2>Figures</h2>
{{range .Figures}}
<figure>
<img src="{{.Filename}}" alt="{{.Title}}">
<figcaption>{{.Title}}</figcaption>
</figure>
{{end}}
{{end}}
</body>
</html>

{{define "verticalTable"}}
<table>
<thead>
<tr><th></th>{{range .ColumnLabels}}<th>{{.}}</th>{{end}}</tr>
</thead>
<tbody>
{{range $i, $label := .RowLabels}}
<tr><th>{{$label}}</th>{{range index $.Cells $i}}{{template "cell" .}}{{end}}</tr>
{{end}}
</tbody>
</table>
{{end}}

{{define "horizontalTable"}}
<table>
<thead>
<tr><th></th>{{range .HeaderSpans}}<th colspan="{{.Span}}">{{.Label}}</th>{{end}}</tr>
<tr><th></th>{{range .ColumnLabels}}<th>{{.}}</th>{{end}}</tr>
</thead>
<tbody>
{{range $i, $label := .RowLabels}}
<tr><th>{{$label}}</th>{{range index $.Cells $i}}{{template "cell" .}}{{end}}</tr>
{{end}}
</tbody>
</table>
{{end}}

{{define "verticalishTable"}}
<table>
<thead>
<tr><th></th>{{range .ColumnLabels}}<th>{{.}}</th>{{end}}</tr>
</thead>
<tbody>
{{range $i, $label := .RowLabels}}
<tr><th>{{$label}}</th>{{range index $.Cells $i}}{{template "cell" .}}{{end}}</tr>
{{end}}
</tbody>
</table>
{{end}}

{{define "cell"}}{{if .OK}}<td>{{.Text}}</td>{{else}}<td class="blank"></td>{{end}}{{end}}`

var htmlTmpl = template.Must(template.New("report").Parse(reportTemplate))

// RenderHTML writes the full report document as HTML.
func RenderHTML(w io.Writer, doc *Document) error {
	if err := htmlTmpl.Execute(w, doc); err != nil {
		return fmt.Errorf("render html report: %w", err)
	}
	return nil
}
