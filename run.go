package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/google/uuid"

	"github.com/heliodata/forecast.report/internal/config"
	"github.com/heliodata/forecast.report/internal/db"
	"github.com/heliodata/forecast.report/internal/metrics"
	"github.com/heliodata/forecast.report/internal/render"
	"github.com/heliodata/forecast.report/internal/report"
	"github.com/heliodata/forecast.report/internal/timeutil"
)

// buildDocument runs the full evaluation pipeline: align each forecast
// against the observation, compute the selected metrics, assemble the
// report tables and generate figures into outDir.
func buildDocument(params *config.ReportParams, ds *config.DataSet, outDir string, clock timeutil.Clock) *render.Document {
	cal := metrics.NewCalculator(params.GetTimezone(), params.GetQuantile())
	ordering := params.GetMetrics()
	categories := params.GetCategories()

	refByTime := referenceLookup(ds, params.GetReferenceForecast())

	var msgs []report.Message
	aligned := make(map[string]metrics.Aligned, len(ds.Forecasts))
	fxSeries := make([]metrics.Series, 0, len(ds.Forecasts))
	results := make([]metrics.SeriesResult, 0, len(ds.Forecasts))

	for _, f := range ds.Forecasts {
		fx := metrics.Series{Name: f.Name, Points: f.Points}
		a := metrics.AlignPairs(ds.Observation, fx, f.ProbPoints)
		aligned[f.Name] = a
		fxSeries = append(fxSeries, fx)

		if len(a.Times) == 0 {
			msgs = append(msgs, report.Message{
				Level: report.LevelWarning,
				Text:  fmt.Sprintf("forecast %q shares no valid samples with the observation", f.Name),
			})
		}

		ref := referenceValues(refByTime, a.Times)
		if refByTime != nil && ref == nil && len(a.Times) > 0 {
			msgs = append(msgs, report.Message{
				Level: report.LevelWarning,
				Text:  fmt.Sprintf("reference forecast does not cover all samples of %q, skill unavailable", f.Name),
			})
		}

		results = append(results, metrics.SeriesResult{
			Name:          f.Name,
			Values:        cal.Calculate(a, ref, ordering, categories),
			Validation:    f.Validation,
			Preprocessing: a.Steps,
		})
	}

	doc := &render.Document{
		Name:        params.GetName(),
		RunID:       uuid.NewString(),
		StartDate:   params.GetStartDate(),
		EndDate:     params.GetEndDate(),
		Timezone:    params.GetTimezoneName(),
		Units:       params.GetUnits(),
		GeneratedAt: clock.Now(),
		Results:     results,
	}

	doc.SummaryTable = report.AssembleVertical(results, metrics.CategoryTotal, ordering)
	doc.SummaryTable.Title = "All-Period Metrics"
	for _, cat := range categories {
		if cat == metrics.CategoryTotal {
			continue
		}
		g := report.AssembleHorizontal(results, cat, ordering)
		g.Title = string(cat)
		doc.CategoryTables = append(doc.CategoryTables, g)
	}
	doc.ValidationTable = report.AssembleValidation(results, params.GetValidationFlags())
	doc.PreprocessingTable = report.AssemblePreprocessing(results)

	figures, figMsgs := render.GenerateFigures(outDir, params.GetUnits(), ds.Observation, fxSeries, aligned)
	doc.Figures = figures
	doc.Messages = append(msgs, figMsgs...)

	return doc
}

// referenceLookup indexes the reference forecast's points by timestamp.
// Returns nil when no reference forecast is configured or present.
func referenceLookup(ds *config.DataSet, refName string) map[time.Time]float64 {
	if refName == "" {
		return nil
	}
	for _, f := range ds.Forecasts {
		if f.Name != refName {
			continue
		}
		byTime := make(map[time.Time]float64, len(f.Points))
		for _, p := range f.Points {
			byTime[p.Time] = p.Value
		}
		return byTime
	}
	return nil
}

// referenceValues gathers reference forecast values for the given times.
// The skill metric needs a complete reference, so any gap yields nil.
func referenceValues(refByTime map[time.Time]float64, times []time.Time) []float64 {
	if refByTime == nil {
		return nil
	}
	vals := make([]float64, 0, len(times))
	for _, t := range times {
		v, ok := refByTime[t]
		if !ok {
			return nil
		}
		vals = append(vals, v)
	}
	return vals
}

// writeOutputs renders the document in each requested format and returns
// the filenames written.
func writeOutputs(doc *render.Document, ds *config.DataSet, outDir string, formats []string) ([]string, error) {
	var written []string

	for _, f := range formats {
		switch strings.ToLower(strings.TrimSpace(f)) {
		case "html":
			if err := writeFile(outDir, "report.html", func(w *os.File) error {
				return render.RenderHTML(w, doc)
			}); err != nil {
				return written, err
			}
			written = append(written, "report.html")

			if err := writeChartsPage(doc, ds, outDir); err != nil {
				return written, err
			}
			written = append(written, "charts.html")
		case "latex":
			if err := writeFile(outDir, "report.tex", func(w *os.File) error {
				return render.RenderLaTeX(w, doc)
			}); err != nil {
				return written, err
			}
			written = append(written, "report.tex")
		case "csv":
			if err := writeFile(outDir, "metrics.csv", func(w *os.File) error {
				return render.ExportCSV(w, render.MetricsRecords(doc.Results))
			}); err != nil {
				return written, err
			}
			written = append(written, "metrics.csv")
		case "":
		default:
			return written, fmt.Errorf("unknown output format %q", f)
		}
	}

	if len(written) == 0 {
		return nil, fmt.Errorf("no output formats selected")
	}
	return written, nil
}

// writeChartsPage emits the interactive charts companion page: the
// observation/forecast timeseries plus one bar chart per category table.
func writeChartsPage(doc *render.Document, ds *config.DataSet, outDir string) error {
	fxSeries := make([]metrics.Series, 0, len(ds.Forecasts))
	for _, f := range ds.Forecasts {
		fxSeries = append(fxSeries, metrics.Series{Name: f.Name, Points: f.Points})
	}

	return writeFile(outDir, "charts.html", func(w *os.File) error {
		charters := []components.Charter{
			render.TimeseriesChart(doc.Name, doc.Units, ds.Observation, fxSeries),
		}
		for _, g := range doc.CategoryTables {
			charters = append(charters, render.CategoryBarChart(g, firstColumnLabel(g)))
		}
		return render.WriteChartsPage(w, charters...)
	})
}

// firstColumnLabel picks the metric label charted per category. The bar
// chart shows one metric; the first ordered column is the headline one.
func firstColumnLabel(g report.Grid) string {
	if len(g.ColumnLabels) == 0 {
		return ""
	}
	return g.ColumnLabels[0]
}

func writeFile(dir, name string, fn func(*os.File) error) error {
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	if err := fn(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// storeRun records the completed run and its messages in the database.
func storeRun(database *db.DB, doc *render.Document, outDir string, written []string) error {
	filename := ""
	if len(written) > 0 {
		filename = written[0]
	}

	rec := &db.ReportRecord{
		Name:      doc.Name,
		StartDate: doc.StartDate,
		EndDate:   doc.EndDate,
		Filepath:  outDir,
		Filename:  filename,
		RunID:     doc.RunID,
		Timezone:  doc.Timezone,
		Units:     doc.Units,
	}
	if err := database.CreateReport(rec); err != nil {
		return fmt.Errorf("failed to create report record: %w", err)
	}

	for _, m := range doc.Messages {
		if err := database.AddReportMessage(rec.ID, m.Level, m.Text); err != nil {
			return fmt.Errorf("failed to store report message: %w", err)
		}
	}
	return nil
}
