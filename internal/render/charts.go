package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/heliodata/forecast.report/internal/metrics"
	"github.com/heliodata/forecast.report/internal/report"
)

// TimeseriesChart builds an interactive line chart of the observation and
// each forecast. Times are formatted in the chart's x axis as supplied.
func TimeseriesChart(title, units string, obs metrics.Series, fxs []metrics.Series) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("values in %s", units)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	x := make([]string, 0, len(obs.Points))
	obsData := make([]opts.LineData, 0, len(obs.Points))
	for _, tv := range obs.Points {
		x = append(x, tv.Time.Format("2006-01-02 15:04"))
		obsData = append(obsData, opts.LineData{Value: tv.Value})
	}
	line.SetXAxis(x).AddSeries(obs.Name, obsData)

	for _, fx := range fxs {
		byTime := make(map[string]float64, len(fx.Points))
		for _, tv := range fx.Points {
			byTime[tv.Time.Format("2006-01-02 15:04")] = tv.Value
		}
		data := make([]opts.LineData, 0, len(x))
		for _, k := range x {
			if v, ok := byTime[k]; ok {
				data = append(data, opts.LineData{Value: v})
			} else {
				data = append(data, opts.LineData{Value: nil})
			}
		}
		line.AddSeries(fx.Name, data)
	}

	return line
}

// CategoryBarChart builds a bar chart of one metric across the row
// indices of a horizontal grid, one bar series per report series. The
// grid's cell strings are parsed back only for display scaling; the
// chart tooltip shows the exact cell text.
func CategoryBarChart(g report.Grid, metricLabel string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%s by %s", metricLabel, g.Title)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(g.RowLabels)

	// One column per (series x metric); pick the column matching the
	// metric label within each series span.
	col := 0
	for _, span := range g.HeaderSpans {
		for j := 0; j < span.Span; j++ {
			if g.ColumnLabels[col+j] != metricLabel {
				continue
			}
			data := make([]opts.BarData, 0, len(g.Cells))
			for _, row := range g.Cells {
				c := row[col+j]
				if v, err := strconv.ParseFloat(c.Text, 64); c.OK && err == nil {
					data = append(data, opts.BarData{Value: v})
				} else {
					data = append(data, opts.BarData{Value: nil})
				}
			}
			bar.AddSeries(span.Label, data)
		}
		col += span.Span
	}

	return bar
}

// WriteChartsPage renders the chart set as a standalone HTML page.
func WriteChartsPage(w io.Writer, chartSet ...components.Charter) error {
	page := components.NewPage()
	page.AddCharts(chartSet...)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render charts page: %w", err)
	}
	return nil
}
