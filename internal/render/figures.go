package render

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/heliodata/forecast.report/internal/metrics"
	"github.com/heliodata/forecast.report/internal/monitoring"
	"github.com/heliodata/forecast.report/internal/report"
)

// figurePalette gives each forecast series a stable line colour.
var figurePalette = []color.RGBA{
	{R: 31, G: 119, B: 180, A: 255},
	{R: 255, G: 127, B: 14, A: 255},
	{R: 44, G: 160, B: 44, A: 255},
	{R: 214, G: 39, B: 40, A: 255},
	{R: 148, G: 103, B: 189, A: 255},
	{R: 140, G: 86, B: 75, A: 255},
}

func paletteColor(i int) color.RGBA {
	return figurePalette[i%len(figurePalette)]
}

// SaveTimeseriesFigure plots the observation and each forecast over time
// and saves the figure to path (format chosen by extension, e.g. .png).
func SaveTimeseriesFigure(path, units string, obs metrics.Series, fxs []metrics.Series) error {
	p := plot.New()
	p.Title.Text = "Observation vs Forecasts"
	p.X.Label.Text = "Time"
	p.Y.Label.Text = fmt.Sprintf("Value (%s)", units)
	p.X.Tick.Marker = plot.TimeTicks{Format: "01-02 15:04"}

	obsPts := make(plotter.XYs, 0, len(obs.Points))
	for _, tv := range obs.Points {
		obsPts = append(obsPts, plotter.XY{X: float64(tv.Time.Unix()), Y: tv.Value})
	}
	if len(obsPts) > 0 {
		obsLine, err := plotter.NewLine(obsPts)
		if err != nil {
			return fmt.Errorf("observation line: %w", err)
		}
		obsLine.Color = color.RGBA{A: 255}
		obsLine.Width = vg.Points(1.5)
		p.Add(obsLine)
		p.Legend.Add(obs.Name, obsLine)
	}

	for i, fx := range fxs {
		pts := make(plotter.XYs, 0, len(fx.Points))
		for _, tv := range fx.Points {
			pts = append(pts, plotter.XY{X: float64(tv.Time.Unix()), Y: tv.Value})
		}
		if len(pts) == 0 {
			continue
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("forecast line %q: %w", fx.Name, err)
		}
		line.Color = paletteColor(i)
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(fx.Name, line)
	}

	p.Legend.Top = true
	p.Legend.Left = true

	if err := p.Save(12*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save figure: %w", err)
	}
	return nil
}

// SaveScatterFigure plots aligned forecast values against observations
// with a 1:1 reference line.
func SaveScatterFigure(path, units, fxName string, a metrics.Aligned) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s vs Observation", fxName)
	p.X.Label.Text = fmt.Sprintf("Observed (%s)", units)
	p.Y.Label.Text = fmt.Sprintf("Forecast (%s)", units)

	pts := make(plotter.XYs, 0, len(a.Obs))
	maxV := 0.0
	for i := range a.Obs {
		pts = append(pts, plotter.XY{X: a.Obs[i], Y: a.Fx[i]})
		if a.Obs[i] > maxV {
			maxV = a.Obs[i]
		}
		if a.Fx[i] > maxV {
			maxV = a.Fx[i]
		}
	}

	if len(pts) > 0 {
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("scatter: %w", err)
		}
		sc.GlyphStyle.Radius = vg.Points(1.5)
		sc.GlyphStyle.Color = paletteColor(0)
		p.Add(sc)

		ident, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: maxV, Y: maxV}})
		if err != nil {
			return fmt.Errorf("identity line: %w", err)
		}
		ident.Color = color.RGBA{R: 128, G: 128, B: 128, A: 255}
		ident.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
		p.Add(ident)
	}

	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save figure: %w", err)
	}
	return nil
}

// GenerateFigures writes the standard figure set for a report into
// outDir and returns the figure references. A figure that fails to
// generate is skipped and recorded as a report message rather than
// failing the render.
func GenerateFigures(outDir, units string, obs metrics.Series, fxs []metrics.Series, aligned map[string]metrics.Aligned) ([]Figure, []report.Message) {
	var figures []Figure
	var msgs []report.Message

	if err := os.MkdirAll(outDir, 0755); err != nil {
		msgs = append(msgs, report.Message{
			Level: report.LevelError,
			Text:  fmt.Sprintf("could not create figure directory: %v", err),
		})
		return nil, msgs
	}

	tsFile := "timeseries.png"
	if err := SaveTimeseriesFigure(filepath.Join(outDir, tsFile), units, obs, fxs); err != nil {
		monitoring.Logf("timeseries figure failed: %v", err)
		msgs = append(msgs, report.Message{
			Level: report.LevelWarning,
			Text:  fmt.Sprintf("timeseries figure could not be generated: %v", err),
		})
	} else {
		figures = append(figures, Figure{Title: "Timeseries", Filename: tsFile})
	}

	for _, fx := range fxs {
		a, ok := aligned[fx.Name]
		if !ok {
			msgs = append(msgs, report.Message{
				Level: report.LevelWarning,
				Text:  fmt.Sprintf("no aligned data for %q; scatter figure skipped", fx.Name),
			})
			continue
		}
		file := fmt.Sprintf("scatter_%s.png", sanitizeFilename(fx.Name))
		if err := SaveScatterFigure(filepath.Join(outDir, file), units, fx.Name, a); err != nil {
			monitoring.Logf("scatter figure for %q failed: %v", fx.Name, err)
			msgs = append(msgs, report.Message{
				Level: report.LevelWarning,
				Text:  fmt.Sprintf("scatter figure for %q could not be generated: %v", fx.Name, err),
			})
			continue
		}
		figures = append(figures, Figure{Title: fx.Name + " Scatter", Filename: file})
	}

	return figures, msgs
}

// sanitizeFilename keeps figure filenames portable.
func sanitizeFilename(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		case r == '-' || r == '_':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
