package report

import (
	"strconv"

	"github.com/heliodata/forecast.report/internal/metrics"
	"github.com/heliodata/forecast.report/internal/orderedset"
)

// lookupKey identifies one metric value inside a series result.
type lookupKey struct {
	category metrics.Category
	metric   string
	index    string
}

// seriesLookup answers "is there a value for this tuple" in O(1). Missing
// tuples are not errors; the caller renders a blank cell.
type seriesLookup map[lookupKey]float64

func buildLookup(sr metrics.SeriesResult) seriesLookup {
	l := make(seriesLookup, len(sr.Values))
	for _, mv := range sr.Values {
		k := lookupKey{category: mv.Category, metric: mv.Metric, index: mv.Index}
		if _, dup := l[k]; dup {
			continue // first value wins; duplicates are not expected
		}
		l[k] = mv.Value
	}
	return l
}

// lookupAnyIndex finds a value matching category and metric regardless of
// index, preferring the index-free entry. Vertical tables use this so a
// summary category with no sub-index resolves directly.
func lookupAnyIndex(sr metrics.SeriesResult, category metrics.Category, metric string) (float64, bool) {
	for _, mv := range sr.Values {
		if mv.Category == category && mv.Metric == metric {
			return mv.Value, true
		}
	}
	return 0, false
}

// AssembleVertical builds a grid with one row per series (input order)
// and one column per metric in ordering (input order). A missing
// combination renders blank; the grid always has exactly len(results)
// rows and len(ordering) columns.
func AssembleVertical(results []metrics.SeriesResult, category metrics.Category, ordering []string) Grid {
	g := Grid{
		Title:        string(category),
		RowLabels:    make([]string, 0, len(results)),
		ColumnLabels: make([]string, 0, len(ordering)),
		Cells:        make([][]Cell, 0, len(results)),
	}
	for _, m := range ordering {
		g.ColumnLabels = append(g.ColumnLabels, metrics.Label(m))
	}
	for _, sr := range results {
		g.RowLabels = append(g.RowLabels, sr.Name)
		row := make([]Cell, 0, len(ordering))
		for _, m := range ordering {
			if v, ok := lookupAnyIndex(sr, category, m); ok {
				row = append(row, Cell{Text: FormatValue(v, VerticalSciThreshold), OK: true})
			} else {
				row = append(row, Cell{})
			}
		}
		g.Cells = append(g.Cells, row)
	}
	return g
}

// AssembleHorizontal builds a grid whose rows are the distinct index
// values matching category, collected in first-seen order across results
// (never sorted). Columns are the series x ordering cross product with a
// grouped header: each series name spans len(ordering) columns.
func AssembleHorizontal(results []metrics.SeriesResult, category metrics.Category, ordering []string) Grid {
	indices := orderedset.New[string]()
	lookups := make([]seriesLookup, len(results))
	for i, sr := range results {
		lookups[i] = buildLookup(sr)
		for _, mv := range sr.Values {
			if mv.Category == category {
				indices.Add(mv.Index)
			}
		}
	}

	g := Grid{
		Title:     string(category),
		RowLabels: indices.Values(),
	}
	for _, sr := range results {
		g.HeaderSpans = append(g.HeaderSpans, HeaderSpan{Label: sr.Name, Span: len(ordering)})
		for _, m := range ordering {
			g.ColumnLabels = append(g.ColumnLabels, metrics.Label(m))
		}
	}

	for _, idx := range g.RowLabels {
		row := make([]Cell, 0, len(g.ColumnLabels))
		for i := range results {
			for _, m := range ordering {
				k := lookupKey{category: category, metric: m, index: idx}
				if v, ok := lookups[i][k]; ok {
					row = append(row, Cell{Text: FormatValue(v, HorizontalSciThreshold), OK: true})
				} else {
					row = append(row, Cell{})
				}
			}
		}
		g.Cells = append(g.Cells, row)
	}
	return g
}

// AssembleValidation builds the quality-flag summary: one row per flag in
// flagOrdering, one column per series, integer counts in the cells. Flags
// a series never reported render blank, not zero.
func AssembleValidation(results []metrics.SeriesResult, flagOrdering []string) Grid {
	g := Grid{
		Title:     "validation",
		RowLabels: flagOrdering,
	}
	for _, sr := range results {
		g.ColumnLabels = append(g.ColumnLabels, sr.Name)
	}
	for _, flag := range flagOrdering {
		row := make([]Cell, 0, len(results))
		for _, sr := range results {
			row = append(row, countCell(flagCount(sr.Validation, flag)))
		}
		g.Cells = append(g.Cells, row)
	}
	return g
}

// AssemblePreprocessing builds the preprocessing summary: rows are the
// first-seen union of step names across series, columns are series.
func AssemblePreprocessing(results []metrics.SeriesResult) Grid {
	steps := orderedset.New[string]()
	for _, sr := range results {
		for _, pc := range sr.Preprocessing {
			steps.Add(pc.Step)
		}
	}

	g := Grid{
		Title:     "preprocessing",
		RowLabels: steps.Values(),
	}
	for _, sr := range results {
		g.ColumnLabels = append(g.ColumnLabels, sr.Name)
	}
	for _, step := range g.RowLabels {
		row := make([]Cell, 0, len(results))
		for _, sr := range results {
			row = append(row, countCell(stepCount(sr.Preprocessing, step)))
		}
		g.Cells = append(g.Cells, row)
	}
	return g
}

func flagCount(vs []metrics.ValidationCount, flag string) (int, bool) {
	for _, v := range vs {
		if v.Flag == flag {
			return v.Count, true
		}
	}
	return 0, false
}

func stepCount(ps []metrics.PreprocessingCount, step string) (int, bool) {
	for _, p := range ps {
		if p.Step == step {
			return p.Count, true
		}
	}
	return 0, false
}

func countCell(n int, ok bool) Cell {
	if !ok {
		return Cell{}
	}
	return Cell{Text: strconv.Itoa(n), OK: true}
}
