package report

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/heliodata/forecast.report/internal/metrics"
)

func seriesFixture() []metrics.SeriesResult {
	return []metrics.SeriesResult{
		{
			Name: "GHI Day Ahead",
			Values: []metrics.MetricValue{
				{Category: metrics.CategoryTotal, Metric: "mae", Value: 0.005},
				{Category: metrics.CategoryTotal, Metric: "rmse", Value: 0.5},
				{Category: metrics.CategoryDate, Metric: "mae", Index: "2024-06-01", Value: 12.5},
				{Category: metrics.CategoryDate, Metric: "mae", Index: "2024-06-02", Value: 14.0},
			},
		},
		{
			Name: "GHI Hour Ahead",
			Values: []metrics.MetricValue{
				{Category: metrics.CategoryTotal, Metric: "mae", Value: 42.0},
				{Category: metrics.CategoryDate, Metric: "mae", Index: "2024-06-02", Value: 9.0},
				{Category: metrics.CategoryDate, Metric: "mae", Index: "2024-06-03", Value: 11.0},
			},
		},
	}
}

func TestAssembleVertical_Shape(t *testing.T) {
	results := seriesFixture()
	ordering := []string{"mae", "rmse", "mbe"} // mbe has no data anywhere

	g := AssembleVertical(results, metrics.CategoryTotal, ordering)

	if len(g.Cells) != len(results) {
		t.Fatalf("row count = %d, want %d", len(g.Cells), len(results))
	}
	for i, row := range g.Cells {
		if len(row) != len(ordering) {
			t.Errorf("row %d has %d columns, want %d", i, len(row), len(ordering))
		}
	}
}

func TestAssembleVertical_ShapeInvariantUnderMissingData(t *testing.T) {
	// No result has any value for this category: every cell blank, shape kept
	g := AssembleVertical(seriesFixture(), metrics.Category("no-such"), []string{"mae", "rmse"})

	if len(g.Cells) != 2 {
		t.Fatalf("row count = %d, want 2", len(g.Cells))
	}
	for _, row := range g.Cells {
		for _, c := range row {
			if c.OK || c.Text != "" {
				t.Errorf("expected blank cell, got %+v", c)
			}
		}
	}
}

func TestAssembleVertical_EmptyResults(t *testing.T) {
	g := AssembleVertical(nil, metrics.CategoryTotal, []string{"mae"})
	if len(g.Cells) != 0 {
		t.Errorf("expected 0 rows, got %d", len(g.Cells))
	}
	if len(g.ColumnLabels) != 1 {
		t.Errorf("expected 1 column label, got %d", len(g.ColumnLabels))
	}
}

func TestAssembleVertical_Formatting(t *testing.T) {
	g := AssembleVertical(seriesFixture(), metrics.CategoryTotal, []string{"mae", "rmse"})

	// |0.005| < 0.01: scientific with 2 decimal digits
	if got := g.Cells[0][0].Text; got != "5.00e-03" {
		t.Errorf("cell(0,0) = %q, want 5.00e-03", got)
	}
	// |0.5| >= 0.01: general 3-significant-digit format
	if got := g.Cells[0][1].Text; got != "0.500" {
		t.Errorf("cell(0,1) = %q, want 0.500", got)
	}
}

func TestAssembleVertical_MissingCellBlankNotZero(t *testing.T) {
	g := AssembleVertical(seriesFixture(), metrics.CategoryTotal, []string{"rmse"})

	// second series has no rmse
	c := g.Cells[1][0]
	if c.OK {
		t.Error("expected not-found cell")
	}
	if c.Text != "" {
		t.Errorf("expected blank text, got %q", c.Text)
	}
}

func TestAssembleVertical_DuplicateOrderingTolerated(t *testing.T) {
	g := AssembleVertical(seriesFixture(), metrics.CategoryTotal, []string{"mae", "mae"})

	if len(g.Cells[0]) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(g.Cells[0]))
	}
	if g.Cells[0][0] != g.Cells[0][1] {
		t.Errorf("duplicate columns differ: %+v vs %+v", g.Cells[0][0], g.Cells[0][1])
	}
}

func TestAssembleHorizontal_FirstSeenRowOrder(t *testing.T) {
	// A contributes [x, y], B contributes [y, z]: rows must be [x, y, z]
	g := AssembleHorizontal(seriesFixture(), metrics.CategoryDate, []string{"mae"})

	want := []string{"2024-06-01", "2024-06-02", "2024-06-03"}
	if diff := cmp.Diff(want, g.RowLabels); diff != "" {
		t.Errorf("row order mismatch (-want +got):\n%s", diff)
	}
}

func TestAssembleHorizontal_CrossProductColumns(t *testing.T) {
	ordering := []string{"mae", "rmse"}
	g := AssembleHorizontal(seriesFixture(), metrics.CategoryDate, ordering)

	if len(g.ColumnLabels) != 4 {
		t.Fatalf("column count = %d, want 4", len(g.ColumnLabels))
	}
	wantSpans := []HeaderSpan{
		{Label: "GHI Day Ahead", Span: 2},
		{Label: "GHI Hour Ahead", Span: 2},
	}
	if diff := cmp.Diff(wantSpans, g.HeaderSpans); diff != "" {
		t.Errorf("header spans mismatch (-want +got):\n%s", diff)
	}
}

func TestAssembleHorizontal_ThresholdDiffersFromVertical(t *testing.T) {
	results := []metrics.SeriesResult{{
		Name: "fx",
		Values: []metrics.MetricValue{
			{Category: metrics.CategoryDate, Metric: "mae", Index: "2024-06-01", Value: 0.5},
		},
	}}

	g := AssembleHorizontal(results, metrics.CategoryDate, []string{"mae"})

	// |0.5| < 1: horizontal tables use scientific notation here
	if got := g.Cells[0][0].Text; got != "5.00e-01" {
		t.Errorf("cell = %q, want 5.00e-01", got)
	}
}

func TestAssembleHorizontal_MissingIndexCellsBlank(t *testing.T) {
	g := AssembleHorizontal(seriesFixture(), metrics.CategoryDate, []string{"mae"})

	// 2024-06-01 exists only in the first series
	row := g.Cells[0]
	if !row[0].OK {
		t.Error("expected found cell for first series")
	}
	if row[1].OK {
		t.Error("expected blank cell for second series")
	}
}

func TestAssembleHorizontal_Deterministic(t *testing.T) {
	a := AssembleHorizontal(seriesFixture(), metrics.CategoryDate, []string{"mae"})
	b := AssembleHorizontal(seriesFixture(), metrics.CategoryDate, []string{"mae"})

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("repeated assembly differs (-first +second):\n%s", diff)
	}
}

func TestAssembleValidation(t *testing.T) {
	results := []metrics.SeriesResult{
		{Name: "fx-a", Validation: []metrics.ValidationCount{
			{Flag: "NIGHTTIME", Count: 120},
			{Flag: "CLOUDY", Count: 30},
		}},
		{Name: "fx-b", Validation: []metrics.ValidationCount{
			{Flag: "NIGHTTIME", Count: 115},
		}},
	}

	g := AssembleValidation(results, []string{"NIGHTTIME", "CLOUDY", "STALE VALUES"})

	if len(g.Cells) != 3 || len(g.Cells[0]) != 2 {
		t.Fatalf("grid shape = %dx%d, want 3x2", len(g.Cells), len(g.Cells[0]))
	}
	if g.Cells[0][0].Text != "120" {
		t.Errorf("NIGHTTIME/fx-a = %q, want 120", g.Cells[0][0].Text)
	}
	// fx-b never reported CLOUDY: blank, not zero
	if g.Cells[1][1].OK {
		t.Errorf("CLOUDY/fx-b should be blank, got %q", g.Cells[1][1].Text)
	}
	// flag nobody reported: whole row blank
	for _, c := range g.Cells[2] {
		if c.OK {
			t.Errorf("STALE VALUES row should be blank, got %q", c.Text)
		}
	}
}

func TestAssemblePreprocessing_FirstSeenStepOrder(t *testing.T) {
	results := []metrics.SeriesResult{
		{Name: "fx-a", Preprocessing: []metrics.PreprocessingCount{
			{Step: "Unmatched Times Discarded", Count: 4},
			{Step: "Undefined Values Discarded", Count: 2},
		}},
		{Name: "fx-b", Preprocessing: []metrics.PreprocessingCount{
			{Step: "Undefined Values Discarded", Count: 1},
			{Step: "Values Outside Physical Limits", Count: 7},
		}},
	}

	g := AssemblePreprocessing(results)

	want := []string{
		"Unmatched Times Discarded",
		"Undefined Values Discarded",
		"Values Outside Physical Limits",
	}
	if diff := cmp.Diff(want, g.RowLabels); diff != "" {
		t.Errorf("step order mismatch (-want +got):\n%s", diff)
	}
	if g.Cells[2][0].OK {
		t.Error("fx-a has no physical-limits step; cell should be blank")
	}
	if g.Cells[2][1].Text != "7" {
		t.Errorf("fx-b physical-limits = %q, want 7", g.Cells[2][1].Text)
	}
}
