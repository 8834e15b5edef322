package render

import (
	"bytes"
	"encoding/csv"
	"math"
	"strings"
	"testing"

	"github.com/heliodata/forecast.report/internal/metrics"
)

func TestExportCSV_TimestampIndexAndNull(t *testing.T) {
	records := []map[string]any{
		{"index": 1577836800000.0, "value": nil},
	}

	var buf bytes.Buffer
	if err := ExportCSV(&buf, records); err != nil {
		t.Fatalf("ExportCSV failed: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d rows", len(rows))
	}
	if rows[0][0] != "index" {
		t.Errorf("first column = %q, want index", rows[0][0])
	}
	// 1577836800000 ms is 2020-01-01; date portion only
	if rows[1][0] != "2020-01-01" {
		t.Errorf("index field = %q, want 2020-01-01", rows[1][0])
	}
	if rows[1][1] != "nan" {
		t.Errorf("null value = %q, want nan", rows[1][1])
	}
}

func TestExportCSV_NaNRendersAsNan(t *testing.T) {
	records := []map[string]any{
		{"value": math.NaN()},
	}

	var buf bytes.Buffer
	if err := ExportCSV(&buf, records); err != nil {
		t.Fatalf("ExportCSV failed: %v", err)
	}
	if !strings.Contains(buf.String(), "nan") {
		t.Errorf("output missing nan literal: %q", buf.String())
	}
}

func TestExportCSV_SmallNumericIndexKept(t *testing.T) {
	// An index below the timestamp threshold is an ordinary number
	records := []map[string]any{
		{"index": 17.0, "value": 1.5},
	}

	var buf bytes.Buffer
	if err := ExportCSV(&buf, records); err != nil {
		t.Fatalf("ExportCSV failed: %v", err)
	}
	rows, _ := csv.NewReader(&buf).ReadAll()
	if rows[1][0] != "17" {
		t.Errorf("index field = %q, want 17", rows[1][0])
	}
}

func TestExportCSV_ColumnsFromFirstRecord(t *testing.T) {
	records := []map[string]any{
		{"name": "fx", "value": 1.0},
		{"name": "fx", "value": 2.0, "extra": "ignored"},
	}

	var buf bytes.Buffer
	if err := ExportCSV(&buf, records); err != nil {
		t.Fatalf("ExportCSV failed: %v", err)
	}
	rows, _ := csv.NewReader(&buf).ReadAll()
	if len(rows[0]) != 2 {
		t.Errorf("header = %v, want 2 columns from first record", rows[0])
	}
}

func TestExportCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportCSV(&buf, nil); err != nil {
		t.Fatalf("ExportCSV(nil) failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestMetricsRecords(t *testing.T) {
	results := []metrics.SeriesResult{{
		Name: "fx",
		Values: []metrics.MetricValue{
			{Category: metrics.CategoryTotal, Metric: "mae", Value: 4.2},
			{Category: metrics.CategoryDate, Metric: "mae", Index: "2024-06-01", Value: 5.0},
		},
	}}

	records := MetricsRecords(results)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if _, ok := records[0]["index"]; ok {
		t.Error("total-category record should not carry an index field")
	}
	if records[1]["index"] != "2024-06-01" {
		t.Errorf("index = %v, want 2024-06-01", records[1]["index"])
	}
}
