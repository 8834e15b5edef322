package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/heliodata/forecast.report/internal/metrics"
)

// timestampThreshold separates epoch-millisecond timestamps from ordinary
// numeric index values in CSV export. Anything above it in an "index"
// field renders as a calendar date.
const timestampThreshold = 100000000

// ExportCSV serialises a flat list of records to CSV. Columns come from
// the field names of the first record: an "index" field leads, the rest
// follow in sorted order. Missing or null values render as the literal
// text "nan"; an index field holding a numeric epoch-millisecond
// timestamp renders as an ISO-8601 date (date portion only).
func ExportCSV(w io.Writer, records []map[string]any) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if len(records) == 0 {
		return cw.Error()
	}

	var cols []string
	for k := range records[0] {
		if k == "index" {
			continue
		}
		cols = append(cols, k)
	}
	sort.Strings(cols)
	if _, ok := records[0]["index"]; ok {
		cols = append([]string{"index"}, cols...)
	}

	if err := cw.Write(cols); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	row := make([]string, len(cols))
	for _, rec := range records {
		for i, col := range cols {
			row[i] = csvField(col, rec[col])
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// MetricsRecords flattens series results into the record shape ExportCSV
// consumes, one record per metric value.
func MetricsRecords(results []metrics.SeriesResult) []map[string]any {
	var records []map[string]any
	for _, sr := range results {
		for _, mv := range sr.Values {
			rec := map[string]any{
				"name":     sr.Name,
				"category": string(mv.Category),
				"metric":   mv.Metric,
				"value":    mv.Value,
			}
			if mv.Index != "" {
				rec["index"] = mv.Index
			}
			records = append(records, rec)
		}
	}
	return records
}

// csvField stringifies one value under the export contract.
func csvField(col string, v any) string {
	switch x := v.(type) {
	case nil:
		return "nan"
	case float64:
		if math.IsNaN(x) {
			return "nan"
		}
		if col == "index" && x > timestampThreshold {
			return time.UnixMilli(int64(x)).UTC().Format("2006-01-02")
		}
		return strconv.FormatFloat(x, 'g', -1, 64)
	case int:
		if col == "index" && float64(x) > timestampThreshold {
			return time.UnixMilli(int64(x)).UTC().Format("2006-01-02")
		}
		return strconv.Itoa(x)
	case int64:
		if col == "index" && float64(x) > timestampThreshold {
			return time.UnixMilli(x).UTC().Format("2006-01-02")
		}
		return strconv.FormatInt(x, 10)
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
