// Command metrics-csv converts a metrics JSON dump into the CSV export
// format, for pulling table data out of a stored run without rerunning
// the full report.
package main

import (
	"encoding/json"
	"flag"
	"io"
	"log"
	"os"

	"github.com/heliodata/forecast.report/internal/metrics"
	"github.com/heliodata/forecast.report/internal/render"
)

var (
	inPath  = flag.String("in", "", "Metrics JSON file (array of series results)")
	outPath = flag.String("out", "", "CSV output file (default stdout)")
)

func main() {
	flag.Parse()

	if *inPath == "" {
		log.Fatal("an input file is required (-in)")
	}

	data, err := os.ReadFile(*inPath)
	if err != nil {
		log.Fatalf("failed to read input: %v", err)
	}

	var results []metrics.SeriesResult
	if err := json.Unmarshal(data, &results); err != nil {
		log.Fatalf("failed to parse metrics JSON: %v", err)
	}

	var w io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Fatalf("failed to create output: %v", err)
		}
		defer f.Close()
		w = f
	}

	if err := render.ExportCSV(w, render.MetricsRecords(results)); err != nil {
		log.Fatalf("failed to write CSV: %v", err)
	}
}
