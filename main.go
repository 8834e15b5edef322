package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/heliodata/forecast.report/internal/config"
	"github.com/heliodata/forecast.report/internal/db"
	"github.com/heliodata/forecast.report/internal/monitoring"
	"github.com/heliodata/forecast.report/internal/timeutil"
	"github.com/heliodata/forecast.report/internal/units"
	"github.com/heliodata/forecast.report/internal/version"
)

var (
	configPath = flag.String("config", config.DefaultConfigPath, "Report parameters JSON file")
	dataPath   = flag.String("data", "", "Series data JSON file")
	outDir     = flag.String("out", "report_output", "Output directory for the run")
	dbPath     = flag.String("db", "", "SQLite database for report records (optional)")
	formats    = flag.String("formats", "html,csv", "Comma separated output formats: html,latex,csv")
	showVer    = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Println(version.String())
		return
	}

	if *dataPath == "" {
		log.Fatal("a series data file is required (-data)")
	}

	params, err := config.LoadReportParams(*configPath)
	if err != nil {
		log.Fatalf("failed to load report parameters: %v", err)
	}
	if u := params.GetUnits(); !units.IsValid(u) {
		monitoring.Logf("units %q not recognised, expected one of %s", u, units.GetValidUnitsString())
	}

	dataSet, err := config.LoadDataSet(*dataPath)
	if err != nil {
		log.Fatalf("failed to load series data: %v", err)
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	doc := buildDocument(params, dataSet, *outDir, timeutil.RealClock{})

	selected := strings.Split(*formats, ",")
	written, err := writeOutputs(doc, dataSet, *outDir, selected)
	if err != nil {
		log.Fatalf("failed to write report output: %v", err)
	}

	if *dbPath != "" {
		database, err := db.NewDB(*dbPath)
		if err != nil {
			log.Fatalf("failed to open report database: %v", err)
		}
		defer database.Close()

		if err := storeRun(database, doc, *outDir, written); err != nil {
			log.Fatalf("failed to record report run: %v", err)
		}
	}

	for _, m := range doc.Messages {
		monitoring.Logf("report message [%s]: %s", m.Level, m.Text)
	}
	fmt.Printf("report %s written to %s (%s)\n", doc.RunID, *outDir, strings.Join(written, ", "))
}
