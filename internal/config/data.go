package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/heliodata/forecast.report/internal/metrics"
)

// ForecastInput is one forecast series in a data file. ProbPoints holds
// per-sample event probabilities in percent and may be omitted;
// Validation carries precomputed quality-flag counts for the series.
type ForecastInput struct {
	Name       string                    `json:"name"`
	Points     []metrics.TimedValue      `json:"points"`
	ProbPoints []metrics.TimedValue      `json:"prob_points,omitempty"`
	Validation []metrics.ValidationCount `json:"validation_results,omitempty"`
}

// DataSet is the series input for a report run: one observation series
// and the forecasts evaluated against it.
type DataSet struct {
	Observation metrics.Series  `json:"observation"`
	Forecasts   []ForecastInput `json:"forecasts"`
}

// LoadDataSet loads a DataSet from a JSON file. The same extension and
// size rules as report parameter files apply.
func LoadDataSet(path string) (*DataSet, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("data file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat data file: %w", err)
	}
	const maxFileSize = 64 * 1024 * 1024 // 64MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("data file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	ds := &DataSet{}
	if err := json.Unmarshal(data, ds); err != nil {
		return nil, fmt.Errorf("failed to parse data JSON: %w", err)
	}

	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("invalid data file: %w", err)
	}

	return ds, nil
}

// Validate checks that the data set can drive a report run.
func (ds *DataSet) Validate() error {
	if len(ds.Observation.Points) == 0 {
		return fmt.Errorf("observation series %q has no points", ds.Observation.Name)
	}
	if len(ds.Forecasts) == 0 {
		return fmt.Errorf("at least one forecast series is required")
	}

	seen := make(map[string]bool, len(ds.Forecasts))
	for i, f := range ds.Forecasts {
		if f.Name == "" {
			return fmt.Errorf("forecast %d has no name", i)
		}
		if seen[f.Name] {
			return fmt.Errorf("duplicate forecast name %q", f.Name)
		}
		seen[f.Name] = true
	}
	return nil
}
