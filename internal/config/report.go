// Package config loads report parameter files.
//
// The schema matches the JSON accepted by the report CLI so the same file
// can seed a run or be stored alongside its output for reproducibility.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/heliodata/forecast.report/internal/metrics"
)

// DefaultConfigPath is the path to the canonical report defaults file.
const DefaultConfigPath = "config/report.defaults.json"

// CostParams names a cost definition applied by downstream consumers.
// The report treats costs as opaque selection input: they are carried
// through to the output, never evaluated here.
type CostParams struct {
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Value     float64 `json:"value"`
	Aggregate string  `json:"aggregation,omitempty"`
	Net       bool    `json:"net,omitempty"`
}

// ReportParams is the root configuration for a report run. Fields are
// pointers so partial files inherit defaults; use the Get* accessors.
type ReportParams struct {
	Name      *string `json:"name,omitempty"`
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Timezone  *string `json:"timezone,omitempty"`
	Units     *string `json:"units,omitempty"`

	// Metrics is the metric ordering: column order in rendered tables
	// follows this list verbatim. Categories selects which category
	// tables to build.
	Metrics    []string     `json:"metrics,omitempty"`
	Categories []string     `json:"categories,omitempty"`
	Costs      []CostParams `json:"costs,omitempty"`

	// Quantile is the target quantile for quantile_score.
	Quantile *float64 `json:"quantile,omitempty"`

	// ReferenceForecast names the series used as the skill baseline.
	ReferenceForecast *string `json:"reference_forecast,omitempty"`

	// ValidationFlags fixes the row order of the validation table.
	ValidationFlags []string `json:"validation_flags,omitempty"`
}

// LoadReportParams loads a ReportParams from a JSON file. The file must
// have a .json extension and be under the max file size. Fields omitted
// from the file keep their defaults, so partial configs are safe.
func LoadReportParams(path string) (*ReportParams, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &ReportParams{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are usable.
func (c *ReportParams) Validate() error {
	for _, d := range []*string{c.StartDate, c.EndDate} {
		if d != nil && *d != "" {
			if _, err := time.Parse("2006-01-02", *d); err != nil {
				return fmt.Errorf("invalid date %q: %w", *d, err)
			}
		}
	}

	if c.Timezone != nil && *c.Timezone != "" {
		if _, err := time.LoadLocation(*c.Timezone); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", *c.Timezone, err)
		}
	}

	if c.Quantile != nil {
		if *c.Quantile <= 0 || *c.Quantile >= 1 {
			return fmt.Errorf("quantile must be in (0, 1), got %f", *c.Quantile)
		}
	}

	valid := make(map[string]bool, len(metrics.ValidCategories))
	for _, cat := range metrics.ValidCategories {
		valid[string(cat)] = true
	}
	for _, cat := range c.Categories {
		if !valid[cat] {
			return fmt.Errorf("unknown category %q", cat)
		}
	}

	return nil
}

// GetName returns the report name or the default.
func (c *ReportParams) GetName() string {
	if c.Name == nil || *c.Name == "" {
		return "Forecast Evaluation Report"
	}
	return *c.Name
}

// GetTimezone returns the configured timezone location, defaulting to UTC.
func (c *ReportParams) GetTimezone() *time.Location {
	if c.Timezone == nil || *c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(*c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// GetTimezoneName returns the timezone as configured, for display.
func (c *ReportParams) GetTimezoneName() string {
	if c.Timezone == nil || *c.Timezone == "" {
		return "UTC"
	}
	return *c.Timezone
}

// GetUnits returns the display units or the default.
func (c *ReportParams) GetUnits() string {
	if c.Units == nil || *c.Units == "" {
		return "W/m^2"
	}
	return *c.Units
}

// GetStartDate returns the start date or an empty string.
func (c *ReportParams) GetStartDate() string {
	if c.StartDate == nil {
		return ""
	}
	return *c.StartDate
}

// GetEndDate returns the end date or an empty string.
func (c *ReportParams) GetEndDate() string {
	if c.EndDate == nil {
		return ""
	}
	return *c.EndDate
}

// GetMetrics returns the metric ordering or the default set.
func (c *ReportParams) GetMetrics() []string {
	if len(c.Metrics) == 0 {
		return []string{metrics.MetricMAE, metrics.MetricMBE, metrics.MetricRMSE}
	}
	return c.Metrics
}

// GetCategories returns the category selection or the default set.
func (c *ReportParams) GetCategories() []metrics.Category {
	raw := c.Categories
	if len(raw) == 0 {
		raw = []string{string(metrics.CategoryTotal), string(metrics.CategoryDate), string(metrics.CategoryHour)}
	}
	cats := make([]metrics.Category, 0, len(raw))
	for _, s := range raw {
		cats = append(cats, metrics.Category(s))
	}
	return cats
}

// GetQuantile returns the target quantile or the median.
func (c *ReportParams) GetQuantile() float64 {
	if c.Quantile == nil {
		return 0.5
	}
	return *c.Quantile
}

// GetReferenceForecast returns the skill baseline series name, empty when
// unset.
func (c *ReportParams) GetReferenceForecast() string {
	if c.ReferenceForecast == nil {
		return ""
	}
	return *c.ReferenceForecast
}

// GetValidationFlags returns the validation table row order or the
// default flag set.
func (c *ReportParams) GetValidationFlags() []string {
	if len(c.ValidationFlags) == 0 {
		return []string{"NIGHTTIME", "CLOUDY", "SHADED", "USER FLAGGED", "STALE VALUES"}
	}
	return c.ValidationFlags
}
