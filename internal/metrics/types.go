// Package metrics computes forecast accuracy statistics and carries the
// result types consumed by the report assembler.
package metrics

import "time"

// Category is the grouping dimension for a metric result.
type Category string

const (
	CategoryTotal   Category = "total"
	CategoryYear    Category = "year"
	CategoryMonth   Category = "month"
	CategoryDate    Category = "date"
	CategoryWeekday Category = "weekday"
	CategoryHour    Category = "hour"
)

// ValidCategories lists the categories the calculator can group by.
var ValidCategories = []Category{
	CategoryTotal, CategoryYear, CategoryMonth,
	CategoryDate, CategoryWeekday, CategoryHour,
}

// Metric identifiers. These match the names used in report parameter files.
const (
	MetricMAE           = "mae"
	MetricMBE           = "mbe"
	MetricRMSE          = "rmse"
	MetricMAPE          = "mape"
	MetricCorrelation   = "r"
	MetricSkill         = "s"
	MetricQuantileScore = "quantile_score"
	MetricBrierScore    = "brier_score"
	MetricReliability   = "reliability"
	MetricResolution    = "resolution"
	MetricUncertainty   = "uncertainty"
	MetricSharpness     = "sharpness"
)

// metricLabels maps metric identifiers to display labels.
var metricLabels = map[string]string{
	MetricMAE:           "MAE",
	MetricMBE:           "MBE",
	MetricRMSE:          "RMSE",
	MetricMAPE:          "MAPE",
	MetricCorrelation:   "r",
	MetricSkill:         "Skill",
	MetricQuantileScore: "Quantile Score",
	MetricBrierScore:    "Brier Score",
	MetricReliability:   "Reliability",
	MetricResolution:    "Resolution",
	MetricUncertainty:   "Uncertainty",
	MetricSharpness:     "Sharpness",
}

// Label returns the display label for a metric identifier. Unknown
// identifiers are returned unchanged so new metrics still render.
func Label(metric string) string {
	if l, ok := metricLabels[metric]; ok {
		return l
	}
	return metric
}

// MetricValue is one computed statistic. Index is empty for the "total"
// category and holds the sub-key (a date, an hour) otherwise. Values are
// immutable once produced; the assembler reads them and never writes.
type MetricValue struct {
	Category Category `json:"category"`
	Metric   string   `json:"metric"`
	Index    string   `json:"index,omitempty"`
	Value    float64  `json:"value"`
}

// ValidationCount records how many observations carried a quality flag.
// The flagging itself happens upstream; reports only tabulate the counts.
type ValidationCount struct {
	Flag  string `json:"flag"`
	Count int    `json:"count"`
}

// PreprocessingCount records how many points a preprocessing step touched.
type PreprocessingCount struct {
	Step  string `json:"step"`
	Count int    `json:"count"`
}

// SeriesResult holds everything reported about one forecast/observation
// pairing: the computed metric values plus the validation and preprocessing
// tallies that accompany them.
type SeriesResult struct {
	Name          string               `json:"name"`
	Values        []MetricValue        `json:"values"`
	Validation    []ValidationCount    `json:"validation_results,omitempty"`
	Preprocessing []PreprocessingCount `json:"preprocessing_results,omitempty"`
}

// TimedValue is one sample of a timeseries.
type TimedValue struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// Series is a named timeseries, either an observation or a forecast.
type Series struct {
	Name   string       `json:"name"`
	Points []TimedValue `json:"points"`
}
