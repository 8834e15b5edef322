package metrics

import (
	"math"
	"strconv"
	"time"

	"github.com/heliodata/forecast.report/internal/orderedset"
)

// Calculator groups aligned pairs by category and computes the requested
// metrics per group. Location controls how timestamps map to dates, hours
// and weekdays; Quantile is the target quantile for quantile_score.
type Calculator struct {
	Location *time.Location
	Quantile float64
}

// NewCalculator returns a Calculator for the given timezone. A nil
// location means UTC; a zero quantile defaults to the median.
func NewCalculator(loc *time.Location, quantile float64) *Calculator {
	if loc == nil {
		loc = time.UTC
	}
	if quantile <= 0 || quantile >= 1 {
		quantile = 0.5
	}
	return &Calculator{Location: loc, Quantile: quantile}
}

// indexFor returns the group key for a timestamp under a category. The
// total category has a single group with an empty index.
func (c *Calculator) indexFor(t time.Time, cat Category) string {
	t = t.In(c.Location)
	switch cat {
	case CategoryYear:
		return strconv.Itoa(t.Year())
	case CategoryMonth:
		return t.Format("Jan")
	case CategoryDate:
		return t.Format("2006-01-02")
	case CategoryWeekday:
		return t.Format("Mon")
	case CategoryHour:
		return strconv.Itoa(t.Hour())
	default:
		return ""
	}
}

// Calculate computes each requested metric for each category. For
// non-total categories the pairs are partitioned by the category key in
// first-seen time order, so downstream tables inherit chronological row
// order. ref supplies the reference forecast values for the skill metric
// and may be nil. At most one MetricValue is emitted per
// (category, metric, index) tuple.
func (c *Calculator) Calculate(a Aligned, ref []float64, metricIDs []string, categories []Category) []MetricValue {
	var out []MetricValue

	for _, cat := range categories {
		if cat == CategoryTotal {
			for _, m := range metricIDs {
				v := c.apply(m, a.Obs, a.Fx, a.Prob, ref)
				if math.IsNaN(v) {
					continue
				}
				out = append(out, MetricValue{Category: cat, Metric: m, Value: v})
			}
			continue
		}

		keys := orderedset.New[string]()
		groups := make(map[string][]int)
		for i, t := range a.Times {
			k := c.indexFor(t, cat)
			keys.Add(k)
			groups[k] = append(groups[k], i)
		}

		for _, k := range keys.Values() {
			idx := groups[k]
			obs := gather(a.Obs, idx)
			fx := gather(a.Fx, idx)
			prob := gather(a.Prob, idx)
			refG := gather(ref, idx)
			for _, m := range metricIDs {
				v := c.apply(m, obs, fx, prob, refG)
				if math.IsNaN(v) {
					continue
				}
				out = append(out, MetricValue{Category: cat, Metric: m, Index: k, Value: v})
			}
		}
	}

	return out
}

// gather selects the elements of vals at the given positions. A nil input
// stays nil so optional inputs pass through.
func gather(vals []float64, idx []int) []float64 {
	if vals == nil {
		return nil
	}
	out := make([]float64, 0, len(idx))
	for _, i := range idx {
		out = append(out, vals[i])
	}
	return out
}

func (c *Calculator) apply(metric string, obs, fx, prob, ref []float64) float64 {
	switch metric {
	case MetricMAE:
		return MAE(obs, fx)
	case MetricMBE:
		return MBE(obs, fx)
	case MetricRMSE:
		return RMSE(obs, fx)
	case MetricMAPE:
		return MAPE(obs, fx)
	case MetricCorrelation:
		return Correlation(obs, fx)
	case MetricSkill:
		if ref == nil {
			return math.NaN()
		}
		return Skill(obs, fx, ref)
	case MetricQuantileScore:
		return QuantileScore(obs, fx, c.Quantile)
	case MetricBrierScore:
		if prob == nil {
			return math.NaN()
		}
		return BrierScore(obs, fx, prob)
	case MetricReliability:
		if prob == nil {
			return math.NaN()
		}
		return Reliability(obs, fx, prob)
	case MetricResolution:
		if prob == nil {
			return math.NaN()
		}
		return Resolution(obs, fx, prob)
	case MetricUncertainty:
		if prob == nil {
			return math.NaN()
		}
		return Uncertainty(obs, fx, prob)
	default:
		return math.NaN()
	}
}
