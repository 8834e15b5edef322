package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Deterministic error metrics over aligned observation/forecast pairs.
// All functions return NaN for empty input rather than panicking; the
// assembler renders NaN cells blank.

// MAE returns the mean absolute error.
func MAE(obs, fx []float64) float64 {
	if len(obs) == 0 || len(obs) != len(fx) {
		return math.NaN()
	}
	sum := 0.0
	for i := range obs {
		sum += math.Abs(fx[i] - obs[i])
	}
	return sum / float64(len(obs))
}

// MBE returns the mean bias error. Positive bias means the forecast
// overpredicts.
func MBE(obs, fx []float64) float64 {
	if len(obs) == 0 || len(obs) != len(fx) {
		return math.NaN()
	}
	sum := 0.0
	for i := range obs {
		sum += fx[i] - obs[i]
	}
	return sum / float64(len(obs))
}

// RMSE returns the root mean square error.
func RMSE(obs, fx []float64) float64 {
	if len(obs) == 0 || len(obs) != len(fx) {
		return math.NaN()
	}
	sum := 0.0
	for i := range obs {
		d := fx[i] - obs[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(obs)))
}

// MAPE returns the mean absolute percentage error. Pairs with a zero
// observation are skipped to avoid division by zero.
func MAPE(obs, fx []float64) float64 {
	if len(obs) == 0 || len(obs) != len(fx) {
		return math.NaN()
	}
	sum := 0.0
	n := 0
	for i := range obs {
		if obs[i] == 0 {
			continue
		}
		sum += math.Abs((fx[i] - obs[i]) / obs[i])
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return 100.0 * sum / float64(n)
}

// Correlation returns the Pearson correlation coefficient between the
// observations and the forecast.
func Correlation(obs, fx []float64) float64 {
	if len(obs) < 2 || len(obs) != len(fx) {
		return math.NaN()
	}
	return stat.Correlation(obs, fx, nil)
}

// Skill returns the forecast skill relative to a reference forecast,
// computed as 1 - RMSE_fx / RMSE_ref. A skill of 1 is a perfect forecast;
// 0 means no improvement over the reference.
func Skill(obs, fx, ref []float64) float64 {
	rmseRef := RMSE(obs, ref)
	if rmseRef == 0 || math.IsNaN(rmseRef) {
		return math.NaN()
	}
	return 1.0 - RMSE(obs, fx)/rmseRef
}

// QuantileScore returns the pinball loss for a forecast of the q quantile,
// with q in (0, 1). Lower is better.
func QuantileScore(obs, fx []float64, q float64) float64 {
	if len(obs) == 0 || len(obs) != len(fx) || q <= 0 || q >= 1 {
		return math.NaN()
	}
	sum := 0.0
	for i := range obs {
		d := obs[i] - fx[i]
		if d >= 0 {
			sum += q * d
		} else {
			sum += (q - 1) * d
		}
	}
	return sum / float64(len(obs))
}
