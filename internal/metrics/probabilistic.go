package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Probabilistic forecast metrics. Forecasts are supplied as the
// right-hand side of a CDF interval: fx = 10 MW means "forecasting <= 10 MW"
// with probability fxProb (in percent). The observed event indicator for
// sample i is 1 when obs[i] <= fx[i].

// eventIndicator returns the binary event outcomes for a CDF-interval
// forecast.
func eventIndicator(obs, fx []float64) []float64 {
	o := make([]float64, len(obs))
	for i := range obs {
		if obs[i] <= fx[i] {
			o[i] = 1.0
		}
	}
	return o
}

// BrierScore returns the Brier Score for binary outcomes, bounded between
// 0 and 1 with 0 being a perfect forecast. fxProb is in percent.
func BrierScore(obs, fx, fxProb []float64) float64 {
	if len(obs) == 0 || len(obs) != len(fx) || len(obs) != len(fxProb) {
		return math.NaN()
	}
	o := eventIndicator(obs, fx)
	sum := 0.0
	for i := range o {
		f := fxProb[i] / 100.0
		d := f - o[i]
		sum += d * d
	}
	return sum / float64(len(o))
}

// BrierSkillScore returns 1 - BS_fx / BS_ref for a forecast against a
// reference forecast.
func BrierSkillScore(obs, fx, fxProb, ref, refProb []float64) float64 {
	bsRef := BrierScore(obs, ref, refProb)
	if bsRef == 0 || math.IsNaN(bsRef) {
		return math.NaN()
	}
	return 1.0 - BrierScore(obs, fx, fxProb)/bsRef
}

// uniqueForecasts bins forecast probabilities (unitless) to a common
// precision: tenths below 1000 samples, hundredths at or above. Binning
// keeps the number of distinct probabilities small enough for the
// decomposition to be stable.
func uniqueForecasts(f []float64) []float64 {
	scale := 10.0
	if len(f) >= 1000 {
		scale = 100.0
	}
	binned := make([]float64, len(f))
	for i, v := range f {
		binned[i] = math.Round(v*scale) / scale
	}
	return binned
}

// BrierDecomposition returns the reliability, resolution and uncertainty
// components of the Brier Score, BS = REL - RES + UNC.
func BrierDecomposition(obs, fx, fxProb []float64) (rel, res, unc float64) {
	if len(obs) == 0 || len(obs) != len(fx) || len(obs) != len(fxProb) {
		return math.NaN(), math.NaN(), math.NaN()
	}

	o := eventIndicator(obs, fx)
	f := make([]float64, len(fxProb))
	floats.ScaleTo(f, 1.0/100.0, fxProb)
	f = uniqueForecasts(f)

	oAvg := stat.Mean(o, nil)

	// Group event outcomes by binned forecast probability.
	counts := make(map[float64]int)
	sums := make(map[float64]float64)
	for i, fi := range f {
		counts[fi]++
		sums[fi] += o[i]
	}

	n := float64(len(f))
	for fi, ni := range counts {
		oi := sums[fi] / float64(ni)
		rel += float64(ni) * (fi - oi) * (fi - oi)
		res += float64(ni) * (oi - oAvg) * (oi - oAvg)
	}
	rel /= n
	res /= n

	unc = oAvg * (1.0 - oAvg)
	return rel, res, unc
}

// Reliability returns the reliability component of the Brier Score. A
// perfectly reliable forecast scores 0.
func Reliability(obs, fx, fxProb []float64) float64 {
	rel, _, _ := BrierDecomposition(obs, fx, fxProb)
	return rel
}

// Resolution returns the resolution component of the Brier Score. Higher
// values are better.
func Resolution(obs, fx, fxProb []float64) float64 {
	_, res, _ := BrierDecomposition(obs, fx, fxProb)
	return res
}

// Uncertainty returns base_rate * (1 - base_rate) where base_rate is the
// mean observed event outcome.
func Uncertainty(obs, fx, fxProb []float64) float64 {
	_, _, unc := BrierDecomposition(obs, fx, fxProb)
	return unc
}

// Sharpness returns the mean width of a prediction interval. Smaller
// values indicate tighter intervals.
func Sharpness(fxLower, fxUpper []float64) float64 {
	if len(fxLower) == 0 || len(fxLower) != len(fxUpper) {
		return math.NaN()
	}
	sum := 0.0
	for i := range fxLower {
		sum += fxUpper[i] - fxLower[i]
	}
	return sum / float64(len(fxLower))
}
