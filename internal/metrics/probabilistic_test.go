package metrics

import (
	"math"
	"testing"
)

func TestBrierScore_PerfectForecast(t *testing.T) {
	// Event always occurs (obs <= fx) and forecast says 100%
	obs := []float64{5, 5, 5}
	fx := []float64{10, 10, 10}
	prob := []float64{100, 100, 100}

	got := BrierScore(obs, fx, prob)
	if !almostEqual(got, 0.0) {
		t.Errorf("BrierScore = %f, want 0.0", got)
	}
}

func TestBrierScore_WorstForecast(t *testing.T) {
	// Event never occurs but forecast says 100%
	obs := []float64{20, 20}
	fx := []float64{10, 10}
	prob := []float64{100, 100}

	got := BrierScore(obs, fx, prob)
	if !almostEqual(got, 1.0) {
		t.Errorf("BrierScore = %f, want 1.0", got)
	}
}

func TestBrierSkillScore(t *testing.T) {
	obs := []float64{5, 20, 5, 20}
	fx := []float64{10, 10, 10, 10}
	fxProb := []float64{60, 40, 60, 40}
	ref := []float64{10, 10, 10, 10}
	refProb := []float64{50, 50, 50, 50}

	got := BrierSkillScore(obs, fx, fxProb, ref, refProb)
	bsFx := BrierScore(obs, fx, fxProb)
	bsRef := BrierScore(obs, ref, refProb)
	want := 1.0 - bsFx/bsRef
	if !almostEqual(got, want) {
		t.Errorf("BrierSkillScore = %f, want %f", got, want)
	}
	if got <= 0 {
		t.Errorf("sharper correct forecast should have positive skill, got %f", got)
	}
}

func TestBrierDecomposition_SumsToBrierScore(t *testing.T) {
	obs := []float64{5, 20, 5, 20, 5, 5}
	fx := []float64{10, 10, 10, 10, 10, 10}
	prob := []float64{70, 30, 60, 20, 80, 90}

	rel, res, unc := BrierDecomposition(obs, fx, prob)
	bs := BrierScore(obs, fx, uniqueForecastsPercent(prob))

	// BS = REL - RES + UNC holds once probabilities are binned
	if !almostEqual(bs, rel-res+unc) {
		t.Errorf("decomposition %f - %f + %f = %f, want %f", rel, res, unc, rel-res+unc, bs)
	}
}

// uniqueForecastsPercent rebins percent probabilities the way the
// decomposition does, so the identity test compares like with like.
func uniqueForecastsPercent(prob []float64) []float64 {
	f := make([]float64, len(prob))
	for i, p := range prob {
		f[i] = p / 100.0
	}
	f = uniqueForecasts(f)
	for i := range f {
		f[i] *= 100.0
	}
	return f
}

func TestUncertainty_BaseRate(t *testing.T) {
	// Half the events occur: uncertainty = 0.5 * 0.5
	obs := []float64{5, 20}
	fx := []float64{10, 10}
	prob := []float64{50, 50}

	got := Uncertainty(obs, fx, prob)
	if !almostEqual(got, 0.25) {
		t.Errorf("Uncertainty = %f, want 0.25", got)
	}
}

func TestSharpness(t *testing.T) {
	lower := []float64{10, 20}
	upper := []float64{30, 50}

	got := Sharpness(lower, upper)
	if !almostEqual(got, 25.0) {
		t.Errorf("Sharpness = %f, want 25.0", got)
	}
}

func TestProbabilisticEmptyInputs(t *testing.T) {
	if got := BrierScore(nil, nil, nil); !math.IsNaN(got) {
		t.Errorf("BrierScore(nil) = %f, want NaN", got)
	}
	if got := Sharpness(nil, nil); !math.IsNaN(got) {
		t.Errorf("Sharpness(nil) = %f, want NaN", got)
	}
}

func TestUniqueForecasts_BinsByTenths(t *testing.T) {
	f := []float64{0.1234, 0.156891, 0.10561}
	got := uniqueForecasts(f)
	want := []float64{0.1, 0.2, 0.1}
	for i := range want {
		if !almostEqual(got[i], want[i]) {
			t.Errorf("uniqueForecasts[%d] = %f, want %f", i, got[i], want[i])
		}
	}
}
