package metrics

import (
	"math"
	"time"
)

// Preprocessing step names reported in the preprocessing summary table.
const (
	StepUnmatchedTimes  = "Unmatched Times Discarded"
	StepUndefinedValues = "Undefined Values Discarded"
)

// Aligned holds observation/forecast pairs on a shared time axis, ready
// for metric computation. Prob is non-nil only when the forecast carries
// per-sample probabilities (percent) for probabilistic metrics.
type Aligned struct {
	Times []time.Time
	Obs   []float64
	Fx    []float64
	Prob  []float64

	// Steps tallies what alignment discarded, for the preprocessing table.
	Steps []PreprocessingCount
}

// AlignPairs intersects an observation series with a forecast series on
// their timestamps and drops pairs where either value is NaN. Times that
// appear in only one series are discarded and counted, as are undefined
// values. Input order of the observation series fixes the output order.
func AlignPairs(obs, fx Series, fxProb []TimedValue) Aligned {
	fxByTime := make(map[time.Time]float64, len(fx.Points))
	for _, p := range fx.Points {
		fxByTime[p.Time] = p.Value
	}
	probByTime := make(map[time.Time]float64, len(fxProb))
	for _, p := range fxProb {
		probByTime[p.Time] = p.Value
	}

	a := Aligned{}
	unmatched := 0
	undefined := 0

	for _, op := range obs.Points {
		fv, ok := fxByTime[op.Time]
		if !ok {
			unmatched++
			continue
		}
		if math.IsNaN(op.Value) || math.IsNaN(fv) {
			undefined++
			continue
		}
		a.Times = append(a.Times, op.Time)
		a.Obs = append(a.Obs, op.Value)
		a.Fx = append(a.Fx, fv)
		if len(fxProb) > 0 {
			if pv, ok := probByTime[op.Time]; ok {
				a.Prob = append(a.Prob, pv)
			} else {
				a.Prob = append(a.Prob, math.NaN())
			}
		}
	}

	// Forecast-only times count as unmatched too.
	if extra := len(fxByTime) - len(a.Times) - undefined; extra > 0 {
		unmatched += extra
	}

	a.Steps = []PreprocessingCount{
		{Step: StepUnmatchedTimes, Count: unmatched},
		{Step: StepUndefinedValues, Count: undefined},
	}
	return a
}
