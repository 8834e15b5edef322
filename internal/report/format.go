package report

import (
	"math"
	"strconv"
	"strings"
)

// Scientific-notation thresholds. Vertical tables switch to scientific
// notation for magnitudes inside (-0.01, 0.01); horizontal tables inside
// (-1, 1). The divergence is inherited from the original report templates
// and is kept as observed; see DESIGN.md.
const (
	VerticalSciThreshold   = 0.01
	HorizontalSciThreshold = 1.0
)

// FormatValue renders a metric value for display. Magnitudes strictly
// inside (-sciThreshold, sciThreshold) use scientific notation with two
// decimal digits; everything else uses three significant digits with
// trailing zeros kept. NaN and infinities render blank.
func FormatValue(v float64, sciThreshold float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	if v > -sciThreshold && v < sciThreshold {
		return strconv.FormatFloat(v, 'e', 2, 64)
	}
	return formatSignificant(v, 3)
}

// formatSignificant formats v with exactly the given number of
// significant digits, keeping trailing zeros, and falls back to
// scientific notation outside the positional range the way %g does.
func formatSignificant(v float64, digits int) string {
	sci := strconv.FormatFloat(v, 'e', digits-1, 64)

	// The exponent after rounding decides the representation.
	i := strings.IndexByte(sci, 'e')
	exp, err := strconv.Atoi(sci[i+1:])
	if err != nil {
		return sci
	}

	if exp < -4 || exp >= digits {
		return sci
	}
	decimals := digits - 1 - exp
	if decimals < 0 {
		decimals = 0
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
