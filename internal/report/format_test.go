package report

import (
	"math"
	"testing"
)

func TestFormatValue_VerticalThreshold(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0.005, "5.00e-03"},
		{-0.005, "-5.00e-03"},
		{0.5, "0.500"},
		{-0.5, "-0.500"},
		{0.01, "0.0100"}, // boundary is exclusive
		{123.4, "123"},
		{1234, "1.23e+03"},
		{42, "42.0"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.value, VerticalSciThreshold); got != tt.want {
			t.Errorf("FormatValue(%v, vertical) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestFormatValue_HorizontalThreshold(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0.5, "5.00e-01"},
		{0.005, "5.00e-03"},
		{1.0, "1.00"}, // boundary is exclusive
		{2.5, "2.50"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.value, HorizontalSciThreshold); got != tt.want {
			t.Errorf("FormatValue(%v, horizontal) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestFormatValue_NonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := FormatValue(v, VerticalSciThreshold); got != "" {
			t.Errorf("FormatValue(%v) = %q, want blank", v, got)
		}
	}
}

func TestFormatValue_RoundingBumpsExponent(t *testing.T) {
	// 999.9 rounds to 1000 at 3 significant digits and must switch to
	// scientific notation rather than print a fourth digit
	if got := FormatValue(999.9, VerticalSciThreshold); got != "1.00e+03" {
		t.Errorf("FormatValue(999.9) = %q, want 1.00e+03", got)
	}
}
