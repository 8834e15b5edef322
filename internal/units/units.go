// Package units provides shared constants and validation for the display
// units reports can be rendered in.
package units

// Unit constants. Irradiance values are stored in W/m^2 and power values
// in MW; reports may display either family scaled.
const (
	WattsPerSqM     = "W/m^2"
	KiloWattsPerSqM = "kW/m^2"
	MegaWatts       = "MW"
	KiloWatts       = "kW"
)

// ValidUnits contains all valid display unit values.
var ValidUnits = []string{WattsPerSqM, KiloWattsPerSqM, MegaWatts, KiloWatts}

// IsValid checks if the given unit is in the list of valid units.
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for
// error messages.
func GetValidUnitsString() string {
	return "W/m^2, kW/m^2, MW, kW"
}

// ConvertIrradiance converts an irradiance from W/m^2 to the target
// display units. Unknown units pass the value through unscaled.
func ConvertIrradiance(valueWm2 float64, targetUnits string) float64 {
	switch targetUnits {
	case KiloWattsPerSqM:
		return valueWm2 / 1000.0
	default:
		return valueWm2
	}
}

// ConvertPower converts a power from MW to the target display units.
// Unknown units pass the value through unscaled.
func ConvertPower(valueMW float64, targetUnits string) float64 {
	switch targetUnits {
	case KiloWatts:
		return valueMW * 1000.0
	default:
		return valueMW
	}
}
