// Package units provides shared constants and validation for velocity units
package units

import "strings"

// Unit constants
const (
	PxPerMs = "pxms"
	PxPerS  = "pxs"
)

// ValidUnits contains all valid unit values
var ValidUnits = []string{PxPerMs, PxPerS}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return strings.Join(ValidUnits, ", ")
}

// ConvertVelocity converts a velocity from pixels per millisecond to the
// target units. Recognizers measure velocity in px/ms.
func ConvertVelocity(pxPerMs float64, targetUnits string) float64 {
	switch targetUnits {
	case PxPerS:
		return pxPerMs * 1000
	case PxPerMs:
		return pxPerMs
	default:
		return pxPerMs // default to px/ms if unknown unit
	}
}
