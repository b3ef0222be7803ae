// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/MillerMedia/MSDS-460-Decision-Analytics-The-Diet-Problem/pkg/constants"
)

// IsNegligible checks if a solved quantity is effectively zero
func IsNegligible(val float64) bool {
	return math.Abs(val) <= constants.QuantityTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// WithinRelative checks if two values agree to a tolerance scaled by the
// larger magnitude (never less than 1)
func WithinRelative(val1, val2, tolerance float64) bool {
	scale := math.Max(1, math.Max(math.Abs(val1), math.Abs(val2)))
	return math.Abs(val1-val2) <= tolerance*scale
}
