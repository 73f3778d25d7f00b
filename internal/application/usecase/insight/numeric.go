package insight

import (
	"time"

	"github.com/shopspring/decimal"
)

// ToFloat converts a decimal monetary value to a float64 for the output
// boundary. Accumulation happens on decimals; conversion is last.
func ToFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// ToFloatPtr converts an optional decimal to a float64, treating nil as 0.
func ToFloatPtr(d *decimal.Decimal) float64 {
	if d == nil {
		return 0
	}
	return ToFloat(*d)
}

// DaysBetween returns the number of days from start to end as a real number.
// The result is fractional and never floored; it is negative when end
// precedes start.
func DaysBetween(start, end time.Time) float64 {
	return end.Sub(start).Hours() / 24
}

// SafeRate divides num by den, returning 0 when the denominator is 0.
// Every rate and average in this package goes through this rule so that
// empty row sets never produce NaN or Infinity.
func SafeRate(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
