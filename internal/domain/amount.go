package domain

import (
	"github.com/shopspring/decimal"
)

// MinorUnitsPerMajor is the number of minor units in one major currency unit.
const MinorUnitsPerMajor = 100

// Amount is an exact monetary value counted in minor units.
// Arithmetic is plain integer arithmetic, so there is no floating-point error.
type Amount int64

// FromMinorUnits constructs an Amount directly from a minor-unit count.
func FromMinorUnits(n int64) Amount {
	return Amount(n)
}

// FromMajorUnits converts a decimal major-unit value to an Amount,
// rounding half away from zero at the minor-unit boundary
// (1.005 major units -> 101 minor units, not 100).
// decimal.Round implements exactly that rounding mode; RoundBank must not
// be used here.
func FromMajorUnits(value decimal.Decimal) Amount {
	return Amount(value.Shift(2).Round(0).IntPart())
}

// Add returns a + other.
func (a Amount) Add(other Amount) Amount {
	return a + other
}

// Sub returns a - other. The result may be negative; callers computing
// paid minus price must validate the sign before proceeding.
func (a Amount) Sub(other Amount) Amount {
	return a - other
}

// MinorUnits returns the raw minor-unit count.
func (a Amount) MinorUnits() int64 {
	return int64(a)
}

// Decimal returns the value in major units as a decimal.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -2)
}

// LessThan reports whether a < other.
func (a Amount) LessThan(other Amount) bool {
	return a < other
}

// IsNegative reports whether the amount is below zero.
func (a Amount) IsNegative() bool {
	return a < 0
}

// IsZero reports whether the amount is exactly zero.
func (a Amount) IsZero() bool {
	return a == 0
}
