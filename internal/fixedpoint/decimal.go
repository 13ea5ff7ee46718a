// Package fixedpoint implements the integer-scaled decimal arithmetic used
// for every payout multiplier on the execution and verification path. No
// floating point is used anywhere: every multiply/divide widens to int128
// and truncates toward zero explicitly.
package fixedpoint

import "math/big"

// Scale is the number of fractional digits represented: 10000 = 1.0000.
const Scale int64 = 10_000

const halfScale int64 = Scale / 2

// Decimal is a fixed-point number scaled by Scale, stored as a raw i64.
type Decimal int64

// FromInt builds a Decimal from a whole number.
func FromInt(v int32) Decimal {
	return Decimal(int64(v) * Scale)
}

// FromFrac builds a Decimal from a fraction. A zero denominator yields 0; it
// never traps.
func FromFrac(numerator, denominator int32) Decimal {
	if denominator == 0 {
		return 0
	}
	return FromInt(numerator).Div(FromInt(denominator))
}

// ToIntRounded rounds to the nearest integer, half-away-from-zero.
func (d Decimal) ToIntRounded() int32 {
	raw := int64(d)
	if raw >= 0 {
		return int32((raw + halfScale) / Scale)
	}
	return int32((raw - halfScale) / Scale)
}

// ToU16Rounded rounds and clamps into the u16 range.
func (d Decimal) ToU16Rounded() uint16 {
	v := d.ToIntRounded()
	if v < 0 {
		return 0
	}
	if v > 0xFFFF {
		return 0xFFFF
	}
	return uint16(v)
}

// Raw returns the underlying scaled representation.
func (d Decimal) Raw() int64 { return int64(d) }

// Add returns d+other.
func (d Decimal) Add(other Decimal) Decimal { return d + other }

// Sub returns d-other.
func (d Decimal) Sub(other Decimal) Decimal { return d - other }

// Neg returns -d.
func (d Decimal) Neg() Decimal { return -d }

// DivInt divides by a plain integer; division by zero yields 0.
func (d Decimal) DivInt(other int32) Decimal {
	if other == 0 {
		return 0
	}
	return Decimal(int64(d) / int64(other))
}

// Mul multiplies two Decimals, widening through int128 and truncating
// toward zero.
func (d Decimal) Mul(other Decimal) Decimal {
	scaled := new(big.Int).Mul(big.NewInt(int64(d)), big.NewInt(int64(other)))
	scaled.Quo(scaled, big.NewInt(Scale))
	return Decimal(scaled.Int64())
}

// Div divides two Decimals, widening through int128; division by zero
// yields 0 and never traps.
func (d Decimal) Div(other Decimal) Decimal {
	if other == 0 {
		return 0
	}
	scaled := new(big.Int).Mul(big.NewInt(int64(d)), big.NewInt(Scale))
	scaled.Quo(scaled, big.NewInt(int64(other)))
	return Decimal(scaled.Int64())
}
