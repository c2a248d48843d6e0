package game

import "github.com/chewxy/math32"

// FixedShift is the amount of fractional bits held by a Fixed value.
const FixedShift = 16

// FixedOne is the Fixed representation of 1.
const FixedOne Fixed = 1 << FixedShift

// Fixed is a signed 16.16 fixed-point number. Positions are stored in this format so that
// every machine in a session performs the exact same arithmetic.
type Fixed int32

// FixedFromInt returns the Fixed value of a whole number.
func FixedFromInt(v int32) Fixed {
	return Fixed(v << FixedShift)
}

// FixedFromFloat converts a float to the nearest Fixed value below it.
func FixedFromFloat(v float32) Fixed {
	return Fixed(int32(math32.Floor(v * float32(FixedOne))))
}

// Int returns the whole part of f, rounded towards negative infinity.
func (f Fixed) Int() int32 {
	return int32(f) >> FixedShift
}

// Int16 returns the whole part of f truncated to 16 bits, the way it travels on the wire.
func (f Fixed) Int16() int16 {
	return int16(f.Int())
}

// Floor drops the fractional part of f.
func (f Fixed) Floor() Fixed {
	return f &^ (FixedOne - 1)
}

// Float returns f as a float32.
func (f Fixed) Float() float32 {
	return float32(f) / float32(FixedOne)
}

// Add returns f+o.
func (f Fixed) Add(o Fixed) Fixed {
	return f + o
}

// Sub returns f-o.
func (f Fixed) Sub(o Fixed) Fixed {
	return f - o
}

// Mul returns f*o, computed with a 64-bit intermediate to keep the fractional bits.
func (f Fixed) Mul(o Fixed) Fixed {
	return Fixed((int64(f) * int64(o)) >> FixedShift)
}

// Div returns f/o. Dividing by zero returns zero.
func (f Fixed) Div(o Fixed) Fixed {
	if o == 0 {
		return 0
	}
	return Fixed((int64(f) << FixedShift) / int64(o))
}
