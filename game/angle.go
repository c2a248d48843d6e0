package game

import "github.com/chewxy/math32"

// Angle is a heading where the full circle spans the complete 16-bit range. Arithmetic on an
// Angle wraps around naturally.
type Angle uint16

const (
	AngleEast  Angle = 0
	AngleNorth Angle = 0x4000
	AngleWest  Angle = 0x8000
	AngleSouth Angle = 0xC000
)

// AngleFromRadians converts radians into an Angle.
func AngleFromRadians(r float32) Angle {
	turns := r / (2 * math32.Pi)
	turns -= math32.Floor(turns)
	return Angle(uint32(math32.Round(turns*65536)) & 0xFFFF)
}

// AngleBetween returns the heading from (x0, y0) to (x1, y1).
func AngleBetween(x0, y0, x1, y1 Fixed) Angle {
	return AngleFromRadians(math32.Atan2(y1.Sub(y0).Float(), x1.Sub(x0).Float()))
}

// Radians returns the Angle in radians, in the range [0, 2π).
func (a Angle) Radians() float32 {
	return float32(a) / 65536 * 2 * math32.Pi
}

// Add returns a+o, wrapping around the circle.
func (a Angle) Add(o Angle) Angle {
	return a + o
}

// Direction returns the unit vector on the horizontal plane the angle faces.
func (a Angle) Direction() (x, y float32) {
	r := a.Radians()
	return math32.Cos(r), math32.Sin(r)
}
