package game

import "github.com/go-gl/mathgl/mgl32"

// Transform is the synchronized placement of an avatar. X and Y span the horizontal plane and
// Z is the height.
type Transform struct {
	X, Y, Z Fixed
	Angle   Angle
}

// Vec3 returns the position of the transform as a vector.
func (t Transform) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{t.X.Float(), t.Y.Float(), t.Z.Float()}
}

// Quantized drops the fractional part of every coordinate, leaving exactly what can be
// represented on the wire.
func (t Transform) Quantized() Transform {
	return Transform{X: t.X.Floor(), Y: t.Y.Floor(), Z: t.Z.Floor(), Angle: t.Angle}
}

// Ahead returns the point dist units in front of the transform on the horizontal plane.
func (t Transform) Ahead(dist float32) (Fixed, Fixed) {
	dx, dy := t.Angle.Direction()
	return t.X.Add(FixedFromFloat(dx * dist)), t.Y.Add(FixedFromFloat(dy * dist))
}
