package game

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// BoxAround returns the bounding box of a cylinder-like body standing at pos, approximated by
// a square footprint. The third axis of pos is the height.
func BoxAround(pos mgl32.Vec3, radius, height float32) cube.BBox {
	return cube.Box(
		pos[0]-radius, pos[1]-radius, pos[2],
		pos[0]+radius, pos[1]+radius, pos[2]+height,
	)
}

// BBoxOverlaps returns true if the two boxes share volume. Boxes that only touch on a face do
// not overlap.
func BBoxOverlaps(a, b cube.BBox) bool {
	if BBHasZeroVolume(a) || BBHasZeroVolume(b) {
		return false
	}
	for i := 0; i < 3; i++ {
		if a.Max()[i] <= b.Min()[i]+1e-5 || b.Max()[i] <= a.Min()[i]+1e-5 {
			return false
		}
	}
	return true
}

// BBHasZeroVolume returns true if the box is flat on any axis.
func BBHasZeroVolume(bb cube.BBox) bool {
	min, max := bb.Min(), bb.Max()
	return min[0] == max[0] || min[1] == max[1] || min[2] == max[2]
}

// AABBVectorDistance calculates the distance between an AABB and a vector.
func AABBVectorDistance(a cube.BBox, v mgl32.Vec3) float32 {
	x := math32.Max(a.Min().X()-v.X(), math32.Max(0, v.X()-a.Max().X()))
	y := math32.Max(a.Min().Y()-v.Y(), math32.Max(0, v.Y()-a.Max().Y()))
	z := math32.Max(a.Min().Z()-v.Z(), math32.Max(0, v.Z()-a.Max().Z()))
	return math32.Sqrt(x*x + y*y + z*z)
}
