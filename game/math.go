package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Float32ApproxEq determines whether two floating point numbers are close enough to each other
// by a threshold of 1e-5.
func Float32ApproxEq(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-5
}

// HzDistSqr returns the squared distance between two points on the horizontal plane.
func HzDistSqr(a, b mgl32.Vec3) float32 {
	dx, dy := a[0]-b[0], a[1]-b[1]
	return dx*dx + dy*dy
}

// SeqDiff returns the circular distance from last to seq in the 8-bit sequence space.
func SeqDiff(seq, last uint8) uint8 {
	return seq - last
}

// ClampDelta limits a delta to max ticks.
func ClampDelta(delta, max uint32) uint32 {
	if delta > max {
		return max
	}
	return delta
}
