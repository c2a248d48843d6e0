package game

// Stance is the animation stance of an avatar. It occupies the low nibble of the stance byte
// that travels in every frame.
type Stance uint8

const (
	StanceStand Stance = iota
	StanceWalk
	StanceAttack
	StanceHurt
	StanceBlock
	StanceDie
	StanceDead
)

// StanceMask masks the stance out of the combined stance and visibility byte.
const StanceMask = 0x0F

// Visibility holds the visibility flags of an avatar, stored in the high nibble of the
// stance byte.
type Visibility uint8

const (
	VisibilityInvisible   Visibility = 0x10
	VisibilityTranslucent Visibility = 0x20
	VisibilityStealthy    Visibility = 0x40
	VisibilityTeleported  Visibility = 0x80
)

// Has returns true if all the flags given are set.
func (v Visibility) Has(flag Visibility) bool {
	return v&flag == flag
}

// PackStance combines a stance and visibility flags into the byte sent over the wire.
func PackStance(s Stance, v Visibility) uint8 {
	return uint8(s)&StanceMask | uint8(v)&^StanceMask
}

// UnpackStance splits a stance byte back into the stance and visibility flags.
func UnpackStance(b uint8) (Stance, Visibility) {
	return Stance(b & StanceMask), Visibility(b &^ StanceMask)
}
