package packet

import (
	"github.com/oomph-ac/lockstep/action"
	"github.com/oomph-ac/lockstep/game"
	"github.com/sandertv/gophertunnel/minecraft/protocol"
)

// Field flags set in Frame.Mask. Every optional field of a frame is only present on the wire
// if its flag is set.
const (
	FieldX uint8 = 1 << iota
	FieldY
	FieldZ
	FieldAngle
	FieldStance
	FieldAction
	FieldIntegrity
)

// FieldsTransform is the set of fields always written by an outbound frame.
const FieldsTransform = FieldX | FieldY | FieldZ | FieldAngle | FieldStance

// Frame is the synchronized state of a single participant for a single tick.
type Frame struct {
	// Seq is the sequence number of the frame. It wraps around at 256.
	Seq uint8
	// Delta is the amount of ticks passed on the sender since its previous frame.
	Delta uint32
	// Mask holds the Field flags of the fields present in the frame.
	Mask uint8

	X, Y, Z    game.Fixed
	Angle      game.Angle
	Stance     game.Stance
	Visibility game.Visibility

	// Action is the action carried by the frame, if FieldAction is set.
	Action action.Action

	// IntegrityValue is the integrity value the sender recorded at tick IntegritySeq.
	IntegrityValue uint32
	IntegritySeq   uint8
}

// Has returns true if the field flag passed is set on the frame.
func (f *Frame) Has(field uint8) bool {
	return f.Mask&field != 0
}

// Transform returns the transform carried by the frame. Fields that are not present are
// taken from fallback.
func (f *Frame) Transform(fallback game.Transform) game.Transform {
	t := fallback
	if f.Has(FieldX) {
		t.X = f.X
	}
	if f.Has(FieldY) {
		t.Y = f.Y
	}
	if f.Has(FieldZ) {
		t.Z = f.Z
	}
	if f.Has(FieldAngle) {
		t.Angle = f.Angle
	}
	return t
}

// Marshal encodes or decodes the frame using the IO passed. Coordinates only carry their whole
// part, so a frame read back holds positions snapped to whole units.
func (f *Frame) Marshal(io protocol.IO) {
	io.Uint8(&f.Seq)
	io.Varuint32(&f.Delta)
	io.Uint8(&f.Mask)

	if f.Has(FieldX) {
		marshalFixed(io, &f.X)
	}
	if f.Has(FieldY) {
		marshalFixed(io, &f.Y)
	}
	if f.Has(FieldZ) {
		marshalFixed(io, &f.Z)
	}
	if f.Has(FieldAngle) {
		angle := uint16(f.Angle)
		io.Uint16(&angle)
		f.Angle = game.Angle(angle)
	}
	if f.Has(FieldStance) {
		b := game.PackStance(f.Stance, f.Visibility)
		io.Uint8(&b)
		f.Stance, f.Visibility = game.UnpackStance(b)
	}
	if f.Has(FieldAction) {
		t := uint8(f.Action.Type)
		io.Uint8(&t)
		f.Action.Type = action.Type(t)
		for i := range f.Action.Data {
			io.Int16(&f.Action.Data[i])
		}
	}
	if f.Has(FieldIntegrity) {
		io.Uint32(&f.IntegrityValue)
		io.Uint8(&f.IntegritySeq)
	}
}

func marshalFixed(io protocol.IO, v *game.Fixed) {
	whole := v.Int16()
	io.Int16(&whole)
	*v = game.FixedFromInt(int32(whole))
}
