package packet

import (
	"testing"

	"github.com/oomph-ac/lockstep/action"
	"github.com/oomph-ac/lockstep/game"
)

func fullFrame(seq uint8) Frame {
	return Frame{
		Seq:        seq,
		Delta:      3,
		Mask:       FieldsTransform | FieldAction,
		X:          game.FixedFromInt(100),
		Y:          game.FixedFromInt(-20),
		Z:          game.FixedFromInt(7),
		Angle:      game.AngleWest,
		Stance:     game.StanceWalk,
		Visibility: game.VisibilityStealthy,
		Action:     action.New(action.TypePickupItem, 42),
	}
}

func TestSyncCarriesPreviousFrame(t *testing.T) {
	pk := &Sync{Current: fullFrame(3), HasPrevious: true, Previous: fullFrame(2)}
	pk.Previous.Mask = FieldsTransform

	h, decoded, err := Decode(Encode(Header{Group: 77, Sender: 1}, pk))
	if err != nil {
		t.Fatal(err)
	}
	if h.PacketID != IDSync || h.Group != 77 || h.Sender != 1 {
		t.Fatalf("unexpected header %+v", h)
	}
	sync, ok := decoded.(*Sync)
	if !ok {
		t.Fatalf("decoded %T, want *Sync", decoded)
	}
	if sync.Current != pk.Current {
		t.Fatalf("current frame mismatch:\n got %+v\nwant %+v", sync.Current, pk.Current)
	}
	if !sync.HasPrevious || sync.Previous.Seq != 2 || sync.Previous.Has(FieldAction) {
		t.Fatalf("previous frame mismatch: %+v", sync.Previous)
	}
}

func TestFrameWithoutActionOrOptionalFields(t *testing.T) {
	tests := []Frame{
		{Seq: 9, Delta: 1},
		{Seq: 10, Delta: 300, Mask: FieldX | FieldAngle, X: game.FixedFromInt(-5), Angle: 0xFFFF},
		{Seq: 11, Mask: FieldIntegrity, IntegrityValue: 1234, IntegritySeq: 8},
	}
	for _, f := range tests {
		got, err := DecodeFrame(EncodeFrame(f))
		if err != nil {
			t.Fatalf("seq %d: %v", f.Seq, err)
		}
		if got != f {
			t.Errorf("seq %d: got %+v, want %+v", f.Seq, got, f)
		}
		if got.Action.Type != action.TypeNone {
			t.Errorf("seq %d: frame without action decoded action %v", f.Seq, got.Action)
		}
	}
}

func TestFractionalCoordinatesAreDropped(t *testing.T) {
	f := Frame{Mask: FieldX, X: game.FixedFromInt(12) + game.FixedOne/3}
	got, err := DecodeFrame(EncodeFrame(f))
	if err != nil {
		t.Fatal(err)
	}
	if got.X != game.FixedFromInt(12) {
		t.Fatalf("x = %v, want 12", got.X.Float())
	}
}

func TestTransformFallback(t *testing.T) {
	f := Frame{Mask: FieldX, X: game.FixedFromInt(5)}
	fallback := game.Transform{X: 1, Y: game.FixedFromInt(9), Angle: game.AngleNorth}
	got := f.Transform(fallback)
	if got.X != game.FixedFromInt(5) || got.Y != fallback.Y || got.Angle != game.AngleNorth {
		t.Fatalf("unexpected transform %+v", got)
	}
}

func TestRetransmitRequest(t *testing.T) {
	h, pk, err := Decode(Encode(Header{Group: 5, Sender: 2}, &RetransmitRequest{Requester: 2, From: 0, Since: 200}))
	if err != nil {
		t.Fatal(err)
	}
	req := pk.(*RetransmitRequest)
	if h.PacketID != IDRetransmitRequest || req.Requester != 2 || req.From != 0 || req.Since != 200 {
		t.Fatalf("unexpected request %+v / %+v", h, req)
	}
}

func TestDecodeTruncated(t *testing.T) {
	b := Encode(Header{}, &Sync{Current: fullFrame(1)})
	if _, _, err := Decode(b[:len(b)-3]); err == nil {
		t.Fatal("expected an error for a truncated packet")
	}
	if _, _, err := Decode([]byte{0xEE, 0, 0, 0, 0, 0}); err == nil {
		t.Fatal("expected an error for an unknown packet id")
	}
}
