package game

import "testing"

func TestFixedConversions(t *testing.T) {
	tests := []struct {
		in   int32
		want int16
	}{
		{0, 0},
		{1, 1},
		{-1, -1},
		{100, 100},
		{-32768, -32768},
		{32767, 32767},
	}
	for _, tt := range tests {
		if got := FixedFromInt(tt.in).Int16(); got != tt.want {
			t.Errorf("FixedFromInt(%d).Int16() = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFixedFloorRoundsDown(t *testing.T) {
	v := FixedFromInt(3) + FixedOne/2
	if v.Floor() != FixedFromInt(3) {
		t.Fatalf("floor of 3.5 = %v", v.Floor().Float())
	}
	neg := FixedFromInt(-3) + FixedOne/2 // -2.5
	if neg.Floor() != FixedFromInt(-3) {
		t.Fatalf("floor of -2.5 = %v", neg.Floor().Float())
	}
	if neg.Int() != -3 {
		t.Fatalf("Int of -2.5 = %d", neg.Int())
	}
}

func TestFixedArithmetic(t *testing.T) {
	a, b := FixedFromInt(6), FixedFromInt(4)
	if a.Mul(b) != FixedFromInt(24) {
		t.Errorf("6*4 = %v", a.Mul(b).Float())
	}
	if a.Div(b) != FixedOne+FixedOne/2 {
		t.Errorf("6/4 = %v", a.Div(b).Float())
	}
	if a.Div(0) != 0 {
		t.Error("division by zero should give zero")
	}
	if a.Sub(b).Add(b) != a {
		t.Error("sub then add should be the identity")
	}
}

func TestAngleWraps(t *testing.T) {
	if AngleSouth.Add(AngleNorth) != AngleEast {
		t.Fatalf("south+north = %#x, want 0", AngleSouth.Add(AngleNorth))
	}
	if got := AngleBetween(0, 0, 0, FixedFromInt(10)); got != AngleNorth {
		t.Fatalf("angle towards +y = %#x, want %#x", got, AngleNorth)
	}
	if got := AngleBetween(0, 0, FixedFromInt(-10), 0); got != AngleWest {
		t.Fatalf("angle towards -x = %#x, want %#x", got, AngleWest)
	}
}

func TestStancePacking(t *testing.T) {
	b := PackStance(StanceAttack, VisibilityInvisible|VisibilityTeleported)
	s, v := UnpackStance(b)
	if s != StanceAttack {
		t.Errorf("stance = %d", s)
	}
	if !v.Has(VisibilityInvisible) || !v.Has(VisibilityTeleported) || v.Has(VisibilityStealthy) {
		t.Errorf("visibility = %#x", v)
	}
}

func TestSeqDiffWraps(t *testing.T) {
	if SeqDiff(0, 255) != 1 {
		t.Fatal("0 after 255 should be one ahead")
	}
	if SeqDiff(4, 4) != 0 {
		t.Fatal("equal sequences should differ by zero")
	}
	if SeqDiff(250, 4) != 246 {
		t.Fatal("old sequences should wrap to a large difference")
	}
}

func TestBBoxOverlaps(t *testing.T) {
	a := BoxAround([3]float32{0, 0, 0}, 10, 40)
	b := BoxAround([3]float32{15, 0, 0}, 10, 40)
	c := BoxAround([3]float32{20, 0, 0}, 10, 40)
	if !BBoxOverlaps(a, b) {
		t.Error("expected overlapping boxes")
	}
	if BBoxOverlaps(a, c) {
		t.Error("boxes touching on a face must not overlap")
	}
}
