package action

import "testing"

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()
	q.Push(New(TypeMeleeAttack, 10, 1, 42))
	q.Push(New(TypePickupItem, 7))
	q.Push(Action{})

	if q.Len() != 2 {
		t.Fatalf("expected 2 queued actions, got %d", q.Len())
	}

	first, ok := q.Pop()
	if !ok || first.Type != TypeMeleeAttack || first.Data != [4]int16{10, 1, 42, 0} {
		t.Fatalf("unexpected first action %v", first)
	}
	second, _ := q.Pop()
	if second.Type != TypePickupItem || second.Data[0] != 7 {
		t.Fatalf("unexpected second action %v", second)
	}
	if _, ok := q.Pop(); ok {
		t.Fatal("queue should be empty")
	}
}

func TestTypeNames(t *testing.T) {
	if TypePickupItem.String() != "pickup_item" {
		t.Errorf("got %q", TypePickupItem.String())
	}
	if Type(200).Valid() {
		t.Error("200 is not a valid type")
	}
	if !TypeAbortLevel.LeavesLevel() || TypePauseToggle.LeavesLevel() {
		t.Error("LeavesLevel misclassified")
	}
}
