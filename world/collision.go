package world

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/oomph-ac/lockstep/game"
)

// Collides returns true if the object with the ID passed overlaps walls, closed doors or any
// other solid object at its current position.
func (w *World) Collides(id uint32) bool {
	o, ok := w.objects.Get(id)
	if !ok {
		return false
	}
	return w.blocked(o, o.BBox())
}

func (w *World) blocked(o *Object, bb cube.BBox) bool {
	if w.hitsGeometry(bb) {
		return true
	}
	for el := w.objects.Front(); el != nil; el = el.Next() {
		other := el.Value
		if other.ID == o.ID || !other.Has(FlagSolid) {
			continue
		}
		if game.BBoxOverlaps(bb, other.BBox()) {
			return true
		}
	}
	return false
}

// hitsGeometry returns true if the box overlaps a wall or a closed door.
func (w *World) hitsGeometry(bb cube.BBox) bool {
	for _, wall := range w.walls {
		if game.BBoxOverlaps(bb, wall) {
			return true
		}
	}
	for el := w.doors.Front(); el != nil; el = el.Next() {
		if !el.Value.Open && game.BBoxOverlaps(bb, el.Value.Box) {
			return true
		}
	}
	return false
}

// firstHit returns the first solid object, other than the object itself and the one ignored,
// that the box overlaps.
func (w *World) firstHit(o *Object, bb cube.BBox, ignore uint32) (*Object, bool) {
	for el := w.objects.Front(); el != nil; el = el.Next() {
		other := el.Value
		if other.ID == o.ID || other.ID == ignore || !other.Has(FlagSolid) {
			continue
		}
		if game.BBoxOverlaps(bb, other.BBox()) {
			return other, true
		}
	}
	return nil, false
}
