package world

import (
	"bytes"

	"github.com/oomph-ac/lockstep/internal"
	"github.com/sandertv/gophertunnel/minecraft/protocol"
	"github.com/zeebo/xxh3"
)

// Digest returns a hash of the world state: every object in creation order with its kind,
// position, heading and health, followed by the state of every door. The hash is truncated to
// 32 bits so it fits the integrity field of a frame. Zero is never returned, as a zero
// integrity value means unknown.
func (w *World) Digest() uint32 {
	buf := internal.BufferPool.Get().(*bytes.Buffer)
	defer internal.BufferPool.Put(buf)
	buf.Reset()

	wr := protocol.NewWriter(buf, 0)
	next := w.nextID
	wr.Uint32(&next)
	for el := w.objects.Front(); el != nil; el = el.Next() {
		o := el.Value
		id, x, y, z := o.ID, int32(o.Transform.X), int32(o.Transform.Y), int32(o.Transform.Z)
		angle, health := uint16(o.Transform.Angle), o.Health
		wr.Uint32(&id)
		wr.Uint16(&o.Kind)
		wr.Int32(&x)
		wr.Int32(&y)
		wr.Int32(&z)
		wr.Uint16(&angle)
		wr.Int32(&health)
	}
	for el := w.doors.Front(); el != nil; el = el.Next() {
		d := el.Value
		wr.Uint16(&d.ID)
		wr.Bool(&d.Open)
		wr.Int16(&d.Lock)
	}

	sum := uint32(xxh3.Hash(buf.Bytes()))
	if sum == 0 {
		sum = 1
	}
	return sum
}
