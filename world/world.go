package world

import (
	df_cube "github.com/df-mc/dragonfly/server/block/cube"
	"github.com/elliotchance/orderedmap/v2"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/oomph-ac/lockstep/game"
	"github.com/sandertv/gophertunnel/minecraft/protocol"
	"github.com/sirupsen/logrus"
)

// maxObjectID is the highest ID handed out to an object. Object IDs travel in the signed 16-bit
// data fields of actions, so they never exceed its range.
const maxObjectID = 0x7FFF

// World is an in-memory world holding the objects, sectors, walls and doors of a single level.
// Objects are iterated in creation order, so two worlds fed the same operations always end up
// in the same state. A World is not safe for concurrent use; it is driven from the update loop
// of a session.
type World struct {
	objects   *orderedmap.OrderedMap[uint32, *Object]
	nextID    uint32
	avatars   map[uint8]uint32
	sectors   map[protocol.ChunkPos]Sector
	walls     []cube.BBox
	doors     *orderedmap.OrderedMap[uint16, *Door]
	doorTiles map[df_cube.Pos]uint16

	generators []*Generator
	events     []scheduledEvent
	eventSeq   uint64
	animations map[uint32]uint32

	now uint32
	log *logrus.Logger
}

// New creates an empty world.
func New(log *logrus.Logger) *World {
	return &World{
		objects:    orderedmap.NewOrderedMap[uint32, *Object](),
		nextID:     1,
		avatars:    make(map[uint8]uint32),
		sectors:    make(map[protocol.ChunkPos]Sector),
		doors:      orderedmap.NewOrderedMap[uint16, *Door](),
		doorTiles:  make(map[df_cube.Pos]uint16),
		animations: make(map[uint32]uint32),
		log:        log,
	}
}

// AddWall adds impassable geometry to the world.
func (w *World) AddWall(bb cube.BBox) {
	w.walls = append(w.walls, bb)
}

// NextObjectID returns the ID the next created object will get. Every machine creating the same
// objects in the same order reports the same value.
func (w *World) NextObjectID() uint32 {
	return w.nextID
}

// Len returns the amount of objects in the world.
func (w *World) Len() int {
	return w.objects.Len()
}

// Object returns the object with the ID passed.
func (w *World) Object(id uint32) (*Object, bool) {
	return w.objects.Get(id)
}

// Exists returns true if an object with the ID passed is in the world.
func (w *World) Exists(id uint32) bool {
	_, ok := w.objects.Get(id)
	return ok
}

// Kind returns the kind of the object with the ID passed.
func (w *World) Kind(id uint32) (uint16, bool) {
	o, ok := w.objects.Get(id)
	if !ok {
		return 0, false
	}
	return o.Kind, true
}

// Objects calls f for every object in creation order until f returns false.
func (w *World) Objects(f func(o *Object) bool) {
	for el := w.objects.Front(); el != nil; el = el.Next() {
		if !f(el.Value) {
			return
		}
	}
}

func (w *World) allocateID() uint32 {
	for {
		id := w.nextID
		w.nextID++
		if w.nextID > maxObjectID {
			w.nextID = 1
		}
		if _, taken := w.objects.Get(id); !taken {
			return id
		}
	}
}

// Create creates an object of the kind passed at the transform passed and returns its ID.
func (w *World) Create(kind uint16, t game.Transform) uint32 {
	tpl := TemplateOf(kind)
	o := &Object{
		ID:        w.allocateID(),
		Kind:      kind,
		Transform: t,
		Radius:    tpl.Radius,
		Height:    tpl.Height,
		Flags:     tpl.Flags,
		Health:    tpl.Health,
		Lifetime:  tpl.Lifetime,
	}
	w.objects.Set(o.ID, o)
	return o.ID
}

// SpawnAvatar creates the avatar object of the participant in the slot passed.
func (w *World) SpawnAvatar(slot uint8, t game.Transform) uint32 {
	if id, ok := w.avatars[slot]; ok && w.Exists(id) {
		return id
	}
	id := w.Create(KindAvatar, t)
	w.avatars[slot] = id
	return id
}

// Avatar returns the avatar object ID of the participant in the slot passed.
func (w *World) Avatar(slot uint8) (uint32, bool) {
	id, ok := w.avatars[slot]
	return id, ok
}

// Remove removes the object with the ID passed from the world. False is returned if no such
// object existed.
func (w *World) Remove(id uint32) bool {
	if _, ok := w.objects.Get(id); !ok {
		return false
	}
	w.objects.Delete(id)
	delete(w.animations, id)
	for slot, avatar := range w.avatars {
		if avatar == id {
			delete(w.avatars, slot)
		}
	}
	return true
}

// Transform returns the transform of the object with the ID passed.
func (w *World) Transform(id uint32) (game.Transform, bool) {
	o, ok := w.objects.Get(id)
	if !ok {
		return game.Transform{}, false
	}
	return o.Transform, true
}

// SetTransform moves the object with the ID passed.
func (w *World) SetTransform(id uint32, t game.Transform) {
	if o, ok := w.objects.Get(id); ok {
		o.Transform = t
	}
}

// SetStance sets the stance and visibility of the object with the ID passed.
func (w *World) SetStance(id uint32, s game.Stance, v game.Visibility) {
	if o, ok := w.objects.Get(id); ok {
		o.Stance, o.Visibility = s, v
	}
}

// SetBodyPart changes the body part worn at a body location of the object with the ID passed.
func (w *World) SetBodyPart(id uint32, location, part int16) bool {
	o, ok := w.objects.Get(id)
	if !ok || location < 0 || int(location) >= len(o.BodyParts) {
		return false
	}
	o.BodyParts[location] = part
	return true
}

// SetIdentity sets the character class of the object with the ID passed.
func (w *World) SetIdentity(id uint32, class int16) bool {
	o, ok := w.objects.Get(id)
	if !ok {
		return false
	}
	o.Class = class
	return true
}

// SetAttacking marks the object with the ID passed as attacking until its attack animation ends.
func (w *World) SetAttacking(id uint32) {
	o, ok := w.objects.Get(id)
	if !ok {
		return
	}
	o.Flags |= FlagAttacking
	o.Stance = game.StanceAttack
	w.animations[id] = w.now + attackTicks
}

// Damage applies damage to the object with the ID passed. Objects without health are not
// affected. False is returned if the target does not exist.
func (w *World) Damage(target uint32, amount, damageType int16, source uint32) bool {
	o, ok := w.objects.Get(target)
	if !ok {
		return false
	}
	if o.Health <= 0 {
		return true
	}
	o.Health -= int32(amount)
	o.LastDamageType = damageType
	if o.Health <= 0 {
		o.Health = 0
		o.Stance = game.StanceDie
		w.animations[target] = w.now + dieTicks
	} else {
		o.Stance = game.StanceHurt
		w.animations[target] = w.now + hurtTicks
	}
	if o.Has(FlagCreature) && source != 0 && o.Target == 0 {
		o.Target = source
	}
	w.log.Debugf("object %d took %d damage (type %d) from %d, health=%d", target, amount, damageType, source, o.Health)
	return true
}

// AlertCreatures makes every creature within radius of the point passed hunt the target. The
// number of creatures alerted is returned.
func (w *World) AlertCreatures(around game.Transform, radius float32, target uint32) int {
	var n int
	origin := around.Vec3()
	w.Objects(func(o *Object) bool {
		if o.Has(FlagCreature) && o.Health > 0 && game.HzDistSqr(origin, o.Transform.Vec3()) <= radius*radius {
			o.Target = target
			n++
		}
		return true
	})
	return n
}

// SpawnProjectile launches a projectile of the kind passed from the transform passed, flying in
// the direction of its angle at speed units per tick. The owner is never hit by it.
func (w *World) SpawnProjectile(kind uint16, owner uint32, from game.Transform, speed float32) uint32 {
	id := w.Create(kind, from)
	o, _ := w.objects.Get(id)
	dx, dy := from.Angle.Direction()
	o.Velocity[0], o.Velocity[1] = dx*speed, dy*speed
	o.Target = owner
	if o.Lifetime == 0 {
		o.Lifetime = game.TicksPerSecond
	}
	return id
}
