package world

import (
	"slices"

	"github.com/oomph-ac/lockstep/game"
)

const (
	attackTicks = game.TicksPerSecond / 2
	hurtTicks   = game.TicksPerSecond / 4
	dieTicks    = game.TicksPerSecond

	// creatureSpeed is the distance an alerted creature covers per tick.
	creatureSpeed = game.FixedOne
	// creatureReach is the distance within which a creature stops to attack its target.
	creatureReach = float32(24)
	// projectileDamage is the damage dealt by a projectile hitting a solid object.
	projectileDamage = 10
)

// Generator periodically spawns objects of a kind at a fixed place, up to a maximum amount alive
// at the same time.
type Generator struct {
	Kind     uint16
	At       game.Transform
	Interval uint32
	Max      int

	next    uint32
	spawned []uint32
}

// AddGenerator adds a generator to the world. Its first object spawns on the next update.
func (w *World) AddGenerator(g *Generator) {
	g.next = w.now
	w.generators = append(w.generators, g)
}

type scheduledEvent struct {
	at  uint32
	seq uint64
	f   func(w *World)
}

// Schedule runs f on the first event update at least delay ticks from now. Events due at the
// same time run in the order they were scheduled.
func (w *World) Schedule(delay uint32, f func(w *World)) {
	w.eventSeq++
	w.events = append(w.events, scheduledEvent{at: w.now + delay, seq: w.eventSeq, f: f})
}

// UpdateCreatures moves every alerted creature towards its target.
func (w *World) UpdateCreatures(now, delta uint32) {
	w.now = now
	w.Objects(func(o *Object) bool {
		if !o.Has(FlagCreature) || o.Health <= 0 || o.Target == 0 {
			return true
		}
		target, ok := w.objects.Get(o.Target)
		if !ok || target.Health <= 0 {
			o.Target = 0
			return true
		}
		from, to := o.Transform, target.Transform
		o.Transform.Angle = game.AngleBetween(from.X, from.Y, to.X, to.Y)
		if game.HzDistSqr(from.Vec3(), to.Vec3()) <= creatureReach*creatureReach {
			w.SetAttacking(o.ID)
			return true
		}

		step := creatureSpeed.Mul(game.FixedFromInt(int32(delta)))
		dx, dy := o.Transform.Angle.Direction()
		o.Transform.X = from.X.Add(step.Mul(game.FixedFromFloat(dx)))
		o.Transform.Y = from.Y.Add(step.Mul(game.FixedFromFloat(dy)))
		if w.blocked(o, o.BBox()) {
			o.Transform = from
			o.Transform.Angle = game.AngleBetween(from.X, from.Y, to.X, to.Y)
			return true
		}
		o.Stance = game.StanceWalk
		return true
	})
}

// UpdateGenerators spawns objects from every generator that is due.
func (w *World) UpdateGenerators(now, delta uint32) {
	w.now = now
	for _, g := range w.generators {
		if now < g.next {
			continue
		}
		g.spawned = slices.DeleteFunc(g.spawned, func(id uint32) bool {
			return !w.Exists(id)
		})
		if len(g.spawned) < g.Max {
			g.spawned = append(g.spawned, w.Create(g.Kind, g.At))
		}
		g.next = now + g.Interval
	}
}

// UpdateServer moves projectiles, resolving their hits, and expires projectiles that flew for
// too long.
func (w *World) UpdateServer(now, delta uint32) {
	w.now = now

	var remove []uint32
	w.Objects(func(o *Object) bool {
		if !o.Has(FlagProjectile) {
			return true
		}
		if o.Lifetime <= delta {
			remove = append(remove, o.ID)
			return true
		}
		o.Lifetime -= delta

		d := float32(delta)
		o.Transform.X = o.Transform.X.Add(game.FixedFromFloat(o.Velocity[0] * d))
		o.Transform.Y = o.Transform.Y.Add(game.FixedFromFloat(o.Velocity[1] * d))
		o.Transform.Z = o.Transform.Z.Add(game.FixedFromFloat(o.Velocity[2] * d))

		bb := o.BBox()
		if hit, ok := w.firstHit(o, bb, o.Target); ok {
			w.Damage(hit.ID, projectileDamage, int16(o.Kind), o.Target)
			remove = append(remove, o.ID)
		} else if w.hitsGeometry(bb) {
			remove = append(remove, o.ID)
		}
		return true
	})
	for _, id := range remove {
		w.Remove(id)
	}
}

// UpdateEvents runs every scheduled event that is due.
func (w *World) UpdateEvents(now, delta uint32) {
	w.now = now
	if len(w.events) == 0 {
		return
	}
	slices.SortStableFunc(w.events, func(a, b scheduledEvent) int {
		if a.at != b.at {
			if a.at < b.at {
				return -1
			}
			return 1
		}
		if a.seq < b.seq {
			return -1
		}
		return 1
	})

	var due []scheduledEvent
	for len(w.events) > 0 && w.events[0].at <= now {
		due = append(due, w.events[0])
		w.events = w.events[1:]
	}
	for _, e := range due {
		e.f(w)
	}
}

// UpdateAnimations ends the attack, hurt and die animations that have finished playing.
func (w *World) UpdateAnimations(now, delta uint32) {
	w.now = now
	for id, until := range w.animations {
		if now < until {
			continue
		}
		delete(w.animations, id)

		o, ok := w.objects.Get(id)
		if !ok {
			continue
		}
		o.Flags &^= FlagAttacking
		switch o.Stance {
		case game.StanceDie:
			o.Stance = game.StanceDead
			o.Flags &^= FlagSolid
			o.Target = 0
		case game.StanceAttack, game.StanceHurt:
			o.Stance = game.StanceStand
		}
	}
}
