package world

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/lockstep/game"
)

// Flag is a property of an object.
type Flag uint16

const (
	FlagSolid Flag = 1 << iota
	FlagAvatar
	FlagCreature
	FlagItem
	FlagProjectile
	FlagAttacking
)

// Object is a single thing living in the world: an avatar, a creature, an item on the floor or
// a projectile in flight.
type Object struct {
	ID   uint32
	Kind uint16

	Transform  game.Transform
	Stance     game.Stance
	Visibility game.Visibility
	Velocity   mgl32.Vec3

	Radius, Height float32
	Flags          Flag
	Health         int32
	LastDamageType int16

	Class     int16
	BodyParts [8]int16

	// Target is the object a creature is hunting after being alerted, or the owner of a projectile.
	Target uint32
	// Lifetime is the amount of ticks left before a projectile disappears.
	Lifetime uint32
}

// Has returns true if the object has the flag passed.
func (o *Object) Has(f Flag) bool {
	return o.Flags&f != 0
}

// BBox returns the bounding box of the object at its current position.
func (o *Object) BBox() cube.BBox {
	return game.BoxAround(o.Transform.Vec3(), o.Radius, o.Height)
}

// Template describes the objects created for a kind.
type Template struct {
	Radius, Height float32
	Flags          Flag
	Health         int32
	Lifetime       uint32
}

const (
	KindAvatar uint16 = iota + 1
	KindRat
	KindGoblin
	KindArrow
	KindFireball
	KindDagger
	KindGold
	KindPotion
)

var templates = map[uint16]Template{
	KindAvatar:   {Radius: game.AvatarRadius, Height: game.AvatarHeight, Flags: FlagSolid | FlagAvatar, Health: 100},
	KindRat:      {Radius: 8, Height: 10, Flags: FlagSolid | FlagCreature, Health: 10},
	KindGoblin:   {Radius: 12, Height: 36, Flags: FlagSolid | FlagCreature, Health: 40},
	KindArrow:    {Radius: 1, Height: 1, Flags: FlagProjectile, Lifetime: 3 * game.TicksPerSecond},
	KindFireball: {Radius: 4, Height: 4, Flags: FlagProjectile, Lifetime: 2 * game.TicksPerSecond},
	KindDagger:   {Radius: 3, Height: 2, Flags: FlagItem},
	KindGold:     {Radius: 3, Height: 2, Flags: FlagItem},
	KindPotion:   {Radius: 3, Height: 4, Flags: FlagItem},
}

var itemTemplate = Template{Radius: 3, Height: 3, Flags: FlagItem}

// RegisterTemplate registers the template used for objects of the kind passed.
func RegisterTemplate(kind uint16, t Template) {
	templates[kind] = t
}

// TemplateOf returns the template of the kind passed. Unknown kinds are treated as plain items.
func TemplateOf(kind uint16) Template {
	if t, ok := templates[kind]; ok {
		return t
	}
	return itemTemplate
}
