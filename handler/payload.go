package handler

// ChangeBodyPart changes the body part worn at a body location.
type ChangeBodyPart struct {
	Location, Part int16
}

func (p *ChangeBodyPart) decode(d [4]int16) { p.Location, p.Part = d[0], d[1] }

// MeleeAttack damages a target directly.
type MeleeAttack struct {
	Amount, DamageType int16
	Target             uint32
}

func (p *MeleeAttack) decode(d [4]int16) {
	p.Amount, p.DamageType, p.Target = d[0], d[1], uint32(uint16(d[2]))
}

// MissileAttack fires a missile, aimed at Target if it is set.
type MissileAttack struct {
	Kind   uint16
	Target uint32
	Power  int16
}

func (p *MissileAttack) decode(d [4]int16) {
	p.Kind, p.Target, p.Power = uint16(d[0]), uint32(uint16(d[1])), d[2]
}

// PickupItem picks up an item lying in the world.
type PickupItem struct {
	Item uint32
}

func (p *PickupItem) decode(d [4]int16) { p.Item = uint32(uint16(d[0])) }

// ThrowItem throws an item from the inventory.
type ThrowItem struct {
	Kind  uint16
	Speed int16
}

func (p *ThrowItem) decode(d [4]int16) { p.Kind, p.Speed = uint16(d[0]), d[1] }

// Steal is an attempt to steal from another participant. Its outcome was decided by the thief.
type Steal struct {
	Victim  uint8
	Kind    uint16
	Success bool
}

func (p *Steal) decode(d [4]int16) {
	p.Victim, p.Kind, p.Success = uint8(d[0]), uint16(d[1]), d[2] != 0
}

// Stolen confirms a successful steal, sent by the victim.
type Stolen struct {
	Thief uint8
	Kind  uint16
	Qty   int16
}

func (p *Stolen) decode(d [4]int16) { p.Thief, p.Kind, p.Qty = uint8(d[0]), uint16(d[1]), d[2] }

// PickLock is an attempt to pick the lock of a door. Its outcome was decided by the actor.
type PickLock struct {
	Door     uint16
	Success  bool
	Decrease int16
}

func (p *PickLock) decode(d [4]int16) {
	p.Door, p.Success, p.Decrease = uint16(d[0]), d[1] != 0, d[2]
}

// AreaSound is a sound heard by everyone close to the avatar.
type AreaSound struct {
	Sound, Radius int16
}

func (p *AreaSound) decode(d [4]int16) { p.Sound, p.Radius = d[0], d[1] }

// GotoPlace moves every participant to another place.
type GotoPlace struct {
	Place, Start int16
}

func (p *GotoPlace) decode(d [4]int16) { p.Place, p.Start = d[0], d[1] }

// DropAt drops a new object on the floor.
type DropAt struct {
	Kind uint16
	X, Y int16
}

func (p *DropAt) decode(d [4]int16) { p.Kind, p.X, p.Y = uint16(d[0]), d[1], d[2] }

// IDSelf announces the character class of a participant.
type IDSelf struct {
	Class int16
}

func (p *IDSelf) decode(d [4]int16) { p.Class = d[0] }
