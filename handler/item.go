package handler

import (
	"github.com/oomph-ac/lockstep/game"
)

// HandlePickupItem removes a picked up item from the world and, if the local player picked it up,
// adds it to their inventory. The item leaves the world on every machine, as only the actor
// knows whether it fit.
func HandlePickupItem(ctx Context, p PickupItem) {
	kind, ok := ctx.World.Kind(p.Item)
	if !ok {
		ctx.message(game.MessageAlreadyTaken)
		return
	}
	ctx.World.Remove(p.Item)
	if ctx.Local() && !ctx.Inventory.Add(kind, 1) {
		ctx.Log.Debugf("pickup of item %d with a full inventory, item lost", p.Item)
		ctx.message(game.MessageInventoryFull)
	}
}

// HandleThrowItem throws an item in the facing direction of the avatar.
func HandleThrowItem(ctx Context, p ThrowItem) {
	from, ok := ctx.World.Transform(ctx.Avatar)
	if !ok {
		return
	}
	if ctx.Local() {
		ctx.Inventory.Remove(p.Kind, 1)
	}
	ctx.World.SpawnProjectile(p.Kind, ctx.Avatar, from, float32(p.Speed))
}

// HandleDropAt creates an object on the floor at the position passed.
func HandleDropAt(ctx Context, p DropAt) {
	x, y := game.FixedFromInt(int32(p.X)), game.FixedFromInt(int32(p.Y))
	ctx.World.Create(p.Kind, game.Transform{X: x, Y: y, Z: ctx.World.FloorHeight(x, y)})
}
