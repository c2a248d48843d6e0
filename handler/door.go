package handler

import (
	"github.com/oomph-ac/lockstep/game"
)

// HandleActivateForward opens or closes the door in front of the avatar.
func HandleActivateForward(ctx Context) {
	t, ok := ctx.World.Transform(ctx.Avatar)
	if !ok {
		return
	}
	x, y := t.Ahead(game.ActivateReach)
	door, ok := ctx.World.DoorNear(x, y)
	if !ok {
		ctx.message(game.MessageNothingToOpen)
		return
	}
	if _, ok := ctx.World.ToggleDoor(door); !ok {
		ctx.message(game.MessageDoorLocked)
	}
}

// HandlePickLock applies the outcome of a lock picking attempt.
func HandlePickLock(ctx Context, p PickLock) {
	if !p.Success {
		ctx.message(game.MessageLockResisted)
		return
	}
	if _, ok := ctx.World.DecreaseLock(p.Door, p.Decrease); !ok {
		ctx.Log.Debugf("slot %d: picked lock of unknown door %d", ctx.Slot, p.Door)
		return
	}
	ctx.message(game.MessageLockPicked)
}
