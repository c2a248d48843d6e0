package client

import (
	"github.com/oomph-ac/lockstep/action"
	"github.com/oomph-ac/lockstep/game"
	"github.com/oomph-ac/lockstep/presenter"
)

// Melee attacks the target passed.
func (c *Client) Melee(target uint32, amount, damageType int16) {
	c.queue(action.TypeMeleeAttack, amount, damageType, int16(target))
}

// Fire fires a missile of the kind passed, aimed at target if it is not zero.
func (c *Client) Fire(kind uint16, target uint32, power int16) {
	c.queue(action.TypeMissileAttack, int16(kind), int16(target), power)
}

// Activate opens or closes whatever is in front of the avatar.
func (c *Client) Activate() {
	c.queue(action.TypeActivateForward)
}

// Pickup picks up the item with the ID passed. Nothing is queued if the item does not fit the
// inventory, as every machine removes a picked up item from the world.
func (c *Client) Pickup(item uint32) bool {
	if kind, ok := c.conf.World.Kind(item); ok && c.conf.Inventory.Full() && c.conf.Inventory.Count(kind) == 0 {
		c.conf.Presenter.ShowMessage(game.MessageInventoryFull)
		return false
	}
	c.queue(action.TypePickupItem, int16(item))
	return true
}

// Throw throws an item of the kind passed. It returns false if the player carries none.
func (c *Client) Throw(kind uint16, speed int16) bool {
	if c.conf.Inventory.Count(kind) == 0 {
		return false
	}
	c.queue(action.TypeThrowItem, int16(kind), speed)
	return true
}

// Steal attempts to steal an item of the kind passed from another participant. The outcome is
// decided here and every machine applies the same result.
func (c *Client) Steal(victim uint8, kind uint16) bool {
	success := c.conf.Rand.Float64() < c.conf.StealChance
	c.queue(action.TypeSteal, int16(victim), int16(kind), flag(success))
	return success
}

// PickLock attempts to pick the lock of the door in front of the avatar. It returns false if
// there is no door.
func (c *Client) PickLock() bool {
	x, y := c.conf.Session.LocalTransform().Ahead(game.ActivateReach)
	door, ok := c.conf.World.DoorNear(x, y)
	if !ok {
		c.conf.Presenter.ShowMessage(game.MessageNothingToOpen)
		return false
	}
	var decrease int16
	success := c.conf.Rand.Float64() < c.conf.PickLockChance
	if success {
		decrease = int16(1 + c.conf.Rand.IntN(3))
	}
	c.queue(action.TypePickLock, int16(door), flag(success), decrease)
	return true
}

// ChangeBodyPart wears a body part at the location passed.
func (c *Client) ChangeBodyPart(location, part int16) {
	c.queue(action.TypeChangeBodyPart, location, part)
}

// IdentifySelf announces the character class of the local player.
func (c *Client) IdentifySelf(class int16) {
	c.queue(action.TypeIDSelf, class)
}

// AreaSound plays a sound around the avatar for everyone close enough.
func (c *Client) AreaSound(sound, radius int16) {
	c.queue(action.TypeAreaSound, sound, radius)
}

// Goto moves every participant to another place.
func (c *Client) Goto(place, start int16) {
	c.queue(action.TypeGotoPlace, place, start)
}

// Drop drops a new object of the kind passed on the floor.
func (c *Client) Drop(kind uint16, x, y int16) {
	c.queue(action.TypeDropAt, int16(kind), x, y)
}

// TogglePause pauses or resumes the session for everyone.
func (c *Client) TogglePause() {
	c.queue(action.TypePauseToggle)
}

// Leave leaves the current level.
func (c *Client) Leave() {
	c.queue(action.TypeLeaveLevel)
}

// Abort abandons the current level.
func (c *Client) Abort() {
	c.queue(action.TypeAbortLevel)
}

// ToggleOverlay toggles a local overlay. Nothing is synchronized.
func (c *Client) ToggleOverlay(o presenter.Overlay) bool {
	return c.conf.Presenter.ToggleOverlay(o)
}

func flag(b bool) int16 {
	if b {
		return 1
	}
	return 0
}
