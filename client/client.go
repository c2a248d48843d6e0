// Package client translates input of the local player into actions. Everything that changes the
// shared world is queued on the session and synchronized, while pure UI toggles go straight to the
// presenter.
package client

import (
	"math/rand/v2"
	"strings"

	"github.com/oomph-ac/lockstep/action"
	"github.com/oomph-ac/lockstep/game"
	"github.com/oomph-ac/lockstep/presenter"
	"github.com/oomph-ac/lockstep/settings"
	"github.com/oomph-ac/lockstep/world"
	"github.com/sirupsen/logrus"
)

// Session is the part of the synchronization session the client queues actions on.
type Session interface {
	Queue(a action.Action)
	LocalSlot() uint8
	LocalTransform() game.Transform
	Avatar(slot uint8) (uint32, bool)
}

// World is the read-only view of the world the client needs to decide what an input means.
type World interface {
	Kind(id uint32) (uint16, bool)
	DoorNear(x, y game.Fixed) (uint16, bool)
}

// Inventory is the inventory of the local player.
type Inventory interface {
	Count(kind uint16) int
	Kinds() []uint16
	Full() bool
}

// Config holds everything a Client is built from.
type Config struct {
	Log       *logrus.Logger
	Session   Session
	World     World
	Inventory Inventory
	Presenter presenter.Presenter
	Keys      settings.Keys

	// Rand decides the outcome of steals and lock picking. A randomly seeded source is used if
	// it is nil.
	Rand *rand.Rand
	// StealChance and PickLockChance are the probabilities of a steal or lock picking attempt
	// succeeding.
	StealChance    float64
	PickLockChance float64

	MeleeDamage  int16
	Missile      uint16
	MissilePower int16
	ThrowSpeed   int16
}

func (conf Config) withDefaults() Config {
	if conf.Log == nil {
		conf.Log = logrus.StandardLogger()
	}
	if conf.Presenter == nil {
		conf.Presenter = presenter.Nop{}
	}
	if conf.Rand == nil {
		conf.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if conf.StealChance == 0 {
		conf.StealChance = 0.4
	}
	if conf.PickLockChance == 0 {
		conf.PickLockChance = 0.5
	}
	if conf.MeleeDamage == 0 {
		conf.MeleeDamage = 10
	}
	if conf.Missile == 0 {
		conf.Missile = world.KindArrow
	}
	if conf.MissilePower == 0 {
		conf.MissilePower = 32
	}
	if conf.ThrowSpeed == 0 {
		conf.ThrowSpeed = 6
	}
	return conf
}

// Client is the action façade of the local player.
type Client struct {
	conf     Config
	bindings map[string]Command
	target   uint32
}

// New creates a Client from the Config passed.
func New(conf Config) *Client {
	conf = conf.withDefaults()
	return &Client{conf: conf, bindings: Bindings(conf.Keys)}
}

// SetTarget sets the object the player is currently aiming at. Zero clears the target.
func (c *Client) SetTarget(id uint32) {
	c.target = id
}

// Target returns the object the player is aiming at.
func (c *Client) Target() uint32 {
	return c.target
}

// Press handles a key press. It returns false if nothing is bound to the key.
func (c *Client) Press(key string) bool {
	cmd, ok := c.bindings[strings.ToLower(key)]
	if !ok {
		c.conf.Log.Debugf("client: no command bound to key %q", key)
		return false
	}
	c.Do(cmd)
	return true
}

// Do runs the command passed against the current target of the player.
func (c *Client) Do(cmd Command) {
	switch cmd {
	case CommandAttack:
		if c.target != 0 {
			c.Melee(c.target, c.conf.MeleeDamage, 0)
		}
	case CommandFire:
		c.Fire(c.conf.Missile, c.target, c.conf.MissilePower)
	case CommandActivate:
		c.Activate()
	case CommandPickup:
		if c.target != 0 {
			c.Pickup(c.target)
		}
	case CommandThrow:
		if kinds := c.conf.Inventory.Kinds(); len(kinds) > 0 {
			c.Throw(kinds[0], c.conf.ThrowSpeed)
		}
	case CommandSteal:
		if victim, ok := c.slotOf(c.target); ok {
			c.Steal(victim, c.stealKind())
		}
	case CommandPickLock:
		c.PickLock()
	case CommandPause:
		c.TogglePause()
	case CommandLeaveLevel:
		c.Leave()
	case CommandAutomap:
		c.ToggleOverlay(presenter.OverlayAutomap)
	case CommandHUD:
		c.ToggleOverlay(presenter.OverlayHUD)
	case CommandInventory:
		c.ToggleOverlay(presenter.OverlayInventory)
	}
}

// slotOf returns the slot of another participant whose avatar has the object ID passed.
func (c *Client) slotOf(id uint32) (uint8, bool) {
	if id == 0 {
		return 0, false
	}
	for slot := uint8(0); slot < game.MaxPlayers; slot++ {
		if slot == c.conf.Session.LocalSlot() {
			continue
		}
		if avatar, ok := c.conf.Session.Avatar(slot); ok && avatar == id {
			return slot, true
		}
	}
	return 0, false
}

// stealKind picks the kind of item a steal goes for. Gold is the default loot.
func (c *Client) stealKind() uint16 {
	kinds := [...]uint16{world.KindGold, world.KindDagger, world.KindPotion}
	return kinds[c.conf.Rand.IntN(len(kinds))]
}

func (c *Client) queue(t action.Type, data ...int16) {
	c.conf.Session.Queue(action.New(t, data...))
}
