package client

import (
	"strings"

	"github.com/oomph-ac/lockstep/settings"
)

// Command is something the player can do with a single key.
type Command uint8

const (
	CommandAttack Command = iota
	CommandFire
	CommandActivate
	CommandPickup
	CommandThrow
	CommandSteal
	CommandPickLock
	CommandPause
	CommandLeaveLevel
	CommandAutomap
	CommandHUD
	CommandInventory
)

// Bindings maps every non-empty key of k to its command. Key names are case-insensitive.
func Bindings(k settings.Keys) map[string]Command {
	m := make(map[string]Command)
	for key, cmd := range map[string]Command{
		k.Attack:     CommandAttack,
		k.Fire:       CommandFire,
		k.Activate:   CommandActivate,
		k.Pickup:     CommandPickup,
		k.Throw:      CommandThrow,
		k.Steal:      CommandSteal,
		k.PickLock:   CommandPickLock,
		k.Pause:      CommandPause,
		k.LeaveLevel: CommandLeaveLevel,
		k.Automap:    CommandAutomap,
		k.HUD:        CommandHUD,
		k.Inventory:  CommandInventory,
	} {
		if key != "" {
			m[strings.ToLower(key)] = cmd
		}
	}
	return m
}
