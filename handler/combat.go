package handler

import (
	"github.com/oomph-ac/lockstep/game"
)

// HandleMeleeAttack resolves melee damage against the target. A target that no longer exists is
// ignored.
func HandleMeleeAttack(ctx Context, p MeleeAttack) {
	if !ctx.World.Exists(p.Target) {
		ctx.Log.Debugf("slot %d: melee target %d is gone", ctx.Slot, p.Target)
		return
	}
	ctx.World.Damage(p.Target, p.Amount, p.DamageType, ctx.Avatar)
}

// HandleMissileAttack fires a missile from the avatar. The missile is aimed at the target if it
// still exists and flies in the facing direction otherwise. Creatures around the avatar are
// alerted to the attacker.
func HandleMissileAttack(ctx Context, p MissileAttack) {
	from, ok := ctx.World.Transform(ctx.Avatar)
	if !ok {
		return
	}
	if p.Target != 0 {
		if target, ok := ctx.World.Transform(p.Target); ok {
			from.Angle = game.AngleBetween(from.X, from.Y, target.X, target.Y)
		}
	}
	ctx.World.SpawnProjectile(p.Kind, ctx.Avatar, from, missileSpeed(p.Power))
	ctx.World.SetAttacking(ctx.Avatar)
	ctx.World.AlertCreatures(from, game.AlertRadius, ctx.Avatar)
}

// missileSpeed returns the speed in units per tick of a missile fired with the power passed.
func missileSpeed(power int16) float32 {
	if power < 0 {
		power = 0
	}
	return 4 + float32(power)/8
}
