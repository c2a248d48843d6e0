package handler

import (
	"github.com/oomph-ac/lockstep/action"
	"github.com/oomph-ac/lockstep/game"
)

// HandleSteal applies the outcome of a steal. If the local player was robbed, the item leaves
// their inventory and a Stolen action hands it over to the thief.
func HandleSteal(ctx Context, p Steal) {
	if ctx.Local() {
		if p.Success {
			ctx.Presenter.ShowMessage(game.MessageStealAttempt)
		} else {
			ctx.Presenter.ShowMessage(game.MessageStealFailed)
		}
		return
	}
	if !p.Success || p.Victim != ctx.LocalSlot {
		return
	}
	if !ctx.Inventory.Remove(p.Kind, 1) {
		return
	}
	ctx.Presenter.ShowMessage(game.MessageStealVictim)
	ctx.Session.Queue(action.New(action.TypeStolen, int16(ctx.Slot), int16(p.Kind), 1))
}

// HandleStolen delivers a stolen item to the thief.
func HandleStolen(ctx Context, p Stolen) {
	if p.Thief != ctx.LocalSlot || p.Qty <= 0 {
		return
	}
	ctx.Inventory.Add(p.Kind, int(p.Qty))
	ctx.Presenter.ShowMessage(game.MessageStoleItem)
}
