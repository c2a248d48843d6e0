package handler

import (
	"github.com/oomph-ac/lockstep/game"
)

// HandleLeaveLevel moves the local player to the next level, or removes a remote participant that
// left the level from the session.
func HandleLeaveLevel(ctx Context) {
	if ctx.Local() {
		ctx.Levels.Transition()
		return
	}
	depart(ctx)
}

// HandleAbortLevel abandons the level for the local player, or removes a remote participant that
// abandoned it from the session.
func HandleAbortLevel(ctx Context) {
	if ctx.Local() {
		ctx.Levels.Abort()
		return
	}
	depart(ctx)
}

func depart(ctx Context) {
	ctx.World.Remove(ctx.Avatar)
	ctx.Session.Depart(ctx.Slot)
	ctx.Presenter.ShowMessage(fmtSlot(game.MessagePlayerLeft, ctx.Slot))
	ctx.Log.Infof("slot %d left the level", ctx.Slot)
}

// HandleGotoPlace moves to another place. Every participant moves, not just the one that
// requested it.
func HandleGotoPlace(ctx Context, p GotoPlace) {
	ctx.Levels.Goto(p.Place, p.Start)
}
