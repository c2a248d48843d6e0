package handler

import (
	"fmt"

	"github.com/oomph-ac/lockstep/game"
)

func fmtSlot(format string, slot uint8) string {
	return fmt.Sprintf(format, int(slot)+1)
}

// HandleChangeBodyPart changes the body part worn by the avatar at a body location.
func HandleChangeBodyPart(ctx Context, p ChangeBodyPart) {
	ctx.World.SetBodyPart(ctx.Avatar, p.Location, p.Part)
}

// HandleIDSelf sets the character class of the avatar and announces the participant.
func HandleIDSelf(ctx Context, p IDSelf) {
	ctx.World.SetIdentity(ctx.Avatar, p.Class)
	if !ctx.Local() {
		ctx.Presenter.ShowMessage(fmtSlot(game.MessagePlayerJoined, ctx.Slot))
	}
}

// HandlePauseToggle pauses or resumes the session.
func HandlePauseToggle(ctx Context) {
	if ctx.Session.TogglePause() {
		ctx.Presenter.ShowMessage(fmtSlot(game.MessagePaused, ctx.Slot))
		return
	}
	ctx.Presenter.ShowMessage(fmtSlot(game.MessageResumed, ctx.Slot))
}

// HandleAreaSound plays a sound around the avatar.
func HandleAreaSound(ctx Context, p AreaSound) {
	t, ok := ctx.World.Transform(ctx.Avatar)
	if !ok {
		return
	}
	ctx.Presenter.PlaySoundAt(p.Sound, t.X, t.Y, p.Radius)
}
