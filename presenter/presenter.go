// Package presenter holds the narrow presentation surface the lockstep core talks to. Drawing,
// sound mixing and widgets live behind it.
package presenter

import (
	"github.com/oomph-ac/lockstep/game"
)

// Overlay is a local-only piece of UI that can be toggled without involving other participants.
type Overlay uint8

const (
	OverlayAutomap Overlay = iota
	OverlayHUD
	OverlayInventory
)

// Presenter presents feedback to the local player.
type Presenter interface {
	// PlaySound plays a sound without a position.
	PlaySound(id int16)
	// PlaySoundAt plays a sound heard within radius of the point passed.
	PlaySoundAt(id int16, x, y game.Fixed, radius int16)
	// ShowMessage shows a transient message.
	ShowMessage(msg string)
	// ShowStatus sets the persistent status line. It stays until replaced.
	ShowStatus(status string)
	// ToggleOverlay toggles a local overlay and returns whether it is now shown.
	ToggleOverlay(o Overlay) bool
}

// Nop is a Presenter that discards everything.
type Nop struct{}

func (Nop) PlaySound(int16)                                  {}
func (Nop) PlaySoundAt(int16, game.Fixed, game.Fixed, int16) {}
func (Nop) ShowMessage(string)                               {}
func (Nop) ShowStatus(string)                                {}
func (Nop) ToggleOverlay(Overlay) bool                       { return false }
