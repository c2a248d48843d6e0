package presenter

import "github.com/oomph-ac/lockstep/game"

// Sound is a sound played through a Recorder.
type Sound struct {
	ID     int16
	X, Y   game.Fixed
	Radius int16
	Placed bool
}

// Recorder is a Presenter that remembers everything presented to it.
type Recorder struct {
	Sounds   []Sound
	Messages []string
	Status   string
	Overlays map[Overlay]bool
}

func (r *Recorder) PlaySound(id int16) {
	r.Sounds = append(r.Sounds, Sound{ID: id})
}

func (r *Recorder) PlaySoundAt(id int16, x, y game.Fixed, radius int16) {
	r.Sounds = append(r.Sounds, Sound{ID: id, X: x, Y: y, Radius: radius, Placed: true})
}

func (r *Recorder) ShowMessage(msg string) {
	r.Messages = append(r.Messages, msg)
}

func (r *Recorder) ShowStatus(status string) {
	r.Status = status
}

func (r *Recorder) ToggleOverlay(o Overlay) bool {
	if r.Overlays == nil {
		r.Overlays = make(map[Overlay]bool)
	}
	r.Overlays[o] = !r.Overlays[o]
	return r.Overlays[o]
}
