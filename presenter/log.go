package presenter

import (
	"github.com/oomph-ac/lockstep/game"
	"github.com/sandertv/gophertunnel/minecraft/text"
	"github.com/sirupsen/logrus"
)

// Log is a Presenter for headless peers, writing everything it is asked to present to a logger.
type Log struct {
	log      *logrus.Logger
	overlays map[Overlay]bool
	status   string
}

// NewLog returns a Log presenter writing to the logger passed.
func NewLog(log *logrus.Logger) *Log {
	return &Log{log: log, overlays: make(map[Overlay]bool)}
}

func (l *Log) PlaySound(id int16) {
	l.log.Debugf("sound %d", id)
}

func (l *Log) PlaySoundAt(id int16, x, y game.Fixed, radius int16) {
	l.log.Debugf("sound %d at (%d, %d) radius %d", id, x.Int(), y.Int(), radius)
}

func (l *Log) ShowMessage(msg string) {
	l.log.Info(text.Clean(msg))
}

func (l *Log) ShowStatus(status string) {
	if status == l.status {
		return
	}
	l.status = status
	l.log.Warnf("status: %s", text.Clean(status))
}

func (l *Log) ToggleOverlay(o Overlay) bool {
	l.overlays[o] = !l.overlays[o]
	return l.overlays[o]
}

// Status returns the current status line.
func (l *Log) Status() string {
	return l.status
}
