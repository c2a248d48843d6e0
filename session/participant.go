package session

import (
	"github.com/oomph-ac/lockstep/action"
	"github.com/oomph-ac/lockstep/game"
	"github.com/oomph-ac/lockstep/packet"
)

// participant is the synchronization state the session keeps for one slot.
type participant struct {
	connected bool
	departed  bool

	// lastAccepted is the sequence number of the last frame filed in order. It starts at 255 so
	// that sequence 0 is the first frame accepted.
	lastAccepted uint8
	queue        []packet.Frame

	// retransmitting is set while a retransmit request for this participant is outstanding, and
	// resendAfter is the local time after which another request may be sent.
	retransmitting bool
	resendAfter    uint32

	avatar     uint32
	snapshot   game.Transform
	lastAction action.Type
}

func newParticipant(avatar uint32) participant {
	return participant{connected: true, lastAccepted: 255, avatar: avatar}
}

// required returns true if the session has to wait for a frame of this participant before it
// advances.
func (p *participant) required() bool {
	return p.connected && !p.departed
}

func (p *participant) push(f packet.Frame) {
	p.queue = append(p.queue, f)
}

func (p *participant) pop() packet.Frame {
	f := p.queue[0]
	p.queue[0] = packet.Frame{}
	p.queue = p.queue[1:]
	return f
}

// accepted marks the stream of the participant as healthy again after frames were filed.
func (p *participant) accepted(seq uint8) {
	p.lastAccepted = seq
	p.retransmitting = false
	p.resendAfter = 0
}
