package session

import (
	"github.com/oomph-ac/lockstep/game"
	"github.com/oomph-ac/lockstep/packet"
)

// Verdict is the classification of a received sync packet.
type Verdict uint8

const (
	// VerdictAccepted means the frame was the next expected one and was filed.
	VerdictAccepted Verdict = iota
	// VerdictRecovered means exactly one frame was lost and was rebuilt from the previous frame
	// carried along, after which both frames were filed.
	VerdictRecovered
	// VerdictStale means the frame was already filed or is far behind, and was discarded.
	VerdictStale
	// VerdictGap means frames are missing that cannot be recovered locally.
	VerdictGap
	// VerdictIgnored means the packet came from a slot the session does not track.
	VerdictIgnored
)

func (v Verdict) String() string {
	switch v {
	case VerdictAccepted:
		return "accepted"
	case VerdictRecovered:
		return "recovered"
	case VerdictStale:
		return "stale"
	case VerdictGap:
		return "gap"
	default:
		return "ignored"
	}
}

// OnFrameReceived files a sync packet sent by the participant in the slot passed. It never
// blocks, and delivering the same packet more than once files its frames only once.
func (s *Session) OnFrameReceived(slot uint8, pk *packet.Sync) Verdict {
	if int(slot) >= s.slots {
		return VerdictIgnored
	}
	p := &s.participants[slot]
	if !p.required() {
		return VerdictIgnored
	}

	seq := pk.Current.Seq
	switch diff := game.SeqDiff(seq, p.lastAccepted); {
	case diff == 1:
		p.push(pk.Current)
		p.accepted(seq)
		s.stats.FramesAccepted++
		s.log.Debugf("slot %d: accepted frame %d", slot, seq)
		return VerdictAccepted
	case diff == 2 && pk.HasPrevious && pk.Previous.Seq == seq-1:
		p.push(pk.Previous)
		p.push(pk.Current)
		p.accepted(seq)
		s.stats.FramesAccepted += 2
		s.stats.FramesRecovered++
		s.log.Debugf("slot %d: recovered frame %d from frame %d", slot, seq-1, seq)
		return VerdictRecovered
	case diff == 0 || diff > game.StaleSequenceWindow:
		s.stats.FramesStale++
		return VerdictStale
	default:
		s.requestRetransmit(slot, p)
		return VerdictGap
	}
}

// requestRetransmit asks the participant to resend everything after the last frame accepted
// from it, unless a request was sent less than the guard interval ago.
func (s *Session) requestRetransmit(slot uint8, p *participant) {
	now := s.clock.Now()
	if p.retransmitting && now < p.resendAfter {
		return
	}
	p.retransmitting = true
	p.resendAfter = now + s.conf.ResendGuard

	since := p.lastAccepted + 1
	s.stats.RetransmitsRequested++
	s.log.Warnf("slot %d: frames missing after %d, requesting retransmit", slot, p.lastAccepted)
	if err := s.sendRetransmitRequest(slot, since); err != nil {
		s.log.Errorf("slot %d: send retransmit request: %v", slot, err)
	}
}
