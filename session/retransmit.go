package session

import (
	"github.com/oomph-ac/lockstep/packet"
)

// sentPacket is an encoded sync packet kept around in case a participant asks for it again.
type sentPacket struct {
	seq  uint8
	data []byte
}

// remember appends an encoded sync packet to the history, evicting the oldest one.
func (s *Session) remember(seq uint8, data []byte) {
	if err := s.history.Append(sentPacket{seq: seq, data: data}); err != nil {
		s.log.Errorf("remember frame %d: %v", seq, err)
	}
}

// OnRetransmitRequested resends every packet from the requested sequence number onwards, in the
// order they were first sent, to the requester only. Requests for frames that are no longer in
// the history are logged and ignored; the requester asks again after its guard interval.
func (s *Session) OnRetransmitRequested(req *packet.RetransmitRequest) {
	if s.conf.Transport == nil || req.From != s.conf.LocalSlot || req.Requester == s.conf.LocalSlot || int(req.Requester) >= s.slots {
		return
	}

	start := -1
	for i, sent := range s.history.All() {
		if sent.seq == req.Since {
			start = i
			break
		}
	}
	if start == -1 {
		s.stats.RetransmitsUnknown++
		s.log.Warnf("slot %d requested frame %d which is no longer in history", req.Requester, req.Since)
		return
	}

	var resent int
	for i, sent := range s.history.All() {
		if i < start {
			continue
		}
		if err := s.conf.Transport.WriteTo(req.Requester, sent.data); err != nil {
			s.log.Errorf("resend frame %d to slot %d: %v", sent.seq, req.Requester, err)
			return
		}
		resent++
	}
	s.stats.RetransmitsServed++
	s.log.Debugf("resent %d frames from %d to slot %d", resent, req.Since, req.Requester)
}

func (s *Session) sendRetransmitRequest(from uint8, since uint8) error {
	if s.conf.Transport == nil {
		return nil
	}
	b := packet.Encode(s.header(), &packet.RetransmitRequest{
		Requester: s.conf.LocalSlot,
		From:      from,
		Since:     since,
	})
	return s.conf.Transport.WriteTo(from, b)
}
