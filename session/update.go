package session

import (
	"context"
	"errors"

	"github.com/oomph-ac/lockstep/packet"
)

func (s *Session) header() packet.Header {
	return packet.Header{Group: s.conf.Group, Sender: s.conf.LocalSlot}
}

// Update runs one iteration of the session: it sends the next local frame if it is due, files
// every packet received since the last call and advances as many ticks as possible, up to the
// configured maximum. Update never blocks. Only errors of writing to the transport are returned;
// the session stays usable after any of them.
func (s *Session) Update(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var errs []error
	if s.sendDue() {
		if err := s.sendFrame(); err != nil {
			errs = append(errs, err)
		}
	}
	s.drainInbox(ctx)
	for i := 0; i < s.conf.MaxAdvance; i++ {
		if !s.TryAdvance() {
			break
		}
	}
	return errors.Join(errs...)
}

func (s *Session) sendDue() bool {
	p := &s.participants[s.conf.LocalSlot]
	if !p.required() || len(p.queue) >= s.conf.MaxLead {
		return false
	}
	return s.lastSent == nil || s.clock.Now()-s.lastSend >= s.conf.SendInterval
}

// drainInbox handles every packet currently waiting in the inbox of the transport without
// waiting for more.
func (s *Session) drainInbox(ctx context.Context) {
	if s.conf.Transport == nil {
		return
	}
	inbox := s.conf.Transport.Inbox()
	for {
		select {
		case <-ctx.Done():
			return
		case b, ok := <-inbox:
			if !ok {
				return
			}
			s.HandlePacket(b)
		default:
			return
		}
	}
}

// HandlePacket decodes a packet received from the transport and handles it. Packets that can't
// be decoded or belong to another group are dropped.
func (s *Session) HandlePacket(b []byte) {
	h, pk, err := packet.Decode(b)
	if err != nil {
		s.log.Debugf("drop packet: %v", err)
		return
	}
	if h.Group != s.conf.Group {
		s.log.Debugf("drop packet of group %d", h.Group)
		return
	}
	switch pk := pk.(type) {
	case *packet.Sync:
		if h.Sender == s.conf.LocalSlot {
			return
		}
		v := s.OnFrameReceived(h.Sender, pk)
		s.log.Debugf("slot %d: frame %d %v", h.Sender, pk.Current.Seq, v)
	case *packet.RetransmitRequest:
		s.OnRetransmitRequested(pk)
	}
}

// buildFrame builds the next outbound frame from the local transform and stance and the oldest
// queued action.
func (s *Session) buildFrame() packet.Frame {
	now := s.clock.Now()
	t := s.local.Quantized()
	f := packet.Frame{
		Seq:        s.outSeq,
		Delta:      now - s.lastSend,
		Mask:       packet.FieldsTransform,
		X:          t.X,
		Y:          t.Y,
		Z:          t.Z,
		Angle:      t.Angle,
		Stance:     s.stance,
		Visibility: s.visibility,
	}
	if s.lastSent == nil {
		f.Delta = s.conf.SendInterval
	}
	if a, ok := s.actions.Pop(); ok {
		f.Mask |= packet.FieldAction
		f.Action = a
	}
	if s.conf.Integrity != IntegrityNone && s.ticked {
		last := s.tickSeq - 1
		if v, ok := s.detector.Lookup(last); ok {
			f.Mask |= packet.FieldIntegrity
			f.IntegrityValue, f.IntegritySeq = v, last
		}
	}
	return f
}

// sendFrame sends the next local frame to every other participant, carrying the previous frame
// along, and files it locally through the same path as every received frame.
func (s *Session) sendFrame() error {
	f := s.buildFrame()
	pk := &packet.Sync{Current: f}
	if s.lastSent != nil {
		pk.HasPrevious, pk.Previous = true, *s.lastSent
	}

	b := packet.Encode(s.header(), pk)
	s.remember(f.Seq, b)
	s.lastSent = &f
	s.lastSend = s.clock.Now()
	s.outSeq++
	s.stats.FramesSent++

	s.OnFrameReceived(s.conf.LocalSlot, pk)
	if s.conf.Transport == nil || s.live <= 1 {
		return nil
	}
	for i := 0; i <= s.conf.DuplicateSends; i++ {
		if err := s.conf.Transport.Broadcast(b); err != nil {
			return err
		}
	}
	return nil
}

// Flush sends the next local frame right away, regardless of the send interval.
func (s *Session) Flush() error {
	if p := &s.participants[s.conf.LocalSlot]; !p.required() {
		return nil
	}
	return s.sendFrame()
}
