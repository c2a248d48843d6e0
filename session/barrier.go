package session

import (
	"github.com/oomph-ac/lockstep/action"
	"github.com/oomph-ac/lockstep/game"
	"github.com/oomph-ac/lockstep/handler"
	"github.com/oomph-ac/lockstep/packet"
	"github.com/sandertv/gophertunnel/minecraft/text"
	"github.com/sirupsen/logrus"
)

// ready returns true if every participant the session waits for has a frame queued.
func (s *Session) ready() bool {
	var waiting int
	for slot := 0; slot < s.slots; slot++ {
		p := &s.participants[slot]
		if !p.required() {
			continue
		}
		if len(p.queue) == 0 {
			return false
		}
		waiting++
	}
	return waiting > 0
}

// TryAdvance advances the session by one tick if a frame of every connected participant is
// available. If any is missing nothing changes and false is returned; the caller simply tries
// again later.
func (s *Session) TryAdvance() bool {
	if !s.ready() {
		return false
	}

	var maxDelta uint32
	for slot := 0; slot < s.slots; slot++ {
		p := &s.participants[slot]
		// A participant may have departed through an action of a lower slot in this same tick.
		if !p.required() || len(p.queue) == 0 {
			continue
		}
		f := p.pop()
		if f.Has(packet.FieldIntegrity) {
			s.checkIntegrity(uint8(slot), f)
		}
		s.apply(uint8(slot), p, f)
		maxDelta = max(maxDelta, f.Delta)
	}

	delta := game.ClampDelta(maxDelta, s.conf.MaxDelta)
	if !s.paused {
		s.syncTime += delta
		if sim := s.conf.Simulation; sim != nil {
			sim.UpdateCreatures(s.syncTime, delta)
			sim.UpdateGenerators(s.syncTime, delta)
			sim.UpdateServer(s.syncTime, delta)
			sim.UpdateEvents(s.syncTime, delta)
			sim.UpdateAnimations(s.syncTime, delta)
		}
	}
	s.auditAndCorrect()

	if s.conf.Integrity != IntegrityNone {
		s.detector.Record(s.tickSeq, s.integrityValue())
	}
	s.tickSeq++
	s.ticked = true
	s.stats.Ticks++
	return true
}

// apply writes the fields of a frame to the avatar of the participant and dispatches its action.
// The transform of the avatar before the write is kept for the collision audit.
func (s *Session) apply(slot uint8, p *participant, f packet.Frame) {
	before, _ := s.world.Transform(p.avatar)
	p.snapshot = before
	p.lastAction = action.TypeNone

	s.world.SetTransform(p.avatar, f.Transform(before))
	if f.Has(packet.FieldStance) {
		s.world.SetStance(p.avatar, f.Stance, f.Visibility)
	}
	if !f.Has(packet.FieldAction) || f.Action.Empty() {
		return
	}
	p.lastAction = f.Action.Type
	s.dispatcher.Dispatch(handler.Context{
		Session:   s,
		World:     s.world,
		Inventory: s.conf.Inventory,
		Presenter: s.conf.Presenter,
		Levels:    s.conf.Levels,
		Log:       s.conf.Log,
		Slot:      slot,
		Avatar:    p.avatar,
		LocalSlot: s.conf.LocalSlot,
	}, f.Action)
}

// integrityValue returns the local integrity value of the current state.
func (s *Session) integrityValue() uint32 {
	if s.conf.Integrity == IntegrityStateHash {
		return s.world.Digest()
	}
	return s.world.NextObjectID()
}

// checkIntegrity compares the integrity value claimed in a frame with the recorded one. A
// mismatch sets the persistent status line; the session carries on regardless.
func (s *Session) checkIntegrity(slot uint8, f packet.Frame) {
	m, ok := s.detector.Check(f.IntegritySeq, f.IntegrityValue)
	if !ok {
		return
	}
	s.stats.Divergences++
	s.status = text.Colourf(game.StatusObjectSyncError, m.Seq, m.Local, m.Remote)
	s.conf.Presenter.ShowStatus(s.status)
	s.log.WithFields(logrus.Fields{
		"slot":   slot,
		"seq":    m.Seq,
		"local":  m.Local,
		"remote": m.Remote,
	}).Error("simulation diverged")
}
