package session

// auditAndCorrect rolls back every avatar that overlaps something after the positions of this
// tick were applied. All avatars are tested before any of them is moved back, so the outcome
// does not depend on slot order.
func (s *Session) auditAndCorrect() {
	var flagged [maxSlots]bool
	for slot := 0; slot < s.slots; slot++ {
		p := &s.participants[slot]
		if !p.required() || p.lastAction.LeavesLevel() {
			continue
		}
		flagged[slot] = s.world.Collides(p.avatar)
	}

	for slot := 0; slot < s.slots; slot++ {
		if !flagged[slot] {
			continue
		}
		p := &s.participants[slot]
		s.world.SetTransform(p.avatar, p.snapshot)
		s.stats.Rollbacks++
		s.log.Debugf("slot %d: avatar collided, rolled back to (%d, %d, %d)", slot, p.snapshot.X.Int(), p.snapshot.Y.Int(), p.snapshot.Z.Int())
		if uint8(slot) == s.conf.LocalSlot {
			s.local = p.snapshot
		}
	}
}
