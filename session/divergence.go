package session

// IntegrityMode selects the value participants compare to detect that their simulations
// diverged.
type IntegrityMode uint8

const (
	// IntegrityNone disables the integrity field of frames.
	IntegrityNone IntegrityMode = iota
	// IntegrityNextObjectID compares the ID the next created object would get.
	IntegrityNextObjectID
	// IntegrityStateHash compares a hash over the complete world state.
	IntegrityStateHash
)

// ParseIntegrityMode parses the name of an integrity mode as used in settings.
func ParseIntegrityMode(s string) (IntegrityMode, bool) {
	switch s {
	case "none", "off":
		return IntegrityNone, true
	case "next-object-id", "":
		return IntegrityNextObjectID, true
	case "state-hash":
		return IntegrityStateHash, true
	}
	return IntegrityNone, false
}

// Mismatch is a tick for which another participant claimed a different integrity value than the
// one recorded locally.
type Mismatch struct {
	Seq           uint8
	Local, Remote uint32
}

type record struct {
	seq   uint8
	value uint32
	known bool
}

// Detector remembers the integrity value of the most recent ticks so that claims of other
// participants about those ticks can be compared against them. It only detects; nothing is
// ever repaired.
type Detector struct {
	ring []record
	head int
}

// NewDetector returns a Detector remembering the amount of ticks passed.
func NewDetector(size int) *Detector {
	return &Detector{ring: make([]record, size)}
}

// Record stores the integrity value of the tick with the sequence number passed, overwriting the
// oldest entry.
func (d *Detector) Record(seq uint8, value uint32) {
	d.ring[d.head] = record{seq: seq, value: value, known: true}
	d.head = (d.head + 1) % len(d.ring)
}

// Lookup returns the value recorded for the tick with the sequence number passed.
func (d *Detector) Lookup(seq uint8) (uint32, bool) {
	for i := range d.ring {
		r := d.ring[(d.head-1-i+2*len(d.ring))%len(d.ring)]
		if r.known && r.seq == seq {
			return r.value, true
		}
	}
	return 0, false
}

// Check compares a claimed integrity value for a tick against the recorded one. A mismatch is
// only reported if the tick is known locally and the claim is not zero.
func (d *Detector) Check(seq uint8, claim uint32) (Mismatch, bool) {
	if claim == 0 {
		return Mismatch{}, false
	}
	local, ok := d.Lookup(seq)
	if !ok || local == claim {
		return Mismatch{}, false
	}
	return Mismatch{Seq: seq, Local: local, Remote: claim}, true
}
