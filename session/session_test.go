package session

import (
	"io"
	"testing"

	"github.com/oomph-ac/lockstep/action"
	"github.com/oomph-ac/lockstep/game"
	"github.com/oomph-ac/lockstep/packet"
	"github.com/oomph-ac/lockstep/presenter"
	"github.com/oomph-ac/lockstep/world"
	"github.com/sirupsen/logrus"
)

type manualClock struct {
	now uint32
}

func (c *manualClock) Now() uint32 {
	return c.now
}

type write struct {
	slot uint8
	b    []byte
}

type recordingTransport struct {
	inbox      chan []byte
	broadcasts [][]byte
	writes     []write
}

func newRecordingTransport() *recordingTransport {
	return &recordingTransport{inbox: make(chan []byte, 16)}
}

func (r *recordingTransport) Broadcast(b []byte) error {
	r.broadcasts = append(r.broadcasts, b)
	return nil
}

func (r *recordingTransport) WriteTo(slot uint8, b []byte) error {
	r.writes = append(r.writes, write{slot: slot, b: b})
	return nil
}

func (r *recordingTransport) Inbox() <-chan []byte {
	return r.inbox
}

func (r *recordingTransport) Close() error {
	return nil
}

type testLevels struct {
	transitions int
}

func (l *testLevels) Transition()       { l.transitions++ }
func (l *testLevels) Abort()            {}
func (l *testLevels) Goto(int16, int16) {}

type fixture struct {
	s     *Session
	w     *world.World
	clock *manualClock
	tr    *recordingTransport
	rec   *presenter.Recorder
	inv   *world.Inventory
}

func discardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newFixture(slots int, modify ...func(*Config)) *fixture {
	log := discardLogger()
	f := &fixture{
		w:     world.New(log),
		clock: &manualClock{now: 100},
		tr:    newRecordingTransport(),
		rec:   &presenter.Recorder{},
		inv:   world.NewInventory(8),
	}
	conf := Config{
		Log:        log,
		World:      f.w,
		Simulation: f.w,
		Presenter:  f.rec,
		Levels:     &testLevels{},
		Inventory:  f.inv,
		Transport:  f.tr,
		Clock:      f.clock,
		Slots:      slots,
		Group:      9,
		Integrity:  IntegrityNextObjectID,
	}
	for _, m := range modify {
		m(&conf)
	}
	f.s = New(conf)
	for slot := 0; slot < slots; slot++ {
		f.s.Connect(uint8(slot))
	}
	return f
}

func at(x, y int32) game.Transform {
	return game.Transform{X: game.FixedFromInt(x), Y: game.FixedFromInt(y)}
}

// frame returns a frame of seq placing the avatar at the transform passed.
func frame(seq uint8, t game.Transform) packet.Frame {
	return packet.Frame{
		Seq:   seq,
		Delta: 1,
		Mask:  packet.FieldsTransform,
		X:     t.X,
		Y:     t.Y,
		Z:     t.Z,
		Angle: t.Angle,
	}
}

// sync returns a sync packet for seq, carrying seq-1 as its previous frame.
func sync(seq uint8) *packet.Sync {
	return &packet.Sync{
		Current:     frame(seq, at(int32(seq), 0)),
		HasPrevious: true,
		Previous:    frame(seq-1, at(int32(seq-1), 0)),
	}
}

func queuedSeqs(p *participant) []uint8 {
	seqs := make([]uint8, 0, len(p.queue))
	for _, f := range p.queue {
		seqs = append(seqs, f.Seq)
	}
	return seqs
}

func equalSeqs(a, b []uint8) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFirstFrameIsSequenceZero(t *testing.T) {
	f := newFixture(2)
	if v := f.s.OnFrameReceived(1, &packet.Sync{Current: frame(0, at(0, 0))}); v != VerdictAccepted {
		t.Fatalf("expected frame 0 to be accepted, got %v", v)
	}
}

func TestSingleLossIsRecovered(t *testing.T) {
	f := newFixture(2)
	p := &f.s.participants[1]
	p.lastAccepted = 0

	if v := f.s.OnFrameReceived(1, sync(1)); v != VerdictAccepted {
		t.Fatalf("frame 1: %v", v)
	}
	// Frame 2 is lost, frame 3 carries it.
	if v := f.s.OnFrameReceived(1, sync(3)); v != VerdictRecovered {
		t.Fatalf("frame 3: %v", v)
	}
	if got := queuedSeqs(p); !equalSeqs(got, []uint8{1, 2, 3}) {
		t.Fatalf("expected frames 1 2 3, got %v", got)
	}
	if p.queue[1].X.Int() != 2 {
		t.Fatalf("recovered frame has wrong content: %+v", p.queue[1])
	}
	if len(f.tr.writes) != 0 {
		t.Fatal("a single loss must not request a retransmit")
	}
	if f.s.Stats().FramesRecovered != 1 {
		t.Fatal("expected recovery to be counted")
	}
}

func TestGapRequestsRetransmitOnce(t *testing.T) {
	f := newFixture(2)
	p := &f.s.participants[1]
	p.lastAccepted = 0

	f.s.OnFrameReceived(1, sync(1))
	if v := f.s.OnFrameReceived(1, sync(5)); v != VerdictGap {
		t.Fatalf("expected gap, got %v", v)
	}
	f.clock.now += game.ResendGuardTicks - 1
	f.s.OnFrameReceived(1, sync(6))

	if len(f.tr.writes) != 1 {
		t.Fatalf("expected exactly one retransmit request, got %d", len(f.tr.writes))
	}
	w := f.tr.writes[0]
	h, pk, err := packet.Decode(w.b)
	if err != nil {
		t.Fatal(err)
	}
	req, ok := pk.(*packet.RetransmitRequest)
	if !ok || w.slot != 1 || h.Group != 9 {
		t.Fatalf("unexpected request %T to slot %d", pk, w.slot)
	}
	if req.Since != 2 || req.From != 1 || req.Requester != 0 {
		t.Fatalf("unexpected request %+v", req)
	}
	if got := queuedSeqs(p); !equalSeqs(got, []uint8{1}) {
		t.Fatalf("gap frames must not be queued, got %v", got)
	}

	f.clock.now++
	f.s.OnFrameReceived(1, sync(6))
	if len(f.tr.writes) != 2 {
		t.Fatal("expected a new request once the guard interval passed")
	}

	// Filing the missing frame clears the outstanding request.
	f.s.OnFrameReceived(1, sync(2))
	if p.retransmitting || p.lastAccepted != 2 {
		t.Fatal("expected the stream to recover")
	}
}

func TestStaleFramesAreDiscarded(t *testing.T) {
	f := newFixture(2)
	p := &f.s.participants[1]
	p.lastAccepted = 0
	f.s.OnFrameReceived(1, sync(1))

	for _, seq := range []uint8{1, 0, 200, 52} {
		if v := f.s.OnFrameReceived(1, sync(seq)); v != VerdictStale {
			t.Fatalf("frame %d: expected stale, got %v", seq, v)
		}
	}
	if p.lastAccepted != 1 || len(p.queue) != 1 {
		t.Fatalf("stale frames changed state: last=%d queue=%v", p.lastAccepted, queuedSeqs(p))
	}
	if len(f.tr.writes) != 0 {
		t.Fatal("stale frames must not request retransmits")
	}
}

func TestSequenceWrapsAround(t *testing.T) {
	f := newFixture(2)
	p := &f.s.participants[1]
	p.lastAccepted = 254

	for _, seq := range []uint8{255, 0, 1} {
		if v := f.s.OnFrameReceived(1, sync(seq)); v != VerdictAccepted {
			t.Fatalf("frame %d: %v", seq, v)
		}
	}
	if got := queuedSeqs(p); !equalSeqs(got, []uint8{255, 0, 1}) {
		t.Fatalf("unexpected queue %v", got)
	}
}

func TestFramesOfUnknownSlotsAreIgnored(t *testing.T) {
	f := newFixture(2)
	if v := f.s.OnFrameReceived(3, sync(0)); v != VerdictIgnored {
		t.Fatalf("expected ignored, got %v", v)
	}
	f.s.Depart(1)
	if v := f.s.OnFrameReceived(1, sync(0)); v != VerdictIgnored {
		t.Fatalf("expected departed slot to be ignored, got %v", v)
	}
}

func TestHandlePacketDropsOtherGroups(t *testing.T) {
	f := newFixture(2)
	b := packet.Encode(packet.Header{Group: 10, Sender: 1}, &packet.Sync{Current: frame(0, at(0, 0))})
	f.s.HandlePacket(b)
	if len(f.s.participants[1].queue) != 0 {
		t.Fatal("packet of another group must be dropped")
	}
	f.s.HandlePacket([]byte{1, 2})
	b = packet.Encode(packet.Header{Group: 9, Sender: 1}, &packet.Sync{Current: frame(0, at(0, 0))})
	f.s.HandlePacket(b)
	if len(f.s.participants[1].queue) != 1 {
		t.Fatal("packet of own group must be filed")
	}
}

func TestOutboundFramesCarryOneActionEach(t *testing.T) {
	f := newFixture(2)
	f.s.SetLocalTransform(at(5, 6))
	f.s.Queue(action.New(action.TypeAreaSound, 1, 10))
	f.s.Queue(action.New(action.TypeAreaSound, 2, 10))

	if err := f.s.Flush(); err != nil {
		t.Fatal(err)
	}
	f.clock.now += 2
	if err := f.s.Flush(); err != nil {
		t.Fatal(err)
	}
	if len(f.tr.broadcasts) != 2 {
		t.Fatalf("expected two broadcasts, got %d", len(f.tr.broadcasts))
	}

	_, pk, err := packet.Decode(f.tr.broadcasts[1])
	if err != nil {
		t.Fatal(err)
	}
	s := pk.(*packet.Sync)
	if s.Current.Seq != 1 || !s.HasPrevious || s.Previous.Seq != 0 {
		t.Fatalf("unexpected sequence numbers %d %d", s.Current.Seq, s.Previous.Seq)
	}
	if s.Current.Action.Data[0] != 2 || s.Previous.Action.Data[0] != 1 {
		t.Fatal("expected actions to leave in order, one per frame")
	}
	if s.Current.Delta != 2 || s.Current.X.Int() != 5 || s.Current.Y.Int() != 6 {
		t.Fatalf("unexpected frame %+v", s.Current)
	}
	if got := queuedSeqs(&f.s.participants[0]); !equalSeqs(got, []uint8{0, 1}) {
		t.Fatalf("local frames must be filed locally, got %v", got)
	}
}

func TestDuplicateSends(t *testing.T) {
	f := newFixture(2, func(c *Config) { c.DuplicateSends = 2 })
	if err := f.s.Flush(); err != nil {
		t.Fatal(err)
	}
	if len(f.tr.broadcasts) != 3 {
		t.Fatalf("expected three copies, got %d", len(f.tr.broadcasts))
	}
	if f.s.history.Len() != 1 {
		t.Fatal("duplicates must be remembered once")
	}
}

func TestDisconnect(t *testing.T) {
	f := newFixture(3)
	avatar, _ := f.s.Avatar(2)
	f.s.Disconnect(2)
	if f.s.Live() != 2 || f.w.Exists(avatar) {
		t.Fatal("disconnect must remove the participant and its avatar")
	}
	if len(f.rec.Messages) != 1 {
		t.Fatalf("expected a leave message, got %v", f.rec.Messages)
	}
}
