// Package session implements the lockstep synchronization session: it files the frames every
// participant sends, advances the shared simulation once a frame of every participant is
// available, and audits the result for collisions and divergence.
package session

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/oomph-ac/lockstep/action"
	"github.com/oomph-ac/lockstep/assert"
	"github.com/oomph-ac/lockstep/game"
	"github.com/oomph-ac/lockstep/handler"
	"github.com/oomph-ac/lockstep/packet"
	"github.com/oomph-ac/lockstep/presenter"
	"github.com/oomph-ac/lockstep/transport"
	"github.com/oomph-ac/lockstep/utils"
	"github.com/sirupsen/logrus"
)

const maxSlots = game.MaxPlayers

// World is the world the session synchronizes.
type World interface {
	handler.World
	// SpawnAvatar creates the avatar of the participant in the slot passed and returns its ID.
	SpawnAvatar(slot uint8, t game.Transform) uint32
	SetTransform(id uint32, t game.Transform)
	SetStance(id uint32, s game.Stance, v game.Visibility)
	// Collides returns true if the object overlaps impassable geometry or another solid object.
	Collides(id uint32) bool
	NextObjectID() uint32
	// Digest returns a non-zero hash of the complete world state.
	Digest() uint32
}

// Simulation is updated once for every tick the session advances, in the order the methods are
// listed. now is the synchronized time after the tick and delta the amount of ticks it advanced.
type Simulation interface {
	UpdateCreatures(now, delta uint32)
	UpdateGenerators(now, delta uint32)
	UpdateServer(now, delta uint32)
	UpdateEvents(now, delta uint32)
	UpdateAnimations(now, delta uint32)
}

// Clock returns the local time in ticks. It only drives send intervals and retransmit guards;
// the simulation runs on the synchronized time kept by the session.
type Clock interface {
	Now() uint32
}

// Config holds the collaborators and options of a Session.
type Config struct {
	Log        *logrus.Logger
	World      World
	Simulation Simulation
	Presenter  presenter.Presenter
	Levels     handler.Levels
	Inventory  handler.Inventory
	Transport  transport.Transport
	Clock      Clock

	// Slots is the amount of participant slots and LocalSlot the slot of this machine.
	Slots     int
	LocalSlot uint8
	// Group identifies the session on the transport. Packets of other groups are dropped.
	Group uint32
	// Spawns holds the transform each avatar spawns at, by slot.
	Spawns []game.Transform

	// SendInterval is the amount of local ticks between two outbound frames.
	SendInterval uint32
	// DuplicateSends is the amount of extra copies written of every outbound packet.
	DuplicateSends int
	// MaxLead is the amount of local frames that may be waiting for the other participants
	// before no new frames are sent.
	MaxLead int
	// MaxDelta caps the amount of ticks the synchronized time advances in one tick.
	MaxDelta uint32
	// ResendGuard is the minimum amount of local ticks between two retransmit requests to the
	// same participant.
	ResendGuard uint32
	// MaxAdvance is the amount of ticks a single Update may advance.
	MaxAdvance int

	HistorySize    int
	DivergenceRing int
	Integrity      IntegrityMode
}

func (conf Config) withDefaults() Config {
	if conf.Log == nil {
		conf.Log = logrus.StandardLogger()
	}
	if conf.Presenter == nil {
		conf.Presenter = presenter.Nop{}
	}
	if conf.Slots == 0 {
		conf.Slots = 2
	}
	if conf.SendInterval == 0 {
		conf.SendInterval = 1
	}
	if conf.MaxLead == 0 {
		conf.MaxLead = game.StaleSequenceWindow / 2
	}
	if conf.MaxDelta == 0 {
		conf.MaxDelta = game.MaxDeltaTicks
	}
	if conf.ResendGuard == 0 {
		conf.ResendGuard = game.ResendGuardTicks
	}
	if conf.MaxAdvance == 0 {
		conf.MaxAdvance = 4
	}
	if conf.HistorySize == 0 {
		conf.HistorySize = game.DefaultHistorySize
	}
	if conf.DivergenceRing == 0 {
		conf.DivergenceRing = game.DefaultDivergenceRingSize
	}
	return conf
}

// Stats is a snapshot of the counters of a Session.
type Stats struct {
	Ticks                uint64
	SyncTime             uint32
	Live                 int
	FramesSent           uint64
	FramesAccepted       uint64
	FramesRecovered      uint64
	FramesStale          uint64
	RetransmitsRequested uint64
	RetransmitsServed    uint64
	RetransmitsUnknown   uint64
	Divergences          uint64
	Rollbacks            uint64
}

// Session is a single lockstep session between up to game.MaxPlayers participants. A Session is
// driven entirely from Update and is not safe for concurrent use.
type Session struct {
	id   uuid.UUID
	conf Config
	log  *logrus.Entry

	world      World
	clock      Clock
	dispatcher *handler.Dispatcher

	slots        int
	participants [maxSlots]participant
	live         int

	actions    *action.Queue
	local      game.Transform
	stance     game.Stance
	visibility game.Visibility

	outSeq   uint8
	lastSent *packet.Frame
	lastSend uint32
	history  *utils.CircularQueue[sentPacket]

	detector *Detector
	tickSeq  uint8
	ticked   bool
	syncTime uint32
	paused   bool
	status   string
	stats    Stats
}

// New creates a session from the config passed. Participants have to be connected before the
// session starts advancing.
func New(conf Config) *Session {
	conf = conf.withDefaults()
	assert.IsTrue(conf.World != nil, "session: world is required")
	assert.IsTrue(conf.Clock != nil, "session: clock is required")
	assert.IsTrue(conf.Slots > 0 && conf.Slots <= maxSlots, "session: slot count %d out of range", conf.Slots)
	assert.IsTrue(int(conf.LocalSlot) < conf.Slots, "session: local slot %d out of range", conf.LocalSlot)

	id := uuid.New()
	s := &Session{
		id:         id,
		conf:       conf,
		log:        conf.Log.WithField("session", id.String()[:8]),
		world:      conf.World,
		clock:      conf.Clock,
		dispatcher: handler.NewDispatcher(),
		slots:      conf.Slots,
		actions:    action.NewQueue(),
		history:    utils.NewCircularQueue[sentPacket](conf.HistorySize),
		detector:   NewDetector(conf.DivergenceRing),
		lastSend:   conf.Clock.Now(),
	}
	if int(conf.LocalSlot) < len(conf.Spawns) {
		s.local = conf.Spawns[conf.LocalSlot]
	}
	return s
}

// ID returns the unique ID of the session, used to tell sessions apart in logs.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// LocalSlot returns the slot of the local participant.
func (s *Session) LocalSlot() uint8 {
	return s.conf.LocalSlot
}

func (s *Session) spawn(slot uint8) game.Transform {
	if int(slot) < len(s.conf.Spawns) {
		return s.conf.Spawns[slot]
	}
	return game.Transform{X: game.FixedFromInt(int32(slot) * 64)}
}

// Connect connects the participant in the slot passed and spawns its avatar. Every machine must
// connect the same slots in the same order before the first tick.
func (s *Session) Connect(slot uint8) uint32 {
	if int(slot) >= s.slots {
		s.log.Warnf("connect: slot %d out of range", slot)
		return 0
	}
	p := &s.participants[slot]
	if p.required() {
		return p.avatar
	}
	*p = newParticipant(s.world.SpawnAvatar(slot, s.spawn(slot)))
	s.live++
	s.log.Infof("slot %d connected with avatar %d", slot, p.avatar)
	return p.avatar
}

// Disconnect removes a participant whose connection was lost. Its avatar is destroyed and the
// session stops waiting for its frames.
func (s *Session) Disconnect(slot uint8) {
	if int(slot) >= s.slots || !s.participants[slot].required() {
		return
	}
	s.world.Remove(s.participants[slot].avatar)
	s.Depart(slot)
	s.conf.Presenter.ShowMessage(fmt.Sprintf(game.MessagePlayerLeft, int(slot)+1))
}

// Depart removes the participant in the slot passed from the set of participants the session
// waits for. Frames still queued for it are dropped.
func (s *Session) Depart(slot uint8) {
	if int(slot) >= s.slots {
		return
	}
	p := &s.participants[slot]
	if !p.required() {
		return
	}
	p.departed = true
	p.queue = nil
	s.live--
	s.log.Infof("slot %d departed, %d participants left", slot, s.live)
}

// Live returns the amount of participants the session waits for.
func (s *Session) Live() int {
	return s.live
}

// Avatar returns the avatar object ID of the participant in the slot passed.
func (s *Session) Avatar(slot uint8) (uint32, bool) {
	if int(slot) >= s.slots || !s.participants[slot].connected {
		return 0, false
	}
	return s.participants[slot].avatar, true
}

// Queue queues an action of the local participant. Actions leave one per outbound frame.
func (s *Session) Queue(a action.Action) {
	s.actions.Push(a)
}

// PendingActions returns the amount of local actions that were not sent yet.
func (s *Session) PendingActions() int {
	return s.actions.Len()
}

// TogglePause flips the pause flag and returns the new value. While paused, ticks still consume
// frames but neither the synchronized time nor the simulation advances.
func (s *Session) TogglePause() bool {
	s.paused = !s.paused
	return s.paused
}

// Paused returns true if the session is paused.
func (s *Session) Paused() bool {
	return s.paused
}

// SyncTime returns the synchronized time in ticks.
func (s *Session) SyncTime() uint32 {
	return s.syncTime
}

// SetSyncTime overrides the synchronized time, for example when a level is loaded.
func (s *Session) SetSyncTime(t uint32) {
	s.syncTime = t
}

// Status returns the persistent status line. It is empty until a divergence is detected.
func (s *Session) Status() string {
	return s.status
}

// SetLocalTransform sets the transform the local participant sends in its next frame. The avatar
// in the world only moves once the frame is consumed by a tick.
func (s *Session) SetLocalTransform(t game.Transform) {
	s.local = t
}

// LocalTransform returns the transform the local participant sends in its next frame.
func (s *Session) LocalTransform() game.Transform {
	return s.local
}

// SetLocalStance sets the stance and visibility the local participant sends in its next frame.
func (s *Session) SetLocalStance(st game.Stance, v game.Visibility) {
	s.stance, s.visibility = st, v
}

// Stats returns a snapshot of the counters of the session.
func (s *Session) Stats() Stats {
	st := s.stats
	st.SyncTime = s.syncTime
	st.Live = s.live
	return st
}
