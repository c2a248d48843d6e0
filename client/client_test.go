package client

import (
	"io"
	"math/rand/v2"
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/oomph-ac/lockstep/action"
	"github.com/oomph-ac/lockstep/game"
	"github.com/oomph-ac/lockstep/presenter"
	"github.com/oomph-ac/lockstep/settings"
	"github.com/oomph-ac/lockstep/world"
	"github.com/sirupsen/logrus"
)

type fakeSession struct {
	queued    []action.Action
	local     uint8
	transform game.Transform
	avatars   map[uint8]uint32
}

func (s *fakeSession) Queue(a action.Action)          { s.queued = append(s.queued, a) }
func (s *fakeSession) LocalSlot() uint8               { return s.local }
func (s *fakeSession) LocalTransform() game.Transform { return s.transform }
func (s *fakeSession) Avatar(slot uint8) (uint32, bool) {
	id, ok := s.avatars[slot]
	return id, ok
}

type fixture struct {
	c   *Client
	s   *fakeSession
	w   *world.World
	inv *world.Inventory
	p   *presenter.Recorder
}

func newFixture(modify ...func(*Config)) fixture {
	log := logrus.New()
	log.SetOutput(io.Discard)

	f := fixture{
		s:   &fakeSession{avatars: map[uint8]uint32{0: 1, 1: 2}},
		w:   world.New(log),
		inv: world.NewInventory(8),
		p:   &presenter.Recorder{},
	}
	conf := Config{
		Log:       log,
		Session:   f.s,
		World:     f.w,
		Inventory: f.inv,
		Presenter: f.p,
		Keys:      settings.DefaultSettings().Keys,
		Rand:      rand.New(rand.NewPCG(1, 2)),
	}
	for _, m := range modify {
		m(&conf)
	}
	f.c = New(conf)
	return f
}

func (f fixture) last(t *testing.T) action.Action {
	t.Helper()
	if len(f.s.queued) == 0 {
		t.Fatal("expected an action to be queued")
	}
	return f.s.queued[len(f.s.queued)-1]
}

func TestPressQueuesBoundActions(t *testing.T) {
	f := newFixture()
	f.c.SetTarget(7)

	tests := []struct {
		key  string
		want action.Type
	}{
		{"ctrl", action.TypeMeleeAttack},
		{"alt", action.TypeMissileAttack},
		{"space", action.TypeActivateForward},
		{"g", action.TypePickupItem},
		{"P", action.TypePauseToggle},
		{"escape", action.TypeLeaveLevel},
	}
	for _, tt := range tests {
		if !f.c.Press(tt.key) {
			t.Fatalf("key %q is not bound", tt.key)
		}
		if got := f.last(t); got.Type != tt.want {
			t.Fatalf("key %q queued %v, expected %v", tt.key, got.Type, tt.want)
		}
	}
	if got := f.last(t); got.Data != [4]int16{} {
		t.Fatalf("leave level must carry no data, got %v", got.Data)
	}
	if f.c.Press("f12") {
		t.Fatal("unbound key must not be handled")
	}
}

func TestMeleeAndPickupEncodeTarget(t *testing.T) {
	f := newFixture()
	f.c.SetTarget(42)
	f.c.Do(CommandAttack)
	if got := f.last(t); got.Data != [4]int16{10, 0, 42, 0} {
		t.Fatalf("unexpected melee data %v", got.Data)
	}
	f.c.Do(CommandPickup)
	if got := f.last(t); got.Data[0] != 42 {
		t.Fatalf("unexpected pickup data %v", got.Data)
	}

	f.c.SetTarget(0)
	before := len(f.s.queued)
	f.c.Do(CommandAttack)
	f.c.Do(CommandPickup)
	if len(f.s.queued) != before {
		t.Fatal("commands needing a target must not queue anything without one")
	}
}

func TestOverlaysStayLocal(t *testing.T) {
	f := newFixture()
	f.c.Press("tab")
	f.c.Press("h")
	f.c.Press("h")
	if len(f.s.queued) != 0 {
		t.Fatalf("overlay toggles must not queue actions, got %v", f.s.queued)
	}
	if !f.p.Overlays[presenter.OverlayAutomap] || f.p.Overlays[presenter.OverlayHUD] {
		t.Fatalf("unexpected overlay state %v", f.p.Overlays)
	}
}

func TestThrowNeedsItem(t *testing.T) {
	f := newFixture()
	if f.c.Throw(world.KindDagger, 4) {
		t.Fatal("throwing an item the player does not carry must fail")
	}
	f.c.Do(CommandThrow)
	if len(f.s.queued) != 0 {
		t.Fatal("throw command with an empty inventory must not queue anything")
	}

	f.inv.Add(world.KindDagger, 1)
	f.c.Do(CommandThrow)
	if got := f.last(t); got.Type != action.TypeThrowItem || got.Data[0] != int16(world.KindDagger) || got.Data[1] != 6 {
		t.Fatalf("unexpected throw %v", got)
	}
}

func TestStealDecidesOutcomeLocally(t *testing.T) {
	always := newFixture(func(c *Config) { c.StealChance = 1 })
	if !always.c.Steal(1, world.KindGold) {
		t.Fatal("steal with chance 1 must succeed")
	}
	if got := always.last(t); got.Data != [4]int16{1, int16(world.KindGold), 1, 0} {
		t.Fatalf("unexpected steal data %v", got.Data)
	}

	never := newFixture(func(c *Config) { c.StealChance = -1 })
	if never.c.Steal(1, world.KindGold) {
		t.Fatal("steal with negative chance must fail")
	}
	if got := never.last(t); got.Data[2] != 0 {
		t.Fatalf("failed steal must carry a zero success flag, got %v", got.Data)
	}
}

func TestStealCommandTargetsOtherAvatars(t *testing.T) {
	f := newFixture(func(c *Config) { c.StealChance = 1 })
	f.c.SetTarget(1)
	f.c.Do(CommandSteal)
	if len(f.s.queued) != 0 {
		t.Fatal("players must not steal from themselves")
	}
	f.c.SetTarget(2)
	f.c.Do(CommandSteal)
	if got := f.last(t); got.Type != action.TypeSteal || got.Data[0] != 1 {
		t.Fatalf("unexpected steal %v", got)
	}
}

func TestPickLock(t *testing.T) {
	f := newFixture(func(c *Config) { c.PickLockChance = 1 })
	if f.c.PickLock() {
		t.Fatal("picking a lock without a door must fail")
	}
	if len(f.p.Messages) != 1 || f.p.Messages[0] != game.MessageNothingToOpen {
		t.Fatalf("unexpected messages %v", f.p.Messages)
	}

	f.w.AddDoor(&world.Door{ID: 3, Box: cube.Box(64, 0, 0, 72, 32, 40), Lock: 5})
	f.s.transform = game.Transform{X: game.FixedFromInt(20), Y: game.FixedFromInt(4)}
	if !f.c.PickLock() {
		t.Fatal("expected the door ahead to be found")
	}
	got := f.last(t)
	if got.Type != action.TypePickLock || got.Data[0] != 3 || got.Data[1] != 1 {
		t.Fatalf("unexpected pick lock %v", got)
	}
	if got.Data[2] < 1 || got.Data[2] > 3 {
		t.Fatalf("lock decrease %d out of range", got.Data[2])
	}
}

func TestBindingsSkipEmptyKeys(t *testing.T) {
	keys := settings.Keys{Pause: "P"}
	b := Bindings(keys)
	if len(b) != 1 || b["p"] != CommandPause {
		t.Fatalf("unexpected bindings %v", b)
	}
}

func TestPickupRefusedWhenInventoryFull(t *testing.T) {
	f := newFixture(func(c *Config) { c.Inventory = world.NewInventory(1) })
	inv := f.c.conf.Inventory.(*world.Inventory)
	inv.Add(world.KindDagger, 1)
	gold := f.w.Create(world.KindGold, game.Transform{})
	dagger := f.w.Create(world.KindDagger, game.Transform{})

	if f.c.Pickup(gold) {
		t.Fatal("pickup of a new kind with a full inventory must be refused")
	}
	if len(f.s.queued) != 0 || len(f.p.Messages) != 1 || f.p.Messages[0] != game.MessageInventoryFull {
		t.Fatalf("unexpected queue %v messages %v", f.s.queued, f.p.Messages)
	}
	if !f.c.Pickup(dagger) {
		t.Fatal("a kind already held must still stack")
	}
	if got := f.last(t); got.Type != action.TypePickupItem || got.Data[0] != int16(dagger) {
		t.Fatalf("unexpected pickup %v", got)
	}
}
