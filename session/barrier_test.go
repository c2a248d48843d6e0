package session

import (
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/oomph-ac/lockstep/action"
	"github.com/oomph-ac/lockstep/game"
	"github.com/oomph-ac/lockstep/packet"
	"github.com/oomph-ac/lockstep/world"
)

func TestBarrierWaitsForEveryParticipant(t *testing.T) {
	f := newFixture(3)
	f.s.OnFrameReceived(1, &packet.Sync{Current: frame(0, at(5, 5))})
	if err := f.s.Flush(); err != nil {
		t.Fatal(err)
	}

	digest, queued := f.w.Digest(), len(f.s.participants[0].queue)
	for i := 0; i < 3; i++ {
		if f.s.TryAdvance() {
			t.Fatal("must not advance while slot 2 has no frame")
		}
	}
	if f.w.Digest() != digest || f.s.SyncTime() != 0 || f.s.Stats().Ticks != 0 {
		t.Fatal("failed advance changed state")
	}
	if len(f.s.participants[0].queue) != queued || len(f.s.participants[1].queue) != 1 {
		t.Fatal("failed advance consumed frames")
	}

	f.s.OnFrameReceived(2, &packet.Sync{Current: frame(0, at(300, 300))})
	if !f.s.TryAdvance() {
		t.Fatal("expected to advance once every participant has a frame")
	}
	if f.s.TryAdvance() {
		t.Fatal("expected queues to be drained after one tick")
	}
}

func TestDepartedParticipantIsNotAwaited(t *testing.T) {
	f := newFixture(2)
	if err := f.s.Flush(); err != nil {
		t.Fatal(err)
	}
	if f.s.TryAdvance() {
		t.Fatal("must wait for slot 1")
	}
	f.s.Depart(1)
	if !f.s.TryAdvance() {
		t.Fatal("must not wait for a departed participant")
	}
}

func TestRemoteLeaveRemovesParticipantFromBarrier(t *testing.T) {
	f := newFixture(2)
	if err := f.s.Flush(); err != nil {
		t.Fatal(err)
	}
	leave := frame(0, at(64, 0))
	leave.Mask |= packet.FieldAction
	leave.Action = action.New(action.TypeLeaveLevel)
	f.s.OnFrameReceived(1, &packet.Sync{Current: leave})

	if !f.s.TryAdvance() {
		t.Fatal("expected to advance")
	}
	if f.s.Live() != 1 {
		t.Fatalf("expected one live participant, got %d", f.s.Live())
	}
	f.clock.now++
	if err := f.s.Flush(); err != nil {
		t.Fatal(err)
	}
	if !f.s.TryAdvance() {
		t.Fatal("must not wait for the participant that left")
	}
}

func TestClockAdvancesBySlowestClampedDelta(t *testing.T) {
	for _, tc := range []struct {
		remote, want uint32
	}{
		{remote: 7, want: 7},
		{remote: 0, want: 1},
		{remote: 500, want: game.MaxDeltaTicks},
	} {
		f := newFixture(2)
		if err := f.s.Flush(); err != nil {
			t.Fatal(err)
		}
		fr := frame(0, at(64, 0))
		fr.Delta = tc.remote
		f.s.OnFrameReceived(1, &packet.Sync{Current: fr})
		f.s.TryAdvance()
		if f.s.SyncTime() != tc.want {
			t.Errorf("remote delta %d: expected time %d, got %d", tc.remote, tc.want, f.s.SyncTime())
		}
	}
}

func TestPausedSessionKeepsTimeStill(t *testing.T) {
	f := newFixture(1)
	f.s.Queue(action.New(action.TypePauseToggle))
	if err := f.s.Flush(); err != nil {
		t.Fatal(err)
	}
	f.s.TryAdvance()
	if !f.s.Paused() {
		t.Fatal("expected session to be paused")
	}
	f.clock.now += 5
	if err := f.s.Flush(); err != nil {
		t.Fatal(err)
	}
	f.s.TryAdvance()
	if f.s.SyncTime() != 0 {
		t.Fatalf("time advanced while paused: %d", f.s.SyncTime())
	}
}

func TestCollisionRollback(t *testing.T) {
	f := newFixture(2)
	f.w.AddWall(cube.Box(200, -50, 0, 300, 50, 100))

	f.s.SetLocalTransform(at(0, 100))
	if err := f.s.Flush(); err != nil {
		t.Fatal(err)
	}
	f.s.OnFrameReceived(1, &packet.Sync{Current: frame(0, at(250, 0))})
	f.s.TryAdvance()

	a0, _ := f.s.Avatar(0)
	a1, _ := f.s.Avatar(1)
	if tr, _ := f.w.Transform(a0); tr != at(0, 100) {
		t.Fatalf("avatar without overlap must keep its new position, got %+v", tr)
	}
	if tr, _ := f.w.Transform(a1); tr != at(64, 0) {
		t.Fatalf("overlapping avatar must be restored to its previous position, got %+v", tr)
	}
	if f.s.Stats().Rollbacks != 1 {
		t.Fatalf("expected one rollback, got %d", f.s.Stats().Rollbacks)
	}
}

func TestCollisionRollbackIsOrderIndependent(t *testing.T) {
	f := newFixture(2)
	// Both avatars step onto the same spot: both are rolled back, not just the later one.
	f.s.SetLocalTransform(at(32, 0))
	if err := f.s.Flush(); err != nil {
		t.Fatal(err)
	}
	f.s.OnFrameReceived(1, &packet.Sync{Current: frame(0, at(36, 0))})
	f.s.TryAdvance()

	a0, _ := f.s.Avatar(0)
	a1, _ := f.s.Avatar(1)
	if tr, _ := f.w.Transform(a0); tr != at(0, 0) {
		t.Fatalf("avatar 0 not rolled back: %+v", tr)
	}
	if tr, _ := f.w.Transform(a1); tr != at(64, 0) {
		t.Fatalf("avatar 1 not rolled back: %+v", tr)
	}
	if f.s.LocalTransform() != at(0, 0) {
		t.Fatal("local transform must follow the rollback of the local avatar")
	}
}

func TestLeavingAvatarIsNotRolledBack(t *testing.T) {
	f := newFixture(1)
	f.w.AddWall(cube.Box(200, -50, 0, 300, 50, 100))
	levels := f.s.conf.Levels.(*testLevels)

	f.s.SetLocalTransform(at(250, 0))
	f.s.Queue(action.New(action.TypeLeaveLevel))
	if err := f.s.Flush(); err != nil {
		t.Fatal(err)
	}
	f.s.TryAdvance()

	a0, _ := f.s.Avatar(0)
	if tr, _ := f.w.Transform(a0); tr != at(250, 0) {
		t.Fatalf("leaving avatar must not be rolled back, got %+v", tr)
	}
	if levels.transitions != 1 {
		t.Fatal("expected a level transition")
	}
}

func TestSimulationRunsEveryTick(t *testing.T) {
	f := newFixture(1)
	arrow := f.w.SpawnProjectile(world.KindArrow, 0, at(500, 500), 2)

	if err := f.s.Flush(); err != nil {
		t.Fatal(err)
	}
	f.s.TryAdvance()
	tr, _ := f.w.Transform(arrow)
	if tr.X.Int() != 502 {
		t.Fatalf("expected projectile to move with the tick, x=%d", tr.X.Int())
	}
}
