// Package handler applies the effects of synchronized actions. Every action type has exactly one
// handler in the dispatch table, and every machine in a session runs the same handler for the
// same action at the same point of the same tick.
package handler

import (
	"fmt"

	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/lockstep/action"
	"github.com/oomph-ac/lockstep/game"
	"github.com/oomph-ac/lockstep/oerror"
	"github.com/oomph-ac/lockstep/presenter"
	"github.com/sirupsen/logrus"
)

// World is the part of the world the handlers act on.
type World interface {
	Exists(id uint32) bool
	Kind(id uint32) (uint16, bool)
	Transform(id uint32) (game.Transform, bool)
	Create(kind uint16, t game.Transform) uint32
	Remove(id uint32) bool
	SetBodyPart(id uint32, location, part int16) bool
	SetIdentity(id uint32, class int16) bool
	SetAttacking(id uint32)
	Damage(target uint32, amount, damageType int16, source uint32) bool
	AlertCreatures(around game.Transform, radius float32, target uint32) int
	SpawnProjectile(kind uint16, owner uint32, from game.Transform, speed float32) uint32
	DoorNear(x, y game.Fixed) (uint16, bool)
	ToggleDoor(id uint16) (open bool, ok bool)
	DecreaseLock(id uint16, amount int16) (int16, bool)
	FloorHeight(x, y game.Fixed) game.Fixed
}

// Inventory is the inventory of the local player.
type Inventory interface {
	Add(kind uint16, qty int) bool
	Remove(kind uint16, qty int) bool
	Full() bool
}

// Levels drives level transitions of the local player.
type Levels interface {
	// Transition moves the local player to the next level.
	Transition()
	// Abort abandons the current level.
	Abort()
	// Goto moves every participant to a place, arriving at the start location passed.
	Goto(place, start int16)
}

// Session is the part of the synchronization session handlers may change.
type Session interface {
	// Depart removes the participant in the slot passed from the set the session waits for.
	Depart(slot uint8)
	// TogglePause flips the pause flag of the session and returns the new value.
	TogglePause() bool
	// Queue queues an action of the local player for one of the next outbound frames.
	Queue(a action.Action)
}

// Context is passed to every handler. It describes who performed the action and gives access to
// everything the action may affect.
type Context struct {
	Session   Session
	World     World
	Inventory Inventory
	Presenter presenter.Presenter
	Levels    Levels
	Log       *logrus.Logger

	// Slot is the slot of the participant that performed the action and Avatar the object ID of
	// its avatar.
	Slot   uint8
	Avatar uint32
	// LocalSlot is the slot of the participant running this machine.
	LocalSlot uint8
}

// Local returns true if the action was performed by the local participant.
func (ctx Context) Local() bool {
	return ctx.Slot == ctx.LocalSlot
}

// message shows a message to the local player if the action was performed by them.
func (ctx Context) message(format string, args ...any) {
	if ctx.Local() {
		ctx.Presenter.ShowMessage(fmt.Sprintf(format, args...))
	}
}

// Func handles an action with its raw data fields.
type Func func(ctx Context, data [4]int16)

// TypedFunc handles an action with its data fields decoded into a payload.
type TypedFunc[T any] func(ctx Context, payload T)

// payload is implemented by pointers to the payload types actions decode into.
type payload[T any] interface {
	*T
	decode(data [4]int16)
}

// withPayload wraps a typed handler into a Func, decoding the data fields first.
func withPayload[T any, P payload[T]](h TypedFunc[T]) Func {
	return func(ctx Context, data [4]int16) {
		var v T
		P(&v).decode(data)
		h(ctx, v)
	}
}

// withoutPayload wraps a handler that has no use for the data fields.
func withoutPayload(h func(ctx Context)) Func {
	return func(ctx Context, _ [4]int16) {
		h(ctx)
	}
}

func nop(Context, [4]int16) {}

// Dispatcher maps every action type to its handler.
type Dispatcher struct {
	handlers [256]Func
}

// NewDispatcher returns a Dispatcher with a handler registered for every action type.
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{}
	d.Register(action.TypeNone, nop)
	d.Register(action.TypeChangeBodyPart, withPayload[ChangeBodyPart](HandleChangeBodyPart))
	d.Register(action.TypeMeleeAttack, withPayload[MeleeAttack](HandleMeleeAttack))
	d.Register(action.TypeMissileAttack, withPayload[MissileAttack](HandleMissileAttack))
	d.Register(action.TypeActivateForward, withoutPayload(HandleActivateForward))
	d.Register(action.TypeLeaveLevel, withoutPayload(HandleLeaveLevel))
	d.Register(action.TypePickupItem, withPayload[PickupItem](HandlePickupItem))
	d.Register(action.TypeThrowItem, withPayload[ThrowItem](HandleThrowItem))
	d.Register(action.TypeSteal, withPayload[Steal](HandleSteal))
	d.Register(action.TypeStolen, withPayload[Stolen](HandleStolen))
	d.Register(action.TypePickLock, withPayload[PickLock](HandlePickLock))
	d.Register(action.TypeAreaSound, withPayload[AreaSound](HandleAreaSound))
	// Reserved for joining a game in progress, which is never negotiated through actions.
	d.Register(action.TypeSyncNewPlayerWait, nop)
	d.Register(action.TypeSyncNewPlayerSend, nop)
	d.Register(action.TypeSyncNewPlayerComplete, nop)
	d.Register(action.TypeGotoPlace, withPayload[GotoPlace](HandleGotoPlace))
	d.Register(action.TypeDropAt, withPayload[DropAt](HandleDropAt))
	d.Register(action.TypePauseToggle, withoutPayload(HandlePauseToggle))
	d.Register(action.TypeAbortLevel, withoutPayload(HandleAbortLevel))
	d.Register(action.TypeIDSelf, withPayload[IDSelf](HandleIDSelf))
	return d
}

// Register registers the handler of an action type, replacing the previous one.
func (d *Dispatcher) Register(t action.Type, h Func) {
	d.handlers[t] = h
}

// Dispatch runs the handler of the action passed. A panicking handler is recovered and reported,
// so a broken action never takes the tick down with it. False is returned if the action had no
// handler or its handler panicked.
func (d *Dispatcher) Dispatch(ctx Context, a action.Action) (ok bool) {
	h := d.handlers[a.Type]
	if h == nil {
		ctx.Log.Warnf("no handler for action %v from slot %d", a, ctx.Slot)
		return false
	}

	defer func() {
		if v := recover(); v != nil {
			ctx.Log.Errorf("handler for action %v from slot %d panicked: %v", a, ctx.Slot, v)
			hub := sentry.CurrentHub().Clone()
			hub.ConfigureScope(func(scope *sentry.Scope) {
				scope.SetTag("action", a.Type.String())
				scope.SetTag("slot", fmt.Sprint(ctx.Slot))
			})
			hub.Recover(oerror.New("%v", v))
			ok = false
		}
	}()

	ctx.Log.Debugf("slot %d: %v", ctx.Slot, a)
	h(ctx, a.Data)
	return true
}
