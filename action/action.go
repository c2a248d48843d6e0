package action

import "fmt"

// Type is the kind of an Action. It travels as a single byte in the action block of a frame.
type Type uint8

const (
	TypeNone Type = iota
	TypeChangeBodyPart
	TypeMeleeAttack
	TypeMissileAttack
	TypeActivateForward
	TypeLeaveLevel
	TypePickupItem
	TypeThrowItem
	TypeSteal
	TypeStolen
	TypePickLock
	TypeAreaSound
	TypeSyncNewPlayerWait
	TypeSyncNewPlayerSend
	TypeSyncNewPlayerComplete
	TypeGotoPlace
	TypeDropAt
	TypePauseToggle
	TypeAbortLevel
	TypeIDSelf

	typeCount
)

var typeNames = [typeCount]string{
	TypeNone:                  "none",
	TypeChangeBodyPart:        "change_body_part",
	TypeMeleeAttack:           "melee_attack",
	TypeMissileAttack:         "missile_attack",
	TypeActivateForward:       "activate_forward",
	TypeLeaveLevel:            "leave_level",
	TypePickupItem:            "pickup_item",
	TypeThrowItem:             "throw_item",
	TypeSteal:                 "steal",
	TypeStolen:                "stolen",
	TypePickLock:              "pick_lock",
	TypeAreaSound:             "area_sound",
	TypeSyncNewPlayerWait:     "sync_new_player_wait",
	TypeSyncNewPlayerSend:     "sync_new_player_send",
	TypeSyncNewPlayerComplete: "sync_new_player_complete",
	TypeGotoPlace:             "goto_place",
	TypeDropAt:                "drop_at",
	TypePauseToggle:           "pause_toggle",
	TypeAbortLevel:            "abort_level",
	TypeIDSelf:                "id_self",
}

// Valid returns true if t is a known action type.
func (t Type) Valid() bool {
	return t < typeCount
}

// LeavesLevel returns true for the actions that take the avatar out of the current level.
func (t Type) LeavesLevel() bool {
	return t == TypeLeaveLevel || t == TypeAbortLevel
}

func (t Type) String() string {
	if !t.Valid() {
		return fmt.Sprintf("action(%d)", uint8(t))
	}
	return typeNames[t]
}

// Action is a single intent of a player, synchronized to every participant in the frame that
// carries it. The meaning of Data depends on the Type.
type Action struct {
	Type Type
	Data [4]int16
}

// New returns an Action of the type passed holding up to four data fields.
func New(t Type, data ...int16) Action {
	a := Action{Type: t}
	copy(a.Data[:], data)
	return a
}

// Empty returns true if the action carries no intent.
func (a Action) Empty() bool {
	return a.Type == TypeNone
}

func (a Action) String() string {
	return fmt.Sprintf("%v%v", a.Type, a.Data)
}
