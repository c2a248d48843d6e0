package game

const (
	MessageAlreadyTaken  = "Someone already took that."
	MessageNothingToOpen = "There is nothing to open here."
	MessageDoorLocked    = "The door is locked."
	MessageInventoryFull = "You cannot carry any more."
	MessageLockPicked    = "You picked the lock."
	MessageLockResisted  = "The lock resists."
	MessageStealAttempt  = "You slip your hand into their pack."
	MessageStealFailed   = "You failed to steal anything."
	MessageStealVictim   = "Something was stolen from you!"
	MessageStoleItem     = "You stole something."
	MessagePaused        = "Game paused by player %d."
	MessageResumed       = "Game resumed by player %d."
	MessagePlayerJoined  = "Player %d has joined."
	MessagePlayerLeft    = "Player %d has left."

	StatusObjectSyncError = "<red>OBJECT SYNC ERROR</red> seq=%d local=%d remote=%d"
)
