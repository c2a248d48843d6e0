package game

const (
	// TicksPerSecond is the resolution of the session clock.
	TicksPerSecond = 70

	// MaxDeltaTicks is the largest step the shared clock advances in a single consumed tick.
	MaxDeltaTicks = TicksPerSecond / 2
	// ResendGuardTicks is the minimum interval between two retransmit requests to one sender.
	ResendGuardTicks = TicksPerSecond / 4

	// StaleSequenceWindow is the largest sequence difference still considered ahead of the
	// last accepted frame. Anything further is an old duplicate that wrapped around.
	StaleSequenceWindow = 50

	// MaxPlayers is the number of participant slots in a session.
	MaxPlayers = 4
	// DefaultHistorySize is the number of sent packets kept around for retransmission.
	DefaultHistorySize = 128
	// DefaultDivergenceRingSize is the number of ticks the divergence detector remembers.
	DefaultDivergenceRingSize = 32

	// AvatarRadius and AvatarHeight are the dimensions of a player avatar's collision body.
	AvatarRadius = float32(12)
	AvatarHeight = float32(40)
	// ActivateReach is how far in front of an avatar ActivateForward probes for a door.
	ActivateReach = float32(48)
	// AlertRadius is the radius around an attacking avatar in which creatures are alerted.
	AlertRadius = float32(512)
)
