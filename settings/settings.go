package settings

import (
	"fmt"
	"os"

	"github.com/oomph-ac/lockstep/oerror"
	"github.com/pelletier/go-toml"
)

// Settings contains everything that can be configured for a lockstep peer.
type Settings struct {
	Session struct {
		// Slots is the amount of participants in the session and LocalSlot the slot of this peer.
		Slots     int
		LocalSlot int
		// Group identifies the session on the network. Every peer of a session uses the same group.
		Group uint32
		// TicksPerSecond is the rate of the local clock.
		TicksPerSecond int
		// SendInterval is the amount of ticks between two outbound frames.
		SendInterval uint32
		// DuplicateSends is the amount of extra copies sent of every packet.
		DuplicateSends int
		// MaxDelta caps the ticks a single synchronized tick may advance.
		MaxDelta       uint32
		HistorySize    int
		DivergenceRing int
		// Integrity is one of "next-object-id", "state-hash" or "none".
		Integrity string
	}
	Network struct {
		// Transport is either "raknet" or "websocket".
		Transport string
		// Listen is the address the RakNet transport listens on.
		Listen string
		// Peers holds the RakNet address of every slot, this peer's own included.
		Peers []string
		// Relay is the URL of the WebSocket relay. RelayListen, if set, makes this peer host it.
		Relay       string
		RelayListen string
	}
	Log struct {
		// Level is a logrus level name.
		Level string
		// JSON switches the log output from text to JSON.
		JSON bool
	}
	Sentry struct {
		DSN         string
		Environment string
	}
	Debug struct {
		// StatsAddress, if set, serves runtime statistics on the address.
		StatsAddress string
	}
	Keys Keys
}

// Keys maps the player facing commands of the client to key names.
type Keys struct {
	Attack     string
	Fire       string
	Activate   string
	Pickup     string
	Throw      string
	Steal      string
	PickLock   string
	Pause      string
	LeaveLevel string
	Automap    string
	HUD        string
	Inventory  string
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	s := Settings{}
	s.Session.Slots = 2
	s.Session.Group = 1
	s.Session.TicksPerSecond = 70
	s.Session.SendInterval = 2
	s.Session.DuplicateSends = 0
	s.Session.MaxDelta = 35
	s.Session.HistorySize = 128
	s.Session.DivergenceRing = 32
	s.Session.Integrity = "next-object-id"

	s.Network.Transport = "raknet"
	s.Network.Listen = "0.0.0.0:19140"
	s.Network.Peers = []string{"127.0.0.1:19140", "127.0.0.1:19141"}
	s.Network.Relay = "ws://127.0.0.1:8080/relay"

	s.Log.Level = "info"

	s.Keys = Keys{
		Attack:     "ctrl",
		Fire:       "alt",
		Activate:   "space",
		Pickup:     "g",
		Throw:      "t",
		Steal:      "s",
		PickLock:   "l",
		Pause:      "p",
		LeaveLevel: "escape",
		Automap:    "tab",
		HUD:        "h",
		Inventory:  "i",
	}
	return s
}

// Validate returns an error if the settings can't be used to run a peer.
func (s Settings) Validate() error {
	if s.Session.Slots < 1 || s.Session.Slots > 4 {
		return oerror.New("session slots must be between 1 and 4, got %d", s.Session.Slots)
	}
	if s.Session.LocalSlot < 0 || s.Session.LocalSlot >= s.Session.Slots {
		return oerror.New("local slot %d out of range", s.Session.LocalSlot)
	}
	if s.Session.TicksPerSecond <= 0 {
		return oerror.New("ticks per second must be positive")
	}
	switch s.Network.Transport {
	case "raknet":
		if len(s.Network.Peers) < s.Session.Slots {
			return oerror.New("raknet transport needs an address for each of the %d slots", s.Session.Slots)
		}
	case "websocket":
		if s.Network.Relay == "" {
			return oerror.New("websocket transport needs a relay url")
		}
	default:
		return oerror.New("unknown transport %q", s.Network.Transport)
	}
	return nil
}

// SaveDefault will create and save the default settings file. If the file already exists, it will return an error.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return oerror.New("settings file already exists")
	}
	data, err := toml.Marshal(DefaultSettings())
	if err != nil {
		return fmt.Errorf("failed encoding default settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed creating settings file: %w", err)
	}
	return nil
}

// Load will load the settings from your settings file, and return an error if the file does not exist.
// Values missing from the file keep their defaults.
func Load(path string) (Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Settings{}, oerror.New("settings file doesn't exist")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("error reading config: %w", err)
	}

	settings := DefaultSettings()
	if err = toml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("error decoding config: %w", err)
	}
	return settings, settings.Validate()
}
