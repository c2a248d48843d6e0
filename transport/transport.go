// Package transport moves encoded packets between the participants of a session. Transports
// deliver whole packets or nothing; ordering and reliability are not guaranteed.
package transport

import (
	"github.com/oomph-ac/lockstep/oerror"
)

// Transport sends packets to other participants and hands over the packets they send.
type Transport interface {
	// Broadcast sends a packet to every other participant.
	Broadcast(b []byte) error
	// WriteTo sends a packet to the participant in the slot passed only.
	WriteTo(slot uint8, b []byte) error
	// Inbox returns the channel received packets are pushed to. It is closed when the
	// transport is closed.
	Inbox() <-chan []byte
	// Close closes the transport.
	Close() error
}

// InboxSize is the capacity of the inbox channel of the transports in this package.
const InboxSize = 256

var (
	errClosed      = oerror.New("transport closed")
	errUnknownPeer = oerror.New("no peer in that slot")
)

// push pushes a packet to an inbox without blocking. Packets that don't fit are dropped, which
// the sequence reconciliation of the session treats like any other loss.
func push(inbox chan []byte, b []byte) bool {
	select {
	case inbox <- b:
		return true
	default:
		return false
	}
}
