package packet

import "github.com/sandertv/gophertunnel/minecraft/protocol"

const (
	IDSync uint8 = iota + 1
	IDRetransmitRequest
)

// Packet is a message exchanged between the participants of a session.
type Packet interface {
	// ID returns the ID of the packet, written right before the header.
	ID() uint8
	// Marshal encodes or decodes the packet body using the IO passed.
	Marshal(io protocol.IO)
}

// Header is written in front of every packet and identifies who sent it.
type Header struct {
	PacketID uint8
	// Group is the ID of the session the sender belongs to. Packets of other groups are ignored.
	Group uint32
	// Sender is the slot of the participant that sent the packet.
	Sender uint8
}

// Marshal encodes or decodes the header.
func (h *Header) Marshal(io protocol.IO) {
	io.Uint8(&h.PacketID)
	io.Uint32(&h.Group)
	io.Uint8(&h.Sender)
}

// Sync carries the frame of the current tick, followed by a copy of the frame that was sent
// right before it so that a single lost packet can be bridged without a retransmission.
type Sync struct {
	Current Frame

	HasPrevious bool
	Previous    Frame
}

// ID ...
func (*Sync) ID() uint8 {
	return IDSync
}

// Marshal ...
func (pk *Sync) Marshal(io protocol.IO) {
	pk.Current.Marshal(io)

	var prev uint8
	if pk.HasPrevious {
		prev = 1
	}
	io.Uint8(&prev)
	pk.HasPrevious = prev != 0
	if pk.HasPrevious {
		pk.Previous.Marshal(io)
	}
}

// RetransmitRequest asks the participant in slot From to resend every frame it sent starting
// with the frame numbered Since.
type RetransmitRequest struct {
	Requester uint8
	From      uint8
	Since     uint8
}

// ID ...
func (*RetransmitRequest) ID() uint8 {
	return IDRetransmitRequest
}

// Marshal ...
func (pk *RetransmitRequest) Marshal(io protocol.IO) {
	io.Uint8(&pk.Requester)
	io.Uint8(&pk.From)
	io.Uint8(&pk.Since)
}
