package packet

import (
	"bytes"

	"github.com/oomph-ac/lockstep/internal"
	"github.com/oomph-ac/lockstep/oerror"
	"github.com/sandertv/gophertunnel/minecraft/protocol"
)

var pool = map[uint8]func() Packet{
	IDSync:              func() Packet { return &Sync{} },
	IDRetransmitRequest: func() Packet { return &RetransmitRequest{} },
}

// Encode encodes a packet with the header passed. The packet ID of the header is taken from the
// packet.
func Encode(h Header, pk Packet) []byte {
	buf := internal.BufferPool.Get().(*bytes.Buffer)
	defer internal.BufferPool.Put(buf)
	buf.Reset()

	h.PacketID = pk.ID()
	w := protocol.NewWriter(buf, 0)
	h.Marshal(w)
	pk.Marshal(w)

	return append([]byte(nil), buf.Bytes()...)
}

// Decode decodes a packet previously produced by Encode. The transport is trusted to deliver
// whole packets, but a truncated or unknown packet still returns an error instead of panicking.
func Decode(b []byte) (h Header, pk Packet, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = oerror.New("decode packet: %v", v)
			pk = nil
		}
	}()

	buf := bytes.NewBuffer(b)
	r := protocol.NewReader(buf, 0, false)
	h.Marshal(r)

	f, ok := pool[h.PacketID]
	if !ok {
		return h, nil, oerror.New("unknown packet id %d", h.PacketID)
	}
	pk = f()
	pk.Marshal(r)
	return h, pk, nil
}

// EncodeFrame encodes a single frame without any header.
func EncodeFrame(f Frame) []byte {
	buf := internal.BufferPool.Get().(*bytes.Buffer)
	defer internal.BufferPool.Put(buf)
	buf.Reset()

	f.Marshal(protocol.NewWriter(buf, 0))
	return append([]byte(nil), buf.Bytes()...)
}

// DecodeFrame decodes a single frame produced by EncodeFrame.
func DecodeFrame(b []byte) (f Frame, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = oerror.New("decode frame: %v", v)
		}
	}()

	f.Marshal(protocol.NewReader(bytes.NewBuffer(b), 0, false))
	return f, nil
}
