package transport

import (
	"math/rand/v2"
	"slices"

	"github.com/sasha-s/go-deadlock"
)

type delivery struct {
	from, to uint8
	b        []byte
}

// Network connects Loopback transports in memory. It can drop, hold back and reorder packets to
// mimic an unreliable network.
type Network struct {
	mu    deadlock.Mutex
	peers map[uint8]*Loopback

	// Filter, if set, is called for every packet. Packets it returns false for are dropped.
	Filter func(from, to uint8, b []byte) bool

	hold bool
	held []delivery
}

// NewNetwork returns an empty Network.
func NewNetwork() *Network {
	return &Network{peers: make(map[uint8]*Loopback)}
}

// Join returns the transport of the participant in the slot passed.
func (n *Network) Join(slot uint8) *Loopback {
	n.mu.Lock()
	defer n.mu.Unlock()

	l := &Loopback{n: n, slot: slot, inbox: make(chan []byte, InboxSize)}
	n.peers[slot] = l
	return l
}

// Hold makes the network keep every packet sent until Release is called.
func (n *Network) Hold() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.hold = true
}

// Release delivers every packet held back and stops holding packets. If rng is not nil, the
// packets are delivered in a random order drawn from it.
func (n *Network) Release(rng *rand.Rand) {
	n.mu.Lock()
	defer n.mu.Unlock()

	held := n.held
	n.held, n.hold = nil, false
	if rng != nil {
		rng.Shuffle(len(held), func(i, j int) {
			held[i], held[j] = held[j], held[i]
		})
	}
	for _, d := range held {
		n.deliver(d)
	}
}

// Held returns the amount of packets currently held back.
func (n *Network) Held() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.held)
}

func (n *Network) send(from, to uint8, b []byte) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.peers[to]; !ok {
		return errUnknownPeer
	}
	d := delivery{from: from, to: to, b: slices.Clone(b)}
	if n.hold {
		n.held = append(n.held, d)
		return nil
	}
	n.deliver(d)
	return nil
}

func (n *Network) deliver(d delivery) {
	if n.Filter != nil && !n.Filter(d.from, d.to, d.b) {
		return
	}
	if peer, ok := n.peers[d.to]; ok && !peer.closed {
		push(peer.inbox, d.b)
	}
}

// Loopback is a Transport over a Network.
type Loopback struct {
	n      *Network
	slot   uint8
	inbox  chan []byte
	closed bool
}

// Broadcast sends a packet to every other participant in the network, in slot order.
func (l *Loopback) Broadcast(b []byte) error {
	l.n.mu.Lock()
	if l.closed {
		l.n.mu.Unlock()
		return errClosed
	}
	var slots []uint8
	for slot := range l.n.peers {
		if slot != l.slot {
			slots = append(slots, slot)
		}
	}
	l.n.mu.Unlock()

	slices.Sort(slots)
	for _, slot := range slots {
		if err := l.n.send(l.slot, slot, b); err != nil {
			return err
		}
	}
	return nil
}

// WriteTo sends a packet to the participant in the slot passed.
func (l *Loopback) WriteTo(slot uint8, b []byte) error {
	l.n.mu.Lock()
	closed := l.closed
	l.n.mu.Unlock()
	if closed {
		return errClosed
	}
	return l.n.send(l.slot, slot, b)
}

func (l *Loopback) Inbox() <-chan []byte {
	return l.inbox
}

// Close leaves the network and closes the inbox.
func (l *Loopback) Close() error {
	l.n.mu.Lock()
	defer l.n.mu.Unlock()
	if l.closed {
		return errClosed
	}
	l.closed = true
	delete(l.n.peers, l.slot)
	close(l.inbox)
	return nil
}
