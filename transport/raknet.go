package transport

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/oomph-ac/lockstep/oerror"
	"github.com/oomph-ac/lockstep/worker"
	"github.com/sandertv/go-raknet"
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
)

// dialRetry is the interval between two attempts to reach a peer that is not up yet.
const dialRetry = time.Second

// RakNet is a peer to peer Transport over RakNet. Every participant listens for the others and
// dials each of them: packets are sent over the dialed connections and received over the
// accepted ones.
type RakNet struct {
	log  logrus.FieldLogger
	slot uint8

	listener *raknet.Listener

	mu    deadlock.RWMutex
	peers map[uint8]*raknet.Conn

	inbox  chan []byte
	closed chan struct{}
	once   sync.Once
}

// ListenRakNet starts listening for the other participants on the address passed.
func ListenRakNet(log logrus.FieldLogger, slot uint8, address string) (*RakNet, error) {
	l, err := raknet.Listen(address)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", address, err)
	}
	r := &RakNet{
		log:      log.WithField("transport", "raknet"),
		slot:     slot,
		listener: l,
		peers:    make(map[uint8]*raknet.Conn),
		inbox:    make(chan []byte, InboxSize),
		closed:   make(chan struct{}),
	}
	worker.Go("raknet accept", r.log, r.accept)
	r.log.Infof("listening on %s", l.Addr())
	return r, nil
}

// Connect dials the participant in the slot passed until it is reached, the context is cancelled
// or the transport is closed. It does not block.
func (r *RakNet) Connect(ctx context.Context, slot uint8, address string) {
	worker.Go("raknet dial", r.log, func() {
		for {
			conn, err := raknet.Dial(address)
			if err == nil {
				r.mu.Lock()
				if old, ok := r.peers[slot]; ok {
					_ = old.Close()
				}
				r.peers[slot] = conn
				r.mu.Unlock()
				r.log.Infof("connected to slot %d at %s", slot, address)
				return
			}
			r.log.Debugf("dial slot %d at %s: %v", slot, address, err)

			select {
			case <-ctx.Done():
				return
			case <-r.closed:
				return
			case <-time.After(dialRetry):
			}
		}
	})
}

func (r *RakNet) accept() {
	for {
		c, err := r.listener.Accept()
		if err != nil {
			select {
			case <-r.closed:
			default:
				r.log.Errorf("accept: %v", err)
			}
			return
		}
		conn := c.(*raknet.Conn)
		r.log.Debugf("accepted connection from %s", conn.RemoteAddr())
		worker.Go("raknet read", r.log, func() {
			r.read(conn)
		})
	}
}

func (r *RakNet) read(conn *raknet.Conn) {
	defer conn.Close()
	for {
		b, err := conn.ReadPacket()
		if err != nil {
			r.log.Debugf("connection from %s closed: %v", conn.RemoteAddr(), err)
			return
		}
		select {
		case <-r.closed:
			return
		default:
		}
		if !push(r.inbox, b) {
			r.log.Warn("inbox full, dropping packet")
		}
	}
}

// Broadcast writes a packet to every participant that was reached so far.
func (r *RakNet) Broadcast(b []byte) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var errs []error
	for slot, conn := range r.peers {
		if _, err := conn.Write(b); err != nil {
			errs = append(errs, fmt.Errorf("write to slot %d: %w", slot, err))
		}
	}
	return errors.Join(errs...)
}

// WriteTo writes a packet to the participant in the slot passed.
func (r *RakNet) WriteTo(slot uint8, b []byte) error {
	r.mu.RLock()
	conn, ok := r.peers[slot]
	r.mu.RUnlock()
	if !ok {
		return oerror.New("raknet: %v %d", errUnknownPeer, slot)
	}
	_, err := conn.Write(b)
	return err
}

func (r *RakNet) Inbox() <-chan []byte {
	return r.inbox
}

// Close closes the listener and every connection. The inbox is not closed, as reading
// goroutines may still hold on to it; it simply receives nothing more.
func (r *RakNet) Close() error {
	var err error = errClosed
	r.once.Do(func() {
		close(r.closed)
		r.mu.Lock()
		for slot, conn := range r.peers {
			_ = conn.Close()
			delete(r.peers, slot)
		}
		r.mu.Unlock()
		err = r.listener.Close()
	})
	return err
}
