package transport

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/oomph-ac/lockstep/oerror"
	"github.com/oomph-ac/lockstep/worker"
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
)

// broadcastSlot is the destination byte of relayed packets meant for every other participant.
const broadcastSlot = 0xFF

// Relay is an http.Handler relaying packets between WebSocket participants. Every message a
// participant sends starts with the destination slot, which the relay replaces with the slot of
// the sender before forwarding it.
type Relay struct {
	log      logrus.FieldLogger
	upgrader websocket.Upgrader

	mu    deadlock.RWMutex
	peers map[uint8]*wsConn
}

type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) write(b []byte) error {
	return c.writeMessage(websocket.BinaryMessage, b)
}

func (c *wsConn) writeMessage(typ int, b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(typ, b)
}

// NewRelay returns an empty Relay.
func NewRelay(log logrus.FieldLogger) *Relay {
	return &Relay{
		log: log.WithField("transport", "relay"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		peers: make(map[uint8]*wsConn),
	}
}

// ServeHTTP upgrades a participant connecting with a slot query parameter and relays its packets
// until it disconnects.
func (rl *Relay) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.ParseUint(r.URL.Query().Get("slot"), 10, 8)
	if err != nil || n == broadcastSlot {
		http.Error(w, "invalid slot", http.StatusBadRequest)
		return
	}
	slot := uint8(n)

	conn, err := rl.upgrader.Upgrade(w, r, nil)
	if err != nil {
		rl.log.Errorf("upgrade slot %d: %v", slot, err)
		return
	}
	c := &wsConn{conn: conn}

	rl.mu.Lock()
	if old, ok := rl.peers[slot]; ok {
		_ = old.conn.Close()
	}
	rl.peers[slot] = c
	rl.mu.Unlock()
	rl.log.Infof("slot %d joined from %s", slot, r.RemoteAddr)

	defer func() {
		rl.mu.Lock()
		if rl.peers[slot] == c {
			delete(rl.peers, slot)
		}
		rl.mu.Unlock()
		_ = conn.Close()
		rl.log.Infof("slot %d left", slot)
	}()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if len(payload) < 2 {
			continue
		}
		dest := payload[0]
		payload[0] = slot
		rl.forward(slot, dest, payload)
	}
}

func (rl *Relay) forward(from, dest uint8, b []byte) {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	for slot, c := range rl.peers {
		if slot == from || (dest != broadcastSlot && slot != dest) {
			continue
		}
		if err := c.write(b); err != nil {
			rl.log.Debugf("forward to slot %d: %v", slot, err)
		}
	}
}

// WebSocket is a Transport connected to a Relay.
type WebSocket struct {
	log  logrus.FieldLogger
	conn *wsConn

	inbox chan []byte
	once  sync.Once
}

// DialWebSocket connects to the relay at the URL passed as the participant in the slot passed.
func DialWebSocket(ctx context.Context, log logrus.FieldLogger, rawURL string, slot uint8) (*WebSocket, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse relay url: %w", err)
	}
	q := u.Query()
	q.Set("slot", strconv.Itoa(int(slot)))
	u.RawQuery = q.Encode()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial relay: %w", err)
	}
	ws := &WebSocket{
		log:   log.WithField("transport", "websocket"),
		conn:  &wsConn{conn: conn},
		inbox: make(chan []byte, InboxSize),
	}
	worker.Go("websocket read", ws.log, ws.read)
	return ws, nil
}

func (ws *WebSocket) read() {
	defer close(ws.inbox)
	for {
		_, payload, err := ws.conn.conn.ReadMessage()
		if err != nil {
			ws.log.Debugf("relay connection closed: %v", err)
			return
		}
		if len(payload) < 2 {
			continue
		}
		// The first byte is the slot of the sender, which the packet header repeats.
		if !push(ws.inbox, payload[1:]) {
			ws.log.Warn("inbox full, dropping packet")
		}
	}
}

func (ws *WebSocket) send(dest uint8, b []byte) error {
	msg := make([]byte, len(b)+1)
	msg[0] = dest
	copy(msg[1:], b)
	return ws.conn.write(msg)
}

// Broadcast sends a packet to every other participant connected to the relay.
func (ws *WebSocket) Broadcast(b []byte) error {
	return ws.send(broadcastSlot, b)
}

// WriteTo sends a packet to the participant in the slot passed.
func (ws *WebSocket) WriteTo(slot uint8, b []byte) error {
	if slot == broadcastSlot {
		return oerror.New("websocket: invalid slot %d", slot)
	}
	return ws.send(slot, b)
}

func (ws *WebSocket) Inbox() <-chan []byte {
	return ws.inbox
}

// Close closes the connection to the relay.
func (ws *WebSocket) Close() error {
	var err error = errClosed
	ws.once.Do(func() {
		_ = ws.conn.writeMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		err = ws.conn.conn.Close()
	})
	return err
}
