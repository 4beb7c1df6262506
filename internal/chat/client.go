package chat

import (
	"log"
	"sync"
	"time"

	"github.com/duetchat/backend/internal/models"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 64 * 1024 // 64KB covers signaling payloads with SDP blobs
)

// Client represents a single WebSocket connection. It carries no participant
// identity until the connection completes a join_chat and the hub fills in
// participant.
type Client struct {
	hub *Hub

	// WebSocket connection
	conn *websocket.Conn

	// Buffered channel of outbound frames
	send chan []byte

	// ConnectionID identifies this connection for the registry
	ConnectionID string

	// participant is set by the hub on successful admission; a repeat
	// join_chat on the same connection rewrites it while other
	// connections' fan-outs read it, so access goes through the mutex
	participant *models.Participant

	// mu guards participant and closed; frames may arrive from several
	// broadcast paths while a disconnect is tearing the client down
	mu     sync.Mutex
	closed bool
}

// NewClient creates a new Client instance with a fresh connection ID.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:          hub,
		conn:         conn,
		send:         make(chan []byte, 256),
		ConnectionID: uuid.New().String(),
	}
}

// setParticipant records the identity the hub admitted this connection as.
func (c *Client) setParticipant(p *models.Participant) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.participant = p
}

// getParticipant returns the admitted identity, or nil before a join.
func (c *Client) getParticipant() *models.Participant {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.participant
}

// trySend queues a frame without blocking. It reports false when the client
// is closed or its buffer is full; the hub treats that as a dead connection.
func (c *Client) trySend(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// close shuts the send channel exactly once. The write pump drains whatever
// is still queued (a final error event, typically) and then closes the
// underlying connection.
func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// ReadPump pumps frames from the WebSocket connection into the hub.
// This runs in its own goroutine per client; because each frame is handled
// synchronously here, one connection's events are never reordered.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Disconnect(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WebSocket] Read error from %s: %v", c.ConnectionID, err)
			}
			break
		}

		c.hub.Dispatch(c, data)
	}
}

// WritePump pumps frames from the hub to the WebSocket connection.
// This runs in its own goroutine per client.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// Send each frame separately; coalescing would break JSON
			// parsing on the client
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

			n := len(c.send)
			for i := 0; i < n; i++ {
				if err := c.conn.WriteMessage(websocket.TextMessage, <-c.send); err != nil {
					return
				}
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// clientSet is the mutex-guarded set of admitted connections. Broadcasts
// iterate a snapshot taken at call time, so membership during a fan-out is
// well defined.
type clientSet struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

func newClientSet() clientSet {
	return clientSet{clients: make(map[string]*Client)}
}

func (s *clientSet) add(c *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c.ConnectionID] = c
}

func (s *clientSet) remove(c *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, c.ConnectionID)
}

func (s *clientSet) snapshot() []*Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Client, 0, len(s.clients))
	for _, c := range s.clients {
		out = append(out, c)
	}
	return out
}
