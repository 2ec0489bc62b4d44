package realtime

import (
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/domain"
	"github.com/guru-bharadwaj20/Team-Dashboard/pkg/crypto"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096

	// DefaultSendBuffer is used when a non-positive buffer size is configured.
	DefaultSendBuffer = 32

	// EventError is sent to a single client whose frame could not be applied.
	EventError = "error"
	// EventRooms acknowledges a join or leave with the session's current rooms.
	EventRooms = "rooms"
)

// ClientFrame is what a browser sends: {"type":"join-team","id":"<uuid>"}.
type ClientFrame struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// Client is a Session backed by a WebSocket connection. Outbound events go through a
// bounded buffer drained by the write pump; a full buffer fails that one delivery.
type Client struct {
	id     string
	userID uuid.UUID
	conn   *websocket.Conn
	send   chan Event
	done   chan struct{}
	once   sync.Once
	logger *slog.Logger
}

func NewClient(conn *websocket.Conn, userID uuid.UUID, bufferSize int, logger *slog.Logger) (*Client, error) {
	if bufferSize <= 0 {
		bufferSize = DefaultSendBuffer
	}
	id, err := crypto.RandomToken(12)
	if err != nil {
		return nil, err
	}
	return &Client{
		id:     id,
		userID: userID,
		conn:   conn,
		send:   make(chan Event, bufferSize),
		done:   make(chan struct{}),
		logger: logger.With("session_id", id, "user_id", userID),
	}, nil
}

func (c *Client) ID() string        { return c.id }
func (c *Client) UserID() uuid.UUID { return c.userID }

func (c *Client) Send(ev Event) error {
	select {
	case <-c.done:
		return ErrSessionClosed
	default:
	}
	select {
	case c.send <- ev:
		return nil
	default:
		return ErrSendBufferFull
	}
}

func (c *Client) close() {
	c.once.Do(func() { close(c.done) })
}

// Run registers the client with the hub and pumps frames until the connection drops.
// It blocks; the caller's goroutine becomes the read pump.
func (c *Client) Run(hub *Hub) {
	if err := hub.Connect(c); err != nil {
		c.logger.Error("registering session", "error", err)
		c.conn.Close()
		return
	}
	c.logger.Debug("session connected")

	go c.writePump()
	c.readPump(hub)

	hub.Disconnect(c.id)
	c.close()
	c.logger.Debug("session disconnected")
}

func (c *Client) readPump(hub *Hub) {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var frame ClientFrame
		if err := c.conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("websocket read failed", "error", err)
			}
			return
		}
		if err := c.apply(hub, frame); err != nil {
			_ = c.Send(Event{Name: EventError, Payload: map[string]string{"error": err.Error()}, SentAt: time.Now().UTC()})
			continue
		}
		rooms, err := hub.Rooms(c.id)
		if err != nil {
			c.logger.Warn("listing session rooms", "error", err)
			continue
		}
		_ = c.Send(Event{Name: EventRooms, Payload: rooms, SentAt: time.Now().UTC()})
	}
}

// apply handles join-team, leave-team, join-proposal and leave-proposal frames.
func (c *Client) apply(hub *Hub, frame ClientFrame) error {
	action, kind, ok := strings.Cut(frame.Type, "-")
	if !ok || (action != "join" && action != "leave") {
		return errors.New("unknown frame type " + frame.Type)
	}
	room, err := domain.ClientRoom(kind, frame.ID)
	if err != nil {
		return err
	}
	if action == "join" {
		return hub.Join(c.id, room)
	}
	return hub.Leave(c.id, room)
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case ev := <-c.send:
			data, err := json.Marshal(ev)
			if err != nil {
				c.logger.Error("encoding event", "event", ev.Name, "error", err)
				continue
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.logger.Warn("websocket write failed", "error", err)
				c.close()
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.close()
				return
			}
		}
	}
}
