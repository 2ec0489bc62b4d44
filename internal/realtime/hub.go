// Package realtime fans board events out to connected WebSocket sessions grouped by room,
// optionally across instances through Redis pub/sub.
package realtime

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/domain"
)

var (
	ErrSessionClosed  = errors.New("session closed")
	ErrSendBufferFull = errors.New("send buffer full")
)

// Event is the frame pushed to clients.
type Event struct {
	Room    string    `json:"room"`
	Name    string    `json:"event"`
	Payload any       `json:"payload"`
	SentAt  time.Time `json:"sentAt"`
}

// Session is one connected client.
type Session interface {
	ID() string
	UserID() uuid.UUID
	Send(ev Event) error
}

// member tracks a session's rooms. Its lock serializes Join/Leave/Disconnect for that
// session; it is always taken before the hub lock.
type member struct {
	mu      sync.Mutex
	session Session
	rooms   map[string]struct{}
	closed  bool
}

// Hub is the registry of live sessions and the rooms they have joined.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*member
	rooms    map[string]map[string]*member
	logger   *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		sessions: make(map[string]*member),
		rooms:    make(map[string]map[string]*member),
		logger:   logger,
	}
}

// Connect registers the session and joins it to the global room and its user room.
func (h *Hub) Connect(s Session) error {
	m := &member{session: s, rooms: make(map[string]struct{})}

	m.mu.Lock()
	defer m.mu.Unlock()

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.sessions[s.ID()]; exists {
		return fmt.Errorf("session %s: %w", s.ID(), domain.ErrConflict)
	}
	h.sessions[s.ID()] = m
	h.addLocked(m, domain.RoomGlobal)
	h.addLocked(m, domain.UserRoom(s.UserID()))
	return nil
}

func (h *Hub) lookup(sessionID string) (*member, error) {
	h.mu.RLock()
	m, ok := h.sessions[sessionID]
	h.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
	}
	return m, nil
}

// Join subscribes the session to room. Joining twice is a no-op.
func (h *Hub) Join(sessionID, room string) error {
	m, err := h.lookup(sessionID)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
	}
	if _, ok := m.rooms[room]; ok {
		return nil
	}

	h.mu.Lock()
	h.addLocked(m, room)
	h.mu.Unlock()
	return nil
}

// Leave unsubscribes the session from room. Leaving a room never joined is a no-op.
func (h *Hub) Leave(sessionID, room string) error {
	m, err := h.lookup(sessionID)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
	}
	if _, ok := m.rooms[room]; !ok {
		return nil
	}

	h.mu.Lock()
	h.removeLocked(m, room)
	h.mu.Unlock()
	return nil
}

// Disconnect drops the session from every room. Unknown sessions are ignored.
func (h *Hub) Disconnect(sessionID string) {
	m, err := h.lookup(sessionID)
	if err != nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true

	h.mu.Lock()
	defer h.mu.Unlock()
	for room := range m.rooms {
		h.removeLocked(m, room)
	}
	if h.sessions[sessionID] == m {
		delete(h.sessions, sessionID)
	}
}

func (h *Hub) addLocked(m *member, room string) {
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[string]*member)
		h.rooms[room] = members
	}
	members[m.session.ID()] = m
	m.rooms[room] = struct{}{}
}

func (h *Hub) removeLocked(m *member, room string) {
	delete(m.rooms, room)
	members := h.rooms[room]
	delete(members, m.session.ID())
	if len(members) == 0 {
		delete(h.rooms, room)
	}
}

// Emit delivers to every session in room. It satisfies the services' Broadcaster.
func (h *Hub) Emit(room, event string, payload any) {
	h.Deliver(room, event, payload)
}

// Deliver sends the event to each session joined to room at call time and returns how many
// accepted it. A failing session is logged and skipped.
func (h *Hub) Deliver(room, event string, payload any) int {
	ev := Event{Room: room, Name: event, Payload: payload, SentAt: time.Now().UTC()}

	h.mu.RLock()
	targets := make([]Session, 0, len(h.rooms[room]))
	for _, m := range h.rooms[room] {
		targets = append(targets, m.session)
	}
	h.mu.RUnlock()

	delivered := 0
	for _, s := range targets {
		if err := s.Send(ev); err != nil {
			h.logger.Warn("dropping event for session",
				"session_id", s.ID(), "room", room, "event", event, "error", err)
			continue
		}
		delivered++
	}
	return delivered
}

// Rooms lists the rooms a session is in, sorted.
func (h *Hub) Rooms(sessionID string) ([]string, error) {
	m, err := h.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.rooms))
	for room := range m.rooms {
		out = append(out, room)
	}
	sort.Strings(out)
	return out, nil
}

// SessionCount reports the number of connected sessions.
func (h *Hub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}
