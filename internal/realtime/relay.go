package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

const publishTimeout = 2 * time.Second

// envelope is the cross-instance wire form of an emit.
type envelope struct {
	Room    string          `json:"room"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// Relay publishes emits to a Redis channel; every instance's Run loop delivers what it
// receives to its local hub, so rooms span instances.
type Relay struct {
	hub     *Hub
	rdb     *redis.Client
	channel string
	logger  *slog.Logger
	ready   chan struct{}
	live    atomic.Bool
}

func NewRelay(hub *Hub, rdb *redis.Client, channel string, logger *slog.Logger) *Relay {
	return &Relay{
		hub:     hub,
		rdb:     rdb,
		channel: channel,
		logger:  logger.With("channel", channel),
		ready:   make(chan struct{}),
	}
}

// Emit publishes the event. When Redis is unreachable, or this instance has no live
// subscription, the event is delivered locally so this instance's sessions still see it.
func (r *Relay) Emit(room, event string, payload any) {
	if !r.live.Load() {
		r.hub.Deliver(room, event, payload)
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		r.logger.Error("encoding relay payload", "event", event, "error", err)
		r.hub.Deliver(room, event, payload)
		return
	}
	msg, err := json.Marshal(envelope{Room: room, Event: event, Payload: raw})
	if err != nil {
		r.logger.Error("encoding relay envelope", "event", event, "error", err)
		r.hub.Deliver(room, event, payload)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := r.rdb.Publish(ctx, r.channel, msg).Err(); err != nil {
		r.logger.Warn("relay publish failed, delivering locally", "room", room, "event", event, "error", err)
		r.hub.Deliver(room, event, payload)
	}
}

// Live reports whether the subscriber loop is receiving.
func (r *Relay) Live() bool {
	return r.live.Load()
}

// Ready is closed once the subscription is confirmed.
func (r *Relay) Ready() <-chan struct{} {
	return r.ready
}

// Run subscribes to the channel and delivers every envelope to the local hub until ctx ends.
func (r *Relay) Run(ctx context.Context) error {
	sub := r.rdb.Subscribe(ctx, r.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribing to %s: %w", r.channel, err)
	}
	r.live.Store(true)
	defer r.live.Store(false)
	close(r.ready)
	r.logger.Info("relay subscribed")

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var env envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				r.logger.Warn("dropping malformed relay message", "error", err)
				continue
			}
			r.hub.Deliver(env.Room, env.Event, env.Payload)
		}
	}
}
