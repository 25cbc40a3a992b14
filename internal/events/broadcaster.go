package events

import (
	"log/slog"
	"sync"

	"github.com/partyroom/partyroom/internal/model"
)

// subscriberBuffer is the per-subscriber channel capacity. A subscriber
// that falls this far behind starts losing events rather than stalling
// publication for everyone else.
const subscriberBuffer = 64

// Subscription is one observer's live attachment to a room's event stream.
// The channel is closed when the room closes or the subscription is
// detached; receivers must treat a closed channel as end-of-stream.
type Subscription struct {
	ch chan model.Event
}

// Events returns the channel on which events are delivered, in
// publication order. It is closed when no further events will arrive.
func (s *Subscription) Events() <-chan model.Event {
	return s.ch
}

// Broadcaster fans out one room's events to all attached subscribers.
// Publishing never blocks on a slow subscriber; events are dropped for
// that subscriber instead. Once closed, a broadcaster accepts no further
// events and every subscription channel has been closed.
type Broadcaster struct {
	roomID model.RoomID
	logger *slog.Logger

	mu     sync.Mutex
	subs   map[*Subscription]struct{}
	closed bool
}

// NewBroadcaster creates a broadcaster for a room
func NewBroadcaster(roomID model.RoomID, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		roomID: roomID,
		logger: logger.With(slog.String("room", string(roomID))),
		subs:   make(map[*Subscription]struct{}),
	}
}

// Subscribe registers a new receiver. It receives every event published
// after this call; there is no replay of history. Subscribing to a closed
// broadcaster returns a subscription whose channel is already closed.
func (b *Broadcaster) Subscribe() *Subscription {
	sub := &Subscription{ch: make(chan model.Event, subscriberBuffer)}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		close(sub.ch)
		return sub
	}

	b.subs[sub] = struct{}{}
	return sub
}

// Unsubscribe detaches a receiver and closes its channel. It is
// idempotent and safe to call after the broadcaster has closed.
func (b *Broadcaster) Unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[sub]; !ok {
		return
	}
	delete(b.subs, sub)
	close(sub.ch)
}

// Publish delivers the event to every current subscriber. Delivery is
// best-effort per subscriber: a full buffer drops the event for that
// subscriber only. Publishing to a closed broadcaster is a no-op.
func (b *Broadcaster) Publish(evt model.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	dropped := 0
	for sub := range b.subs {
		select {
		case sub.ch <- evt:
		default:
			dropped++
		}
	}
	if dropped > 0 {
		b.logger.Warn("event dropped - subscriber buffer full",
			slog.String("event", string(evt.Type)),
			slog.Int("dropped", dropped))
	}
}

// Close marks the broadcaster terminally closed and closes every
// subscriber channel. Events already buffered remain readable; after
// draining them each subscriber sees end-of-stream.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for sub := range b.subs {
		close(sub.ch)
		delete(b.subs, sub)
	}
}

// SubscriberCount returns the number of attached subscribers
func (b *Broadcaster) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
