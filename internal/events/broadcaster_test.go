package events

import (
	"sync"
	"testing"
	"time"

	"github.com/partyroom/partyroom/internal/model"
	"github.com/partyroom/partyroom/internal/testutil"
)

func newTestBroadcaster() *Broadcaster {
	return NewBroadcaster("room-1", testutil.NopLogger())
}

func makeEvent(t model.EventType, player string) model.Event {
	return model.Event{
		Type:      t,
		RoomID:    "room-1",
		Player:    player,
		Timestamp: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSubscribeReceivesPublishedEvent(t *testing.T) {
	b := newTestBroadcaster()
	sub := b.Subscribe()

	b.Publish(makeEvent(model.EventPlayerJoin, "Alice"))

	select {
	case evt := <-sub.Events():
		if evt.Type != model.EventPlayerJoin {
			t.Errorf("got event type %q, want %q", evt.Type, model.EventPlayerJoin)
		}
		if evt.Player != "Alice" {
			t.Errorf("got player %q, want %q", evt.Player, "Alice")
		}
	default:
		t.Fatal("expected a buffered event, channel was empty")
	}
}

func TestPublishFansOutToAllSubscribers(t *testing.T) {
	b := newTestBroadcaster()
	subs := []*Subscription{b.Subscribe(), b.Subscribe(), b.Subscribe()}

	b.Publish(makeEvent(model.EventStart, ""))

	for i, sub := range subs {
		select {
		case evt := <-sub.Events():
			if evt.Type != model.EventStart {
				t.Errorf("subscriber %d got event type %q, want %q", i, evt.Type, model.EventStart)
			}
		default:
			t.Errorf("subscriber %d received no event", i)
		}
	}
}

func TestEventsDeliveredInPublicationOrder(t *testing.T) {
	b := newTestBroadcaster()
	sub := b.Subscribe()

	names := []string{"Alice", "Bob", "Carol"}
	for _, n := range names {
		b.Publish(makeEvent(model.EventPlayerJoin, n))
	}

	for i, want := range names {
		evt := <-sub.Events()
		if evt.Player != want {
			t.Errorf("event %d: got player %q, want %q", i, evt.Player, want)
		}
	}
}

func TestSubscriberMissesEventsBeforeSubscribe(t *testing.T) {
	b := newTestBroadcaster()

	b.Publish(makeEvent(model.EventPlayerJoin, "Alice"))
	sub := b.Subscribe()

	select {
	case <-sub.Events():
		t.Fatal("new subscriber should not see events published before subscribing")
	default:
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	b := newTestBroadcaster()
	sub := b.Subscribe()

	b.Unsubscribe(sub)

	if _, open := <-sub.Events(); open {
		t.Error("expected channel to be closed after unsubscribe")
	}
	if got := b.SubscriberCount(); got != 0 {
		t.Errorf("got %d subscribers, want 0", got)
	}
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	b := newTestBroadcaster()
	sub := b.Subscribe()

	b.Unsubscribe(sub)
	b.Unsubscribe(sub)

	sub2 := b.Subscribe()
	b.Publish(makeEvent(model.EventStart, ""))
	if _, open := <-sub2.Events(); !open {
		t.Error("remaining subscriber should still receive events")
	}
}

func TestUnsubscribedReceiverGetsNoFurtherEvents(t *testing.T) {
	b := newTestBroadcaster()
	sub := b.Subscribe()
	other := b.Subscribe()

	b.Unsubscribe(sub)
	b.Publish(makeEvent(model.EventPlayerLeft, "Bob"))

	select {
	case evt := <-other.Events():
		if evt.Player != "Bob" {
			t.Errorf("got player %q, want %q", evt.Player, "Bob")
		}
	default:
		t.Error("remaining subscriber received no event")
	}
}

func TestSlowSubscriberDropsEventsWithoutBlocking(t *testing.T) {
	b := newTestBroadcaster()
	slow := b.Subscribe()
	fast := b.Subscribe()

	// Overfill the slow subscriber's buffer. Publish must not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer+10; i++ {
			b.Publish(makeEvent(model.EventPlayerJoin, "Flood"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a full subscriber buffer")
	}

	if got := len(slow.ch); got != subscriberBuffer {
		t.Errorf("slow subscriber buffered %d events, want %d", got, subscriberBuffer)
	}

	// Drain the fast subscriber; it loses events too once its own
	// buffer fills, but never stalls anyone else.
	drained := 0
	for {
		select {
		case <-fast.Events():
			drained++
			continue
		default:
		}
		break
	}
	if drained == 0 {
		t.Error("fast subscriber received no events")
	}
}

func TestCloseClosesAllSubscriberChannels(t *testing.T) {
	b := newTestBroadcaster()
	subs := []*Subscription{b.Subscribe(), b.Subscribe()}

	b.Close()

	for i, sub := range subs {
		if _, open := <-sub.Events(); open {
			t.Errorf("subscriber %d channel still open after close", i)
		}
	}
}

func TestBufferedEventsReadableAfterClose(t *testing.T) {
	b := newTestBroadcaster()
	sub := b.Subscribe()

	b.Publish(makeEvent(model.EventRoomClosed, ""))
	b.Close()

	evt, open := <-sub.Events()
	if !open {
		t.Fatal("buffered event lost on close")
	}
	if evt.Type != model.EventRoomClosed {
		t.Errorf("got event type %q, want %q", evt.Type, model.EventRoomClosed)
	}
	if _, open := <-sub.Events(); open {
		t.Error("expected end-of-stream after draining buffered events")
	}
}

func TestSubscribeAfterCloseReturnsClosedChannel(t *testing.T) {
	b := newTestBroadcaster()
	b.Close()

	sub := b.Subscribe()
	if _, open := <-sub.Events(); open {
		t.Error("subscription on a closed broadcaster should be pre-closed")
	}
}

func TestPublishAfterCloseIsNoop(t *testing.T) {
	b := newTestBroadcaster()
	b.Close()

	// Must not panic on closed channels
	b.Publish(makeEvent(model.EventStart, ""))
}

func TestCloseIsIdempotent(t *testing.T) {
	b := newTestBroadcaster()
	b.Subscribe()
	b.Close()
	b.Close()
}

func TestConcurrentPublishAndSubscribe(t *testing.T) {
	b := newTestBroadcaster()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sub := b.Subscribe()
			for j := 0; j < 50; j++ {
				b.Publish(makeEvent(model.EventPlayerJoin, "p"))
			}
			b.Unsubscribe(sub)
		}()
	}
	wg.Wait()

	if got := b.SubscriberCount(); got != 0 {
		t.Errorf("got %d subscribers after all unsubscribed, want 0", got)
	}
}
