package engine

import (
	"github.com/slgem/slgem/events"
)

// PlainSubscription delivers bare events without priority metadata.
//
// The facade interposes one forwarding goroutine per adapter that drains the
// prioritized queue and re-emits events on a second channel, keeping the
// priority concept internal to the scheduling core. Forwarding preserves
// arrival order and never filters. The goroutine's lifetime is tied to the
// underlying subscription: Close ends it and closes the outbound channel
type PlainSubscription struct {
	sub *events.Subscription
	out chan events.Event
}

// SubscribePlain registers a subscriber on topic that sees events without
// their priority tags
func (e *Engine) SubscribePlain(topic string) *PlainSubscription {
	sub := e.bus.Subscribe(topic)
	ps := &PlainSubscription{
		sub: sub,
		out: make(chan events.Event, events.SubscriptionBuffer),
	}
	go ps.forward()
	return ps
}

func (ps *PlainSubscription) forward() {
	defer close(ps.out)
	for {
		pe, ok := ps.sub.Recv()
		if !ok {
			return
		}
		select {
		case ps.out <- pe.Event:
		case <-ps.sub.Done():
			// Consumer is gone; stop rather than block forever
			return
		}
	}
}

// Recv blocks until an event arrives or the subscription is closed
func (ps *PlainSubscription) Recv() (events.Event, bool) {
	ev, ok := <-ps.out
	return ev, ok
}

// TryRecv returns the next pending event without blocking
func (ps *PlainSubscription) TryRecv() (events.Event, bool) {
	select {
	case ev, ok := <-ps.out:
		return ev, ok
	default:
		return events.Event{}, false
	}
}

// Close tears down the subscription and its forwarding goroutine. Idempotent
func (ps *PlainSubscription) Close() {
	ps.sub.Close()
}
