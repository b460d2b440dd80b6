package events

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// SubscriptionBuffer is the pending-event capacity of every subscriber queue.
// Topics are low-volume control and telemetry channels; a full queue applies
// backpressure to the publisher rather than dropping events
const SubscriptionBuffer = 100

// Well-known topics
const (
	// TopicEngine carries lifecycle and simulation events consumed by the game loop
	TopicEngine = "engine"
	// TopicError carries cross-cutting error reports published via Bus.PublishError
	TopicError = "error"
)

// ErrSubscriptionClosed marks a delivery attempt to a subscription whose
// receiver has been closed
var ErrSubscriptionClosed = errors.New("subscription closed")

// DeliveryError reports the subscribers that missed an event during Publish.
// Delivery to live subscribers still happened; the error names only the dead ones
type DeliveryError struct {
	Topic       string
	Subscribers []uint64
}

func (e *DeliveryError) Error() string {
	ids := make([]string, len(e.Subscribers))
	for i, id := range e.Subscribers {
		ids[i] = fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("topic %q: delivery failed to closed subscriber(s) %s",
		e.Topic, strings.Join(ids, ", "))
}

func (e *DeliveryError) Unwrap() error {
	return ErrSubscriptionClosed
}

// Subscription is the receiving end of one subscriber queue.
// Events arrive in strict publish order; Close tears the queue down and
// unblocks any publisher currently waiting on it
type Subscription struct {
	id    uint64
	topic string
	ch    chan PrioritizedEvent
	done  chan struct{}
	once  sync.Once
}

// ID returns the bus-unique subscriber id
func (s *Subscription) ID() uint64 {
	return s.id
}

// Topic returns the topic this subscription was registered under
func (s *Subscription) Topic() string {
	return s.topic
}

// Recv blocks until an event arrives or the subscription is closed.
// The second return is false only after Close
func (s *Subscription) Recv() (PrioritizedEvent, bool) {
	select {
	case pe := <-s.ch:
		return pe, true
	case <-s.done:
		return PrioritizedEvent{}, false
	}
}

// TryRecv returns the next pending event without blocking.
// The second return is false when the queue is empty or closed
func (s *Subscription) TryRecv() (PrioritizedEvent, bool) {
	select {
	case <-s.done:
		return PrioritizedEvent{}, false
	default:
	}
	select {
	case pe := <-s.ch:
		return pe, true
	default:
		return PrioritizedEvent{}, false
	}
}

// Done returns a channel closed when the subscription is closed.
// Used by forwarding adapters to tie goroutine lifetime to the subscription
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Close tears down the subscription. Idempotent.
// Pending undelivered events are discarded; subsequent publishes to the topic
// report this subscriber in a DeliveryError until the registry prunes it
func (s *Subscription) Close() {
	s.once.Do(func() {
		close(s.done)
	})
}

func (s *Subscription) closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Bus is a multi-topic publish/subscribe registry with priority-tagged fan-out.
// One instance is created per engine and threaded explicitly into every
// component that publishes or subscribes; there is no package-level bus.
//
// Thread-Safety:
//   - Subscribe/Publish: safe from any goroutine
//   - The registry lock covers lookup and mutation only, never a queue send
type Bus struct {
	mu     sync.Mutex
	topics map[string][]*Subscription
	nextID uint64
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{
		topics: make(map[string][]*Subscription),
	}
}

// Subscribe registers a new bounded subscriber queue under topic and returns
// its receiving end. The queue starts empty: events published before this
// call are never replayed
func (b *Bus) Subscribe(topic string) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &Subscription{
		id:    b.nextID,
		topic: topic,
		ch:    make(chan PrioritizedEvent, SubscriptionBuffer),
		done:  make(chan struct{}),
	}
	b.topics[topic] = append(b.topics[topic], sub)
	return sub
}

// Publish resolves the event's default priority and fans it out to every
// current subscriber of topic. See PublishWith
func (b *Bus) Publish(topic string, ev Event) error {
	return b.PublishWith(topic, ev.Type.DefaultPriority(), ev)
}

// PublishWith fans the event out at an explicit priority.
//
// Each live subscriber receives its own copy in publish order; a full queue
// blocks the caller until that subscriber drains (backpressure is per
// subscriber, per topic). A topic with no subscribers discards the event.
//
// Delivery failures are isolated: a closed subscription never prevents
// delivery to the others. When at least one subscriber was closed the call
// returns a *DeliveryError naming exactly those subscribers, and they are
// pruned from the registry
func (b *Bus) PublishWith(topic string, pri Priority, ev Event) error {
	b.mu.Lock()
	subs := b.topics[topic]
	snapshot := make([]*Subscription, len(subs))
	copy(snapshot, subs)
	b.mu.Unlock()

	if len(snapshot) == 0 {
		return nil
	}

	pe := PrioritizedEvent{Priority: pri, Event: ev}

	var dead []uint64
	for _, sub := range snapshot {
		// An already-closed subscription must never accept the event: with
		// buffer space left the send case would also be ready and select
		// could pick it, hiding the dead subscriber from the caller
		if sub.closed() {
			dead = append(dead, sub.id)
			continue
		}
		select {
		case sub.ch <- pe:
		case <-sub.done:
			dead = append(dead, sub.id)
		}
	}

	if dead == nil {
		return nil
	}
	b.prune(topic)
	return &DeliveryError{Topic: topic, Subscribers: dead}
}

// PublishError publishes message as a High-priority log event on TopicError.
// Convenience path for cross-cutting error reporting from any component
func (b *Bus) PublishError(message string) error {
	return b.PublishWith(TopicError, PriorityHigh, Event{
		Type:    EventLog,
		Payload: &LogPayload{Message: message, Level: LogError},
	})
}

// SubscriberCount returns the number of live subscriptions on topic
func (b *Bus) SubscriberCount(topic string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for _, sub := range b.topics[topic] {
		if !sub.closed() {
			n++
		}
	}
	return n
}

// prune drops closed subscriptions from the topic's subscriber list
func (b *Bus) prune(topic string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.topics[topic]
	live := subs[:0]
	for _, sub := range subs {
		if !sub.closed() {
			live = append(live, sub)
		}
	}
	for i := len(live); i < len(subs); i++ {
		subs[i] = nil
	}
	b.topics[topic] = live
}
