package gateway

import (
	"log"
	"sync"
)

// subscriptionBuffer is the per-subscription event buffer size. A full
// buffer means the consumer has stalled; further events for that
// subscription are dropped rather than blocking writers.
const subscriptionBuffer = 128

// Subscription is one live change feed for a single family. Events
// arrive on Events() in publish order. Close tears the feed down and
// closes the channel.
type Subscription struct {
	familyID string

	mu     sync.Mutex
	ch     chan ChangeEvent
	closed bool

	unregister func()
}

// Events returns the channel change events are delivered on. The
// channel is closed when the subscription is closed.
func (s *Subscription) Events() <-chan ChangeEvent {
	return s.ch
}

// Close tears down the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.unregister()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}

// send delivers an event to the subscription without blocking. Events
// are dropped when the consumer is not keeping up.
func (s *Subscription) send(ev ChangeEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.ch <- ev:
	default:
		log.Printf("Dropping change event for family %s: subscriber buffer full", s.familyID)
	}
}

// Bus fans change events out to the subscriptions of each family. The
// SQL gateway publishes here after every successful write; fakes may
// publish directly.
type Bus struct {
	mu   sync.Mutex
	subs map[string][]*Subscription
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{subs: make(map[string][]*Subscription)}
}

// Subscribe registers a new subscription for familyID
func (b *Bus) Subscribe(familyID string) *Subscription {
	sub := &Subscription{
		familyID: familyID,
		ch:       make(chan ChangeEvent, subscriptionBuffer),
	}
	sub.unregister = func() { b.remove(familyID, sub) }

	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[familyID] = append(b.subs[familyID], sub)
	return sub
}

// remove drops a subscription from the family's subscriber list
func (b *Bus) remove(familyID string, sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.subs[familyID]
	for i, s := range list {
		if s == sub {
			b.subs[familyID] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(b.subs[familyID]) == 0 {
		delete(b.subs, familyID)
	}
}

// Publish delivers an event to every subscription of its family. The
// subscriber list is copied so a slow consumer cannot hold the bus lock.
func (b *Bus) Publish(ev ChangeEvent) {
	b.mu.Lock()
	list := make([]*Subscription, len(b.subs[ev.FamilyID]))
	copy(list, b.subs[ev.FamilyID])
	b.mu.Unlock()

	for _, sub := range list {
		sub.send(ev)
	}
}
