// Package eventbus is a small in-memory publish/subscribe bus. The API client
// publishes session expiry on it and the session holder listens.
package eventbus

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// TopicSessionExpired is published once per 401 response. It carries no data.
const TopicSessionExpired = "session.expired"

// Event is one published message.
type Event struct {
	Topic string
	Data  any
}

type subscriber struct {
	ch     chan Event
	mu     sync.Mutex
	closed bool
}

// send delivers e, waiting at most timeout for buffer space. A zero timeout
// never blocks.
func (s *subscriber) send(e Event, timeout time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	if timeout <= 0 {
		select {
		case s.ch <- e:
			return true
		default:
			return false
		}
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case s.ch <- e:
		return true
	case <-timer.C:
		return false
	}
}

func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}

// EventBus routes events by topic. Subscription patterns may use "*" for a
// whole dot-separated component, or alone to match every topic.
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[string]map[uint64]*subscriber // pattern -> id -> subscriber
	counter     atomic.Uint64
}

// New returns an empty bus.
func New() *EventBus {
	return &EventBus{
		subscribers: make(map[string]map[uint64]*subscriber),
	}
}

// Subscribe registers a listener on pattern. It returns the receive channel
// and an unsubscribe function that closes the channel; calling it more than
// once is harmless.
func (bus *EventBus) Subscribe(pattern string, bufferSize int) (<-chan Event, func()) {
	id := bus.counter.Add(1)
	sub := &subscriber{ch: make(chan Event, bufferSize)}

	bus.mu.Lock()
	if _, ok := bus.subscribers[pattern]; !ok {
		bus.subscribers[pattern] = make(map[uint64]*subscriber)
	}
	bus.subscribers[pattern][id] = sub
	bus.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			bus.mu.Lock()
			defer bus.mu.Unlock()
			if subs, ok := bus.subscribers[pattern]; ok {
				delete(subs, id)
				if len(subs) == 0 {
					delete(bus.subscribers, pattern)
				}
			}
			sub.close()
		})
	}
	return sub.ch, unsubscribe
}

// Publish delivers an event to every matching subscriber and returns how many
// received it. Slow subscribers are skipped once timeout elapses.
func (bus *EventBus) Publish(topic string, data any, timeout time.Duration) int {
	event := Event{Topic: topic, Data: data}

	bus.mu.RLock()
	var targets []*subscriber
	for pattern, subs := range bus.subscribers {
		if !matchTopic(pattern, topic) {
			continue
		}
		for _, sub := range subs {
			targets = append(targets, sub)
		}
	}
	bus.mu.RUnlock()

	delivered := 0
	for _, sub := range targets {
		if sub.send(event, timeout) {
			delivered++
		}
	}
	return delivered
}

// SubscriberCount returns the number of listeners registered on exactly pattern.
func (bus *EventBus) SubscriberCount(pattern string) int {
	bus.mu.RLock()
	defer bus.mu.RUnlock()
	return len(bus.subscribers[pattern])
}

// Shutdown closes every subscriber channel and empties the bus.
func (bus *EventBus) Shutdown() {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	for _, subs := range bus.subscribers {
		for _, sub := range subs {
			sub.close()
		}
	}
	bus.subscribers = make(map[string]map[uint64]*subscriber)
}

func matchTopic(pattern, topic string) bool {
	if pattern == "" || topic == "" {
		return false
	}
	if pattern == "*" || pattern == topic {
		return true
	}
	patternParts := strings.Split(pattern, ".")
	topicParts := strings.Split(topic, ".")
	if len(patternParts) != len(topicParts) {
		return false
	}
	for i := range patternParts {
		if patternParts[i] != "*" && patternParts[i] != topicParts[i] {
			return false
		}
	}
	return true
}
