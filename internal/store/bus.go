package store

import (
	"sync"
	"time"
)

// EventType identifies what changed in the store.
type EventType string

const (
	// EventSheetReplaced fires when a sheet's row collection is replaced.
	EventSheetReplaced EventType = "sheet_replaced"
	// EventValidationCompleted fires after issues are recomputed.
	EventValidationCompleted EventType = "validation_completed"
	// EventRuleAdded fires when a rule is appended.
	EventRuleAdded EventType = "rule_added"
	// EventWeightsReplaced fires when the weight profile changes.
	EventWeightsReplaced EventType = "weights_replaced"
)

// Event carries a store change notification.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Sheet     string
	Detail    map[string]any
}

// Subscriber receives events.
type Subscriber func(Event)

// Bus is a non-blocking publish/subscribe fan-out. Delivery is asynchronous
// through buffered channels; a subscriber that falls behind loses events
// rather than stalling the publisher.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[EventType][]chan Event
	bufferSize  int
}

// NewBus creates a bus with the given per-subscriber buffer size.
func NewBus(bufferSize int) *Bus {
	if bufferSize <= 0 {
		bufferSize = 64
	}
	return &Bus{
		subscribers: make(map[EventType][]chan Event),
		bufferSize:  bufferSize,
	}
}

// Subscribe registers fn for one event type and returns an unsubscribe
// function. The subscriber runs on its own goroutine; panics inside it are
// contained so they cannot take the bus down.
func (b *Bus) Subscribe(eventType EventType, fn Subscriber) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, b.bufferSize)
	b.subscribers[eventType] = append(b.subscribers[eventType], ch)

	go func() {
		for event := range ch {
			func() {
				defer func() { _ = recover() }()
				fn(event)
			}()
		}
	}()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.subscribers[eventType]
		for i, c := range subs {
			if c == ch {
				b.subscribers[eventType] = append(subs[:i], subs[i+1:]...)
				close(ch)
				return
			}
		}
	}
}

// Publish delivers an event to all subscribers of its type. Full channels
// drop the event.
func (b *Bus) Publish(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subscribers[event.Type] {
		select {
		case ch <- event:
		default:
		}
	}
}
