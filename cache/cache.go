package cache

import (
	"cat-server/entities"
	"sync"
	"time"
)

// EventBuffer accumulates audit events in memory between flushes so each
// request stays a single database round trip. The buffer is the only shared
// mutable state in the process besides the websocket manager.
type EventBuffer struct {
	mu        sync.RWMutex
	events    []entities.AuditEvent
	byAction  map[string]int
	lastFlush time.Time
}

func NewEventBuffer() *EventBuffer {
	return &EventBuffer{
		byAction:  make(map[string]int),
		lastFlush: time.Now(),
	}
}

// Add appends an event to the buffer.
func (b *EventBuffer) Add(event entities.AuditEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.events = append(b.events, event)
	b.byAction[event.Action]++
}

// Drain returns every buffered event and empties the buffer.
func (b *EventBuffer) Drain() []entities.AuditEvent {
	b.mu.Lock()
	defer b.mu.Unlock()

	drained := b.events
	b.events = nil
	b.byAction = make(map[string]int)
	b.lastFlush = time.Now()
	return drained
}

// Len returns the number of buffered events.
func (b *EventBuffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.events)
}

// Stats returns counters about the current buffer.
func (b *EventBuffer) Stats() map[string]interface{} {
	b.mu.RLock()
	defer b.mu.RUnlock()

	byAction := make(map[string]int, len(b.byAction))
	for action, n := range b.byAction {
		byAction[action] = n
	}

	return map[string]interface{}{
		"pending_events": len(b.events),
		"by_action":      byAction,
		"last_flush":     b.lastFlush.UTC().Format(time.RFC3339),
	}
}
