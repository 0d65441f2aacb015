package services

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"cat-server/cache"
	"cat-server/entities"
	"cat-server/repositories"
	"cat-server/ws"
)

// AuditRecorder buffers audit events and bulk-inserts them on a timer.
// Cat lifecycle events are also fanned out to websocket subscribers as they
// happen.
type AuditRecorder struct {
	buffer   *cache.EventBuffer
	repo     repositories.AuditEventRepository
	manager  *ws.Manager
	interval time.Duration
	done     chan struct{}
	stopOnce sync.Once
}

func NewAuditRecorder(repo repositories.AuditEventRepository, manager *ws.Manager, interval time.Duration) *AuditRecorder {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &AuditRecorder{
		buffer:   cache.NewEventBuffer(),
		repo:     repo,
		manager:  manager,
		interval: interval,
		done:     make(chan struct{}),
	}
}

func (ar *AuditRecorder) Start() {
	go func() {
		ticker := time.NewTicker(ar.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				ar.Flush()
			case <-ar.done:
				return
			}
		}
	}()
}

// Stop ends the flush loop and writes out whatever is still buffered.
func (ar *AuditRecorder) Stop() {
	ar.stopOnce.Do(func() {
		close(ar.done)
		ar.Flush()
	})
}

// Record buffers one event and broadcasts cat events to subscribers.
func (ar *AuditRecorder) Record(actorID, action, resource, resourceID string) {
	event := entities.AuditEvent{
		ActorID:    actorID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	ar.buffer.Add(event)

	if ar.manager != nil && resource == "cat" {
		payload, err := json.Marshal(map[string]interface{}{
			"type":      "cat_event",
			"action":    action,
			"cat_id":    resourceID,
			"actor_id":  actorID,
			"timestamp": event.CreatedAt,
		})
		if err == nil {
			ar.manager.Broadcast(payload)
		}
	}
}

// Flush drains the buffer into the database in one insert.
func (ar *AuditRecorder) Flush() {
	events := ar.buffer.Drain()
	if len(events) == 0 {
		return
	}
	if err := ar.repo.BulkInsert(events); err != nil {
		log.Printf("Error bulk inserting %d audit events: %v", len(events), err)
		return
	}
	log.Printf("Inserted %d audit events", len(events))
}

// Stats exposes buffer counters for the admin endpoints.
func (ar *AuditRecorder) Stats() map[string]interface{} {
	return ar.buffer.Stats()
}
