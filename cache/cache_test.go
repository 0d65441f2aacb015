package cache

import (
	"sync"
	"testing"

	"cat-server/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndDrain(t *testing.T) {
	b := NewEventBuffer()
	b.Add(entities.AuditEvent{Action: "cat.created", Resource: "cat", ResourceID: "cat-1"})
	b.Add(entities.AuditEvent{Action: "cat.deleted", Resource: "cat", ResourceID: "cat-1"})

	require.Equal(t, 2, b.Len())

	drained := b.Drain()
	require.Len(t, drained, 2)
	assert.Equal(t, "cat.created", drained[0].Action)
	assert.Equal(t, 0, b.Len())

	// Draining again yields nothing
	assert.Empty(t, b.Drain())
}

func TestStatsCountsByAction(t *testing.T) {
	b := NewEventBuffer()
	b.Add(entities.AuditEvent{Action: "cat.created"})
	b.Add(entities.AuditEvent{Action: "cat.created"})
	b.Add(entities.AuditEvent{Action: "user.deleted"})

	stats := b.Stats()
	assert.Equal(t, 3, stats["pending_events"])
	byAction := stats["by_action"].(map[string]int)
	assert.Equal(t, 2, byAction["cat.created"])
	assert.Equal(t, 1, byAction["user.deleted"])
}

func TestConcurrentAdds(t *testing.T) {
	b := NewEventBuffer()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Add(entities.AuditEvent{Action: "cat.created"})
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, b.Len())
}
