package services

import (
	"sync"
	"testing"
	"time"

	"cat-server/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAuditRepo struct {
	mu       sync.Mutex
	inserted []entities.AuditEvent
}

func (m *mockAuditRepo) BulkInsert(events []entities.AuditEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inserted = append(m.inserted, events...)
	return nil
}

func (m *mockAuditRepo) GetRecent(limit int) ([]entities.AuditEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inserted, nil
}

func (m *mockAuditRepo) insertedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.inserted)
}

func TestRecordBuffersUntilFlush(t *testing.T) {
	repo := &mockAuditRepo{}
	recorder := NewAuditRecorder(repo, nil, time.Hour)

	recorder.Record("alice-id", "cat.created", "cat", "cat-1")
	recorder.Record("alice-id", "cat.deleted", "cat", "cat-1")
	assert.Equal(t, 0, repo.insertedCount())

	recorder.Flush()
	require.Equal(t, 2, repo.insertedCount())
	assert.Equal(t, "cat.created", repo.inserted[0].Action)
	assert.Equal(t, "alice-id", repo.inserted[0].ActorID)

	// Nothing left to write
	recorder.Flush()
	assert.Equal(t, 2, repo.insertedCount())
}

func TestStopFlushesRemainingEvents(t *testing.T) {
	repo := &mockAuditRepo{}
	recorder := NewAuditRecorder(repo, nil, time.Hour)
	recorder.Start()

	recorder.Record("alice-id", "user.created", "user", "alice-id")
	recorder.Stop()
	assert.Equal(t, 1, repo.insertedCount())

	// Stop is idempotent
	recorder.Stop()
	assert.Equal(t, 1, repo.insertedCount())
}

func TestStatsTracksBufferedActions(t *testing.T) {
	recorder := NewAuditRecorder(&mockAuditRepo{}, nil, time.Hour)

	recorder.Record("alice-id", "cat.created", "cat", "cat-1")
	recorder.Record("alice-id", "cat.created", "cat", "cat-2")

	stats := recorder.Stats()
	assert.Equal(t, 2, stats["pending_events"])
	byAction, ok := stats["by_action"].(map[string]int)
	require.True(t, ok)
	assert.Equal(t, 2, byAction["cat.created"])
}
