package ws

import (
	"sync"

	"github.com/gorilla/websocket"
)

// subscriber pairs a connection with a write lock. gorilla/websocket allows
// only one concurrent writer per connection, and Broadcast runs on whatever
// goroutine triggered the event.
type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *subscriber) write(payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteMessage(websocket.TextMessage, payload)
}

// Manager keeps track of active event-feed subscriber connections.
type Manager struct {
	mu          sync.RWMutex
	connections map[string]*subscriber // clientID -> subscriber
}

func NewManager() *Manager {
	return &Manager{connections: make(map[string]*subscriber)}
}

// Register registers a subscriber connection, replacing any existing one.
func (m *Manager) Register(clientID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.connections[clientID]; ok && old.conn != conn {
		// close old connection to avoid leaks
		_ = old.conn.Close()
	}
	m.connections[clientID] = &subscriber{conn: conn}
}

// Unregister removes a subscriber connection.
func (m *Manager) Unregister(clientID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sub, ok := m.connections[clientID]; ok {
		_ = sub.conn.Close()
		delete(m.connections, clientID)
	}
}

// Broadcast sends a text message to every subscriber. Connections that fail
// to accept the write are dropped.
func (m *Manager) Broadcast(payload []byte) {
	m.mu.RLock()
	subs := make(map[string]*subscriber, len(m.connections))
	for id, sub := range m.connections {
		subs[id] = sub
	}
	m.mu.RUnlock()

	var dead []string
	for id, sub := range subs {
		if err := sub.write(payload); err != nil {
			dead = append(dead, id)
		}
	}
	for _, id := range dead {
		m.Unregister(id)
	}
}

// IsConnected returns whether a subscriber is currently connected.
func (m *Manager) IsConnected(clientID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.connections[clientID]
	return ok
}

// List returns a copy of current connected client IDs.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.connections))
	for id := range m.connections {
		ids = append(ids, id)
	}
	return ids
}
