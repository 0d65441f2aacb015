package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

func dialTestClient(t *testing.T, m *Manager, clientID string) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		m.Register(clientID, conn)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestBroadcastReachesSubscribers(t *testing.T) {
	m := NewManager()
	client := dialTestClient(t, m, "client-1")

	// Wait for the server side to register
	deadline := time.Now().Add(time.Second)
	for !m.IsConnected("client-1") && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	require.True(t, m.IsConnected("client-1"))

	m.Broadcast([]byte(`{"type":"cat_event"}`))

	client.SetReadDeadline(time.Now().Add(time.Second))
	_, payload, err := client.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(payload), "cat_event")
}

func TestBroadcastConcurrentWriters(t *testing.T) {
	m := NewManager()
	client := dialTestClient(t, m, "client-1")

	deadline := time.Now().Add(time.Second)
	for !m.IsConnected("client-1") && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	require.True(t, m.IsConnected("client-1"))

	// Drain so large writes never block on a full buffer
	go func() {
		for {
			if _, _, err := client.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// Mutations broadcast from their own request goroutines; writes to one
	// connection must be serialized or gorilla panics.
	payload := []byte(strings.Repeat("x", 64*1024))
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				m.Broadcast(payload)
			}
		}()
	}
	wg.Wait()

	assert.True(t, m.IsConnected("client-1"))
}

func TestUnregisterClosesConnection(t *testing.T) {
	m := NewManager()
	dialTestClient(t, m, "client-1")

	deadline := time.Now().Add(time.Second)
	for !m.IsConnected("client-1") && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	require.True(t, m.IsConnected("client-1"))

	m.Unregister("client-1")
	assert.False(t, m.IsConnected("client-1"))
	assert.Empty(t, m.List())
}
