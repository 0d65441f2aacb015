package handlers

import (
	"log"
	"net/http"

	"cat-server/ws"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// WSHandler groups dependencies for the event-feed websocket.
type WSHandler struct {
	mgr *ws.Manager
}

func NewWSHandler(mgr *ws.Manager) *WSHandler {
	return &WSHandler{mgr: mgr}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// HandleEventFeed upgrades to websocket and streams cat lifecycle events to
// the client until it disconnects.
// GET /ws?id=<client_id>
func (h *WSHandler) HandleEventFeed(c *gin.Context) {
	clientID := c.Query("id")
	if clientID == "" {
		clientID = uuid.New().String()
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	h.mgr.Register(clientID, conn)
	log.Printf("subscriber connected: %s", clientID)

	// Ensure cleanup on exit
	defer func() {
		h.mgr.Unregister(clientID)
		log.Printf("subscriber disconnected: %s", clientID)
	}()

	// The feed is outbound only; keep reading to notice the close frame.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("subscriber %s closed connection", clientID)
			} else {
				log.Printf("read error from %s: %v", clientID, err)
			}
			return
		}
	}
}

// GetConnectedClients GET /api/v1/events/connected
func (h *WSHandler) GetConnectedClients(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"clients": h.mgr.List(), "count": len(h.mgr.List())})
}
