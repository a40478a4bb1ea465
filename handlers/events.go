package handlers

import (
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"trackdrop/websocket"
)

// EventsHandler handles WebSocket connections for library change events
type EventsHandler struct {
	hub websocket.Hub
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(hub websocket.Hub) *EventsHandler {
	return &EventsHandler{
		hub: hub,
	}
}

// HandleWebSocketConnection upgrades the request and subscribes the client to
// library events. Clients refetch the song listing whenever an event arrives.
func (h *EventsHandler) HandleWebSocketConnection(c *gin.Context) {
	upgrader := websocket.GetUpgrader()
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn("WebSocket upgrade failed", "err", err)
		return
	}

	client := websocket.NewClient(h.hub, conn)
	h.hub.RegisterClient(client)

	client.StartPumps()
}
