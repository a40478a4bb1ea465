package websocket

import (
	"time"

	"github.com/charmbracelet/log"

	"trackdrop/types"
)

// Hub interface defines the methods for managing WebSocket connections
type Hub interface {
	Run()
	BroadcastAdded(entry *types.Song)
	RegisterClient(client *Client)
	UnregisterClient(client *Client)
}

// hub maintains the set of connected clients and fans library events out to
// all of them.
type hub struct {
	// Registered clients
	clients map[*Client]bool

	// Broadcast channel for library change events
	broadcast chan types.LibraryEvent

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client
}

// NewHub creates a new WebSocket hub
func NewHub() Hub {
	return &hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan types.LibraryEvent),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's main event loop
func (h *hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			log.Debug("WebSocket client connected", "clients", len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			log.Debug("WebSocket client disconnected", "clients", len(h.clients))

		case event := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- event:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// BroadcastAdded notifies all connected clients that a song was added.
func (h *hub) BroadcastAdded(entry *types.Song) {
	event := types.LibraryEvent{
		Type:      "added",
		Entry:     entry,
		Timestamp: time.Now(),
	}

	select {
	case h.broadcast <- event:
	default:
		log.Warn("WebSocket broadcast channel full, dropping library event")
	}
}

// RegisterClient registers a new client with the hub
func (h *hub) RegisterClient(client *Client) {
	h.register <- client
}

// UnregisterClient unregisters a client from the hub
func (h *hub) UnregisterClient(client *Client) {
	h.unregister <- client
}
