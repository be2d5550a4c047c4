package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/crownsite/server/internal/collection"
	"github.com/crownsite/server/internal/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for now - can be restricted in production
		return true
	},
}

// WebSocketHandler handles the dashboard's WebSocket connections: topic
// subscriptions for content-change events and the debounced country name
// availability channel.
type WebSocketHandler struct {
	hub       *services.WebSocketHub
	nameCheck *services.NameCheckService
}

// NewWebSocketHandler creates a new WebSocketHandler
func NewWebSocketHandler(hub *services.WebSocketHub, nameCheck *services.NameCheckService) *WebSocketHandler {
	return &WebSocketHandler{
		hub:       hub,
		nameCheck: nameCheck,
	}
}

// HandleConnection upgrades HTTP to WebSocket and manages the connection.
// Each connection owns a debouncer, so a typing burst from one form
// collapses to a single availability probe after the quiet period.
func (h *WebSocketHandler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	clientID := uuid.New().String()
	client := h.hub.NewClient(clientID, conn)
	debouncer := h.nameCheck.NewDebouncer()

	h.hub.Register(client)

	// Start the write pump in a goroutine
	go client.WritePump()

	// Run the read pump (blocks until connection closes)
	client.ReadPump(func(client *services.WSClient, messageType int, data []byte) {
		h.handleMessage(client, debouncer, messageType, data)
	})
	debouncer.Stop()
}

// handleMessage processes incoming WebSocket messages
func (h *WebSocketHandler) handleMessage(client *services.WSClient, debouncer *collection.Debouncer, messageType int, data []byte) {
	if messageType != websocket.TextMessage {
		return
	}

	var msg services.WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Printf("Invalid WebSocket message: %v", err)
		return
	}

	switch msg.Type {
	case services.WSTypeSubscribe:
		if topic, ok := topicFromPayload(msg.Payload); ok {
			h.hub.Subscribe(client, topic)
		}

	case services.WSTypeUnsubscribe:
		if topic, ok := topicFromPayload(msg.Payload); ok {
			h.hub.Unsubscribe(client, topic)
		}

	case services.WSTypeNameCheck:
		h.handleNameCheck(client, debouncer, msg.Payload)

	case services.WSTypePing:
		client.SendMessage(services.WSMessage{Type: services.WSTypePong})

	default:
		log.Printf("Unknown WebSocket message type: %s", msg.Type)
	}
}

// handleNameCheck schedules a debounced availability probe. Only the
// latest name typed before the quiet period elapses reaches the store.
func (h *WebSocketHandler) handleNameCheck(client *services.WSClient, debouncer *collection.Debouncer, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	var req services.NameCheckPayload
	if err := json.Unmarshal(raw, &req); err != nil {
		return
	}

	excludeID := req.ExcludeID
	debouncer.Trigger(req.Name, func(name string) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		available, err := h.nameCheck.Check(ctx, name, excludeID)
		if err != nil {
			client.SendMessage(services.WSMessage{
				Type:    services.WSTypeError,
				Payload: map[string]string{"error": "name check failed"},
			})
			return
		}

		client.SendMessage(services.WSMessage{
			Type: services.WSTypeNameCheckResult,
			Payload: services.NameCheckPayload{
				Name:      name,
				ExcludeID: excludeID,
				Available: available,
			},
		})
	})
}

func topicFromPayload(payload interface{}) (string, bool) {
	if topic, ok := payload.(string); ok {
		return topic, true
	}
	if m, ok := payload.(map[string]interface{}); ok {
		if topic, ok := m["topic"].(string); ok {
			return topic, true
		}
	}
	return "", false
}

// GetHub returns the WebSocket hub (for other services to send notifications)
func (h *WebSocketHandler) GetHub() *services.WebSocketHub {
	return h.hub
}
