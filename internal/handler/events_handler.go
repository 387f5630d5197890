package handler

import (
	"log"
	"net/http"

	"github.com/Arslan-Alizahi/smarttales-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// EventsHandler streams change events to connected clients over a websocket
// so dashboards refresh without polling.
type EventsHandler struct {
	notifier *service.Notifier
	upgrader websocket.Upgrader
}

func NewEventsHandler(notifier *service.Notifier) *EventsHandler {
	return &EventsHandler{
		notifier: notifier,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins for now
			},
		},
	}
}

func (h *EventsHandler) HandleWebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade websocket: %v", err)
		return
	}
	defer conn.Close()

	subID, events := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(subID)

	clientClosed := make(chan struct{})
	go func() {
		defer close(clientClosed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				log.Printf("Failed to write websocket event: %v", err)
				return
			}
		case <-clientClosed:
			return
		}
	}
}
