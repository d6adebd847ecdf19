package handlers

import (
	"log"
	"net/http"
	"slices"

	"trivia/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	hub      *services.Hub
	upgrader websocket.Upgrader
}

// NewWSHandler accepts upgrades from the given origins; "*" allows any.
func NewWSHandler(hub *services.Hub, origins []string) *WSHandler {
	allowAll := len(origins) == 0 || slices.Contains(origins, "*")
	return &WSHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowAll || origin == "" || slices.Contains(origins, origin)
			},
		},
	}
}

// Subscribe upgrades the request and streams change events for :topic.
func (h *WSHandler) Subscribe(c *gin.Context) {
	topic := c.Param("topic")
	if !services.IsTopic(topic) {
		abortWithStatus(c, http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		log.Printf("websocket upgrade for topic %s failed: %v", topic, err)
		return
	}

	if h.hub.RegisterClient(conn, topic) == nil {
		log.Printf("websocket client for topic %s rejected: hub stopped", topic)
	}
}
