package server

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/NoreeIsmael/Next-Project/internal/model"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// handleWebSocket upgrades to WebSocket and streams live entries to the
// client. An optional severity parameter gates the stream the same way the
// retrieval endpoint does; without one, every entry is sent.
func (s *Server) handleWebSocket(c *gin.Context) {
	gate := model.SeverityCritical
	if raw := c.Query("severity"); raw != "" {
		sev, err := model.ParseSeverity(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}
		gate = sev
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	entries := s.hub.Subscribe()

	// Read pump — detect client disconnect.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				conn.Close()
				return
			}
		}
	}()

	// Write pump — send entries as JSON.
	for entry := range entries {
		if !entry.Severity.Passes(gate) {
			continue
		}
		if err := conn.WriteJSON(entry); err != nil {
			log.Printf("websocket write failed: %v", err)
			return
		}
	}
}
