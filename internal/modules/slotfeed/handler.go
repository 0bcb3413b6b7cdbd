package slotfeed

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: restrict origins once the frontend domains are fixed.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws/mechanics/:id/slots", h.HandleWebSocket)
}

// HandleWebSocket upgrades the connection and streams slot events for one
// mechanic until the client goes away. The feed is read-only; inbound
// frames are drained and discarded.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	mechanicID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mechanic id"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithError(err).Warn("slotfeed: websocket upgrade failed")
		return
	}

	h.hub.Subscribe(mechanicID, conn)
	defer h.hub.Unsubscribe(mechanicID, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
