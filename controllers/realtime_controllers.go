package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/gotogether/server/middlewares"
	"github.com/gotogether/server/realtime"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type RealtimeController struct {
	Hub *realtime.Hub
}

func NewRealtimeController(hub *realtime.Hub) *RealtimeController {
	return &RealtimeController{Hub: hub}
}

// NotificationSocket -> GET /ws. Holds the connection open and pushes
// the caller's notifications as they are created.
func (rc *RealtimeController) NotificationSocket(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	rc.Hub.Register(userID, ws)

	// Drain client frames until the peer goes away.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	rc.Hub.Unregister(userID, ws)
}
