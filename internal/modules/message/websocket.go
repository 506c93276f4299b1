package message

import (
	"net/http"
	"time"

	"hotel/internal/pkg/jwt"
	"hotel/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Event is what the hub pushes to an online user.
type Event struct {
	Type    string           `json:"type"`
	Message *MessageResponse `json:"message,omitempty"`
}

const (
	EventNewMessage = "new_message"
	EventPong       = "pong"
)

// WSHandler upgrades authenticated users to a push-only websocket.
type WSHandler struct {
	hub        *Hub
	jwtService *jwt.Service
	loggerf    func(format string, args ...interface{})
}

func NewWSHandler(hub *Hub, jwtService *jwt.Service, loggerf func(format string, args ...interface{})) *WSHandler {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &WSHandler{hub: hub, jwtService: jwtService, loggerf: loggerf}
}

// HandleWebSocket serves GET /ws/messages?token=JWT. Browsers cannot set
// headers on a websocket handshake, so the token travels in the query.
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "AUTH_TOKEN_MISSING", "Token is required. Use ?token=YOUR_JWT_TOKEN")
		return
	}
	claims, err := h.jwtService.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.loggerf("level=warn msg=websocket upgrade failed user_id=%d err=%v", claims.UserID, err)
		return
	}

	cl := h.hub.Register(claims.UserID, conn)
	h.loggerf("level=info msg=websocket connected user_id=%d", claims.UserID)
	defer func() {
		h.hub.Unregister(claims.UserID, cl)
		h.loggerf("level=info msg=websocket disconnected user_id=%d", claims.UserID)
	}()

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go pingLoop(cl, done)

	h.readLoop(cl, claims.UserID)
}

func pingLoop(cl *client, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := cl.ping(); err != nil {
				return
			}
		}
	}
}

// readLoop keeps the connection alive; clients only ever send pings.
func (h *WSHandler) readLoop(cl *client, userID int64) {
	for {
		var msg struct {
			Type string `json:"type"`
		}
		if err := cl.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.loggerf("level=warn msg=websocket read error user_id=%d err=%v", userID, err)
			}
			return
		}
		if msg.Type == "ping" {
			_ = cl.writeJSON(Event{Type: EventPong})
		}
	}
}
