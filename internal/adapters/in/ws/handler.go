package ws

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browsers connect from the app's own origin; cross-origin clients are
	// authenticated at the REST layer, not here.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Handler upgrades HTTP requests to websocket connections and keeps them
// subscribed to the hub until they disconnect.
type Handler struct {
	hub    *Hub
	logger *zap.Logger
}

// NewHandler creates a websocket handler bound to the hub.
func NewHandler(hub *Hub, logger *zap.Logger) *Handler {
	return &Handler{hub: hub, logger: logger}
}

// Serve handles GET /ws. The connection is subscribed for broadcasts; the
// read loop exists only to detect the disconnect, since clients never send
// application messages.
func (h *Handler) Serve(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return err
	}

	if !h.hub.Subscribe(conn) {
		_ = conn.Close()
		return nil
	}

	go h.readUntilClosed(conn)
	return nil
}

func (h *Handler) readUntilClosed(conn *websocket.Conn) {
	defer func() {
		h.hub.Unsubscribe(conn)
		_ = conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
