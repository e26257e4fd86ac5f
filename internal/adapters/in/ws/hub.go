// Package ws fans order change events out to live websocket connections.
// The hub is the single broadcast point: commands publish committed orders
// into it and every subscribed connection receives an "orderUpdated" event.
//
// Delivery is best-effort and at-most-once. There is no acknowledgment,
// retry or replay: an observer that is not connected when an event fires
// catches up on its next full fetch. Each connection has a buffered send
// queue drained by its own writer goroutine, so a publisher never waits on
// an observer's socket; a connection whose write fails or whose queue
// overflows is dropped from the registry.
package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/order"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// OrderUpdatedEvent is the wire envelope pushed on every order change.
const OrderUpdatedEvent = "orderUpdated"

const (
	// writeWait bounds a single websocket write before the observer is
	// considered dead.
	writeWait = 5 * time.Second

	// sendQueueSize is how many pending events an observer may fall behind
	// before it is dropped.
	sendQueueSize = 16
)

type orderEvent struct {
	Event string                `json:"event"`
	Order queries.OrderResponse `json:"order"`
}

// Hub maintains the registry of live connections and broadcasts order
// events to all of them. It implements ports.OrderPublisher.
type Hub struct {
	logger *zap.Logger

	mu     sync.Mutex
	conns  map[*websocket.Conn]chan []byte
	closed bool
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger: logger,
		conns:  make(map[*websocket.Conn]chan []byte),
	}
}

// Subscribe registers a connection for broadcasts and starts its writer
// goroutine. Subscribing to a closed hub is rejected and the caller should
// close the connection.
func (h *Hub) Subscribe(conn *websocket.Conn) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}

	send := make(chan []byte, sendQueueSize)
	h.conns[conn] = send
	go h.writeLoop(conn, send)

	h.logger.Debug("observer subscribed", zap.Int("connections", len(h.conns)))
	return true
}

// Unsubscribe removes a connection from the registry and stops its writer.
// Safe to call more than once; the caller owns closing the connection.
func (h *Hub) Unsubscribe(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(conn)
	h.logger.Debug("observer unsubscribed", zap.Int("connections", len(h.conns)))
}

// Publish broadcasts an order change to every live connection. Writes are
// fire-and-forget and never block the caller: each event is queued on the
// connection's send channel, and an observer whose queue is full has stopped
// reading, so it is dropped instead of stalling the publisher.
func (h *Hub) Publish(_ context.Context, aggregate *order.Order) {
	payload, err := json.Marshal(orderEvent{
		Event: OrderUpdatedEvent,
		Order: queries.OrderResponseFromDomain(aggregate),
	})
	if err != nil {
		h.logger.Error("marshal order event", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn, send := range h.conns {
		select {
		case send <- payload:
		default:
			h.logger.Warn("dropping observer with full send queue")
			h.removeLocked(conn)
			_ = conn.Close()
		}
	}
}

// writeLoop drains one connection's send queue. A write error drops the
// observer; the remaining queue is discarded.
func (h *Hub) writeLoop(conn *websocket.Conn, send <-chan []byte) {
	defer conn.Close()

	for payload := range send {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.logger.Warn("dropping observer after failed write", zap.Error(err))
			h.Unsubscribe(conn)
			for range send { // drain until Unsubscribe closes the queue
			}
			return
		}
	}
}

// removeLocked deletes the connection and closes its send channel so the
// writer goroutine exits. Caller must hold h.mu; sends to the channel only
// happen under the same lock, so the close cannot race a send.
func (h *Hub) removeLocked(conn *websocket.Conn) {
	send, ok := h.conns[conn]
	if !ok {
		return
	}
	delete(h.conns, conn)
	close(send)
}

// ConnectionCount reports the number of live connections.
func (h *Hub) ConnectionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Close shuts the hub down: all connections are closed and further
// subscriptions are rejected.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for conn := range h.conns {
		h.removeLocked(conn)
		_ = conn.Close()
	}
}
