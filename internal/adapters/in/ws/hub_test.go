package ws_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dispatch/internal/adapters/in/ws"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type eventEnvelope struct {
	Event string `json:"event"`
	Order struct {
		ID                string  `json:"id"`
		CustomerID        string  `json:"customerId"`
		DeliveryPartnerID *string `json:"deliveryPartnerId"`
		Product           string  `json:"product"`
		Quantity          int     `json:"quantity"`
		Location          string  `json:"location"`
		Status            string  `json:"status"`
	} `json:"order"`
}

func startHubServer(t *testing.T, hub *ws.Hub) *httptest.Server {
	t.Helper()

	e := echo.New()
	handler := ws.NewHandler(hub, zap.NewNop())
	e.GET("/ws", handler.Serve)

	server := httptest.NewServer(e)
	t.Cleanup(server.Close)
	return server
}

func dialHub(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		defer resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitForConnections(t *testing.T, hub *ws.Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ConnectionCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("hub never reached %d connections", want)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHub_Publish_ReachesAllSubscribers(t *testing.T) {
	hub := ws.NewHub(zap.NewNop())
	server := startHubServer(t, hub)

	first := dialHub(t, server)
	second := dialHub(t, server)
	waitForConnections(t, hub, 2)

	aggregate, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "Milk", 2, "5th Ave")
	require.NoError(t, err)

	hub.Publish(context.Background(), aggregate)

	for _, conn := range []*websocket.Conn{first, second} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, payload, err := conn.ReadMessage()
		require.NoError(t, err)

		var envelope eventEnvelope
		require.NoError(t, json.Unmarshal(payload, &envelope))

		assert.Equal(t, "orderUpdated", envelope.Event)
		assert.Equal(t, aggregate.ID().String(), envelope.Order.ID)
		assert.Equal(t, "Milk", envelope.Order.Product)
		assert.Equal(t, 2, envelope.Order.Quantity)
		assert.Equal(t, "Pending", envelope.Order.Status)
		assert.Nil(t, envelope.Order.DeliveryPartnerID)
	}
}

func TestHub_Publish_PreservesPerConnectionOrder(t *testing.T) {
	hub := ws.NewHub(zap.NewNop())
	server := startHubServer(t, hub)

	conn := dialHub(t, server)
	waitForConnections(t, hub, 1)

	aggregate, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "Milk", 2, "5th Ave")
	require.NoError(t, err)
	hub.Publish(context.Background(), aggregate)

	courierID := kernel.NewUUID()
	require.NoError(t, aggregate.AdvanceTo(order.Accepted, courierID))
	hub.Publish(context.Background(), aggregate)

	statuses := make([]string, 0, 2)
	for i := 0; i < 2; i++ {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, payload, err := conn.ReadMessage()
		require.NoError(t, err)

		var envelope eventEnvelope
		require.NoError(t, json.Unmarshal(payload, &envelope))
		statuses = append(statuses, envelope.Order.Status)
	}

	assert.Equal(t, []string{"Pending", "Accepted"}, statuses)
}

func TestHub_Publish_DoesNotBlockOnObserverThatStoppedReading(t *testing.T) {
	hub := ws.NewHub(zap.NewNop())
	server := startHubServer(t, hub)

	// Subscribed but never reads: its socket buffers and send queue fill up.
	dialHub(t, server)
	waitForConnections(t, hub, 1)

	aggregate, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(),
		strings.Repeat("x", 1<<16), 1, "5th Ave")
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 64; i++ {
			hub.Publish(context.Background(), aggregate)
		}
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("publish blocked on an observer that stopped reading")
	}

	// The stalled observer was dropped once it fell too far behind.
	waitForConnections(t, hub, 0)
}

func TestHub_DisconnectedObserverIsRemoved(t *testing.T) {
	hub := ws.NewHub(zap.NewNop())
	server := startHubServer(t, hub)

	conn := dialHub(t, server)
	waitForConnections(t, hub, 1)

	require.NoError(t, conn.Close())
	waitForConnections(t, hub, 0)

	// Publishing to an empty registry is a no-op.
	aggregate, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "Milk", 1, "5th Ave")
	require.NoError(t, err)
	hub.Publish(context.Background(), aggregate)
}

func TestHub_Close_RejectsNewSubscriptions(t *testing.T) {
	hub := ws.NewHub(zap.NewNop())
	server := startHubServer(t, hub)

	conn := dialHub(t, server)
	waitForConnections(t, hub, 1)

	hub.Close()
	assert.Zero(t, hub.ConnectionCount())

	// The closed hub refuses the next upgrade's subscription.
	second := dialHub(t, server)
	require.NoError(t, second.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := second.ReadMessage()
	require.Error(t, err)

	_ = conn.Close()
}
