package views_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/application/views"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeOrder(status string) queries.OrderResponse {
	now := time.Now().UTC()
	return queries.OrderResponse{
		ID:         kernel.NewUUID().String(),
		CustomerID: kernel.NewUUID().String(),
		Product:    "Milk",
		Quantity:   2,
		Location:   "5th Ave",
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func withStatus(o queries.OrderResponse, status string) queries.OrderResponse {
	o.Status = status
	return o
}

func TestNewOrderView_InvalidKind(t *testing.T) {
	_, err := views.NewOrderView(views.UnknownKind)
	require.Error(t, err)

	_, err = views.NewOrderView(views.Kind(42))
	require.Error(t, err)
}

func TestNewOrderView_StartsEmpty(t *testing.T) {
	view, err := views.NewOrderView(views.CustomerOrders)
	require.NoError(t, err)
	assert.Zero(t, view.Len())
	assert.Empty(t, view.Orders())
	assert.Equal(t, views.CustomerOrders, view.Kind())
}

func TestReset_ReplacesCachePreservingOrder(t *testing.T) {
	view, err := views.NewOrderView(views.History)
	require.NoError(t, err)

	first := makeOrder("Pending")
	second := makeOrder("Delivered")
	view.Reset([]queries.OrderResponse{first, second})

	orders := view.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, first.ID, orders[0].ID)
	assert.Equal(t, second.ID, orders[1].ID)

	// A later reset discards what was there before.
	third := makeOrder("Pending")
	view.Reset([]queries.OrderResponse{third})
	orders = view.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, third.ID, orders[0].ID)
}

func TestApply_UnknownOrder_AppendsAtEnd(t *testing.T) {
	view, err := views.NewOrderView(views.CustomerOrders)
	require.NoError(t, err)

	existing := makeOrder("Pending")
	view.Reset([]queries.OrderResponse{existing})

	incoming := makeOrder("Pending")
	view.Apply(incoming)

	orders := view.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, existing.ID, orders[0].ID)
	assert.Equal(t, incoming.ID, orders[1].ID)
}

func TestApply_CachedOrder_ReplacedInPlace(t *testing.T) {
	view, err := views.NewOrderView(views.CustomerOrders)
	require.NoError(t, err)

	first := makeOrder("Pending")
	second := makeOrder("Pending")
	view.Reset([]queries.OrderResponse{first, second})

	view.Apply(withStatus(first, "Accepted"))

	orders := view.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, first.ID, orders[0].ID)
	assert.Equal(t, "Accepted", orders[0].Status)
	assert.Equal(t, second.ID, orders[1].ID)
}

func TestApply_PendingQueue_RemovesOrderThatLeftPendingPool(t *testing.T) {
	view, err := views.NewOrderView(views.PendingQueue)
	require.NoError(t, err)

	first := makeOrder("Pending")
	second := makeOrder("Pending")
	third := makeOrder("Pending")
	view.Reset([]queries.OrderResponse{first, second, third})

	view.Apply(withStatus(second, "Accepted"))

	orders := view.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, first.ID, orders[0].ID)
	assert.Equal(t, third.ID, orders[1].ID)

	// Later events for the remaining orders still reconcile correctly.
	view.Apply(withStatus(third, "Out for Delivery"))
	orders = view.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, first.ID, orders[0].ID)
}

func TestApply_PendingQueue_SkipsNonPendingInsert(t *testing.T) {
	view, err := views.NewOrderView(views.PendingQueue)
	require.NoError(t, err)

	view.Apply(makeOrder("Accepted"))
	assert.Zero(t, view.Len())

	view.Apply(makeOrder("Delivered"))
	assert.Zero(t, view.Len())
}

func TestApply_PendingQueue_InsertsPendingOrder(t *testing.T) {
	view, err := views.NewOrderView(views.PendingQueue)
	require.NoError(t, err)

	incoming := makeOrder("Pending")
	view.Apply(incoming)

	orders := view.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, incoming.ID, orders[0].ID)
}

func TestApply_NonPendingView_KeepsNonPendingOrders(t *testing.T) {
	for _, kind := range []views.Kind{views.CustomerOrders, views.History} {
		view, err := views.NewOrderView(kind)
		require.NoError(t, err)

		delivered := makeOrder("Delivered")
		view.Apply(delivered)

		orders := view.Orders()
		require.Len(t, orders, 1)
		assert.Equal(t, "Delivered", orders[0].Status)
	}
}

func TestApply_Idempotent(t *testing.T) {
	for _, kind := range []views.Kind{views.PendingQueue, views.CustomerOrders, views.History} {
		view, err := views.NewOrderView(kind)
		require.NoError(t, err)

		pending := makeOrder("Pending")
		view.Reset([]queries.OrderResponse{pending})

		accepted := withStatus(pending, "Accepted")
		view.Apply(accepted)
		once := view.Orders()

		view.Apply(accepted)
		twice := view.Orders()

		assert.Equal(t, once, twice, "kind %d", kind)
	}
}

func TestApply_FullLifecycleAgainstPendingQueue(t *testing.T) {
	view, err := views.NewOrderView(views.PendingQueue)
	require.NoError(t, err)

	o := makeOrder("Pending")
	view.Apply(o)
	require.Equal(t, 1, view.Len())

	for _, status := range []string{"Accepted", "Out for Delivery", "Delivered"} {
		view.Apply(withStatus(o, status))
		assert.Zero(t, view.Len(), "order in status %q must not appear in pending queue", status)
	}
}
