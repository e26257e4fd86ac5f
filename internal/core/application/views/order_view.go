// Package views implements the observer-side cache of order lists. Each
// connected viewer holds one OrderView, seeded by a full fetch and kept
// current by merging realtime change events into it. Reconciliation is pure
// data transformation with no side effects beyond the cache.
package views

import (
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// Kind identifies which role-specific list a view caches. The pending queue
// is the only kind with filtering semantics of its own: orders that leave
// the Pending status leave the view.
type Kind int

const (
	// UnknownKind is the zero value and is not a valid view kind.
	UnknownKind Kind = iota
	// PendingQueue caches the unaccepted orders delivery partners pick from.
	PendingQueue
	// CustomerOrders caches the orders one customer has placed.
	CustomerOrders
	// History caches every order a user took part in, on either side.
	History
)

// Validate checks that the kind is one of the defined view kinds.
func (k Kind) Validate() error {
	switch k {
	case PendingQueue, CustomerOrders, History:
		return nil
	default:
		return errs.NewValueIsInvalidError("kind")
	}
}

// OrderView is a locally cached sequence of orders for one observer.
// Not safe for concurrent use: each observer owns exactly one view and
// applies fetches and events from a single goroutine.
type OrderView struct {
	kind   Kind
	orders []queries.OrderResponse
	index  map[string]int
}

// NewOrderView creates an empty view of the given kind.
func NewOrderView(kind Kind) (*OrderView, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}

	return &OrderView{
		kind:   kind,
		orders: make([]queries.OrderResponse, 0),
		index:  make(map[string]int),
	}, nil
}

// Kind returns the view's kind.
func (v *OrderView) Kind() Kind {
	return v.kind
}

// Reset replaces the cache with the result of a full fetch. List order is
// preserved as given.
func (v *OrderView) Reset(orders []queries.OrderResponse) {
	v.orders = make([]queries.OrderResponse, len(orders))
	copy(v.orders, orders)

	v.index = make(map[string]int, len(orders))
	for i, o := range v.orders {
		v.index[o.ID] = i
	}
}

// Apply merges one change event into the cache:
//
//   - A cached order is replaced by the incoming copy, unless this is the
//     pending queue and the order is no longer Pending, in which case it is
//     removed (the order left the pending pool).
//   - An unknown order is appended at the end, unless this is the pending
//     queue and the order is not Pending.
//
// No re-sort is performed, so list order reflects fetch order plus append
// order. Applying the same event twice yields the same cache as applying
// it once.
func (v *OrderView) Apply(incoming queries.OrderResponse) {
	leftPendingPool := v.kind == PendingQueue && incoming.Status != order.Pending.String()

	pos, cached := v.index[incoming.ID]
	if cached {
		if leftPendingPool {
			v.remove(pos)
			return
		}

		v.orders[pos] = incoming
		return
	}

	if leftPendingPool {
		return
	}

	v.orders = append(v.orders, incoming)
	v.index[incoming.ID] = len(v.orders) - 1
}

// Orders returns a copy of the cached list in its current order.
func (v *OrderView) Orders() []queries.OrderResponse {
	orders := make([]queries.OrderResponse, len(v.orders))
	copy(orders, v.orders)
	return orders
}

// Len returns the number of cached orders.
func (v *OrderView) Len() int {
	return len(v.orders)
}

func (v *OrderView) remove(pos int) {
	delete(v.index, v.orders[pos].ID)
	v.orders = append(v.orders[:pos], v.orders[pos+1:]...)

	for i := pos; i < len(v.orders); i++ {
		v.index[v.orders[i].ID] = i
	}
}
