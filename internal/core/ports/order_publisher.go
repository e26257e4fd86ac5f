package ports

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// OrderPublisher fans an "orderUpdated" event out to every connected
// observer after a create or status advance commits. Delivery is
// best-effort and at-most-once: implementations must never fail the
// mutating request over a broadcast problem, so Publish returns nothing.
type OrderPublisher interface {
	Publish(ctx context.Context, aggregate *order.Order)
}
