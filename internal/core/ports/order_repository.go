package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// UpdateStatus persists a status advance conditionally: the row is only
	// written if its stored status still equals expected. A stale expectation
	// (another courier won the race, or the step was skipped) returns an
	// InvalidTransitionError and leaves the row untouched.
	UpdateStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllPendingOlderThan retrieves pending orders created before the
	// cutoff. Used by the background job that flags stale unaccepted orders.
	GetAllPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
