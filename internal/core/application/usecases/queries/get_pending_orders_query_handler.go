package queries

import (
	"context"

	"dispatch/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetPendingOrdersQueryHandler retrieves the pending order queue from the
// database. Only orders nobody has accepted yet appear here.
type GetPendingOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingOrdersQueryHandler creates a handler for pending queue queries.
// Requires a GORM database connection for query execution.
func NewGetPendingOrdersQueryHandler(db *gorm.DB) GetPendingOrdersQueryHandler {
	return GetPendingOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all pending orders.
// Results are sorted by creation time so the oldest order is served first.
func (h GetPendingOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetPendingOrdersQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return scanOrders(h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			courier_id,
			product,
			quantity,
			location,
			status,
			created_at,
			updated_at
		FROM orders
		WHERE status = ?
		ORDER BY created_at, id
	`, order.Pending))
}
