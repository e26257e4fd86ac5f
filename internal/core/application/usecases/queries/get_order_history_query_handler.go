package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler retrieves a user's order history from the
// database. Matches on both the customer and the courier column so the same
// endpoint serves both roles.
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderHistoryQueryHandler creates a handler for order history queries.
func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle executes the query to retrieve the user's history, newest first.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	userID := query.UserID().Bytes()

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
		WHERE customer_id = ? OR courier_id = ?
		ORDER BY created_at DESC, id
	`, userID, userID))
}
