package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetCustomerOrdersQueryHandler retrieves one customer's orders from the
// database, newest first.
type GetCustomerOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetCustomerOrdersQueryHandler creates a handler for customer order queries.
func NewGetCustomerOrdersQueryHandler(db *gorm.DB) GetCustomerOrdersQueryHandler {
	return GetCustomerOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all orders placed by the customer.
// An unknown customer yields an empty slice, not an error.
func (h GetCustomerOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetCustomerOrdersQuery,
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
		WHERE customer_id = ?
		ORDER BY created_at DESC, id
	`, query.CustomerID().Bytes()))
}
