package queries

import (
	"time"

	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// scanOrders reads the standard order column list into read-side responses.
// All order queries select the same columns in the same order.
func scanOrders(tx *gorm.DB) ([]OrderResponse, error) {
	rows, err := tx.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderResponse, 0)

	for rows.Next() {
		var (
			id         uuid.UUID
			customerID uuid.UUID
			courierID  uuid.NullUUID
			product    string
			quantity   int
			location   string
			status     int
			createdAt  time.Time
			updatedAt  time.Time
		)

		if err = rows.Scan(
			&id,
			&customerID,
			&courierID,
			&product,
			&quantity,
			&location,
			&status,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, err
		}

		var partnerID *string
		if courierID.Valid {
			raw := courierID.UUID.String()
			partnerID = &raw
		}

		orders = append(orders, OrderResponse{
			ID:                id.String(),
			CustomerID:        customerID.String(),
			DeliveryPartnerID: partnerID,
			Product:           product,
			Quantity:          quantity,
			Location:          location,
			Status:            order.Status(status).String(),
			CreatedAt:         createdAt,
			UpdatedAt:         updatedAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
