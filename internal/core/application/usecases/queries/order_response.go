// Package queries contains read-only operations for retrieving system state.
// Implements the Query side of the CQRS architecture with raw SQL reads
// that bypass the domain layer for performance.
package queries

import (
	"time"

	"dispatch/internal/core/domain/model/order"
)

// OrderResponse is the read-side representation of an order. It is the wire
// payload shared by the HTTP endpoints and the realtime broadcast, so every
// observer of an order sees the same shape regardless of the channel.
//
// Example:
//
//	response := OrderResponse{
//	    ID:       "123e4567-e89b-12d3-a456-426614174000",
//	    Product:  "Milk",
//	    Quantity: 2,
//	    Status:   "Out for Delivery",
//	}
type OrderResponse struct {
	ID                string    `json:"id"`
	CustomerID        string    `json:"customerId"`
	DeliveryPartnerID *string   `json:"deliveryPartnerId"`
	Product           string    `json:"product"`
	Quantity          int       `json:"quantity"`
	Location          string    `json:"location"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// OrderResponseFromDomain maps an order aggregate to its read-side shape.
// Used after commands commit, so broadcast payloads match query results.
func OrderResponseFromDomain(aggregate *order.Order) OrderResponse {
	var partnerID *string
	if courier := aggregate.Courier(); courier != nil {
		raw := courier.String()
		partnerID = &raw
	}

	return OrderResponse{
		ID:                aggregate.ID().String(),
		CustomerID:        aggregate.CustomerID().String(),
		DeliveryPartnerID: partnerID,
		Product:           aggregate.Product(),
		Quantity:          aggregate.Quantity(),
		Location:          aggregate.Location(),
		Status:            aggregate.Status().String(),
		CreatedAt:         aggregate.CreatedAt(),
		UpdatedAt:         aggregate.UpdatedAt(),
	}
}
