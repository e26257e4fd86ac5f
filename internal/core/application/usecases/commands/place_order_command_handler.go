package commands

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// PlaceOrderCommandHandler handles the business logic for order placement.
// Creates orders in Pending status with no courier and, once the transaction
// commits, hands the new order to the publisher for fan-out to observers.
type PlaceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderPublisher
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
// Requires an OrderUoWFactory for transactional persistence and an
// OrderPublisher for the post-commit broadcast.
func NewPlaceOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.OrderPublisher) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the order placement command. The generated order carries a
// fresh identifier, Pending status and no courier. The broadcast happens only
// after a successful commit; a failed transaction publishes nothing.
func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	newOrder, err := order.NewOrder(kernel.NewUUID(), cmd.CustomerID(), cmd.Product(), cmd.Quantity(), cmd.Location())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Publish(ctx, newOrder)
	return newOrder, nil
}
