package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// AdvanceOrderStatusCommandHandler handles status advances by delivery
// partners. The domain aggregate enforces single-step transitions and
// single-assignee exclusivity; the repository's conditional update closes
// the window where two couriers race to accept the same Pending order.
type AdvanceOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderPublisher
}

// NewAdvanceOrderStatusCommandHandler creates a handler for status advances.
func NewAdvanceOrderStatusCommandHandler(uowFactory OrderUoWFactory, publisher ports.OrderPublisher) AdvanceOrderStatusCommandHandler {
	return AdvanceOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes a status advance. Returns an ObjectNotFoundError for an
// unknown order and an InvalidTransitionError when the step, the assignee or
// the conditional update rejects the change. Broadcasts only after commit.
func (h *AdvanceOrderStatusCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	previous := aggregate.Status()
	if err = aggregate.AdvanceTo(cmd.Next(), cmd.CourierID()); err != nil {
		return nil, err
	}

	if err = orderRepo.UpdateStatus(ctx, aggregate, previous); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Publish(ctx, aggregate)
	return aggregate, nil
}
