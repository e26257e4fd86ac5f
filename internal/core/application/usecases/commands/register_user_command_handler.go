package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/account"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// RegisterUserCommandHandler handles identity registration. Uniqueness of the
// email is checked up front for a friendly error and enforced again by the
// unique index at insert time.
type RegisterUserCommandHandler struct {
	uowFactory UserUoWFactory
}

// NewRegisterUserCommandHandler creates a handler for user registration.
func NewRegisterUserCommandHandler(uowFactory UserUoWFactory) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the registration command. A taken email returns
// account.ErrEmailAlreadyRegistered.
func (h *RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*account.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	user, err := account.NewUser(kernel.NewUUID(), cmd.Name(), cmd.Email(), cmd.Password(), cmd.Role())
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

	userRepo := uow.UserRepository()
	if _, err = userRepo.GetByEmail(ctx, user.Email()); err == nil {
		return nil, account.ErrEmailAlreadyRegistered
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	if err = userRepo.Add(ctx, user); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return user, nil
}
