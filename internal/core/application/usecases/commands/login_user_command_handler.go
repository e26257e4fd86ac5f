package commands

import (
	"context"
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/account"
	"dispatch/internal/pkg/errs"
)

// TokenSigner issues a signed bearer token for an authenticated user.
// Implemented by the auth package's token service.
type TokenSigner interface {
	Sign(user *account.User) (string, error)
}

// LoginUserCommandHandler verifies credentials and issues a bearer token.
// Unknown emails and wrong passwords both surface as ErrInvalidCredentials
// so the response does not reveal which part failed.
type LoginUserCommandHandler struct {
	uowFactory UserUoWFactory
	signer     TokenSigner
}

// NewLoginUserCommandHandler creates a handler for login operations.
func NewLoginUserCommandHandler(uowFactory UserUoWFactory, signer TokenSigner) LoginUserCommandHandler {
	return LoginUserCommandHandler{
		uowFactory: uowFactory,
		signer:     signer,
	}
}

// Handle processes the login command, returning the authenticated user and
// a signed token.
func (h *LoginUserCommandHandler) Handle(ctx context.Context, cmd LoginUserCommand) (*account.User, string, error) {
	if err := cmd.Validate(); err != nil {
		return nil, "", err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	email := strings.ToLower(strings.TrimSpace(cmd.Email()))
	user, err := uow.UserRepository().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, "", account.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err = user.CheckPassword(cmd.Password()); err != nil {
		return nil, "", err
	}

	token, err := h.signer.Sign(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}
