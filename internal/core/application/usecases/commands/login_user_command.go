package commands

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrLoginUserCommandIsNotConstructed = errors.New(
		"LoginUserCommand must be created via NewLoginUserCommand constructor",
	)
)

// LoginUserCommand represents a credential check yielding a bearer token.
type LoginUserCommand struct { //nolint:recvcheck //using for validation
	email    string
	password string

	guard guard.ConstructorGuard
}

// NewLoginUserCommand creates a command to authenticate a user.
func NewLoginUserCommand(email, password string) (LoginUserCommand, error) {
	cmd := LoginUserCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setEmail(email),
		cmd.setPassword(password),
	); err != nil {
		return LoginUserCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c LoginUserCommand) Validate() error {
	return c.guard.Validate(ErrLoginUserCommandIsNotConstructed)
}

// Email returns the login email.
func (c LoginUserCommand) Email() string {
	return c.email
}

// Password returns the clear-text password to check.
func (c LoginUserCommand) Password() string {
	return c.password
}

func (c *LoginUserCommand) setEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}

	c.email = email
	return nil
}

func (c *LoginUserCommand) setPassword(password string) error {
	if password == "" {
		return errs.NewValueIsRequiredError("password")
	}

	c.password = password
	return nil
}
