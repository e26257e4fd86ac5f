package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/account"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrRegisterUserCommandIsNotConstructed = errors.New(
		"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
	)
)

// RegisterUserCommand represents a request to register a new identity with a
// fixed role. The clear-text password is carried only as far as the handler,
// which hashes it through the account constructor.
type RegisterUserCommand struct { //nolint:recvcheck //using for validation
	name     string
	email    string
	password string
	role     account.Role

	guard guard.ConstructorGuard
}

// NewRegisterUserCommand creates a command to register a user.
func NewRegisterUserCommand(name, email, password string, role account.Role) (RegisterUserCommand, error) {
	cmd := RegisterUserCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setName(name),
		cmd.setEmail(email),
		cmd.setPassword(password),
		cmd.setRole(role),
	); err != nil {
		return RegisterUserCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

// Name returns the display name.
func (c RegisterUserCommand) Name() string {
	return c.name
}

// Email returns the login email.
func (c RegisterUserCommand) Email() string {
	return c.email
}

// Password returns the clear-text password for hashing.
func (c RegisterUserCommand) Password() string {
	return c.password
}

// Role returns the requested role.
func (c RegisterUserCommand) Role() account.Role {
	return c.role
}

func (c *RegisterUserCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	c.name = name
	return nil
}

func (c *RegisterUserCommand) setEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}

	c.email = email
	return nil
}

func (c *RegisterUserCommand) setPassword(password string) error {
	if password == "" {
		return errs.NewValueIsRequiredError("password")
	}

	c.password = password
	return nil
}

func (c *RegisterUserCommand) setRole(role account.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}

	c.role = role
	return nil
}
