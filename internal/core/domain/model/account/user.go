// Package account contains the User entity and its role model.
package account

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrUserIsNotConstructed is returned when a User instance was not created
	// through NewUser or RestoreUser.
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser or RestoreUser")

	// ErrInvalidCredentials is returned by CheckPassword on a mismatch.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailAlreadyRegistered is returned when registering with an email
	// that another user already holds.
	ErrEmailAlreadyRegistered = errors.New("email is already registered")
)

// User is an authenticated identity with a fixed role. The password is held
// only as a bcrypt hash; the clear text never leaves NewUser.
type User struct {
	id           kernel.UUID
	name         string
	email        string
	passwordHash string
	role         Role

	isConstructed bool
}

// NewUser registers a new identity, hashing the supplied password with bcrypt.
// Email is normalized to lower case and serves as the unique login handle.
func NewUser(id kernel.UUID, name, email, password string, role Role) (*User, error) {
	u := &User{isConstructed: true}

	if err := errors.Join(
		u.setID(id),
		u.setName(name),
		u.setEmail(email),
		role.Validate(),
	); err != nil {
		return nil, err
	}
	u.role = role

	if password == "" {
		return nil, errs.NewValueIsRequiredError("password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u.passwordHash = string(hash)

	return u, nil
}

// RestoreUser reconstructs a user from persistence with an existing hash.
func RestoreUser(id kernel.UUID, name, email, passwordHash string, role Role) (*User, error) {
	u := &User{isConstructed: true}

	if err := errors.Join(
		u.setID(id),
		u.setName(name),
		u.setEmail(email),
		role.Validate(),
	); err != nil {
		return nil, err
	}
	u.role = role

	if passwordHash == "" {
		return nil, errs.NewValueIsRequiredError("passwordHash")
	}
	u.passwordHash = passwordHash

	return u, nil
}

// Validate ensures the User instance was properly constructed.
func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}

	return nil
}

// ID returns the user's unique identifier.
func (u *User) ID() kernel.UUID {
	return u.id
}

// Name returns the user's display name.
func (u *User) Name() string {
	return u.name
}

// Email returns the normalized login email.
func (u *User) Email() string {
	return u.email
}

// PasswordHash returns the bcrypt hash for persistence.
func (u *User) PasswordHash() string {
	return u.passwordHash
}

// Role returns the user's fixed role.
func (u *User) Role() Role {
	return u.role
}

// CheckPassword compares a clear-text password against the stored hash.
// Returns ErrInvalidCredentials on mismatch.
func (u *User) CheckPassword(password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	u.name = name
	return nil
}

func (u *User) setEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if !strings.Contains(email, "@") {
		return errs.NewValueIsInvalidError("email")
	}
	u.email = email
	return nil
}
