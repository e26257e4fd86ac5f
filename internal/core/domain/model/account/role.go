package account

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Role determines which operations an actor may invoke. It is fixed at
// registration: customers place orders, delivery partners fulfill them.
type Role string

const (
	// RoleCustomer may place orders and watch their own orders.
	RoleCustomer Role = "customer"

	// RoleDelivery may browse the pending queue and advance order status.
	RoleDelivery Role = "delivery"
)

// RoleFromString parses a role name as it appears on the wire and in tokens.
func RoleFromString(s string) (Role, error) {
	role := Role(s)
	if err := role.Validate(); err != nil {
		return "", err
	}
	return role, nil
}

// Validate checks that the role is one of the two known roles.
func (r Role) Validate() error {
	switch r {
	case RoleCustomer, RoleDelivery:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", string(r)))
	}
}

// String returns the wire name of the role.
func (r Role) String() string {
	return string(r)
}
