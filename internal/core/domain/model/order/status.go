package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It implements a strictly
// forward, single-step state machine:
//
//	Pending ──> Accepted ──> OutForDelivery ──> Delivered
//
// No backward or skip transitions exist. Delivered is final.
//
// Status is a value object: transitions are validated through CanAdvanceTo
// and the wire representation (including the spaced "Out for Delivery" form)
// is produced by String and parsed by StatusFromString.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a freshly placed order.
	// Pending orders form the queue visible to delivery partners.
	Pending

	// Accepted indicates a delivery partner has taken the order.
	Accepted

	// OutForDelivery indicates the order is on its way to the customer.
	OutForDelivery

	// Delivered is the final status. No further transitions are allowed.
	Delivered
)

// getStatusStrings returns the wire names of all statuses, including Unknown.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Pending:        "Pending",
		Accepted:       "Accepted",
		OutForDelivery: "Out for Delivery",
		Delivered:      "Delivered",
	}
}

// getValidStatusStrings returns only the statuses an order may legally hold.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:        "Pending",
		Accepted:       "Accepted",
		OutForDelivery: "Out for Delivery",
		Delivered:      "Delivered",
	}
}

// StatusFromString parses a wire-format status name.
// Returns an error for anything that is not one of the four valid names.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status value is one of the four lifecycle states.
// Unknown (0) and out-of-range values are invalid. Used when reconstructing
// orders from persistence or parsing client input.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status ("Pending", "Accepted",
// "Out for Delivery", "Delivered"), or "Unknown" for invalid values.
// Implements fmt.Stringer and is safe on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Next returns the immediate successor in the lifecycle.
// Returns an error for Delivered (final) and for invalid statuses.
func (s Status) Next() (Status, error) {
	switch s {
	case Pending:
		return Accepted, nil
	case Accepted:
		return OutForDelivery, nil
	case OutForDelivery:
		return Delivered, nil
	case Delivered:
		return Unknown, errs.NewInvalidTransitionErrorWithCause(
			s.String(), "",
			fmt.Errorf("%s is a final status", s.String()),
		)
	default:
		return Unknown, s.Validate()
	}
}

// CanAdvanceTo checks whether next is the single legal successor of s.
// Every other combination, including staying in place and skipping ahead,
// is rejected with an InvalidTransitionError.
func (s Status) CanAdvanceTo(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}

	successor, err := s.Next()
	if err != nil {
		return errs.NewInvalidTransitionError(s.String(), next.String())
	}

	if next != successor {
		return errs.NewInvalidTransitionError(s.String(), next.String())
	}

	return nil
}

// IsFinal reports whether the status ends the lifecycle.
func (s Status) IsFinal() bool {
	return s == Delivered
}
