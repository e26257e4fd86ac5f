package order

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder. This ensures all orders are validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrOrderAssignedToAnotherCourier is returned when a courier attempts to
	// advance an order that a different courier has already accepted.
	ErrOrderAssignedToAnotherCourier = errors.New("order is assigned to another courier")
)

// Order is the aggregate root for a unit of customer demand tracked through
// the fixed delivery lifecycle.
//
// Invariants:
//   - Placed by exactly one customer; product, quantity and location are
//     immutable after creation
//   - Quantity is positive
//   - Status moves strictly forward, one step at a time (see Status)
//   - courierID is nil while Pending; the first courier to advance the order
//     becomes its single assignee, and only that courier may advance it further
//
// Fields are private; mutation happens only through AdvanceTo, which enforces
// the transition rules.
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID

	// courierID is the assigned delivery partner (nil until accepted)
	courierID *kernel.UUID

	product  string
	quantity int
	location string
	status   Status

	createdAt time.Time
	updatedAt time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a freshly placed order in Pending status with no courier.
// All required fields are validated; a zero or negative quantity and empty
// product or location are rejected.
func NewOrder(id, customerID kernel.UUID, product string, quantity int, location string) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setProduct(product),
		o.setQuantity(quantity),
		o.setLocation(location),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence. Unlike NewOrder it
// accepts any valid status and an optional courier, but still checks the
// status/courier consistency rule: Pending orders have no courier, and every
// other status requires one.
func RestoreOrder(
	id, customerID kernel.UUID,
	courierID *kernel.UUID,
	product string,
	quantity int,
	location string,
	status Status,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setProduct(product),
		o.setQuantity(quantity),
		o.setLocation(location),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	o.status = status

	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
		if status == Pending {
			return nil, errs.NewValueIsInvalidErrorWithCause("courierId",
				errors.New("Pending order cannot have a courier"))
		}
		cID := *courierID
		o.courierID = &cID
	} else if status != Pending {
		return nil, errs.NewValueIsInvalidErrorWithCause("courierId",
			fmt.Errorf("%s order must have a courier", status))
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the identity of the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Courier returns the assigned delivery partner's ID, or nil while Pending.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// Product returns the free-text product description.
func (o *Order) Product() string {
	return o.product
}

// Quantity returns the ordered quantity.
func (o *Order) Quantity() int {
	return o.quantity
}

// Location returns the free-text delivery address.
func (o *Order) Location() string {
	return o.location
}

// Status returns the current lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the timestamp of the last mutation.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// AdvanceTo moves the order to the next lifecycle state on behalf of a
// delivery partner.
//
// Rules enforced:
//   - next must be the immediate successor of the current status
//   - an unassigned (Pending) order is claimed by the advancing courier
//   - once assigned, only the same courier may advance the order
//
// Violations return an InvalidTransitionError; the order is left unchanged.
func (o *Order) AdvanceTo(next Status, courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	if o.courierID != nil && !o.courierID.IsEqual(courierID) {
		return errs.NewInvalidTransitionErrorWithCause(
			o.status.String(), next.String(),
			ErrOrderAssignedToAnotherCourier,
		)
	}

	if err := o.status.CanAdvanceTo(next); err != nil {
		return err
	}

	o.status = next
	if o.courierID == nil {
		o.courierID = &courierID
	}
	o.updatedAt = time.Now().UTC()
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setProduct(product string) error {
	if product == "" {
		return errs.NewValueIsRequiredError("product")
	}
	o.product = product
	return nil
}

func (o *Order) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	o.quantity = quantity
	return nil
}

func (o *Order) setLocation(location string) error {
	if location == "" {
		return errs.NewValueIsRequiredError("location")
	}
	o.location = location
	return nil
}
