package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
)

// PlaceOrderCommand represents a customer's request to place a delivery order.
// Carries the placing customer's identity and the immutable order details.
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	product    string
	quantity   int
	location   string

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place a new order.
// Validates that the customer ID is valid, product and location are not
// empty, and quantity is positive.
func NewPlaceOrderCommand(customerID kernel.UUID, product string, quantity int, location string) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setProduct(product),
		cmd.setQuantity(quantity),
		cmd.setLocation(location),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// CustomerID returns the identity of the placing customer.
func (c PlaceOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Product returns the free-text product description.
func (c PlaceOrderCommand) Product() string {
	return c.product
}

// Quantity returns the ordered quantity.
func (c PlaceOrderCommand) Quantity() int {
	return c.quantity
}

// Location returns the free-text delivery address.
func (c PlaceOrderCommand) Location() string {
	return c.location
}

func (c *PlaceOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *PlaceOrderCommand) setProduct(product string) error {
	if product == "" {
		return errs.NewValueIsRequiredError("product")
	}

	c.product = product
	return nil
}

func (c *PlaceOrderCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}

	c.quantity = quantity
	return nil
}

func (c *PlaceOrderCommand) setLocation(location string) error {
	if location == "" {
		return errs.NewValueIsRequiredError("location")
	}

	c.location = location
	return nil
}
