package commands

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"

	"github.com/govalues/decimal"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
	ErrMoreThanOneAdminPart = errors.New("order can have at most one platform-fulfilled part")
	ErrPartHasNoItems       = errors.New("order part must contain at least one item")
)

// PlaceOrderItem is one purchased product of a part at checkout.
type PlaceOrderItem struct {
	ID        kernel.UUID
	SKU       string
	Quantity  int
	UnitPrice kernel.Money
}

// PlaceOrderPart is one fulfilment unit decided at checkout. A nil VendorID makes
// it the platform-fulfilled part.
type PlaceOrderPart struct {
	ID             kernel.UUID
	VendorID       *kernel.UUID
	CommissionRate decimal.Decimal
	Items          []PlaceOrderItem
}

// PlaceOrderCommand represents a checkout that has already been split into parts.
//
// Example:
//
//	vendorID := kernel.NewUUID()
//	cmd, err := NewPlaceOrderCommand(kernel.NewUUID(), customerID, []PlaceOrderPart{
//	    {ID: kernel.NewUUID(), Items: adminItems},
//	    {ID: kernel.NewUUID(), VendorID: &vendorID, CommissionRate: decimal.MustParse("0.12"), Items: vendorItems},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewPlaceOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to place order: %w", err)
//	}
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID kernel.UUID
	parts      []PlaceOrderPart

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand validates identifiers and the split: at least one part, at
// most one platform part, no empty parts.
func NewPlaceOrderCommand(orderID, customerID kernel.UUID, parts []PlaceOrderPart) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setParts(parts),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c PlaceOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Parts returns a copy of the requested parts in checkout order.
func (c PlaceOrderCommand) Parts() []PlaceOrderPart {
	parts := make([]PlaceOrderPart, len(c.parts))
	copy(parts, c.parts)
	return parts
}

func (c *PlaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *PlaceOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	c.customerID = customerID
	return nil
}

func (c *PlaceOrderCommand) setParts(parts []PlaceOrderPart) error {
	if len(parts) == 0 {
		return errs.NewValueIsRequiredError("parts")
	}

	adminParts := 0
	for i, p := range parts {
		if p.VendorID == nil {
			adminParts++
		}
		if len(p.Items) == 0 {
			return fmt.Errorf("parts[%d]: %w", i, ErrPartHasNoItems)
		}
	}
	if adminParts > 1 {
		return ErrMoreThanOneAdminPart
	}

	c.parts = make([]PlaceOrderPart, len(parts))
	copy(c.parts, parts)
	return nil
}
