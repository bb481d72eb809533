package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand asks to cancel one part of an order or, without a target
// part, every part that can still be cancelled.
//
// A vendor may only cancel its own part, so a vendor actor must name both its
// vendorID and the target part.
//
// Example:
//
//	cmd, err := NewCancelOrderCommand(orderID, order.ActorCustomer, nil, nil, "ordered twice")
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	actor        order.Actor
	targetPartID *kernel.UUID
	vendorID     *kernel.UUID
	reason       string

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(
	orderID kernel.UUID,
	actor order.Actor,
	targetPartID *kernel.UUID,
	vendorID *kernel.UUID,
	reason string,
) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		reason: strings.TrimSpace(reason),
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTargetPartID(targetPartID),
		cmd.setActor(actor, vendorID, targetPartID),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	return cmd, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CancelOrderCommand) Actor() order.Actor {
	return c.actor
}

// TargetPartID returns the part to cancel, nil to cancel everything cancellable.
func (c CancelOrderCommand) TargetPartID() *kernel.UUID {
	return c.targetPartID
}

func (c CancelOrderCommand) VendorID() *kernel.UUID {
	return c.vendorID
}

func (c CancelOrderCommand) Reason() string {
	return c.reason
}

func (c *CancelOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	c.orderID = id
	return nil
}

func (c *CancelOrderCommand) setTargetPartID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("partId", err)
	}
	target := *id
	c.targetPartID = &target
	return nil
}

func (c *CancelOrderCommand) setActor(actor order.Actor, vendorID, targetPartID *kernel.UUID) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	if actor == order.ActorVendor {
		if vendorID == nil {
			return errs.NewValueIsRequiredError("vendorId")
		}
		if err := vendorID.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause("vendorId", err)
		}
		if targetPartID == nil {
			return errs.NewValueIsRequiredErrorWithCause("partId", ErrActorIsNotAllowed)
		}
		id := *vendorID
		c.vendorID = &id
	}

	c.actor = actor
	return nil
}
