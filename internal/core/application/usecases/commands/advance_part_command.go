package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrAdvancePartCommandIsNotConstructed = errors.New(
		"AdvancePartCommand must be created via NewAdvancePartCommand constructor",
	)

	// ErrActorIsNotAllowed is returned when the actor may not act on the part,
	// for example a vendor touching another vendor's part.
	ErrActorIsNotAllowed = errors.New("actor is not allowed to change this order part")
)

// AdvancePartCommand moves one part of an order forward in its lifecycle:
// placed → processing → shipped → delivered. Cancellation goes through
// CancelOrderCommand instead.
//
// Only the platform (admin) or the vendor owning the part may advance it.
type AdvancePartCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	partID   kernel.UUID
	target   order.Status
	actor    order.Actor
	vendorID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewAdvancePartCommand validates the request. vendorID is required when actor is
// a vendor and ignored otherwise.
func NewAdvancePartCommand(
	orderID kernel.UUID,
	partID kernel.UUID,
	target order.Status,
	actor order.Actor,
	vendorID *kernel.UUID,
) (AdvancePartCommand, error) {
	cmd := AdvancePartCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPartID(partID),
		cmd.setTarget(target),
		cmd.setActor(actor, vendorID),
	); err != nil {
		return AdvancePartCommand{}, err
	}

	return cmd, nil
}

func (c AdvancePartCommand) Validate() error {
	return c.guard.Validate(ErrAdvancePartCommandIsNotConstructed)
}

func (c AdvancePartCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AdvancePartCommand) PartID() kernel.UUID {
	return c.partID
}

func (c AdvancePartCommand) Target() order.Status {
	return c.target
}

func (c AdvancePartCommand) Actor() order.Actor {
	return c.actor
}

// VendorID returns the acting vendor, nil unless the actor is a vendor.
func (c AdvancePartCommand) VendorID() *kernel.UUID {
	return c.vendorID
}

func (c *AdvancePartCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	c.orderID = id
	return nil
}

func (c *AdvancePartCommand) setPartID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("partId", err)
	}
	c.partID = id
	return nil
}

func (c *AdvancePartCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = order.Normalize(string(target))
	return nil
}

func (c *AdvancePartCommand) setActor(actor order.Actor, vendorID *kernel.UUID) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	switch actor {
	case order.ActorCustomer:
		return ErrActorIsNotAllowed
	case order.ActorVendor:
		if vendorID == nil {
			return errs.NewValueIsRequiredError("vendorId")
		}
		if err := vendorID.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause("vendorId", err)
		}
		id := *vendorID
		c.vendorID = &id
	}

	c.actor = actor
	return nil
}
