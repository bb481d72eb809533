package order

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrDuplicatePart is returned when two parts of one order share an identifier.
	ErrDuplicatePart = errors.New("order contains duplicate part")
)

// Order is the aggregate root of a marketplace purchase. At placement time the
// order is split into parts: at most one fulfilled by the platform and any number
// fulfilled by vendors. The order exclusively owns its parts and the parts own
// their line items.
//
// Order follows these invariants:
//   - Must have a valid identifier and customer
//   - Owns a non-empty, ordered sequence of parts with distinct identifiers
//   - Its customer-facing status is never stored: Status() recomputes it from the parts
//   - version increases by one every time the aggregate is persisted; it is the
//     optimistic concurrency token used to serialise concurrent cancellations
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID
	parts      []*Part
	version    int64

	isConstructed bool
}

// NewOrder creates a new Order from the parts decided at checkout.
//
// Parameters:
//   - id: unique identifier for the order
//   - customerID: the purchasing customer
//   - parts: at least one part; insertion order is kept for display
//
// Returns:
//   - *Order: the created order at version 0
//   - error: validation error if any parameter is invalid
//
// Example:
//
//	item, _ := order.NewLineItem(kernel.NewUUID(), "SKU-1", 2, kernel.MustMoney("9.99"))
//	adminPart, _ := order.NewAdminPart(kernel.NewUUID(), []*order.LineItem{item})
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, []*order.Part{adminPart})
func NewOrder(id kernel.UUID, customerID kernel.UUID, parts []*Part) (*Order, error) {
	return RestoreOrder(id, customerID, parts, 0)
}

// RestoreOrder rebuilds an order from persistence at the stored version.
func RestoreOrder(id kernel.UUID, customerID kernel.UUID, parts []*Part, version int64) (*Order, error) {
	order := &Order{
		version:       version,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setParts(parts),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the purchasing customer.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Version returns the persisted version the aggregate was loaded at.
func (o *Order) Version() int64 {
	return o.version
}

// Parts returns a copy of the part list in creation order.
func (o *Order) Parts() []*Part {
	parts := make([]*Part, len(o.parts))
	copy(parts, o.parts)
	return parts
}

// Part looks up a part by identifier.
//
// Returns *errs.ObjectNotFoundError when the order has no such part.
func (o *Order) Part(id kernel.UUID) (*Part, error) {
	for _, p := range o.parts {
		if p.ID().IsEqual(id) {
			return p, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("part", id.String())
}

// Status returns the unified customer-facing status computed from all parts.
// It is recomputed on every call.
func (o *Order) Status() Status {
	return Unify(o.parts)
}

// IsOpen reports whether the unified status is not terminal.
func (o *Order) IsOpen() bool {
	return !o.Status().IsTerminal()
}

// Total sums the subtotals of every part.
func (o *Order) Total() (kernel.Money, error) {
	total := kernel.ZeroMoney()
	for _, p := range o.parts {
		subtotal, err := p.Subtotal()
		if err != nil {
			return kernel.Money{}, err
		}
		if total, err = total.Add(subtotal); err != nil {
			return kernel.Money{}, err
		}
	}
	return total, nil
}

// AdvancePart moves the identified part forward to target.
// See Part.Advance for the transition rules.
func (o *Order) AdvancePart(partID kernel.UUID, target Status) error {
	part, err := o.Part(partID)
	if err != nil {
		return err
	}
	return part.Advance(target)
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

func (o *Order) setParts(parts []*Part) error {
	if len(parts) == 0 {
		return errs.NewValueIsRequiredError("parts")
	}

	seen := make(map[kernel.UUID]struct{}, len(parts))
	for _, p := range parts {
		if err := p.Validate(); err != nil {
			return err
		}
		if _, dup := seen[p.ID()]; dup {
			return errs.NewValueIsInvalidErrorWithCause("parts", ErrDuplicatePart)
		}
		seen[p.ID()] = struct{}{}
	}

	o.parts = make([]*Part, len(parts))
	copy(o.parts, parts)
	return nil
}
