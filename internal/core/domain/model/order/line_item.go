package order

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrLineItemIsNotConstructed is returned by Validate for LineItem values built
// without NewLineItem or RestoreLineItem.
var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem is one purchased product within an order part. It has no lifecycle of
// its own: its status is an optional override that falls back to the parent part.
type LineItem struct {
	id        kernel.UUID
	sku       string
	quantity  int
	unitPrice kernel.Money
	status    *Status

	isConstructed bool
}

// NewLineItem creates a line item without a status override.
//
// Parameters:
//   - id: unique identifier of the line
//   - sku: product reference, must not be empty
//   - quantity: number of units, must be positive
//   - unitPrice: price of a single unit
func NewLineItem(id kernel.UUID, sku string, quantity int, unitPrice kernel.Money) (*LineItem, error) {
	return RestoreLineItem(id, sku, quantity, unitPrice, nil)
}

// RestoreLineItem rebuilds a line item from persistence, including its optional
// status override. The override is normalised.
func RestoreLineItem(
	id kernel.UUID,
	sku string,
	quantity int,
	unitPrice kernel.Money,
	status *Status,
) (*LineItem, error) {
	item := &LineItem{
		unitPrice:     unitPrice,
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setSKU(sku),
		item.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	if status != nil {
		normalized := Normalize(string(*status))
		item.status = &normalized
	}

	return item, nil
}

// Validate ensures the line item went through a constructor.
func (i *LineItem) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrLineItemIsNotConstructed
	}
	return nil
}

func (i *LineItem) ID() kernel.UUID {
	return i.id
}

func (i *LineItem) SKU() string {
	return i.sku
}

func (i *LineItem) Quantity() int {
	return i.quantity
}

func (i *LineItem) UnitPrice() kernel.Money {
	return i.unitPrice
}

// StatusOverride returns the item's own status, or nil when it follows its part.
func (i *LineItem) StatusOverride() *Status {
	if i.status == nil {
		return nil
	}
	s := *i.status
	return &s
}

// EffectiveStatus returns the override when present and partStatus otherwise.
func (i *LineItem) EffectiveStatus(partStatus Status) Status {
	if i.status != nil {
		return *i.status
	}
	return partStatus
}

// Subtotal returns unitPrice × quantity.
func (i *LineItem) Subtotal() (kernel.Money, error) {
	return i.unitPrice.MulQuantity(i.quantity)
}

func (i *LineItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *LineItem) setSKU(sku string) error {
	if sku == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	i.sku = sku
	return nil
}

func (i *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}
