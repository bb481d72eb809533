package order

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/govalues/decimal"
)

// ErrPartIsNotConstructed is returned by Validate for Part values built
// without NewAdminPart, NewVendorPart or RestorePart.
var ErrPartIsNotConstructed = errors.New("Part must be created via NewAdminPart or NewVendorPart constructor")

// Part is one fulfilment unit of an order, handled either by the platform
// (KindAdmin) or by an independent vendor (KindVendor). Each part has its own
// status lifecycle; the order's customer-facing status is derived from all parts.
//
// Part follows these invariants:
//   - vendorID is present if and only if kind is KindVendor
//   - commissionRate is a fraction in [0, 1] and is zero for admin parts
//   - status only changes through Advance and Cancel
//   - parts are never deleted, only moved to a terminal status
type Part struct {
	id             kernel.UUID
	kind           PartKind
	vendorID       *kernel.UUID
	commissionRate decimal.Decimal
	status         Status
	items          []*LineItem

	isConstructed bool
}

// NewAdminPart creates a platform-fulfilled part in Placed status.
func NewAdminPart(id kernel.UUID, items []*LineItem) (*Part, error) {
	return RestorePart(id, KindAdmin, nil, decimal.Zero, Placed, items)
}

// NewVendorPart creates a vendor-fulfilled part in Placed status.
//
// Parameters:
//   - id: unique identifier of the part
//   - vendorID: the vendor fulfilling this part
//   - commissionRate: platform commission accrued on the part, as a fraction (0.12 = 12%)
//   - items: line items shipped by the vendor
func NewVendorPart(
	id kernel.UUID,
	vendorID kernel.UUID,
	commissionRate decimal.Decimal,
	items []*LineItem,
) (*Part, error) {
	return RestorePart(id, KindVendor, &vendorID, commissionRate, Placed, items)
}

// RestorePart rebuilds a part from persistence. The status is kept as given so that
// legacy values can still be normalised by Unify; use Normalize before calling when
// the source is known to hold legacy spellings.
func RestorePart(
	id kernel.UUID,
	kind PartKind,
	vendorID *kernel.UUID,
	commissionRate decimal.Decimal,
	status Status,
	items []*LineItem,
) (*Part, error) {
	part := &Part{
		status:        status,
		isConstructed: true,
	}

	if err := errors.Join(
		part.setID(id),
		part.setKind(kind, vendorID),
		part.setCommissionRate(commissionRate),
		part.setItems(items),
	); err != nil {
		return nil, err
	}

	return part, nil
}

// Validate ensures the part went through a constructor.
func (p *Part) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPartIsNotConstructed
	}
	return nil
}

func (p *Part) ID() kernel.UUID {
	return p.id
}

func (p *Part) Kind() PartKind {
	return p.kind
}

// IsVendor reports whether the part is fulfilled by a vendor.
func (p *Part) IsVendor() bool {
	return p.kind == KindVendor
}

// VendorID returns the fulfilling vendor, nil for admin parts.
func (p *Part) VendorID() *kernel.UUID {
	if p.vendorID == nil {
		return nil
	}
	id := *p.vendorID
	return &id
}

// BelongsTo reports whether the part is fulfilled by the given vendor.
func (p *Part) BelongsTo(vendorID kernel.UUID) bool {
	return p.vendorID != nil && p.vendorID.IsEqual(vendorID)
}

func (p *Part) CommissionRate() decimal.Decimal {
	return p.commissionRate
}

// Status returns the part's status as stored.
func (p *Part) Status() Status {
	return p.status
}

// Items returns a copy of the part's line items in insertion order.
func (p *Part) Items() []*LineItem {
	items := make([]*LineItem, len(p.items))
	copy(items, p.items)
	return items
}

// CanCancel reports whether the part is still placed or processing.
func (p *Part) CanCancel() bool {
	return p.status.IsCancellable()
}

// Subtotal sums all line items of the part.
func (p *Part) Subtotal() (kernel.Money, error) {
	return p.sumItems(func(*LineItem) bool { return true })
}

// RefundableSubtotal sums the line items whose effective status is not already
// cancelled. It is the amount returned to the customer if the part is cancelled now.
func (p *Part) RefundableSubtotal() (kernel.Money, error) {
	return p.sumItems(func(i *LineItem) bool {
		return !i.EffectiveStatus(p.status).IsCancelled()
	})
}

// Advance moves the part forward along placed → processing → shipped → delivered.
//
// Returns:
//   - nil on success
//   - *InvalidTransitionError when the target skips a stage or the part is terminal
//   - *errs.ValueIsInvalidError when the target is a cancelled status; cancellations
//     go through the cancellation workflow so their side effects are applied
func (p *Part) Advance(target Status) error {
	if Normalize(string(target)).IsCancelled() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s must be applied through cancellation", target),
		)
	}

	next, err := p.status.TransitionTo(target)
	if err != nil {
		return err
	}

	p.status = next
	return nil
}

// Cancel moves a placed or processing part to cancelled_by_customer (byCustomer)
// or cancelled, and returns the status the part had before.
func (p *Part) Cancel(byCustomer bool) (Status, error) {
	prior := p.status

	next, err := prior.Cancel(byCustomer)
	if err != nil {
		return "", err
	}

	p.status = next
	return Normalize(string(prior)), nil
}

func (p *Part) sumItems(include func(*LineItem) bool) (kernel.Money, error) {
	total := kernel.ZeroMoney()
	for _, item := range p.items {
		if !include(item) {
			continue
		}
		subtotal, err := item.Subtotal()
		if err != nil {
			return kernel.Money{}, err
		}
		if total, err = total.Add(subtotal); err != nil {
			return kernel.Money{}, err
		}
	}
	return total, nil
}

func (p *Part) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Part) setKind(kind PartKind, vendorID *kernel.UUID) error {
	if err := kind.Validate(); err != nil {
		return err
	}

	switch {
	case kind == KindVendor && vendorID == nil:
		return errs.NewValueIsRequiredErrorWithCause("vendorId", errors.New("vendor part without vendor"))
	case kind == KindVendor:
		if err := vendorID.Validate(); err != nil {
			return err
		}
		id := *vendorID
		p.vendorID = &id
	case vendorID != nil:
		return errs.NewValueIsInvalidErrorWithCause("vendorId", errors.New("admin part cannot have a vendor"))
	}

	p.kind = kind
	return nil
}

func (p *Part) setCommissionRate(rate decimal.Decimal) error {
	if rate.IsNeg() || rate.Cmp(decimal.One) > 0 {
		return errs.NewValueIsOutOfRangeError("commissionRate", rate.String(), "0", "1")
	}
	if p.kind == KindAdmin && !rate.IsZero() {
		return errs.NewValueIsInvalidErrorWithCause("commissionRate", errors.New("admin part cannot accrue commission"))
	}
	p.commissionRate = rate
	return nil
}

func (p *Part) setItems(items []*LineItem) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	p.items = make([]*LineItem, len(items))
	copy(p.items, items)
	return nil
}
