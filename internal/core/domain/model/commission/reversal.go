package commission

import (
	"errors"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrReversalIsNotConstructed indicates that the Reversal was not created through
// NewReversal or RestoreReversal.
var ErrReversalIsNotConstructed = errors.New("Reversal must be created via NewReversal constructor")

// Reversal is an entry of the commission ledger: the platform gives back the
// commission it accrued on a vendor part because the customer cancelled after the
// vendor had started processing.
//
// Key business rules:
//   - At most one reversal exists per order part
//   - The amount is the refundable subtotal of the part times its commission rate
//   - Entries are append-only
type Reversal struct {
	id        kernel.UUID
	orderID   kernel.UUID
	partID    kernel.UUID
	vendorID  kernel.UUID
	amount    kernel.Money
	reason    string
	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewReversal creates a ledger entry stamped with the current time.
func NewReversal(
	id kernel.UUID,
	orderID kernel.UUID,
	partID kernel.UUID,
	vendorID kernel.UUID,
	amount kernel.Money,
	reason string,
) (*Reversal, error) {
	return RestoreReversal(id, orderID, partID, vendorID, amount, reason, time.Now().UTC())
}

// RestoreReversal rebuilds a ledger entry from persistence.
func RestoreReversal(
	id kernel.UUID,
	orderID kernel.UUID,
	partID kernel.UUID,
	vendorID kernel.UUID,
	amount kernel.Money,
	reason string,
	createdAt time.Time,
) (*Reversal, error) {
	if err := errors.Join(
		validateID("id", id),
		validateID("orderId", orderID),
		validateID("partId", partID),
		validateID("vendorId", vendorID),
	); err != nil {
		return nil, err
	}

	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	return &Reversal{
		id:        id,
		orderID:   orderID,
		partID:    partID,
		vendorID:  vendorID,
		amount:    amount,
		reason:    strings.TrimSpace(reason),
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (r *Reversal) Validate() error {
	if r == nil {
		return ErrReversalIsNotConstructed
	}
	return r.guard.Validate(ErrReversalIsNotConstructed)
}

func (r *Reversal) ID() kernel.UUID {
	return r.id
}

func (r *Reversal) OrderID() kernel.UUID {
	return r.orderID
}

func (r *Reversal) PartID() kernel.UUID {
	return r.partID
}

func (r *Reversal) VendorID() kernel.UUID {
	return r.vendorID
}

func (r *Reversal) Amount() kernel.Money {
	return r.amount
}

func (r *Reversal) Reason() string {
	return r.reason
}

func (r *Reversal) CreatedAt() time.Time {
	return r.createdAt
}

func validateID(param string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(param, err)
	}
	return nil
}
