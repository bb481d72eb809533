package ports

import (
	"context"

	"marketplace/internal/core/domain/model/commission"
	"marketplace/internal/core/domain/model/kernel"
)

// CommissionLedger records commission reversals for vendor parts.
type CommissionLedger interface {
	// Reverse appends a reversal entry. A second entry for the same part is rejected
	// with *errs.ValueIsInvalidError so a commission is never reversed twice.
	Reverse(ctx context.Context, reversal *commission.Reversal) error

	// ListByOrder returns the reversals of one order, oldest first.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*commission.Reversal, error)
}
