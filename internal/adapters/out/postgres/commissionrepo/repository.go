package commissionrepo

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/commission"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// ErrAlreadyReversed is the cause reported when a part already has a ledger entry.
var ErrAlreadyReversed = errors.New("commission already reversed for part")

// GormCommissionLedger implements CommissionLedger using GORM.
type GormCommissionLedger struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCommissionLedger creates a new GORM commission ledger.
func NewGormCommissionLedger(db *gorm.DB, tracker aggregateTracker) *GormCommissionLedger {
	return &GormCommissionLedger{
		db:      db,
		tracker: tracker,
	}
}

// Reverse appends a reversal. The unique part_id constraint backs the existence check
// when two transactions race past it.
func (l *GormCommissionLedger) Reverse(ctx context.Context, reversal *commission.Reversal) error {
	if err := reversal.Validate(); err != nil {
		return err
	}

	dto := fromDomain(reversal)
	db := l.db.WithContext(ctx)

	var existing int64
	if err := db.Model(&ReversalDTO{}).Where("part_id = ?", dto.PartID).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return l.alreadyReversed(reversal)
	}

	if err := db.Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return l.alreadyReversed(reversal)
		}
		return err
	}

	l.tracker.TrackAggregate(reversal.ID(), reversal)
	return nil
}

// ListByOrder returns the reversals recorded for an order, oldest first.
func (l *GormCommissionLedger) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*commission.Reversal, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ReversalDTO
	if err := l.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	reversals := make([]*commission.Reversal, 0, len(dtos))
	for _, dto := range dtos {
		r, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		reversals = append(reversals, r)
	}

	return reversals, nil
}

func (l *GormCommissionLedger) alreadyReversed(reversal *commission.Reversal) error {
	return errs.NewValueIsInvalidErrorWithCause(
		"partId",
		fmt.Errorf("%w: %s", ErrAlreadyReversed, reversal.PartID()),
	)
}
