// Package commissionrepo stores the commission ledger in the commission_reversals table.
package commissionrepo

import (
	"time"

	"marketplace/internal/core/domain/model/commission"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ReversalDTO represents the commission_reversals table.
type ReversalDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	PartID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	VendorID  uuid.UUID `gorm:"type:uuid;not null"`
	Amount    string    `gorm:"type:numeric(12,2);not null"`
	Reason    string    `gorm:"type:text;not null;default:''"`
	CreatedAt time.Time `gorm:"not null"`
}

func (ReversalDTO) TableName() string {
	return "commission_reversals"
}

func fromDomain(r *commission.Reversal) ReversalDTO {
	return ReversalDTO{
		ID:        r.ID().Bytes(),
		OrderID:   r.OrderID().Bytes(),
		PartID:    r.PartID().Bytes(),
		VendorID:  r.VendorID().Bytes(),
		Amount:    r.Amount().String(),
		Reason:    r.Reason(),
		CreatedAt: r.CreatedAt(),
	}
}

func toDomain(dto ReversalDTO) (*commission.Reversal, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	partID, err := kernel.UUIDFromBytes(dto.PartID[:])
	if err != nil {
		return nil, err
	}
	vendorID, err := kernel.UUIDFromBytes(dto.VendorID[:])
	if err != nil {
		return nil, err
	}
	amount, err := kernel.MoneyFromString(dto.Amount)
	if err != nil {
		return nil, err
	}

	return commission.RestoreReversal(id, orderID, partID, vendorID, amount, dto.Reason, dto.CreatedAt)
}
