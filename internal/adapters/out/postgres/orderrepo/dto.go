// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// An order is stored across three tables: orders, order_parts and line_items. The unified
// status is cached on the orders row for filtering only; the aggregate always recomputes it.
package orderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
)

// OrderDTO represents the orders table.
type OrderDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`
	Status     string    `gorm:"type:varchar(32);not null;index"`
	// AnnouncedStatus is the last unified status published as order.status.changed.
	AnnouncedStatus string    `gorm:"type:varchar(32);not null"`
	Version         int64     `gorm:"not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Parts           []PartDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// PartDTO represents the order_parts table. Position keeps the checkout order of parts.
type PartDTO struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID     `gorm:"type:uuid;not null;index"`
	Position       int           `gorm:"not null"`
	Kind           string        `gorm:"type:varchar(16);not null"`
	VendorID       *uuid.UUID    `gorm:"type:uuid;index"`
	CommissionRate string        `gorm:"type:numeric(5,4);not null;default:0"`
	Status         string        `gorm:"type:varchar(32);not null"`
	Items          []LineItemDTO `gorm:"foreignKey:PartID;constraint:OnDelete:CASCADE"`
}

func (PartDTO) TableName() string {
	return "order_parts"
}

// LineItemDTO represents the line_items table. A NULL status means the item follows its part.
type LineItemDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	PartID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Position  int       `gorm:"not null"`
	SKU       string    `gorm:"column:sku;type:varchar(64);not null"`
	Quantity  int       `gorm:"not null"`
	UnitPrice string    `gorm:"type:numeric(12,2);not null"`
	Status    *string   `gorm:"type:varchar(32)"`
}

func (LineItemDTO) TableName() string {
	return "line_items"
}

// fromDomain converts an order aggregate to its database representation,
// including the cached unified status.
func fromDomain(aggregate *order.Order) OrderDTO {
	parts := aggregate.Parts()
	dto := OrderDTO{
		ID:         aggregate.ID().Bytes(),
		CustomerID: aggregate.CustomerID().Bytes(),
		Status:     aggregate.Status().String(),
		// Placement itself is not announced.
		AnnouncedStatus: aggregate.Status().String(),
		Version:         aggregate.Version(),
		Parts:           make([]PartDTO, 0, len(parts)),
	}

	for i, p := range parts {
		dto.Parts = append(dto.Parts, partFromDomain(dto.ID, i, p))
	}

	return dto
}

func partFromDomain(orderID uuid.UUID, position int, p *order.Part) PartDTO {
	var vendorID *uuid.UUID
	if id := p.VendorID(); id != nil {
		raw := id.Bytes()
		vendorID = &raw
	}

	items := p.Items()
	dto := PartDTO{
		ID:             p.ID().Bytes(),
		OrderID:        orderID,
		Position:       position,
		Kind:           p.Kind().String(),
		VendorID:       vendorID,
		CommissionRate: p.CommissionRate().String(),
		Status:         p.Status().String(),
		Items:          make([]LineItemDTO, 0, len(items)),
	}

	for i, item := range items {
		var status *string
		if s := item.StatusOverride(); s != nil {
			raw := s.String()
			status = &raw
		}

		dto.Items = append(dto.Items, LineItemDTO{
			ID:        item.ID().Bytes(),
			PartID:    dto.ID,
			Position:  i,
			SKU:       item.SKU(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().String(),
			Status:    status,
		})
	}

	return dto
}

// toDomain reconstructs the aggregate with RestoreOrder. Part statuses are restored as
// stored, so legacy spellings are normalised by the domain when it unifies them.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	parts := make([]*order.Part, 0, len(dto.Parts))
	for _, p := range dto.Parts {
		part, partErr := partToDomain(p)
		if partErr != nil {
			return nil, partErr
		}
		parts = append(parts, part)
	}

	return order.RestoreOrder(id, customerID, parts, dto.Version)
}

func partToDomain(dto PartDTO) (*order.Part, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var vendorID *kernel.UUID
	if dto.VendorID != nil {
		vID, vendorErr := kernel.UUIDFromBytes((*dto.VendorID)[:])
		if vendorErr != nil {
			return nil, vendorErr
		}
		vendorID = &vID
	}

	rate, err := decimal.Parse(dto.CommissionRate)
	if err != nil {
		return nil, err
	}

	items := make([]*order.LineItem, 0, len(dto.Items))
	for _, i := range dto.Items {
		item, itemErr := lineItemToDomain(i)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestorePart(id, order.PartKind(dto.Kind), vendorID, rate, order.Status(dto.Status), items)
}

func lineItemToDomain(dto LineItemDTO) (*order.LineItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	price, err := kernel.MoneyFromString(dto.UnitPrice)
	if err != nil {
		return nil, err
	}

	var status *order.Status
	if dto.Status != nil {
		s := order.Status(*dto.Status)
		status = &s
	}

	return order.RestoreLineItem(id, dto.SKU, dto.Quantity, price, status)
}
