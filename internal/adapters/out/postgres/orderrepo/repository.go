package orderrepo

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its parts and line items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes part statuses and the cached unified status, guarded by the order version.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&OrderDTO{}).
			Where("id = ? AND version = ?", dto.ID, dto.Version).
			Updates(map[string]any{
				"status":     dto.Status,
				"version":    gorm.Expr("version + 1"),
				"updated_at": time.Now().UTC(),
			})
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return r.missingOrStale(tx, aggregate)
		}

		for _, part := range dto.Parts {
			partResult := tx.Model(&PartDTO{}).
				Where("id = ? AND order_id = ?", part.ID, dto.ID).
				Update("status", part.Status)
			if partResult.Error != nil {
				return partResult.Error
			}
			if partResult.RowsAffected == 0 {
				return errs.NewObjectNotFoundError("part", part.ID.String())
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order with its parts and line items in checkout order.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves an order and locks its row with SELECT ... FOR UPDATE until
// the surrounding transaction ends.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), id)
}

// ListOpen retrieves orders whose unified status is not terminal, oldest first.
func (r *GormOrderRepository) ListOpen(ctx context.Context, limit int) ([]*order.Order, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var dtos []OrderDTO
	if err := r.withAssociations(r.db.WithContext(ctx)).
		Where("status NOT IN ?", terminalStatuses()).
		Order("created_at, id").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		if o.IsOpen() {
			orders = append(orders, o)
		}
	}

	return orders, nil
}

func (r *GormOrderRepository) get(db *gorm.DB, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.withAssociations(db).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Parts", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Preload("Parts.Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		})
}

// missingOrStale tells a deleted order apart from a version conflict.
func (r *GormOrderRepository) missingOrStale(tx *gorm.DB, aggregate *order.Order) error {
	var count int64
	if err := tx.Model(&OrderDTO{}).Where("id = ?", aggregate.ID().Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	return errs.NewVersionIsInvalidError("order")
}

func terminalStatuses() []string {
	return []string{
		order.Delivered.String(),
		order.Cancelled.String(),
		order.CancelledByCustomer.String(),
	}
}
