package orderrepo

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

var _ ports.StatusAnnouncements = (*GormStatusAnnouncements)(nil)

// GormStatusAnnouncements keeps orders.announced_status in step with the
// published order.status.changed events.
type GormStatusAnnouncements struct {
	db *gorm.DB
}

func NewGormStatusAnnouncements(db *gorm.DB) *GormStatusAnnouncements {
	return &GormStatusAnnouncements{db: db}
}

func (s *GormStatusAnnouncements) ListPending(ctx context.Context, limit int) ([]ports.PendingAnnouncement, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	rows, err := s.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.announced_status,
			o.status,
			array_agg(p.status ORDER BY p.position)
		FROM orders o
		JOIN order_parts p ON p.order_id = o.id
		WHERE o.announced_status <> o.status
		GROUP BY o.id, o.announced_status, o.status, o.updated_at
		ORDER BY o.updated_at, o.id
		LIMIT ?
	`, limit).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pending := make([]ports.PendingAnnouncement, 0)
	for rows.Next() {
		var (
			id                uuid.UUID
			announced, cached string
			rawStatuses       pq.StringArray
		)

		if err = rows.Scan(&id, &announced, &cached, &rawStatuses); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		statuses := make([]order.Status, 0, len(rawStatuses))
		for _, raw := range rawStatuses {
			statuses = append(statuses, order.Normalize(raw))
		}

		pending = append(pending, ports.PendingAnnouncement{
			OrderID:      orderID,
			Announced:    order.Normalize(announced),
			Cached:       order.Normalize(cached),
			PartStatuses: statuses,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return pending, nil
}

// Claim also rewrites the cached status with current. The guard on the cached
// value keeps a concurrent Update from being overwritten.
func (s *GormStatusAnnouncements) Claim(
	ctx context.Context,
	pending ports.PendingAnnouncement,
	current order.Status,
) (bool, error) {
	if err := pending.OrderID.Validate(); err != nil {
		return false, err
	}

	result := s.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND announced_status = ? AND status = ?",
			pending.OrderID.Bytes(), pending.Announced.String(), pending.Cached.String()).
		Updates(map[string]any{
			"announced_status": current.String(),
			"status":           current.String(),
			"updated_at":       time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

func (s *GormStatusAnnouncements) Release(
	ctx context.Context,
	orderID kernel.UUID,
	claimed, previous order.Status,
) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND announced_status = ?", orderID.Bytes(), claimed.String()).
		Update("announced_status", previous.String()).Error
}
