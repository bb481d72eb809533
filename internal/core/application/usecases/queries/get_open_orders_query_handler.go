package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetOpenOrdersQueryHandler reads open orders straight from the tables. The cached
// orders.status column narrows the scan; the unified status returned is recomputed
// from the part statuses.
type GetOpenOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetOpenOrdersQueryHandler(db *gorm.DB) GetOpenOrdersQueryHandler {
	return GetOpenOrdersQueryHandler{db: db}
}

func (h GetOpenOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOpenOrdersQuery,
) ([]GetOpenOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetOpenOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.customer_id,
			o.created_at,
			array_agg(p.status ORDER BY p.position)
		FROM orders o
		JOIN order_parts p ON p.order_id = o.id
		WHERE o.status NOT IN ?
		GROUP BY o.id, o.customer_id, o.created_at
		ORDER BY o.created_at, o.id
		LIMIT ?
	`, []string{
		order.Delivered.String(),
		order.Cancelled.String(),
		order.CancelledByCustomer.String(),
	}, query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id, customerID uuid.UUID
			createdAt      time.Time
			rawStatuses    pq.StringArray
		)

		if err = rows.Scan(&id, &customerID, &createdAt, &rawStatuses); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		customer, customerErr := kernel.UUIDFromBytes(customerID[:])
		if customerErr != nil {
			return nil, customerErr
		}

		statuses := make([]order.Status, 0, len(rawStatuses))
		for _, raw := range rawStatuses {
			statuses = append(statuses, order.Normalize(raw))
		}

		unified := order.UnifyStatuses(statuses)
		if unified.IsTerminal() {
			continue
		}

		orders = append(orders, GetOpenOrdersQueryResponse{
			ID:           orderID,
			CustomerID:   customer,
			Status:       unified,
			PartStatuses: statuses,
			CreatedAt:    createdAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
